package contract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chetahvarsha/stablecoin-sc/configs"
	"github.com/chetahvarsha/stablecoin-sc/internal/datastore"
	"github.com/chetahvarsha/stablecoin-sc/internal/deployment"
	"github.com/chetahvarsha/stablecoin-sc/internal/logger"
	"github.com/chetahvarsha/stablecoin-sc/internal/output"
	"github.com/chetahvarsha/stablecoin-sc/internal/tool"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotDeployed     = errors.New("contract address not found; deploy first")
	ErrUnknownContract = errors.New("unknown contract")
	ErrUnknownIssue    = errors.New("unknown issue operation")
	ErrUnknownView     = errors.New("unknown view")
	ErrProjectRequired = errors.New("contract project directory is required")
	ErrAddressMismatch = errors.New("address does not belong to the configured network")
	errOutfileMissing  = errors.New("deployment output was not written")
)

type (
	runner interface {
		Run(ctx context.Context, args ...string) ([]byte, error)
	}
	store interface {
		Load(ctx context.Context, key string) (string, error)
		Save(ctx context.Context, key, value string) error
	}
	extractor interface {
		Extract(outfile string) (deployment.Result, error)
	}
	outputGenerator interface {
		Generate(model output.Model) error
		Read(contract, env string) (output.Model, error)
	}

	// Settings describes one contract profile on one network.
	Settings struct {
		Name        configs.ContractName
		Contract    configs.Contract
		Network     configs.Network
		Environment string
		Verbose     bool
		// WorkDir is where the tool runs; relative paths in Contract resolve against it.
		WorkDir string
	}

	// Interactor performs the deploy, upgrade, issue and query operations of a contract.
	Interactor struct {
		settings  Settings
		runner    runner
		store     store
		extractor extractor
		output    outputGenerator
		logger    *slog.Logger
	}

	Deployment struct {
		Address         string
		TransactionHash string
	}

	ViewResult struct {
		View   configs.ViewName
		Output string
	}
)

func NewInteractor(settings Settings, runner runner, store store, extractor extractor, output outputGenerator) *Interactor {
	if settings.Environment == "" {
		settings.Environment = configs.DefaultEnvironment
	}

	return &Interactor{
		settings:  settings,
		runner:    runner,
		store:     store,
		extractor: extractor,
		output:    output,
		logger:    logger.Named("contract_interactor").With("contract", settings.Name, "environment", settings.Environment),
	}
}

// Build compiles the contract project with the tool.
func (i *Interactor) Build(ctx context.Context) error {
	if i.settings.Contract.Project == "" {
		return ErrProjectRequired
	}

	i.logger.With("project", i.settings.Contract.Project).Info("building contract")
	if _, err := i.runner.Run(ctx, tool.ContractBuild(i.settings.Contract.Project)...); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	return nil
}

// Deploy sends the deploy transaction and records the new address and
// transaction hash in the data store. Nothing is recorded when the tool fails.
func (i *Interactor) Deploy(ctx context.Context) (Deployment, error) {
	args, err := EncodeArguments(i.settings.Contract.Arguments)
	if err != nil {
		return Deployment{}, fmt.Errorf("invalid deploy arguments: %w", err)
	}

	outfile := i.outfile()
	outfilePath := i.resolve(outfile)
	if err := os.Remove(outfilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Deployment{}, fmt.Errorf("failed to remove stale deployment output: %w", err)
	}

	tx := i.transaction(i.settings.Contract.GasLimit, "")
	tx.Outfile = outfile

	i.logger.Info("deploying contract")
	if _, err := i.runner.Run(ctx, tool.ContractDeploy(i.artifact(), args, tx)...); err != nil {
		return Deployment{}, fmt.Errorf("deploy failed: %w", err)
	}

	if _, err := os.Stat(outfilePath); err != nil {
		return Deployment{}, fmt.Errorf("%w: %s", errOutfileMissing, outfilePath)
	}

	result, err := i.extractor.Extract(outfilePath)
	if err != nil {
		return Deployment{}, fmt.Errorf("failed to extract deployment result: %w", err)
	}
	if err := i.checkAddress(result.Address); err != nil {
		return Deployment{}, err
	}

	// the address marks the contract as deployed, so it is written last
	env := i.settings.Environment
	if err := i.store.Save(ctx, datastore.DeployTransactionKey(env), result.TransactionHash); err != nil {
		return Deployment{}, err
	}
	if err := i.store.Save(ctx, datastore.AddressKey(env), result.Address); err != nil {
		return Deployment{}, err
	}

	i.logger.With("address", result.Address, "transaction", result.TransactionHash).Info("contract deployed")

	if i.output != nil {
		err := i.output.Generate(output.Model{
			Contract:        string(i.settings.Name),
			Environment:     env,
			Proxy:           i.settings.Network.Proxy,
			ChainID:         output.SingleQuotedString(i.settings.Network.ChainID),
			Address:         result.Address,
			TransactionHash: output.SingleQuotedString(result.TransactionHash),
		})
		if err != nil {
			return Deployment{}, fmt.Errorf("failed to write deployment summary: %w", err)
		}
	}

	return Deployment{Address: result.Address, TransactionHash: result.TransactionHash}, nil
}

// Upgrade replaces the code of the deployed contract.
func (i *Interactor) Upgrade(ctx context.Context) error {
	address, err := i.deployedAddress(ctx)
	if err != nil {
		return err
	}

	args, err := EncodeArguments(i.settings.Contract.Arguments)
	if err != nil {
		return fmt.Errorf("invalid upgrade arguments: %w", err)
	}

	i.logger.With("address", address).Info("upgrading contract")
	if _, err := i.runner.Run(ctx, tool.ContractUpgrade(address, i.artifact(), args, i.transaction(i.settings.Contract.GasLimit, ""))...); err != nil {
		return fmt.Errorf("upgrade failed: %w", err)
	}

	return nil
}

// Issue calls one of the configured token issuing endpoints, paying its issue cost.
func (i *Interactor) Issue(ctx context.Context, name configs.IssueName) (string, error) {
	issue, ok := i.settings.Contract.Issues[name]
	if !ok {
		return "", fmt.Errorf("%w %q (available: %s)", ErrUnknownIssue, name, strings.Join(i.IssueNames(), ", "))
	}

	address, err := i.deployedAddress(ctx)
	if err != nil {
		return "", err
	}

	args, err := EncodeArguments(issue.Arguments)
	if err != nil {
		return "", fmt.Errorf("invalid arguments for %s: %w", name, err)
	}

	gasLimit := issue.GasLimit
	if gasLimit == 0 {
		gasLimit = i.settings.Contract.GasLimit
	}

	i.logger.With("function", issue.Function, "value", issue.Value).Info("issuing token")
	out, err := i.runner.Run(ctx, tool.ContractCall(address, issue.Function, args, i.transaction(gasLimit, issue.Value))...)
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", issue.Function, err)
	}

	return strings.TrimSpace(string(out)), nil
}

// Query reads a view of the deployed contract.
func (i *Interactor) Query(ctx context.Context, name configs.ViewName) (string, error) {
	view, ok := i.settings.Contract.Views[name]
	if !ok {
		return "", fmt.Errorf("%w %q (available: %s)", ErrUnknownView, name, strings.Join(i.ViewNames(), ", "))
	}

	address, err := i.deployedAddress(ctx)
	if err != nil {
		return "", err
	}

	return i.query(ctx, address, view)
}

// QueryAll reads every configured view. Views are read-only, so they are queried concurrently.
func (i *Interactor) QueryAll(ctx context.Context) ([]ViewResult, error) {
	address, err := i.deployedAddress(ctx)
	if err != nil {
		return nil, err
	}

	names := i.ViewNames()
	results := make([]ViewResult, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for idx, name := range names {
		view := i.settings.Contract.Views[configs.ViewName(name)]
		g.Go(func() error {
			out, err := i.query(gctx, address, view)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			results[idx] = ViewResult{View: configs.ViewName(name), Output: out}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Address returns the deployed contract address recorded by Deploy. When the
// data store has no entry, the deployment summary is used instead.
func (i *Interactor) Address(ctx context.Context) (string, error) {
	address, err := i.deployedAddress(ctx)
	if !errors.Is(err, ErrNotDeployed) || i.output == nil {
		return address, err
	}

	model, readErr := i.output.Read(string(i.settings.Name), i.settings.Environment)
	if readErr != nil {
		if !errors.Is(readErr, os.ErrNotExist) {
			i.logger.With("err", readErr.Error()).Debug("failed to read deployment summary")
		}
		return "", err
	}
	if model.Address == "" {
		return "", err
	}
	if err := i.checkAddress(model.Address); err != nil {
		return "", err
	}

	i.logger.With("address", model.Address).Warn("address missing from data store; using deployment summary")
	return model.Address, nil
}

// deployedAddress returns the address from the data store only.
func (i *Interactor) deployedAddress(ctx context.Context) (string, error) {
	address, err := i.store.Load(ctx, datastore.AddressKey(i.settings.Environment))
	if err != nil {
		if errors.Is(err, datastore.ErrKeyNotFound) {
			return "", fmt.Errorf("%w (%s)", ErrNotDeployed, i.settings.Name)
		}
		return "", err
	}
	if err := i.checkAddress(address); err != nil {
		return "", err
	}
	return address, nil
}

// checkAddress verifies the bech32 human-readable part when one is configured.
func (i *Interactor) checkAddress(address string) error {
	hrp := i.settings.Network.AddressHRP
	if hrp == "" || strings.HasPrefix(address, hrp+"1") {
		return nil
	}
	return fmt.Errorf("%w: %q does not start with %q", ErrAddressMismatch, address, hrp+"1")
}

func (i *Interactor) IssueNames() []string {
	names := make([]string, 0, len(i.settings.Contract.Issues))
	for name := range i.settings.Contract.Issues {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

func (i *Interactor) ViewNames() []string {
	names := make([]string, 0, len(i.settings.Contract.Views))
	for name := range i.settings.Contract.Views {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

func (i *Interactor) query(ctx context.Context, address string, view configs.View) (string, error) {
	args, err := EncodeArguments(view.Arguments)
	if err != nil {
		return "", fmt.Errorf("invalid arguments for %s: %w", view.Function, err)
	}

	out, err := i.runner.Run(ctx, tool.ContractQuery(address, view.Function, args, i.settings.Network.Proxy)...)
	if err != nil {
		return "", fmt.Errorf("query %s failed: %w", view.Function, err)
	}

	return strings.TrimSpace(string(out)), nil
}

func (i *Interactor) transaction(gasLimit uint64, value string) tool.Transaction {
	return tool.Transaction{
		PEM:      i.settings.Network.PEM,
		Proxy:    i.settings.Network.Proxy,
		ChainID:  i.settings.Network.ChainID,
		GasLimit: gasLimit,
		Value:    value,
		Verbose:  i.settings.Verbose,
	}
}

func (i *Interactor) artifact() tool.Artifact {
	return tool.Artifact{
		Project:  i.settings.Contract.Project,
		Bytecode: i.settings.Contract.Bytecode,
	}
}

func (i *Interactor) outfile() string {
	if i.settings.Contract.Outfile != "" {
		return i.settings.Contract.Outfile
	}
	return fmt.Sprintf("deploy-%s.interaction.json", i.settings.Environment)
}

func (i *Interactor) resolve(path string) string {
	if filepath.IsAbs(path) || i.settings.WorkDir == "" {
		return path
	}
	return filepath.Join(i.settings.WorkDir, path)
}
