package contract

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chetahvarsha/stablecoin-sc/configs"
	"github.com/chetahvarsha/stablecoin-sc/internal/datastore"
	"github.com/chetahvarsha/stablecoin-sc/internal/deployment"
	fsjson "github.com/chetahvarsha/stablecoin-sc/internal/infra/filesystem/json"
	"github.com/chetahvarsha/stablecoin-sc/internal/output"
	"github.com/chetahvarsha/stablecoin-sc/internal/tool"
)

// environment wires one contract profile to the tool, its data store and the output files.
type environment struct {
	interactor *Interactor
	store      *datastore.Store
	extractor  *deployment.Extractor
	runner     tool.RunCloser
}

func selectContract(name string) (configs.Contract, error) {
	if err := configs.Values.Validate(); err != nil {
		return configs.Contract{}, err
	}

	contract, ok := configs.Values.Contract(configs.ContractName(name))
	if !ok {
		return configs.Contract{}, fmt.Errorf("%w %q", ErrUnknownContract, name)
	}

	return contract, nil
}

func newEnvironment(name string) (*environment, error) {
	contract, err := selectContract(name)
	if err != nil {
		return nil, err
	}

	cfg := configs.Values

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	pem, err := cfg.Network.PEMPath()
	if err != nil {
		return nil, err
	}
	if pem, err = filepath.Abs(pem); err != nil {
		return nil, fmt.Errorf("failed to resolve pem path: %w", err)
	}

	network := cfg.Network
	network.PEM = pem

	runner, err := tool.New(cfg.Tool, workDir, filepath.Dir(pem))
	if err != nil {
		return nil, fmt.Errorf("failed to create tool runner: %w", err)
	}

	workspace := cfg.Workspace
	if !filepath.IsAbs(workspace) {
		workspace = filepath.Join(workDir, workspace)
	}

	store := datastore.New(runner, contract.Partition)
	extractor := deployment.NewExtractor(fsjson.NewReader())
	settings := Settings{
		Name:        configs.ContractName(name),
		Contract:    contract,
		Network:     network,
		Environment: cfg.Environment,
		Verbose:     cfg.Tool.Verbose,
		WorkDir:     workDir,
	}

	return &environment{
		interactor: NewInteractor(settings, runner, store, extractor, output.NewGenerator(workspace, fsjson.NewWriter())),
		store:      store,
		extractor:  extractor,
		runner:     runner,
	}, nil
}

func (e *environment) Close() {
	if err := e.runner.Close(); err != nil {
		slog.With("err", err.Error()).Warn("failed to close tool runner")
	}
}
