package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
)

var Values Config

type (
	ContractName string
	IssueName    string
	ViewName     string
	RuntimeName  string

	Config struct {
		Log         Log                       `mapstructure:"log"`
		Tool        Tool                      `mapstructure:"tool"`
		Network     Network                   `mapstructure:"network"`
		Environment string                    `mapstructure:"environment"`
		Workspace   string                    `mapstructure:"workspace"`
		Contracts   map[ContractName]Contract `mapstructure:"contracts"`
	}

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	}

	Tool struct {
		Binary     string      `mapstructure:"binary"`
		Runtime    RuntimeName `mapstructure:"runtime"`
		Image      string      `mapstructure:"image"`
		Dockerfile string      `mapstructure:"dockerfile"`
		Verbose    bool        `mapstructure:"verbose"`
	}

	Network struct {
		Proxy      string `mapstructure:"proxy"`
		ChainID    string `mapstructure:"chain-id"`
		PEM        string `mapstructure:"pem"`
		AddressHRP string `mapstructure:"address-hrp"`
	}

	Contract struct {
		Project   string              `mapstructure:"project"`
		Bytecode  string              `mapstructure:"bytecode"`
		GasLimit  uint64              `mapstructure:"gas-limit"`
		Arguments []string            `mapstructure:"arguments"`
		Outfile   string              `mapstructure:"outfile"`
		Partition string              `mapstructure:"partition"`
		Source    Repository          `mapstructure:"source"`
		Issues    map[IssueName]Issue `mapstructure:"issues"`
		Views     map[ViewName]View   `mapstructure:"views"`
	}

	Issue struct {
		Function  string   `mapstructure:"function"`
		Value     string   `mapstructure:"value"`
		GasLimit  uint64   `mapstructure:"gas-limit"`
		Arguments []string `mapstructure:"arguments"`
	}

	View struct {
		Function  string   `mapstructure:"function"`
		Arguments []string `mapstructure:"arguments"`
	}

	Repository struct {
		URL       string `mapstructure:"url"`
		Branch    string `mapstructure:"branch"`
		LocalPath string `mapstructure:"local-path"`
	}
)

const (
	ContractNameStablecoin  ContractName = "stablecoin-v2"
	ContractNameLockRewards ContractName = "lock-rewards"

	RuntimeExec   RuntimeName = "exec"
	RuntimeDocker RuntimeName = "docker"

	DefaultEnvironment = "testnet"
)

// Validate checks everything the interactor needs before it talks to the tool.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Tool.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Network.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Environment == "" {
		errs = append(errs, errors.New("environment is required"))
	}
	if len(c.Contracts) == 0 {
		errs = append(errs, errors.New("at least one entry in contracts is required"))
	}
	for name, contract := range c.Contracts {
		if err := contract.Validate(name); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}

	return nil
}

func (t *Tool) Validate() error {
	var errs []error

	if t.Binary == "" {
		errs = append(errs, errors.New("tool.binary is required"))
	}
	switch t.Runtime {
	case RuntimeExec:
	case RuntimeDocker:
		if t.Image == "" {
			errs = append(errs, errors.New("tool.image is required for the docker runtime"))
		}
	case "":
		errs = append(errs, errors.New("tool.runtime is required"))
	default:
		errs = append(errs, fmt.Errorf("tool.runtime must be either '%s' or '%s'", RuntimeExec, RuntimeDocker))
	}

	return errors.Join(errs...)
}

func (n *Network) Validate() error {
	var errs []error

	if n.Proxy == "" {
		errs = append(errs, errors.New("network.proxy is required"))
	}
	if n.ChainID == "" {
		errs = append(errs, errors.New("network.chain-id is required"))
	}
	if n.PEM == "" {
		errs = append(errs, errors.New("network.pem is required"))
	}

	return errors.Join(errs...)
}

func (c *Contract) Validate(name ContractName) error {
	var errs []error

	if c.Project == "" && c.Bytecode == "" {
		errs = append(errs, fmt.Errorf("contracts.%s requires project or bytecode", name))
	}
	if c.GasLimit == 0 {
		errs = append(errs, fmt.Errorf("contracts.%s.gas-limit is required", name))
	}
	for issueName, issue := range c.Issues {
		if issue.Function == "" {
			errs = append(errs, fmt.Errorf("contracts.%s.issues.%s.function is required", name, issueName))
		}
		if value, ok := math.ParseBig256(issue.Value); !ok || value.Sign() < 0 {
			errs = append(errs, fmt.Errorf("contracts.%s.issues.%s.value must be an unsigned integer, got %q", name, issueName, issue.Value))
		}
	}
	for viewName, view := range c.Views {
		if view.Function == "" {
			errs = append(errs, fmt.Errorf("contracts.%s.views.%s.function is required", name, viewName))
		}
	}

	return errors.Join(errs...)
}

// Contract returns the named contract profile.
func (c *Config) Contract(name ContractName) (Contract, bool) {
	contract, ok := c.Contracts[name]
	return contract, ok
}

// PEMPath returns the signing key path with a leading ~ expanded.
func (n *Network) PEMPath() (string, error) {
	if !strings.HasPrefix(n.PEM, "~") {
		return n.PEM, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return filepath.Join(home, strings.TrimPrefix(n.PEM, "~")), nil
}
