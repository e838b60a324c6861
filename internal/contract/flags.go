package contract

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagDef defines a command-line flag bound to a configuration key.
type (
	flagType interface {
		string | int | bool
	}

	flagDef[T flagType] struct {
		name         string
		viperKey     string
		defaultValue T
		description  string
	}
)

var (
	// Defaults live in the embedded configuration; flags only override it.
	stringFlags = []flagDef[string]{
		// Network
		{"proxy", "network.proxy", "", "Proxy URL used to submit transactions and queries"},
		{"chain-id", "network.chain-id", "", "Chain identifier of the target network"},
		{"pem", "network.pem", "", "Path to the PEM file holding the signing key"},

		// Environment
		{"environment", "environment", "", "Environment suffix for stored keys (address-<env>, deployTransaction-<env>)"},
		{"workspace", "workspace", "", "Directory for deployment summaries and cloned sources"},

		// Tool
		{"tool-binary", "tool.binary", "", "External blockchain CLI binary"},
		{"tool-runtime", "tool.runtime", "", "How to run the CLI (exec or docker)"},
		{"tool-image", "tool.image", "", "Docker image providing the CLI (docker runtime)"},
		{"tool-dockerfile", "tool.dockerfile", "", "Dockerfile to build the CLI image when it is missing locally"},

		// Logging
		{"log-level", "log.level", "", "Log level (debug, info, warn, error)"},
		{"log-format", "log.format", "", "Log format (json or text)"},
	}

	intFlags = []flagDef[int]{}

	boolFlags = []flagDef[bool]{
		{"verbose", "tool.verbose", false, "Pass --verbose to state-changing CLI commands"},
	}
)

// DeclareFlags declares the shared flags on fs and binds them to v.
func DeclareFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	if err := declareFlags(fs, v, stringFlags); err != nil {
		return err
	}
	if err := declareFlags(fs, v, intFlags); err != nil {
		return err
	}
	return declareFlags(fs, v, boolFlags)
}

func declareFlags[T flagType](fs *pflag.FlagSet, v *viper.Viper, flags []flagDef[T]) error {
	for _, flag := range flags {
		if err := declareFlag(fs, v, flag.name, flag.viperKey, flag.defaultValue, flag.description); err != nil {
			return err
		}
	}
	return nil
}

// declareFlag declares a single flag and binds it to a viper configuration key.
// The type parameter T determines the flag type (string, int, or bool).
func declareFlag[T flagType](fs *pflag.FlagSet, v *viper.Viper, flagName, viperKey string, defaultValue T, description string) error {
	switch d := any(defaultValue).(type) {
	case string:
		fs.String(flagName, d, description)
	case int:
		fs.Int(flagName, d, description)
	case bool:
		fs.Bool(flagName, d, description)
	}
	return v.BindPFlag(viperKey, fs.Lookup(flagName))
}
