package configs

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

//go:embed config.example.yaml
var defaultConfigYAML string

// SetDefaults registers the embedded configuration as the lowest-priority
// layer of v, below config files, environment and flags.
func SetDefaults(v *viper.Viper) error {
	defaults := viper.New()
	defaults.SetConfigType("yaml")
	if err := defaults.ReadConfig(strings.NewReader(defaultConfigYAML)); err != nil {
		return fmt.Errorf("failed to read embedded config.example.yaml: %w", err)
	}

	for _, key := range defaults.AllKeys() {
		v.SetDefault(key, defaults.Get(key))
	}

	return nil
}
