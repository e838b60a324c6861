package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chetahvarsha/stablecoin-sc/configs"
	"github.com/chetahvarsha/stablecoin-sc/internal/contract"
	"github.com/chetahvarsha/stablecoin-sc/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appName   = "interactor"
	envPrefix = "INTERACTOR"
)

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "CLI for deploying and interacting with the stablecoin contracts on a test network",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Initialize(slog.LevelInfo, logger.FormatJSON)

		if err := loadConfig(viper.GetViper()); err != nil {
			return err
		}

		level, err := logger.ParseLevel(configs.Values.Log.Level)
		if err != nil {
			return err
		}
		logger.Initialize(level, configs.Values.Log.Format)

		slog.With("config", configs.Values).Debug("configuration loaded")

		return nil
	},
}

func loadConfig(v *viper.Viper) error {
	if err := configs.SetDefaults(v); err != nil {
		return err
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		v.AddConfigPath(execDir)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	// INTERACTOR_NETWORK_PEM, INTERACTOR_NETWORK_CHAIN_ID, ...
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// A config file is optional; embedded defaults, env and flags cover everything.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Debug("no config file found, will rely on defaults, environment and flags")
		} else {
			const errMsg = "error reading config file"
			slog.With("err", err.Error()).Error(errMsg)
			return errors.Join(err, errors.New(errMsg))
		}
	} else {
		slog.With("config_file", v.ConfigFileUsed()).Debug("config file loaded")
	}

	if err := v.Unmarshal(&configs.Values); err != nil {
		const errMsg = "unable to decode application config"
		slog.With("err", err.Error()).Error(errMsg)
		return errors.Join(err, errors.New(errMsg))
	}

	return nil
}

func main() {
	if err := contract.DeclareFlags(rootCmd.PersistentFlags(), viper.GetViper()); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(contract.CMD)
	rootCmd.AddCommand(contract.DataCMD)

	if err := rootCmd.Execute(); err != nil {
		slog.With("err", err.Error()).Error("failed to execute root command")
		os.Exit(1)
	}
}
