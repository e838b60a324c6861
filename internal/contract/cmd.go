package contract

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/chetahvarsha/stablecoin-sc/configs"
	"github.com/chetahvarsha/stablecoin-sc/internal/infra/git"
	"github.com/spf13/cobra"
)

const allViews = "all"

var (
	contractName string

	CMD = &cobra.Command{
		Use:   "contract",
		Short: "Deploy and interact with the stablecoin smart contracts",
	}

	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Build the contract bytecode with the external CLI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(contractName)
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.interactor.Build(cmd.Context()); err != nil {
				return err
			}

			slog.With("contract", contractName).Info("contract built successfully")
			return nil
		},
	}

	deployCmd = &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the contract and store its address and deploy transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(contractName)
			if err != nil {
				return err
			}
			defer env.Close()

			result, err := env.interactor.Deploy(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "address: %s\ntransaction: %s\n", result.Address, result.TransactionHash)
			return nil
		},
	}

	upgradeCmd = &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade the deployed contract with the current bytecode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(contractName)
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.interactor.Upgrade(cmd.Context()); err != nil {
				return err
			}

			slog.With("contract", contractName).Info("contract upgraded successfully")
			return nil
		},
	}

	issueCmd = &cobra.Command{
		Use:   "issue <name>",
		Short: "Issue a token through one of the contract's issue endpoints",
		Example: `  interactor contract issue stablecoin
  interactor contract issue hedging`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(contractName)
			if err != nil {
				return err
			}
			defer env.Close()

			out, err := env.interactor.Issue(cmd.Context(), configs.IssueName(args[0]))
			if err != nil {
				return err
			}

			if out != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	queryCmd = &cobra.Command{
		Use:   "query <view|all>",
		Short: "Query a read-only view of the deployed contract",
		Example: `  interactor contract query stablecoin-token-id
  interactor contract query all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(contractName)
			if err != nil {
				return err
			}
			defer env.Close()

			if args[0] != allViews {
				out, err := env.interactor.Query(cmd.Context(), configs.ViewName(args[0]))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			results, err := env.interactor.QueryAll(cmd.Context())
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.View, r.Output)
			}
			return nil
		},
	}

	addressCmd = &cobra.Command{
		Use:   "address",
		Short: "Print the stored address of the deployed contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(contractName)
			if err != nil {
				return err
			}
			defer env.Close()

			address, err := env.interactor.Address(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), address)
			return nil
		},
	}

	sourceCmd = &cobra.Command{
		Use:   "source",
		Short: "Clone the contract sources into the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			contract, err := selectContract(contractName)
			if err != nil {
				return err
			}

			if contract.Source.LocalPath != "" {
				slog.With("contract", contractName, "local_path", contract.Source.LocalPath).Info("using local contract sources; skipping clone")
				fmt.Fprintln(cmd.OutOrStdout(), contract.Source.LocalPath)
				return nil
			}

			dest := filepath.Join(configs.Values.Workspace, "contracts")
			path, err := git.NewCloner().Clone(cmd.Context(), dest, git.Repository{
				Name: contractName,
				URL:  contract.Source.URL,
				Ref:  contract.Source.Branch,
			})
			if err != nil {
				return fmt.Errorf("failed to fetch sources of %s: %w", contractName, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
)

func init() {
	CMD.PersistentFlags().StringVar(&contractName, "contract", string(configs.ContractNameStablecoin), "Contract profile from the configuration")

	CMD.AddCommand(buildCmd)
	CMD.AddCommand(deployCmd)
	CMD.AddCommand(upgradeCmd)
	CMD.AddCommand(issueCmd)
	CMD.AddCommand(queryCmd)
	CMD.AddCommand(addressCmd)
	CMD.AddCommand(sourceCmd)
}
