package contract

import (
	"fmt"

	"github.com/chetahvarsha/stablecoin-sc/configs"
	"github.com/chetahvarsha/stablecoin-sc/internal/deployment"
	"github.com/spf13/cobra"
)

var (
	dataContractName string
	parseFile        string
	parseExpression  string
	parseWithTool    bool

	DataCMD = &cobra.Command{
		Use:   "data",
		Short: "Read and write the external CLI's key/value data store",
	}

	dataLoadCmd = &cobra.Command{
		Use:   "load <key>",
		Short: "Print a stored value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(dataContractName)
			if err != nil {
				return err
			}
			defer env.Close()

			value, err := env.store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	dataStoreCmd = &cobra.Command{
		Use:   "store <key> <value>",
		Short: "Store a value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(dataContractName)
			if err != nil {
				return err
			}
			defer env.Close()

			return env.store.Save(cmd.Context(), args[0], args[1])
		},
	}

	dataParseCmd = &cobra.Command{
		Use:   "parse",
		Short: "Extract a field from a JSON file, e.g. a deployment outfile",
		Example: `  interactor data parse --file deploy-testnet.interaction.json --expression "data['emitted_tx']['address']"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(dataContractName)
			if err != nil {
				return err
			}
			defer env.Close()

			var value string
			if parseWithTool {
				value, err = env.store.Parse(cmd.Context(), parseFile, parseExpression)
			} else {
				value, err = env.extractor.Field(parseFile, parseExpression)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
)

func init() {
	DataCMD.PersistentFlags().StringVar(&dataContractName, "contract", string(configs.ContractNameStablecoin), "Contract profile whose data partition is used")

	dataParseCmd.Flags().StringVar(&parseFile, "file", "", "JSON file to read")
	dataParseCmd.Flags().StringVar(&parseExpression, "expression", deployment.AddressExpression, "Field expression, data['a']['b'] or a.b")
	dataParseCmd.Flags().BoolVar(&parseWithTool, "use-tool", false, "Delegate parsing to the external CLI")
	if err := dataParseCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}

	DataCMD.AddCommand(dataLoadCmd)
	DataCMD.AddCommand(dataStoreCmd)
	DataCMD.AddCommand(dataParseCmd)
}
