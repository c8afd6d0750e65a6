package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	rootCmd := newRootCmd(version, commit, date)
	return rootCmd.Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baserow",
		Short: "Work with Baserow tables from the command line",
		Long: `baserow talks to a Baserow deployment over its REST API: inspect table
schemas, query rows with filters and sorting, create, update and delete
records, and upload files.

Connection settings come from flags, a baserow.yaml config file, or
BASEROW_* environment variables (base_url, token, email, password).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./baserow.yaml)")
	cmd.PersistentFlags().String("base-url", "", "Baserow base URL, e.g. https://api.baserow.io")
	cmd.PersistentFlags().String("token", "", "database token for Token authentication")
	viper.BindPFlag("base_url", cmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag("token", cmd.PersistentFlags().Lookup("token"))

	cobra.OnInitialize(initConfig)

	// Add subcommands
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newFieldsCmd())
	cmd.AddCommand(newRowsCmd())
	cmd.AddCommand(newRecordCmd())
	cmd.AddCommand(newUploadCmd())
	cmd.AddCommand(newVersionCmd(version, commit, date))

	return cmd
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("baserow")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.baserow")
	}

	viper.SetEnvPrefix("BASEROW")
	viper.AutomaticEnv()
	viper.ReadInConfig() // Ignore error - config file is optional
}
