package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pmoaccess",
	Short: "Inspect and manage PMO dashboard access control records.",
	Long: `pmoaccess operates directly on the dashboard's access-control data file:
project staff assignments, per-user page permission overrides, and the
resolved verdicts the dashboard would produce for a given actor.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pmoaccess.yaml)")
	rootCmd.PersistentFlags().String("data", "pmoaccess.dat", "path to the access control data file")
	rootCmd.PersistentFlags().String("logdir", "logs", "directory for log files")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	_ = viper.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data"))
	_ = viper.BindPFlag("logdir", rootCmd.PersistentFlags().Lookup("logdir"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".pmoaccess")
		}
	}

	viper.SetEnvPrefix("pmoaccess")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("using config file:", viper.ConfigFileUsed())
	}
}
