package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outputFormat string
	cfgFile      string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "srfit",
	Short: "CLI for the srfit elementwise operator core",
	Long:  `srfit is a command line interface for inspecting and evaluating the registered elementwise functions of the srfit equation core.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.srfit/config)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "", "output format: table or json (default from config or table)")
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(filepath.Join(home, ".srfit"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SRFIT")
	viper.AutomaticEnv()
	viper.SetDefault("output", "table")

	// Missing config file is fine, defaults apply
	_ = viper.ReadInConfig()

	if outputFormat == "" {
		outputFormat = viper.GetString("output")
	}
}
