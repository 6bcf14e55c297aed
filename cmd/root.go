/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var log = logrus.New()

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "update-management-deboarder",
	Short: "Deboard an Azure Automation account from Update Management",
	Long: `Disables every schedule of the Patch-MicrosoftOMSComputers runbook that belongs to a
software update configuration of the automation account, then removes the Updates
solution from the log analytics workspace linked to the account.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logVerbosity := viper.GetString("verbosity")
		logLevel, err := logrus.ParseLevel(logVerbosity)
		if err != nil {
			log.Fatalf("Invalid log level: %s", logVerbosity)
		}
		log.SetLevel(logLevel)
		log.SetFormatter(&logrus.TextFormatter{})
		if viper.GetBool("structuredLogs") {
			log.SetFormatter(&logrus.JSONFormatter{})
		}

		for key, value := range viper.GetViper().AllSettings() {
			log.Debugf("Command Flag: %s = %v", key, value)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file to use (YAML)")
	rootCmd.PersistentFlags().StringP("verbosity", "v", "info", "Log level (trace, debug, info, warn, error)")
	viper.BindPFlag("verbosity", rootCmd.PersistentFlags().Lookup("verbosity"))
	rootCmd.PersistentFlags().Bool("structuredLogs", false, "Write logs as JSON")
	viper.BindPFlag("structuredLogs", rootCmd.PersistentFlags().Lookup("structuredLogs"))
	rootCmd.PersistentFlags().String("cloud", "AzurePublic", "Azure cloud (AzurePublic, AzureChina, AzureGovernment)")
	viper.BindPFlag("cloud", rootCmd.PersistentFlags().Lookup("cloud"))
	rootCmd.PersistentFlags().StringP("userManagedServiceIdentityClientId", "i", "", "Client ID of the user assigned managed identity used for all calls")
	viper.BindPFlag("userManagedServiceIdentityClientId", rootCmd.PersistentFlags().Lookup("userManagedServiceIdentityClientId"))
	rootCmd.PersistentFlags().Bool("useDefaultCredential", false, "Use the default Azure credential chain instead of a managed identity")
	viper.BindPFlag("useDefaultCredential", rootCmd.PersistentFlags().Lookup("useDefaultCredential"))
	rootCmd.PersistentFlags().StringP("workingFolderPath", "w", ".", "Folder for exported reports")
	viper.BindPFlag("workingFolderPath", rootCmd.PersistentFlags().Lookup("workingFolderPath"))
}

func initConfig() {
	viper.SetEnvPrefix("DEBOARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if configFile == "" {
		return
	}

	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file %s: %v", configFile, err)
	}
	log.Debugf("Using config file: %s", viper.ConfigFileUsed())
}
