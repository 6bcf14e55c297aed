/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/azure/update-management-deboarder/azure"
	"github.com/azure/update-management-deboarder/csv"
	"github.com/azure/update-management-deboarder/filepathparser"
)

// findAccountsCmd represents the find-accounts command
var findAccountsCmd = &cobra.Command{
	Use:   "find-accounts",
	Short: "List automation accounts with Resource Graph",
	Long: `Lists the automation accounts of the given subscriptions so their resource ids can be
passed to the deboard command. The list is printed and written to automation-accounts.csv
in the working folder.

Examples:
  update-management-deboarder find-accounts --subscriptionIDs <id1>,<id2> --useDefaultCredential`,
	Run: func(cmd *cobra.Command, args []string) {
		workingFolderPath, err := filepathparser.ParseWorkingFolder(viper.GetString("workingFolderPath"))
		if err != nil {
			log.Fatalf("Error getting working folder path: %v", err)
		}

		credential, cloudConfiguration := newCredential()
		resourceGraphClient := azure.NewResourceGraphClient(
			viper.GetStringSlice("subscriptionIDs"),
			viper.GetStringSlice("ignoreResourceIDPatterns"),
			credential,
			azure.NewClientOptions(cloudConfiguration),
			log,
		)

		accounts, err := resourceGraphClient.GetAutomationAccounts(cmd.Context())
		if err != nil {
			log.Fatalf("Error getting automation accounts: %v", err)
		}

		for _, account := range accounts {
			fmt.Fprintln(cmd.OutOrStdout(), account.ID)
		}
		log.Infof("Found %d automation accounts", len(accounts))

		if err := csv.NewReportCsvClient(workingFolderPath, log).ExportAccounts(accounts); err != nil {
			log.Errorf("Error exporting automation accounts: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(findAccountsCmd)

	findAccountsCmd.PersistentFlags().StringSliceP("subscriptionIDs", "s", []string{}, "Subscription IDs to search")
	viper.BindPFlag("subscriptionIDs", findAccountsCmd.PersistentFlags().Lookup("subscriptionIDs"))
	findAccountsCmd.PersistentFlags().StringSlice("ignoreResourceIDPatterns", []string{}, "Regular expressions of automation account ids to skip")
	viper.BindPFlag("ignoreResourceIDPatterns", findAccountsCmd.PersistentFlags().Lookup("ignoreResourceIDPatterns"))
}
