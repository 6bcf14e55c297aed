/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/azure/update-management-deboarder/armid"
	"github.com/azure/update-management-deboarder/automation"
	"github.com/azure/update-management-deboarder/azure"
	"github.com/azure/update-management-deboarder/csv"
	"github.com/azure/update-management-deboarder/deboard"
	"github.com/azure/update-management-deboarder/filepathparser"
	"github.com/azure/update-management-deboarder/json"
	"github.com/azure/update-management-deboarder/rest"
	"github.com/azure/update-management-deboarder/workspace"
)

const reportFileName = "deboard-report.json"

// deboardCmd represents the deboard command
var deboardCmd = &cobra.Command{
	Use:   "deboard",
	Short: "Disable update schedules and remove the Updates solution",
	Long: `The deboard command runs these steps against one automation account:

1. Lists the job schedules of the Patch-MicrosoftOMSComputers runbook
2. Lists the software update configurations of the account
3. Disables every schedule that belongs to a software update configuration
4. Removes the Updates(<workspace>) solution from the linked log analytics workspace
5. Prints a summary and, with --exportReport, writes the report to the working folder

Examples:
  # Deboard using a user assigned managed identity
  update-management-deboarder deboard --automationAccountResourceId /subscriptions/<id>/resourceGroups/<rg>/providers/Microsoft.Automation/automationAccounts/<name> --userManagedServiceIdentityClientId <client-id>

  # Show what would change without disabling or deleting anything
  update-management-deboarder deboard --automationAccountResourceId <id> --useDefaultCredential --dryRun`,
	Run: func(cmd *cobra.Command, args []string) {
		automationAccountID := viper.GetString("automationAccountResourceId")
		if automationAccountID == "" {
			log.Fatal("automationAccountResourceId is required")
		}
		automationAccount, err := armid.ParseResourceID(automationAccountID)
		if err != nil {
			log.Fatalf("Error parsing automation account resource id: %v", err)
		}
		log.Infof("Deboarding automation account %s", automationAccount)

		exportReport := viper.GetBool("exportReport")
		workingFolderPath := ""
		if exportReport {
			workingFolderPath, err = filepathparser.ParseWorkingFolder(viper.GetString("workingFolderPath"))
			if err != nil {
				log.Fatalf("Error getting working folder path: %v", err)
			}
		}

		credential, cloudConfiguration := newCredential()
		resourceManagerClient, err := azure.NewResourceManagerClient(credential, cloudConfiguration)
		if err != nil {
			log.Fatalf("Error creating resource manager client: %v", err)
		}

		invoker := rest.NewInvoker(
			resourceManagerClient.Endpoint(),
			resourceManagerClient.Pipeline(),
			viper.GetInt("maxRetries"),
			viper.GetDuration("retryBaseDelay"),
			log,
		)

		deboarder := deboard.NewDeboarder(
			automationAccount.ID,
			viper.GetBool("dryRun"),
			automation.NewScheduleClient(automationAccount.ID, invoker, log),
			automation.NewConfigurationClient(automationAccount.ID, invoker, log),
			workspace.NewWorkspaceClient(automationAccount.ID, invoker, log),
			invoker,
			log,
		)

		report, err := deboarder.Deboard(cmd.Context())
		if err != nil {
			log.Errorf("Deboarding did not complete: %v", err)
		}
		if report == nil {
			return
		}

		for _, line := range report.Summary() {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}

		if !exportReport {
			return
		}
		if err := json.NewJsonClient(workingFolderPath, log).Export(report, reportFileName); err != nil {
			log.Errorf("Error exporting report: %v", err)
		}
		if err := csv.NewReportCsvClient(workingFolderPath, log).ExportSchedules(report.Schedules); err != nil {
			log.Errorf("Error exporting schedules: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(deboardCmd)

	deboardCmd.PersistentFlags().StringP("automationAccountResourceId", "a", "", "Resource ID of the automation account to deboard")
	viper.BindPFlag("automationAccountResourceId", deboardCmd.PersistentFlags().Lookup("automationAccountResourceId"))
	deboardCmd.PersistentFlags().IntP("maxRetries", "r", rest.DefaultRetryCount, "Attempts per request for throttled, conflicting or failing calls")
	viper.BindPFlag("maxRetries", deboardCmd.PersistentFlags().Lookup("maxRetries"))
	deboardCmd.PersistentFlags().Duration("retryBaseDelay", rest.DefaultBaseDelay, "Base delay of the exponential backoff between attempts")
	viper.BindPFlag("retryBaseDelay", deboardCmd.PersistentFlags().Lookup("retryBaseDelay"))
	deboardCmd.PersistentFlags().BoolP("dryRun", "d", false, "Discover and report without disabling schedules or deleting the solution")
	viper.BindPFlag("dryRun", deboardCmd.PersistentFlags().Lookup("dryRun"))
	deboardCmd.PersistentFlags().BoolP("exportReport", "e", false, "Write deboard-report.json and deboard-schedules.csv to the working folder")
	viper.BindPFlag("exportReport", deboardCmd.PersistentFlags().Lookup("exportReport"))
}
