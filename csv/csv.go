package csv

import (
	csvwriter "encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/azure/update-management-deboarder/types"
)

const (
	ScheduleCsvFileName = "deboard-schedules.csv"
	AccountCsvFileName  = "automation-accounts.csv"
)

var createFile = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

type IReportCsvClient interface {
	ExportSchedules(schedules []types.ScheduleStatus) error
	ExportAccounts(accounts []*types.AutomationAccount) error
}

type ReportCsvClient struct {
	WorkingFolderPath string
	Logger            *logrus.Logger
}

func NewReportCsvClient(workingFolderPath string, logger *logrus.Logger) *ReportCsvClient {
	return &ReportCsvClient{
		WorkingFolderPath: workingFolderPath,
		Logger:            logger,
	}
}

func (csvClient *ReportCsvClient) ExportSchedules(schedules []types.ScheduleStatus) error {
	rows := make([]types.ScheduleStatus, len(schedules))
	copy(rows, schedules)
	sort.Sort(ByConfigurationAndSchedule(rows))

	csvData := [][]string{{"Configuration ID", "Configuration Name", "Schedule Name", "Disabled", "Error"}}
	for _, row := range rows {
		csvData = append(csvData, []string{
			row.ConfigurationID,
			row.ConfigurationName,
			row.ScheduleName,
			strconv.FormatBool(row.Disabled),
			row.Error,
		})
	}

	return csvClient.writeCsv(ScheduleCsvFileName, csvData)
}

func (csvClient *ReportCsvClient) ExportAccounts(accounts []*types.AutomationAccount) error {
	csvData := [][]string{{"Automation Account ID", "Name", "Resource Group", "Subscription ID", "Location"}}
	for _, account := range accounts {
		csvData = append(csvData, []string{
			account.ID,
			account.Name,
			account.ResourceGroup,
			account.SubscriptionID,
			account.Location,
		})
	}

	return csvClient.writeCsv(AccountCsvFileName, csvData)
}

func (csvClient *ReportCsvClient) writeCsv(fileName string, csvData [][]string) (err error) {
	csvFilePath := filepath.Join(csvClient.WorkingFolderPath, fileName)
	csvFile, err := createFile(csvFilePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := csvFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close CSV file: %w", closeErr)
		}
	}()

	csvWriter := csvwriter.NewWriter(csvFile)
	if err := csvWriter.WriteAll(csvData); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	csvClient.Logger.Infof("CSV written to %s", csvFilePath)
	return nil
}

type ByConfigurationAndSchedule []types.ScheduleStatus

func (o ByConfigurationAndSchedule) Len() int      { return len(o) }
func (o ByConfigurationAndSchedule) Swap(i, j int) { o[i], o[j] = o[j], o[i] }
func (o ByConfigurationAndSchedule) Less(i, j int) bool {
	if o[i].ConfigurationName != o[j].ConfigurationName {
		return o[i].ConfigurationName < o[j].ConfigurationName
	}
	return o[i].ScheduleName < o[j].ScheduleName
}
