package csv

import (
	"bytes"
	csvreader "encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azure/update-management-deboarder/types"
)

func readCsv(t *testing.T, path string) [][]string {
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csvreader.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportSchedules_SortedByConfigurationThenSchedule(t *testing.T) {
	folder := t.TempDir()
	client := NewReportCsvClient(folder, logrus.New())

	err := client.ExportSchedules([]types.ScheduleStatus{
		{ConfigurationID: "id2", ConfigurationName: "SUC2", ScheduleName: "SUC2_b", Disabled: false, Error: "403/AuthorizationFailed denied"},
		{ConfigurationID: "id1", ConfigurationName: "SUC1", ScheduleName: "SUC1_a", Disabled: true},
		{ConfigurationID: "id2", ConfigurationName: "SUC2", ScheduleName: "SUC2_a", Disabled: true},
	})
	require.NoError(t, err)

	records := readCsv(t, filepath.Join(folder, ScheduleCsvFileName))
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Configuration ID", "Configuration Name", "Schedule Name", "Disabled", "Error"}, records[0])
	assert.Equal(t, []string{"id1", "SUC1", "SUC1_a", "true", ""}, records[1])
	assert.Equal(t, "SUC2_a", records[2][2])
	assert.Equal(t, []string{"id2", "SUC2", "SUC2_b", "false", "403/AuthorizationFailed denied"}, records[3])
}

func TestExportAccounts(t *testing.T) {
	folder := t.TempDir()
	client := NewReportCsvClient(folder, logrus.New())

	err := client.ExportAccounts([]*types.AutomationAccount{
		{ID: "/subscriptions/s/resourceGroups/rg/providers/Microsoft.Automation/automationAccounts/aa1", Name: "aa1", ResourceGroup: "rg", SubscriptionID: "s", Location: "westeurope"},
	})
	require.NoError(t, err)

	records := readCsv(t, filepath.Join(folder, AccountCsvFileName))
	require.Len(t, records, 2)
	assert.Equal(t, "aa1", records[1][1])
	assert.Equal(t, "westeurope", records[1][4])
}

func TestExport_MissingFolder(t *testing.T) {
	client := NewReportCsvClient(filepath.Join(t.TempDir(), "missing"), logrus.New())

	assert.Error(t, client.ExportSchedules(nil))
}

type closeFailingFile struct {
	bytes.Buffer
}

func (file *closeFailingFile) Close() error {
	return errors.New("input/output error")
}

func TestExport_CloseErrorIsReturned(t *testing.T) {
	original := createFile
	t.Cleanup(func() { createFile = original })
	file := &closeFailingFile{}
	createFile = func(name string) (io.WriteCloser, error) {
		return file, nil
	}
	client := NewReportCsvClient(t.TempDir(), logrus.New())

	err := client.ExportSchedules([]types.ScheduleStatus{{ConfigurationName: "SUC1", ScheduleName: "SUC1_a", Disabled: true}})

	assert.ErrorContains(t, err, "failed to close CSV file")
	assert.Contains(t, file.String(), "SUC1_a")
}
