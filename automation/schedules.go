package automation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/azure/update-management-deboarder/rest"
	"github.com/azure/update-management-deboarder/types"
)

var ErrMalformedScheduleName = errors.New("malformed schedule name")

// ParseConfigurationKey recovers the software update configuration key from a schedule name of the
// form <configurationKey>_<suffix>. Everything before the last "_" is the key.
func ParseConfigurationKey(scheduleName string) (string, error) {
	separator := strings.LastIndex(scheduleName, "_")
	if separator <= 0 {
		return "", fmt.Errorf("%w: %q", ErrMalformedScheduleName, scheduleName)
	}
	return scheduleName[:separator], nil
}

type IScheduleClient interface {
	GetScheduleIndex(ctx context.Context) (*types.ScheduleIndex, error)
}

type ScheduleClient struct {
	AutomationAccountID string
	RunbookName         string
	Invoker             rest.IInvoker
	Logger              *logrus.Logger
}

func NewScheduleClient(automationAccountID string, invoker rest.IInvoker, logger *logrus.Logger) *ScheduleClient {
	return &ScheduleClient{
		AutomationAccountID: automationAccountID,
		RunbookName:         rest.PatchRunbookName,
		Invoker:             invoker,
		Logger:              logger,
	}
}

// GetScheduleIndex enumerates every job schedule of the patch runbook and groups the schedule names
// by configuration key. Names that do not follow the convention are kept as anomalies.
func (scheduleClient *ScheduleClient) GetScheduleIndex(ctx context.Context) (*types.ScheduleIndex, error) {
	jobSchedules, err := rest.FetchAll[types.JobSchedule](ctx, scheduleClient.Invoker, func(skip int) rest.Endpoint {
		return rest.JobSchedulesEndpoint(scheduleClient.AutomationAccountID, scheduleClient.RunbookName, skip)
	}, scheduleClient.Logger)
	if err != nil {
		return nil, fmt.Errorf("listing job schedules for runbook %s: %w", scheduleClient.RunbookName, err)
	}

	index := types.NewScheduleIndex()
	for _, jobSchedule := range jobSchedules {
		scheduleName := jobSchedule.Properties.Schedule.Name
		configurationKey, err := ParseConfigurationKey(scheduleName)
		if err != nil {
			scheduleClient.Logger.Warnf("Skipping job schedule %s: %v", jobSchedule.ID, err)
			index.AddAnomaly(scheduleName)
			continue
		}
		scheduleClient.Logger.Tracef("Schedule %s belongs to configuration %s", scheduleName, configurationKey)
		index.Add(configurationKey, scheduleName)
	}

	scheduleClient.Logger.Infof("Found %d schedules for %d software update configurations", index.ScheduleCount(), len(index.Schedules))
	return index, nil
}
