package deboard

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/azure/update-management-deboarder/automation"
	"github.com/azure/update-management-deboarder/rest"
	"github.com/azure/update-management-deboarder/types"
	"github.com/azure/update-management-deboarder/workspace"
)

type IDeboarder interface {
	Deboard(ctx context.Context) (*types.Report, error)
}

type Deboarder struct {
	AutomationAccountID string
	DryRun              bool
	ScheduleClient      automation.IScheduleClient
	ConfigurationClient automation.IConfigurationClient
	WorkspaceClient     workspace.IWorkspaceClient
	Invoker             rest.IInvoker
	Logger              *logrus.Logger
}

func NewDeboarder(automationAccountID string, dryRun bool, scheduleClient automation.IScheduleClient, configurationClient automation.IConfigurationClient, workspaceClient workspace.IWorkspaceClient, invoker rest.IInvoker, logger *logrus.Logger) *Deboarder {
	return &Deboarder{
		AutomationAccountID: automationAccountID,
		DryRun:              dryRun,
		ScheduleClient:      scheduleClient,
		ConfigurationClient: configurationClient,
		WorkspaceClient:     workspaceClient,
		Invoker:             invoker,
		Logger:              logger,
	}
}

type scheduleUpdate struct {
	Properties scheduleUpdateProperties `json:"properties"`
}

type scheduleUpdateProperties struct {
	IsEnabled bool `json:"isEnabled"`
}

// Deboard disables every schedule of every software update configuration and then removes the
// Updates solution from the linked workspace.
//
// Discovery failures return a nil report. A failure while detaching the workspace returns the report
// built so far together with the error.
func (deboarder *Deboarder) Deboard(ctx context.Context) (*types.Report, error) {
	report := types.NewReport(uuid.NewString(), deboarder.AutomationAccountID, deboarder.DryRun)
	logger := deboarder.Logger.WithField("runID", report.RunID)

	logger.Info("Discovering schedules of the patch runbook")
	scheduleIndex, err := deboarder.ScheduleClient.GetScheduleIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("discovering schedules: %w", err)
	}
	report.MalformedScheduleNames = scheduleIndex.Anomalies

	logger.Info("Discovering software update configurations")
	registry, err := deboarder.ConfigurationClient.GetConfigurations(ctx)
	if err != nil {
		return nil, fmt.Errorf("discovering software update configurations: %w", err)
	}
	report.Configurations = registry.Names

	for _, configurationID := range registry.IDs() {
		deboarder.disableConfiguration(ctx, logger, report, configurationID, scheduleIndex.ScheduleNames(registry.Names[configurationID]))
	}

	if err := deboarder.detachSolution(ctx, logger, report); err != nil {
		report.WorkspaceDetachError = err.Error()
		return report, fmt.Errorf("removing Updates solution: %w", err)
	}

	return report, nil
}

func (deboarder *Deboarder) disableConfiguration(ctx context.Context, logger *logrus.Entry, report *types.Report, configurationID string, scheduleNames []string) {
	disabled := false
	defer func() {
		report.DisabledStatus[configurationID] = disabled
	}()

	configurationName := report.Configurations[configurationID]
	if len(scheduleNames) == 0 {
		logger.Warnf("Software update configuration %s has no schedules for the patch runbook, nothing to disable", configurationName)
		return
	}

	allDisabled := !deboarder.DryRun
	for _, scheduleName := range scheduleNames {
		status := deboarder.disableSchedule(ctx, logger, scheduleName)
		status.ConfigurationID = configurationID
		status.ConfigurationName = configurationName
		report.Schedules = append(report.Schedules, status)
		if !status.Disabled {
			allDisabled = false
		}
	}
	disabled = allDisabled
}

func (deboarder *Deboarder) disableSchedule(ctx context.Context, logger *logrus.Entry, scheduleName string) types.ScheduleStatus {
	status := types.ScheduleStatus{ScheduleName: scheduleName}
	scheduleLogger := logger.WithField("schedule", scheduleName)

	if deboarder.DryRun {
		scheduleLogger.Info("Dry run, schedule would be disabled")
		return status
	}

	result, err := deboarder.Invoker.Invoke(ctx, rest.ScheduleEndpoint(deboarder.AutomationAccountID, scheduleName), http.MethodPatch, scheduleUpdate{})
	if err != nil {
		scheduleLogger.Errorf("Failed to disable schedule: %v", err)
		status.Error = err.Error()
		return status
	}
	if !result.Succeeded() {
		scheduleLogger.Errorf("Failed to disable schedule: %s %s", result.ErrorCode, result.ErrorMessage)
		status.Error = fmt.Sprintf("%s %s", result.ErrorCode, result.ErrorMessage)
		return status
	}

	scheduleLogger.Info("Disabled schedule")
	status.Disabled = true
	return status
}

// detachSolution deletes every Updates(<workspace>) solution. The solution counts as removed when
// any delete succeeds.
func (deboarder *Deboarder) detachSolution(ctx context.Context, logger *logrus.Entry, report *types.Report) error {
	linkedWorkspace, err := deboarder.WorkspaceClient.GetLinkedWorkspace(ctx)
	if err != nil {
		return err
	}
	report.WorkspaceID = linkedWorkspace.ID

	solutions, err := deboarder.WorkspaceClient.GetUpdatesSolutions(ctx, linkedWorkspace)
	if err != nil {
		return err
	}
	if len(solutions) == 0 {
		logger.Warnf("No %s solution found on workspace %s", workspace.UpdatesSolutionName(linkedWorkspace.ResourceName), linkedWorkspace.ID)
	}

	for _, solution := range solutions {
		solutionLogger := logger.WithField("solution", solution.ID)

		if deboarder.DryRun {
			solutionLogger.Info("Dry run, solution would be deleted")
			continue
		}

		result, err := deboarder.Invoker.Invoke(ctx, rest.SolutionEndpoint(solution.ID), http.MethodDelete, nil)
		if err != nil {
			solutionLogger.Errorf("Failed to delete solution: %v", err)
			continue
		}
		if !result.Succeeded() {
			solutionLogger.Errorf("Failed to delete solution: %s %s", result.ErrorCode, result.ErrorMessage)
			continue
		}

		solutionLogger.Info("Deleted solution")
		report.SolutionRemoved = true
	}

	return nil
}
