package types

import "fmt"

type ScheduleStatus struct {
	ConfigurationID   string `json:"configurationId"`
	ConfigurationName string `json:"configurationName"`
	ScheduleName      string `json:"scheduleName"`
	Disabled          bool   `json:"disabled"`
	Error             string `json:"error,omitempty"`
}

// Report is the state of one deboarding run. It is built by the orchestrator and never shared
// between runs.
type Report struct {
	RunID                  string            `json:"runId"`
	AutomationAccountID    string            `json:"automationAccountId"`
	DryRun                 bool              `json:"dryRun"`
	Configurations         map[string]string `json:"configurations"`
	DisabledStatus         map[string]bool   `json:"disabledStatus"`
	Schedules              []ScheduleStatus  `json:"schedules"`
	MalformedScheduleNames []string          `json:"malformedScheduleNames,omitempty"`
	WorkspaceID            string            `json:"workspaceId,omitempty"`
	SolutionRemoved        bool              `json:"solutionRemoved"`
	WorkspaceDetachError   string            `json:"workspaceDetachError,omitempty"`
}

func NewReport(runID string, automationAccountID string, dryRun bool) *Report {
	return &Report{
		RunID:               runID,
		AutomationAccountID: automationAccountID,
		DryRun:              dryRun,
		Configurations:      map[string]string{},
		DisabledStatus:      map[string]bool{},
		Schedules:           []ScheduleStatus{},
	}
}

func (report *Report) ConfigurationCount() int {
	return len(report.Configurations)
}

func (report *Report) DisabledCount() int {
	count := 0
	for _, disabled := range report.DisabledStatus {
		if disabled {
			count++
		}
	}
	return count
}

const (
	SolutionRemovedMessage    = "Updates solution removed from the linked log analytics workspace"
	SolutionNotRemovedMessage = "Failed to remove the Updates solution from the linked log analytics workspace"
)

// Summary returns the three human readable result lines of a run.
func (report *Report) Summary() []string {
	solutionLine := SolutionNotRemovedMessage
	if report.SolutionRemoved {
		solutionLine = SolutionRemovedMessage
	}
	return []string{
		fmt.Sprintf("%d software update configurations found", report.ConfigurationCount()),
		fmt.Sprintf("%d software update configurations disabled", report.DisabledCount()),
		solutionLine,
	}
}
