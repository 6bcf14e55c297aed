package rest

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	AutomationAPIVersion                   = "2022-08-08"
	LinkedWorkspaceAPIVersion              = "2020-01-13-preview"
	SolutionsAPIVersion                    = "2015-11-01-preview"
	SoftwareUpdateConfigurationsAPIVersion = "2019-06-01"

	PatchRunbookName = "Patch-MicrosoftOMSComputers"
)

// Endpoint is a resource manager path paired with the api-version pinned to its resource type.
// Build it with one of the constructors below so the two never drift apart.
type Endpoint struct {
	Path       string
	APIVersion string
}

func (endpoint Endpoint) String() string {
	return endpoint.PathWithAPIVersion()
}

func (endpoint Endpoint) PathWithAPIVersion() string {
	separator := "?"
	if strings.Contains(endpoint.Path, "?") {
		separator = "&"
	}
	return fmt.Sprintf("%s%sapi-version=%s", endpoint.Path, separator, endpoint.APIVersion)
}

func LinkedWorkspaceEndpoint(automationAccountID string) Endpoint {
	return Endpoint{
		Path:       fmt.Sprintf("%s/linkedWorkspace", trimID(automationAccountID)),
		APIVersion: LinkedWorkspaceAPIVersion,
	}
}

func SolutionsEndpoint(subscriptionID string, resourceGroup string, workspaceID string) Endpoint {
	filter := fmt.Sprintf("properties/workspaceResourceId eq '%s'", workspaceID)
	return Endpoint{
		Path:       fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.OperationsManagement/solutions?$filter=%s", subscriptionID, resourceGroup, queryEscape(filter)),
		APIVersion: SolutionsAPIVersion,
	}
}

func SolutionEndpoint(solutionID string) Endpoint {
	return Endpoint{
		Path:       trimID(solutionID),
		APIVersion: SolutionsAPIVersion,
	}
}

func SoftwareUpdateConfigurationsEndpoint(automationAccountID string, skip int) Endpoint {
	return Endpoint{
		Path:       fmt.Sprintf("%s/softwareUpdateConfigurations?$skip=%d", trimID(automationAccountID), skip),
		APIVersion: SoftwareUpdateConfigurationsAPIVersion,
	}
}

func JobSchedulesEndpoint(automationAccountID string, runbookName string, skip int) Endpoint {
	filter := fmt.Sprintf("properties/runbook/name eq '%s'", runbookName)
	return Endpoint{
		Path:       fmt.Sprintf("%s/JobSchedules?$filter=%s&$skip=%d", trimID(automationAccountID), queryEscape(filter), skip),
		APIVersion: AutomationAPIVersion,
	}
}

func ScheduleEndpoint(automationAccountID string, scheduleName string) Endpoint {
	return Endpoint{
		Path:       fmt.Sprintf("%s/Schedules/%s", trimID(automationAccountID), url.PathEscape(scheduleName)),
		APIVersion: AutomationAPIVersion,
	}
}

func trimID(id string) string {
	return strings.TrimSuffix(id, "/")
}

func queryEscape(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
