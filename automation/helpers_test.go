package automation

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/azure/update-management-deboarder/rest"
	"github.com/azure/update-management-deboarder/types"
)

const testAccountID = "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Automation/automationAccounts/aa1"

type mockInvoker struct {
	Results   []*types.APIResult
	Endpoints []rest.Endpoint
}

func (m *mockInvoker) Invoke(ctx context.Context, endpoint rest.Endpoint, method string, payload any) (*types.APIResult, error) {
	m.Endpoints = append(m.Endpoints, endpoint)
	return m.Results[len(m.Endpoints)-1], nil
}

func page(t *testing.T, items any, nextLink string) *types.APIResult {
	body, err := json.Marshal(map[string]any{"value": items, "nextLink": nextLink})
	require.NoError(t, err)
	return &types.APIResult{Status: types.ResultStatusSucceeded, StatusCode: 200, Body: body}
}

func jobSchedule(scheduleName string) map[string]any {
	return map[string]any{
		"id": testAccountID + "/jobSchedules/" + scheduleName,
		"properties": map[string]any{
			"runbook":  map[string]any{"name": rest.PatchRunbookName},
			"schedule": map[string]any{"name": scheduleName},
		},
	}
}
