package azure

import (
	"context"
	"errors"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resourcegraph/armresourcegraph"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSubscriptionID = "3f2504e0-4f89-11d3-9a0c-0305e82c3301"

type mockQuerier struct {
	Pages    []armresourcegraph.ClientResourcesResponse
	Err      error
	Requests []armresourcegraph.QueryRequest
}

func (m *mockQuerier) Resources(ctx context.Context, query armresourcegraph.QueryRequest, options *armresourcegraph.ClientResourcesOptions) (armresourcegraph.ClientResourcesResponse, error) {
	request := query
	if query.Options != nil {
		optionsCopy := *query.Options
		request.Options = &optionsCopy
	}
	m.Requests = append(m.Requests, request)
	if m.Err != nil {
		return armresourcegraph.ClientResourcesResponse{}, m.Err
	}
	return m.Pages[len(m.Requests)-1], nil
}

func graphPage(skipToken *string, rows ...map[string]any) armresourcegraph.ClientResourcesResponse {
	data := []any{}
	for _, row := range rows {
		data = append(data, row)
	}
	return armresourcegraph.ClientResourcesResponse{
		QueryResponse: armresourcegraph.QueryResponse{Data: data, SkipToken: skipToken},
	}
}

func accountRow(name string) map[string]any {
	return map[string]any{
		"id":             "/subscriptions/" + testSubscriptionID + "/resourceGroups/rg1/providers/Microsoft.Automation/automationAccounts/" + name,
		"name":           name,
		"resourceGroup":  "rg1",
		"subscriptionId": testSubscriptionID,
		"location":       "westeurope",
	}
}

func newTestGraphClient(querier resourcesQuerier, ignorePatterns []string) *ResourceGraphClient {
	client := NewResourceGraphClient([]string{testSubscriptionID}, ignorePatterns, nil, nil, logrus.New())
	client.querier = querier
	return client
}

func TestGetAutomationAccounts_FollowsSkipToken(t *testing.T) {
	querier := &mockQuerier{Pages: []armresourcegraph.ClientResourcesResponse{
		graphPage(to.Ptr("token-1"), accountRow("aa1"), accountRow("aa2")),
		graphPage(nil, accountRow("aa3")),
	}}
	client := newTestGraphClient(querier, nil)

	accounts, err := client.GetAutomationAccounts(context.Background())
	require.NoError(t, err)

	require.Len(t, accounts, 3)
	assert.Equal(t, "aa3", accounts[2].Name)
	assert.Equal(t, "rg1", accounts[0].ResourceGroup)
	assert.Equal(t, "westeurope", accounts[0].Location)
	require.Len(t, querier.Requests, 2)
	assert.Nil(t, querier.Requests[0].Options.SkipToken)
	assert.Equal(t, "token-1", *querier.Requests[1].Options.SkipToken)
}

func TestGetAutomationAccounts_DeduplicatesAndIgnores(t *testing.T) {
	querier := &mockQuerier{Pages: []armresourcegraph.ClientResourcesResponse{
		graphPage(nil, accountRow("aa1"), accountRow("aa1"), accountRow("aa-sandbox"), map[string]any{"name": "no-id"}),
	}}
	client := newTestGraphClient(querier, []string{"sandbox$"})

	accounts, err := client.GetAutomationAccounts(context.Background())
	require.NoError(t, err)

	require.Len(t, accounts, 1)
	assert.Equal(t, "aa1", accounts[0].Name)
}

func TestGetAutomationAccounts_QueryError(t *testing.T) {
	querier := &mockQuerier{Err: errors.New("forbidden")}
	client := newTestGraphClient(querier, nil)

	_, err := client.GetAutomationAccounts(context.Background())

	assert.Error(t, err)
}

func TestValidateSubscriptionIDs(t *testing.T) {
	logger := logrus.New()

	assert.NoError(t, NewResourceGraphClient([]string{testSubscriptionID}, nil, nil, nil, logger).ValidateSubscriptionIDs())
	assert.Error(t, NewResourceGraphClient([]string{}, nil, nil, nil, logger).ValidateSubscriptionIDs())
	assert.Error(t, NewResourceGraphClient([]string{emptyGuid}, nil, nil, nil, logger).ValidateSubscriptionIDs())
	assert.Error(t, NewResourceGraphClient([]string{"not-a-guid"}, nil, nil, nil, logger).ValidateSubscriptionIDs())
}
