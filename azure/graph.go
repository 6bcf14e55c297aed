package azure

import (
	"context"
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resourcegraph/armresourcegraph"

	"github.com/azure/update-management-deboarder/types"
)

var AutomationAccountsQuery = types.ResourceGraphQuery{
	Name: "automation-accounts",
	Query: `resources
| where type =~ 'microsoft.automation/automationaccounts'
| project id, name, resourceGroup, subscriptionId, location
| order by id asc`,
}

var guidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

const emptyGuid = "00000000-0000-0000-0000-000000000000"

type IAutomationAccountClient interface {
	GetAutomationAccounts(ctx context.Context) ([]*types.AutomationAccount, error)
}

type resourcesQuerier interface {
	Resources(ctx context.Context, query armresourcegraph.QueryRequest, options *armresourcegraph.ClientResourcesOptions) (armresourcegraph.ClientResourcesResponse, error)
}

type ResourceGraphClient struct {
	SubscriptionIDs          []*string
	IgnoreResourceIDPatterns []string
	Credential               azcore.TokenCredential
	ClientOptions            *arm.ClientOptions
	Logger                   *logrus.Logger

	querier resourcesQuerier
}

func NewResourceGraphClient(subscriptionIDs []string, ignoreResourceIDPatterns []string, credential azcore.TokenCredential, clientOptions *arm.ClientOptions, logger *logrus.Logger) *ResourceGraphClient {
	subscriptionIDsPtr := make([]*string, len(subscriptionIDs))
	for i, id := range subscriptionIDs {
		subscriptionIDsPtr[i] = to.Ptr(id)
	}

	return &ResourceGraphClient{
		SubscriptionIDs:          subscriptionIDsPtr,
		IgnoreResourceIDPatterns: ignoreResourceIDPatterns,
		Credential:               credential,
		ClientOptions:            clientOptions,
		Logger:                   logger,
	}
}

func (graph *ResourceGraphClient) ValidateSubscriptionIDs() error {
	if len(graph.SubscriptionIDs) == 0 {
		return fmt.Errorf("at least one subscription id must be provided")
	}
	for _, subscriptionID := range graph.SubscriptionIDs {
		if *subscriptionID == emptyGuid || !guidRegex.MatchString(*subscriptionID) {
			return fmt.Errorf("invalid subscription id: %s", *subscriptionID)
		}
	}
	return nil
}

// GetAutomationAccounts lists the automation accounts of the configured subscriptions, following
// Resource Graph skip tokens until the result set is complete.
func (graph *ResourceGraphClient) GetAutomationAccounts(ctx context.Context) ([]*types.AutomationAccount, error) {
	if err := graph.ValidateSubscriptionIDs(); err != nil {
		return nil, err
	}

	querier := graph.querier
	if querier == nil {
		client, err := armresourcegraph.NewClient(graph.Credential, graph.ClientOptions)
		if err != nil {
			return nil, fmt.Errorf("creating resource graph client: %w", err)
		}
		querier = client
	}

	graph.Logger.Infof("Running Resource Graph Query: %s", AutomationAccountsQuery.Name)
	graph.Logger.Tracef("Query: %s", AutomationAccountsQuery.Query)

	queryRequest := armresourcegraph.QueryRequest{
		Query:         to.Ptr(AutomationAccountsQuery.Query),
		Subscriptions: graph.SubscriptionIDs,
		Options: &armresourcegraph.QueryRequestOptions{
			ResultFormat: to.Ptr(armresourcegraph.ResultFormatObjectArray),
		},
	}

	seen := map[string]struct{}{}
	accounts := []*types.AutomationAccount{}
	for page := 1; ; page++ {
		res, err := querier.Resources(ctx, queryRequest, nil)
		if err != nil {
			return nil, fmt.Errorf("running resource graph query %s: %w", AutomationAccountsQuery.Name, err)
		}

		rows, ok := res.Data.([]any)
		if !ok {
			return nil, fmt.Errorf("unexpected resource graph data type %T", res.Data)
		}
		graph.Logger.Debugf("Resource Graph page %d returned %d rows", page, len(rows))
		accounts = graph.appendAccounts(accounts, rows, seen)

		if res.SkipToken == nil || *res.SkipToken == "" {
			break
		}
		queryRequest.Options.SkipToken = res.SkipToken
	}

	return accounts, nil
}

func (graph *ResourceGraphClient) appendAccounts(accounts []*types.AutomationAccount, rows []any, seen map[string]struct{}) []*types.AutomationAccount {
	for _, row := range rows {
		resource, ok := row.(map[string]any)
		if !ok {
			continue
		}

		resourceID, _ := resource["id"].(string)
		if resourceID == "" {
			continue
		}
		if graph.shouldIgnore(resourceID) {
			graph.Logger.Tracef("Ignoring Resource ID: %s", resourceID)
			continue
		}
		if _, exists := seen[resourceID]; exists {
			graph.Logger.Tracef("Skipping duplicate Resource ID: %s", resourceID)
			continue
		}
		seen[resourceID] = struct{}{}

		account := &types.AutomationAccount{ID: resourceID}
		account.Name, _ = resource["name"].(string)
		account.ResourceGroup, _ = resource["resourceGroup"].(string)
		account.SubscriptionID, _ = resource["subscriptionId"].(string)
		account.Location, _ = resource["location"].(string)

		graph.Logger.Tracef("Adding Resource ID: %s", resourceID)
		accounts = append(accounts, account)
	}
	return accounts
}

func (graph *ResourceGraphClient) shouldIgnore(resourceID string) bool {
	for _, pattern := range graph.IgnoreResourceIDPatterns {
		matched, err := regexp.MatchString(pattern, resourceID)
		if err != nil {
			graph.Logger.Debugf("Error matching pattern %s: %v", pattern, err)
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
