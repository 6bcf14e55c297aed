package armid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResourceID_AutomationAccount(t *testing.T) {
	id := "/subscriptions/00000000-0000-0000-0000-000000000001/resourceGroups/rg-automation/providers/Microsoft.Automation/automationAccounts/aa-patching"

	identity, err := ParseResourceID(id)
	require.NoError(t, err)

	assert.Equal(t, id, identity.ID)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", identity.SubscriptionID)
	assert.Equal(t, "rg-automation", identity.ResourceGroup)
	assert.Equal(t, "Microsoft.Automation", identity.ResourceProvider)
	assert.Equal(t, "automationAccounts", identity.ResourceType)
	assert.Equal(t, "aa-patching", identity.ResourceName)
}

func TestParseResourceID_Workspace(t *testing.T) {
	identity, err := ParseResourceID("/subscriptions/sub2/resourceGroups/rg-logs/providers/Microsoft.OperationalInsights/workspaces/law-central")
	require.NoError(t, err)

	assert.Equal(t, "sub2", identity.SubscriptionID)
	assert.Equal(t, "rg-logs", identity.ResourceGroup)
	assert.Equal(t, "law-central", identity.ResourceName)
}

func TestParseResourceID_ChildResourceKeepsTopLevelPositions(t *testing.T) {
	identity, err := ParseResourceID("/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Automation/automationAccounts/aa1/schedules/SUC1_abc")
	require.NoError(t, err)

	assert.Equal(t, "automationAccounts", identity.ResourceType)
	assert.Equal(t, "aa1", identity.ResourceName)
}

func TestParseResourceID_TooFewSegments(t *testing.T) {
	_, err := ParseResourceID("/subscriptions/sub1/resourceGroups/rg1")
	assert.True(t, errors.Is(err, ErrInvalidResourceID))
}

func TestParseResourceID_Empty(t *testing.T) {
	_, err := ParseResourceID("")
	assert.ErrorIs(t, err, ErrInvalidResourceID)
}

func TestParseResourceID_WrongKeywords(t *testing.T) {
	_, err := ParseResourceID("/tenants/t1/resourceGroups/rg1/providers/Microsoft.Automation/automationAccounts/aa1")
	assert.ErrorIs(t, err, ErrInvalidResourceID)
}
