package types

import "fmt"

// ResourceIdentity is the positional decomposition of a resource manager id.
type ResourceIdentity struct {
	ID               string
	SubscriptionID   string
	ResourceGroup    string
	ResourceProvider string
	ResourceType     string
	ResourceName     string
}

func (identity ResourceIdentity) String() string {
	return fmt.Sprintf("%s/%s/%s (subscription %s, resource group %s)", identity.ResourceProvider, identity.ResourceType, identity.ResourceName, identity.SubscriptionID, identity.ResourceGroup)
}
