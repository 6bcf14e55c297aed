package types

type ResourceGraphQuery struct {
	Name  string
	Query string
}

type AutomationAccount struct {
	ID             string
	Name           string
	ResourceGroup  string
	SubscriptionID string
	Location       string
}
