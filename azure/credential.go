package azure

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

const (
	moduleName    = "update-management-deboarder"
	moduleVersion = "v1.0.0"
)

func GetCloudConfiguration(cloudName string) (cloud.Configuration, error) {
	switch strings.ToLower(cloudName) {
	case "", "azurepublic":
		return cloud.AzurePublic, nil
	case "azurechina":
		return cloud.AzureChina, nil
	case "azuregovernment", "azureusgovernment":
		return cloud.AzureGovernment, nil
	default:
		return cloud.Configuration{}, fmt.Errorf("unknown cloud %q, expected AzurePublic, AzureChina or AzureGovernment", cloudName)
	}
}

// NewCredential returns the user assigned managed identity with the given client id, or the default
// credential chain when useDefaultCredential is set.
func NewCredential(clientID string, useDefaultCredential bool, cloudConfiguration cloud.Configuration) (azcore.TokenCredential, error) {
	clientOptions := azcore.ClientOptions{Cloud: cloudConfiguration}

	if useDefaultCredential {
		return azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{ClientOptions: clientOptions})
	}

	if clientID == "" {
		return nil, fmt.Errorf("a user managed service identity client id is required")
	}
	return azidentity.NewManagedIdentityCredential(&azidentity.ManagedIdentityCredentialOptions{
		ClientOptions: clientOptions,
		ID:            azidentity.ClientID(clientID),
	})
}

// NewClientOptions disables the SDK retry policy and provider registration so the caller's retry loop
// sees every response.
func NewClientOptions(cloudConfiguration cloud.Configuration) *arm.ClientOptions {
	return &arm.ClientOptions{
		ClientOptions: policy.ClientOptions{
			Cloud: cloudConfiguration,
			Retry: policy.RetryOptions{MaxRetries: -1},
		},
		DisableRPRegistration: true,
	}
}

func NewResourceManagerClient(credential azcore.TokenCredential, cloudConfiguration cloud.Configuration) (*arm.Client, error) {
	return arm.NewClient(moduleName, moduleVersion, credential, NewClientOptions(cloudConfiguration))
}
