package cmd

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/spf13/viper"

	"github.com/azure/update-management-deboarder/azure"
)

func newCredential() (azcore.TokenCredential, cloud.Configuration) {
	cloudConfiguration, err := azure.GetCloudConfiguration(viper.GetString("cloud"))
	if err != nil {
		log.Fatal(err)
	}

	credential, err := azure.NewCredential(
		viper.GetString("userManagedServiceIdentityClientId"),
		viper.GetBool("useDefaultCredential"),
		cloudConfiguration,
	)
	if err != nil {
		log.Fatalf("Error creating credential: %v", err)
	}
	return credential, cloudConfiguration
}
