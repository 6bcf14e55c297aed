package automation

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/azure/update-management-deboarder/rest"
	"github.com/azure/update-management-deboarder/types"
)

type IConfigurationClient interface {
	GetConfigurations(ctx context.Context) (*types.ConfigurationRegistry, error)
}

type ConfigurationClient struct {
	AutomationAccountID string
	Invoker             rest.IInvoker
	Logger              *logrus.Logger
}

func NewConfigurationClient(automationAccountID string, invoker rest.IInvoker, logger *logrus.Logger) *ConfigurationClient {
	return &ConfigurationClient{
		AutomationAccountID: automationAccountID,
		Invoker:             invoker,
		Logger:              logger,
	}
}

func (configurationClient *ConfigurationClient) GetConfigurations(ctx context.Context) (*types.ConfigurationRegistry, error) {
	configurations, err := rest.FetchAll[types.SoftwareUpdateConfiguration](ctx, configurationClient.Invoker, func(skip int) rest.Endpoint {
		return rest.SoftwareUpdateConfigurationsEndpoint(configurationClient.AutomationAccountID, skip)
	}, configurationClient.Logger)
	if err != nil {
		return nil, fmt.Errorf("listing software update configurations: %w", err)
	}

	registry := types.NewConfigurationRegistry()
	for _, configuration := range configurations {
		if !registry.Add(configuration.ID, configuration.Name) {
			configurationClient.Logger.Debugf("Skipping duplicate software update configuration %s", configuration.ID)
		}
	}

	configurationClient.Logger.Infof("Found %d software update configurations", registry.Len())
	return registry, nil
}
