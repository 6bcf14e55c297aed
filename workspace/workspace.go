package workspace

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/azure/update-management-deboarder/armid"
	"github.com/azure/update-management-deboarder/rest"
	"github.com/azure/update-management-deboarder/types"
)

var (
	ErrLinkedWorkspaceNotFound = errors.New("linked workspace not found")
	ErrSolutionQueryFailed     = errors.New("solution query failed")
)

func UpdatesSolutionName(workspaceName string) string {
	return fmt.Sprintf("Updates(%s)", workspaceName)
}

type IWorkspaceClient interface {
	GetLinkedWorkspace(ctx context.Context) (*types.ResourceIdentity, error)
	GetUpdatesSolutions(ctx context.Context, workspace *types.ResourceIdentity) ([]types.Solution, error)
}

type WorkspaceClient struct {
	AutomationAccountID string
	Invoker             rest.IInvoker
	Logger              *logrus.Logger
}

func NewWorkspaceClient(automationAccountID string, invoker rest.IInvoker, logger *logrus.Logger) *WorkspaceClient {
	return &WorkspaceClient{
		AutomationAccountID: automationAccountID,
		Invoker:             invoker,
		Logger:              logger,
	}
}

func (workspaceClient *WorkspaceClient) GetLinkedWorkspace(ctx context.Context) (*types.ResourceIdentity, error) {
	result, err := workspaceClient.Invoker.Invoke(ctx, rest.LinkedWorkspaceEndpoint(workspaceClient.AutomationAccountID), http.MethodGet, nil)
	if err != nil {
		return nil, fmt.Errorf("getting linked workspace: %w", err)
	}
	if !result.Succeeded() {
		return nil, fmt.Errorf("%w: %s %s", ErrLinkedWorkspaceNotFound, result.ErrorCode, result.ErrorMessage)
	}

	var linkedWorkspace types.LinkedWorkspace
	if err := result.Decode(&linkedWorkspace); err != nil {
		return nil, fmt.Errorf("decoding linked workspace: %w", err)
	}
	if linkedWorkspace.ID == "" {
		return nil, fmt.Errorf("%w: automation account %s has no linked workspace", ErrLinkedWorkspaceNotFound, workspaceClient.AutomationAccountID)
	}

	workspace, err := armid.ParseResourceID(linkedWorkspace.ID)
	if err != nil {
		return nil, fmt.Errorf("parsing linked workspace id: %w", err)
	}

	workspaceClient.Logger.Infof("Automation account is linked to workspace %s", workspace.ID)
	return workspace, nil
}

// GetUpdatesSolutions returns the solutions attached to the workspace that are named
// Updates(<workspaceName>).
func (workspaceClient *WorkspaceClient) GetUpdatesSolutions(ctx context.Context, workspace *types.ResourceIdentity) ([]types.Solution, error) {
	endpoint := rest.SolutionsEndpoint(workspace.SubscriptionID, workspace.ResourceGroup, workspace.ID)
	result, err := workspaceClient.Invoker.Invoke(ctx, endpoint, http.MethodGet, nil)
	if err != nil {
		return nil, fmt.Errorf("listing solutions of workspace %s: %w", workspace.ID, err)
	}
	if !result.Succeeded() {
		return nil, fmt.Errorf("%w: %s %s", ErrSolutionQueryFailed, result.ErrorCode, result.ErrorMessage)
	}

	var solutions struct {
		Value []types.Solution `json:"value"`
	}
	if err := result.Decode(&solutions); err != nil {
		return nil, fmt.Errorf("decoding solutions of workspace %s: %w", workspace.ID, err)
	}

	name := UpdatesSolutionName(workspace.ResourceName)
	matches := []types.Solution{}
	for _, solution := range solutions.Value {
		if solution.Name != name {
			workspaceClient.Logger.Tracef("Ignoring solution %s", solution.ID)
			continue
		}
		matches = append(matches, solution)
	}

	workspaceClient.Logger.Infof("Found %d %s solutions", len(matches), name)
	return matches, nil
}
