package armid

import (
	"errors"
	"fmt"
	"strings"

	azcorearm "github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"

	"github.com/azure/update-management-deboarder/types"
)

var ErrInvalidResourceID = errors.New("invalid resource id")

const minimumSegments = 9

// ParseResourceID splits a resource manager id of the shape
// /subscriptions/{s}/resourceGroups/{rg}/providers/{provider}/{type}/{name}[/...]
// into its positional parts. Segment content is not validated beyond the fixed keywords.
func ParseResourceID(resourceID string) (*types.ResourceIdentity, error) {
	segments := strings.Split(resourceID, "/")
	if len(segments) < minimumSegments {
		return nil, fmt.Errorf("%w: %q has %d segments, expected at least %d", ErrInvalidResourceID, resourceID, len(segments), minimumSegments)
	}

	if !strings.EqualFold(segments[1], "subscriptions") || !strings.EqualFold(segments[3], "resourceGroups") || !strings.EqualFold(segments[5], "providers") {
		return nil, fmt.Errorf("%w: %q is not a resource group scoped provider resource", ErrInvalidResourceID, resourceID)
	}

	if _, err := azcorearm.ParseResourceID(resourceID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResourceID, err)
	}

	return &types.ResourceIdentity{
		ID:               resourceID,
		SubscriptionID:   segments[2],
		ResourceGroup:    segments[4],
		ResourceProvider: segments[6],
		ResourceType:     segments[7],
		ResourceName:     segments[8],
	}, nil
}
