package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// PageSize is the fixed page size of the automation list APIs.
const PageSize = 100

var ErrPageFetchFailed = errors.New("page fetch failed")

type page[T any] struct {
	Value    []T    `json:"value"`
	NextLink string `json:"nextLink"`
}

// FetchAll walks a $skip paginated collection until a page comes back without a nextLink. The skip
// offset always advances by PageSize. Any failed, empty or undecodable page aborts the walk.
func FetchAll[T any](ctx context.Context, invoker IInvoker, endpointAt func(skip int) Endpoint, logger *logrus.Logger) ([]T, error) {
	items := []T{}

	for skip := 0; ; skip += PageSize {
		endpoint := endpointAt(skip)

		result, err := invoker.Invoke(ctx, endpoint, http.MethodGet, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrPageFetchFailed, endpoint.Path, err)
		}
		if !result.Succeeded() {
			return nil, fmt.Errorf("%w: %s: %s %s", ErrPageFetchFailed, endpoint.Path, result.ErrorCode, result.ErrorMessage)
		}

		if len(result.Body) == 0 {
			return nil, fmt.Errorf("%w: %s: empty page body", ErrPageFetchFailed, endpoint.Path)
		}

		var current page[T]
		if err := result.Decode(&current); err != nil {
			return nil, fmt.Errorf("%w: %s: decoding page: %w", ErrPageFetchFailed, endpoint.Path, err)
		}

		items = append(items, current.Value...)
		logger.Debugf("Fetched %d items at skip %d from %s", len(current.Value), skip, endpoint.Path)

		if current.NextLink == "" {
			return items, nil
		}
	}
}
