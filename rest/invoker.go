package rest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/sirupsen/logrus"

	"github.com/azure/update-management-deboarder/types"
)

type IInvoker interface {
	Invoke(ctx context.Context, endpoint Endpoint, method string, payload any) (*types.APIResult, error)
}

// Pipeline is satisfied by runtime.Pipeline.
type Pipeline interface {
	Do(req *policy.Request) (*http.Response, error)
}

// Invoker issues authenticated resource manager requests and owns the retry policy. The pipeline it
// is given must have its own retries disabled.
type Invoker struct {
	BaseURL    string
	Pipeline   Pipeline
	RetryCount int
	BaseDelay  time.Duration
	Sleep      SleepFunc
	Logger     *logrus.Logger
}

var _ IInvoker = (*Invoker)(nil)

func NewInvoker(baseURL string, pipeline Pipeline, retryCount int, baseDelay time.Duration, logger *logrus.Logger) *Invoker {
	if retryCount < 1 {
		retryCount = DefaultRetryCount
	}
	if baseDelay < 0 {
		baseDelay = DefaultBaseDelay
	}
	return &Invoker{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		Pipeline:   pipeline,
		RetryCount: retryCount,
		BaseDelay:  baseDelay,
		Sleep:      Sleep,
		Logger:     logger,
	}
}

// Invoke sends one request, retrying on 409, 429 and 5xx with exponential backoff. Exhausted retries
// and other failure statuses come back as a Failed result. Transport errors are returned as errors
// and never retried.
func (invoker *Invoker) Invoke(ctx context.Context, endpoint Endpoint, method string, payload any) (*types.APIResult, error) {
	if !isSupportedMethod(method) {
		return nil, fmt.Errorf("unsupported method %q", method)
	}

	url := invoker.BaseURL + endpoint.PathWithAPIVersion()
	logger := invoker.Logger.WithFields(logrus.Fields{
		"method":     method,
		"path":       endpoint.Path,
		"apiVersion": endpoint.APIVersion,
	})

	for attempt := 1; ; attempt++ {
		logger.WithField("attempt", attempt).Debug("Sending request")

		statusCode, body, err := invoker.send(ctx, method, url, payload)
		if err != nil {
			logger.WithField("attempt", attempt).Errorf("Request failed without a response: %v", err)
			return nil, err
		}

		result := NormalizeResponse(statusCode, body)
		if result.Succeeded() {
			logger.WithFields(logrus.Fields{"attempt": attempt, "statusCode": statusCode}).Debug("Request succeeded")
			return result, nil
		}

		failureLogger := logger.WithFields(logrus.Fields{
			"attempt":    attempt,
			"statusCode": statusCode,
			"errorCode":  result.ErrorCode,
		})

		if !IsRetriable(statusCode) {
			failureLogger.Errorf("Request failed: %s", result.ErrorMessage)
			return result, nil
		}

		if attempt >= invoker.RetryCount {
			failureLogger.Errorf("Request failed after %d attempts: %s", attempt, result.ErrorMessage)
			return result, nil
		}

		delay := BackoffDelay(attempt, invoker.BaseDelay)
		failureLogger.Warnf("Retriable failure, retrying in %s: %s", delay, result.ErrorMessage)
		if err := invoker.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

func (invoker *Invoker) send(ctx context.Context, method string, url string, payload any) (int, []byte, error) {
	req, err := runtime.NewRequest(ctx, method, url)
	if err != nil {
		return 0, nil, fmt.Errorf("creating %s request for %s: %w", method, url, err)
	}
	if payload != nil {
		if err := runtime.MarshalAsJSON(req, payload); err != nil {
			return 0, nil, fmt.Errorf("marshalling payload for %s: %w", url, err)
		}
	}

	resp, err := invoker.Pipeline.Do(req)
	if err != nil {
		return 0, nil, err
	}

	body, err := runtime.Payload(resp)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response body for %s: %w", url, err)
	}
	return resp.StatusCode, body, nil
}

func (invoker *Invoker) sleep(ctx context.Context, delay time.Duration) error {
	if invoker.Sleep == nil {
		return Sleep(ctx, delay)
	}
	return invoker.Sleep(ctx, delay)
}

func isSupportedMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPatch, http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}
