package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/sirupsen/logrus"
)

const testBaseURL = "https://management.example.test"

type fakeResponse struct {
	StatusCode int
	Body       string
}

// fakeTransport replays scripted responses in order and repeats the last one when it runs out.
type fakeTransport struct {
	Responses []fakeResponse
	Requests  []*http.Request
	Bodies    []string
}

func (transport *fakeTransport) Do(req *http.Request) (*http.Response, error) {
	transport.Requests = append(transport.Requests, req)
	body := ""
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		body = string(raw)
	}
	transport.Bodies = append(transport.Bodies, body)

	if len(transport.Responses) == 0 {
		return nil, errors.New("no scripted response")
	}
	index := len(transport.Requests) - 1
	if index >= len(transport.Responses) {
		index = len(transport.Responses) - 1
	}
	response := transport.Responses[index]
	return &http.Response{
		StatusCode: response.StatusCode,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(response.Body)),
		Request:    req,
	}, nil
}

type failingPipeline struct {
	Err   error
	Calls int
}

func (pipeline *failingPipeline) Do(req *policy.Request) (*http.Response, error) {
	pipeline.Calls++
	return nil, pipeline.Err
}

type recordingSleeper struct {
	Delays []time.Duration
}

func (sleeper *recordingSleeper) Sleep(ctx context.Context, delay time.Duration) error {
	sleeper.Delays = append(sleeper.Delays, delay)
	return nil
}

func newTestPipeline(transport *fakeTransport) runtime.Pipeline {
	return runtime.NewPipeline("deboardtest", "v1.0.0", runtime.PipelineOptions{}, &policy.ClientOptions{
		Transport: transport,
		Retry:     policy.RetryOptions{MaxRetries: -1},
	})
}

func newTestInvoker(transport *fakeTransport, sleeper *recordingSleeper) *Invoker {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	invoker := NewInvoker(testBaseURL, newTestPipeline(transport), DefaultRetryCount, DefaultBaseDelay, logger)
	invoker.Sleep = sleeper.Sleep
	return invoker
}
