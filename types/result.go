package types

import "encoding/json"

type ResultStatus string

const (
	ResultStatusSucceeded ResultStatus = "Succeeded"
	ResultStatusFailed    ResultStatus = "Failed"
)

// APIResult is the normalized outcome of one resource manager call. Callers branch on Status only.
type APIResult struct {
	Status       ResultStatus
	StatusCode   int
	Body         json.RawMessage
	ErrorCode    string
	ErrorMessage string
}

func (result *APIResult) Succeeded() bool {
	return result.Status == ResultStatusSucceeded
}

// Decode unmarshals the response body into v. An empty body leaves v untouched.
func (result *APIResult) Decode(v any) error {
	if len(result.Body) == 0 {
		return nil
	}
	return json.Unmarshal(result.Body, v)
}
