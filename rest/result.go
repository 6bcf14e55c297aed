package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/azure/update-management-deboarder/types"
)

const unknownError = "Unknown"

type errorResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NormalizeResponse turns a status code and optional JSON body into an APIResult.
// Only 200 counts as success. A successful body is kept as received so a truncated payload fails
// at Decode instead of reading as empty.
func NormalizeResponse(statusCode int, body []byte) *types.APIResult {
	if statusCode == http.StatusOK {
		result := &types.APIResult{
			Status:     types.ResultStatusSucceeded,
			StatusCode: statusCode,
		}
		if len(body) > 0 {
			result.Body = json.RawMessage(body)
		}
		return result
	}

	code := unknownError
	message := unknownError
	var parsed errorResponse
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil && parsed.Error != nil {
		if parsed.Error.Code != "" {
			code = parsed.Error.Code
		}
		if parsed.Error.Message != "" {
			message = parsed.Error.Message
		}
	}

	result := &types.APIResult{
		Status:       types.ResultStatusFailed,
		StatusCode:   statusCode,
		ErrorCode:    fmt.Sprintf("%d/%s", statusCode, code),
		ErrorMessage: message,
	}
	if len(body) > 0 && json.Valid(body) {
		result.Body = json.RawMessage(body)
	}
	return result
}
