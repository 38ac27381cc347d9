package response

// Resp is the JSON envelope every endpoint returns.
// ErrorCode is 0 on success and the HTTP status otherwise.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}
