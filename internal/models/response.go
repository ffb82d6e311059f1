package models

// APIResponse is the envelope every endpoint answers with:
// {success, data} on success, {success, error} on failure.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data any) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// Fail wraps an error message in a failure envelope.
func Fail(msg string) APIResponse {
	return APIResponse{Success: false, Error: msg}
}

// ListData is the payload for paginated list endpoints.
type ListData struct {
	Items  any `json:"items"`
	Count  int `json:"count"` // total matching rows, not just this page
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
