package model

// ApiResponse is the envelope for mutating endpoints. List endpoints return
// bare arrays.
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}
