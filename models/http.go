package models

// ErrorResponse is the JSON body of every non-2xx response.
// Detail is always a generic, client-safe message.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse is a plain informational JSON body.
type MessageResponse struct {
	Message string `json:"message"`
}
