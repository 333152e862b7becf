package httpserver

import "net/http"

// ErrorResponse is the failure body. 4xx responses fill Message, 5xx
// responses fill Error and, when known, Hint.
type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

func errorResponse(status int, msg, hint string) ErrorResponse {
	if status >= http.StatusInternalServerError {
		return ErrorResponse{Error: msg, Hint: hint}
	}
	return ErrorResponse{Message: msg}
}

type HealthResponse struct {
	OK    bool   `json:"ok"`
	DB    int    `json:"db,omitempty"`
	Error string `json:"error,omitempty"`
}
