package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/vidgraph/vidgraph/pkg/vidgraph"
)

// Response is the uniform success envelope: the HTTP status repeated in
// the body, the operation payload, and a human-readable message.
type Response struct {
	Status  int         `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// ErrorResponse is the uniform failure envelope.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

func respond(w http.ResponseWriter, r *http.Request, status int, data interface{}, message string) {
	render.Status(r, status)
	render.JSON(w, r, Response{
		Status:  status,
		Data:    data,
		Message: message,
	})
}

// respondError maps a service error onto the transport status space:
// invalid input is 400, a missing or inaccessible entity is 404, a
// store-constraint violation is 409, a blob upload failure is 500, and a
// deadline overrun is 504.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, vidgraph.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, vidgraph.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, vidgraph.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, vidgraph.ErrUploadFailed):
		status = http.StatusInternalServerError
	case errors.Is(err, vidgraph.ErrTimeout):
		status = http.StatusGatewayTimeout
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{
		Status:  status,
		Message: err.Error(),
		Success: false,
	})
}
