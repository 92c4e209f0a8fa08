// Package api binds the resource translation layer to HTTP. Each route
// validates its inputs, builds a resource descriptor and read options,
// invokes the Reader, and maps the outcome onto a fixed JSON contract. No
// route carries business logic beyond that assembly.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/hubgate/hubgate/internal/resource"
)

// ErrorBody carries the stable error code and human-readable message
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEnvelope is the wire form of every error response
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// statusCode maps an error kind to its HTTP status. The mapping is a pure
// function of the kind, never of the message content.
func statusCode(kind resource.ErrorKind) int {
	switch kind {
	case resource.ErrInvalidParams:
		return http.StatusBadRequest
	case resource.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorCode maps an error kind to its stable wire code
func errorCode(kind resource.ErrorKind) string {
	switch kind {
	case resource.ErrInvalidParams:
		return "invalid_params"
	case resource.ErrNotFound:
		return "not_found"
	default:
		return "internal_error"
	}
}

// writeError renders a typed read error as its JSON envelope. Errors that
// carry no classification are surfaced as internal.
func writeError(w http.ResponseWriter, err error) {
	readErr, ok := resource.AsError(err)
	if !ok {
		readErr = resource.Internal(err.Error())
	}

	envelope := ErrorEnvelope{
		Error: ErrorBody{
			Code:    errorCode(readErr.Kind),
			Message: readErr.Error(),
		},
	}

	writeJSON(w, statusCode(readErr.Kind), envelope)
}

// writeJSON renders v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; nothing left to do for this response.
		return
	}
}

// writeRawJSON writes an already-encoded JSON payload without reshaping it
func writeRawJSON(w http.ResponseWriter, status int, payload json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}
