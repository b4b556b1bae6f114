package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/glyphbrot/pkg/errors"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// StatusFor returns the HTTP status for err.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeLimitExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes v as indented JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		WriteError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

// WriteError writes err as an [ErrorBody].
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)

	body := ErrorBody{Code: errors.GetCode(err), Message: errors.UserMessage(err)}
	if status == http.StatusInternalServerError {
		body = ErrorBody{Code: errors.ErrCodeInternal, Message: "internal error"}
	}

	data, _ := json.Marshal(body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}
