package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/schreier/pkg/errors"
)

// maxRequestBody bounds request bodies; generator lists are small.
const maxRequestBody = 1 << 20

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// decodeJSON decodes the request body into v, rejecting unknown fields and
// oversized bodies.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding request body")
	}
	return nil
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusForCode maps error codes to HTTP status codes. Unknown codes are
// treated as internal errors.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidNotation,
		errors.ErrCodeIncompatibleDegree,
		errors.ErrCodeNotABijection,
		errors.ErrCodePointOutOfRange,
		errors.ErrCodePointNotInOrbit:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnverifiedGroup:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps an error to its HTTP status and writes the error
// envelope. Internal details are not leaked: the client sees the sanitized
// user message.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusForCode(code), errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}
