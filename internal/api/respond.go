// internal/api/respond.go
package api

import (
	"encoding/json"
	"net/http"

	"bookshop/internal/apperr"
)

type errorBody struct {
	Error apperr.Error `json:"error"`
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes err as a structured error response, mapping its code
// to an HTTP status.
func Error(w http.ResponseWriter, err error) {
	code := apperr.Code(err)
	JSON(w, apperr.HTTPStatus(code), errorBody{
		Error: apperr.Error{Code: code, Message: apperr.Message(err)},
	})
}

// Decode reads the request body into v, returning a validation error
// on malformed JSON.
func Decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.New(apperr.CodeInvalid, "malformed request body")
	}
	return nil
}
