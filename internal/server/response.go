package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/conduit-lang/eggmath/internal/errors"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error       string               `json:"error"`
	Message     string               `json:"message"`
	Diagnostics []*errors.Diagnostic `json:"diagnostics,omitempty"`
}

func renderJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func renderError(w http.ResponseWriter, status int, code, message string, diags []*errors.Diagnostic) {
	renderJSON(w, status, &ErrorResponse{Error: code, Message: message, Diagnostics: diags})
}

// describe maps an optimizer error to a status and response body.
// Diagnostics are client mistakes; anything else is ours.
func describe(err error) (int, *ErrorResponse) {
	var list errors.ErrorList
	if stderrors.As(err, &list) && len(list) > 0 {
		return http.StatusBadRequest, &ErrorResponse{
			Error:       errorCode(list[0]),
			Message:     list[0].Message,
			Diagnostics: list,
		}
	}
	var d *errors.Diagnostic
	if stderrors.As(err, &d) {
		return http.StatusBadRequest, &ErrorResponse{
			Error:       errorCode(d),
			Message:     d.Message,
			Diagnostics: []*errors.Diagnostic{d},
		}
	}
	return http.StatusInternalServerError, &ErrorResponse{
		Error:   "internal_server_error",
		Message: err.Error(),
	}
}

func errorCode(d *errors.Diagnostic) string {
	switch d.Category {
	case errors.CategorySyntax:
		return "invalid_expression"
	case errors.CategoryRule:
		return "invalid_rules"
	}
	return "bad_request"
}

func renderOptimizerError(w http.ResponseWriter, err error) {
	status, body := describe(err)
	renderJSON(w, status, body)
}
