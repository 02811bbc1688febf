package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/bookborrower/pkg/httputil"
	"github.com/utafrali/bookborrower/pkg/validator"
)

// decodeRequest reads the JSON body into dst and validates its tags. On
// failure the error response is already written and false is returned.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httputil.DecodeJSON(w, r, dst); err != nil {
		httputil.WriteErrorCode(w, r, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return false
	}
	if err := validator.Validate(dst); err != nil {
		httputil.WriteValidationError(w, r, err)
		return false
	}
	return true
}

// pathID parses the {id} URL parameter.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	return httputil.ParseID(w, r, chi.URLParam(r, "id"))
}
