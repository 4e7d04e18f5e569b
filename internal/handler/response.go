package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/ziptechlabs/cohort-server-go/internal/errors"
	"github.com/ziptechlabs/cohort-server-go/internal/httputil"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

func writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err)
}

// decodeAndValidate decodes a JSON body into req and runs its validation tags.
func decodeAndValidate(r *http.Request, req any) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return apperrors.ValidationError("Invalid request body").WithCause(err)
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.ValidationError(err.Error()).WithCause(err)
	}
	return nil
}
