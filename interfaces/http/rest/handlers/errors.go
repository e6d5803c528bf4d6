package handlers

import (
	"net/http"

	"github.com/adibtatriantama/FCC-Book-Trading/pkg/common"
	apperrors "github.com/adibtatriantama/FCC-Book-Trading/pkg/errors"
)

// respondAppError maps the error taxonomy onto HTTP statuses. Domain rule
// violations come back as 403 to distinguish them from malformed request
// bodies, which the handlers reject with 400 before reaching the services.
func respondAppError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsNotFound(err):
		common.RespondError(w, http.StatusNotFound, common.StandardErrorCodes.NotFound, err.Error())
	case apperrors.IsValidation(err):
		common.RespondError(w, http.StatusForbidden, common.StandardErrorCodes.Forbidden, err.Error())
	default:
		common.RespondError(w, http.StatusInternalServerError, common.StandardErrorCodes.InternalError, "unexpected error")
	}
}
