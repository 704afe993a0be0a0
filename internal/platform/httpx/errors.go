package httpx

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/nrng2025001/motorsync-sub002/internal/shared"
	"github.com/nrng2025001/motorsync-sub002/internal/upstream"
)

// RespondError maps domain and upstream errors to RFC7807 responses. Every
// error a handler can see lands here; nothing propagates to a panic.
func RespondError(w http.ResponseWriter, err error) {
	var (
		apiErr        *upstream.APIError
		netErr        *upstream.NetworkError
		validationErr validator.ValidationErrors
	)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, shared.ErrNoSession), errors.Is(err, upstream.ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, upstream.ErrOutOfStock):
		Problem(w, http.StatusConflict, "Out Of Stock", err.Error())
	case errors.As(err, &validationErr):
		Problem(w, http.StatusBadRequest, "Validation Failed", validationErr.Error())
	case errors.As(err, &apiErr):
		Problem(w, http.StatusBadGateway, "Backend Rejected Request", apiErr.Error())
	case errors.As(err, &netErr):
		Problem(w, http.StatusGatewayTimeout, "Backend Unreachable", netErr.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
