package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"freight-exchange/internal/exchangeerrors"
	model "freight-exchange/internal/models"
	"freight-exchange/utils"

	"github.com/gin-gonic/gin"
)

// CallerKey is the gin context key holding the authenticated model.Caller
const CallerKey = "caller"

// CallerFrom returns the caller stored by the identity middleware. Requests
// without identity headers get the zero Caller; services reject it where
// identity is required.
func CallerFrom(c *gin.Context) model.Caller {
	if v, ok := c.Get(CallerKey); ok {
		if caller, ok := v.(model.Caller); ok {
			return caller
		}
	}
	return model.Caller{}
}

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// HandleServiceError maps err, sends it and logs it. Client errors log at
// warn level, everything else at error level.
func HandleServiceError(c *gin.Context, handlerName, action string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["status"] = status
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": failed to "+action, fields)
	} else {
		utils.Warn(handlerName+": failed to "+action, fields)
	}
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, exchangeerrors.ErrMissingIdentity):
		return http.StatusUnauthorized, "caller identity required"
	case errors.Is(err, exchangeerrors.ErrMissingSession):
		return http.StatusBadRequest, "session id required"
	case errors.Is(err, exchangeerrors.ErrForbidden):
		return http.StatusForbidden, "operation not permitted"
	case errors.Is(err, exchangeerrors.ErrListingNotFound):
		return http.StatusNotFound, "listing not found"
	case errors.Is(err, exchangeerrors.ErrBidNotFound):
		return http.StatusNotFound, "bid not found"
	case errors.Is(err, exchangeerrors.ErrContractNotFound):
		return http.StatusNotFound, "contract not found"
	case errors.Is(err, exchangeerrors.ErrInvalidListing):
		return http.StatusUnprocessableEntity, "invalid listing details"
	case errors.Is(err, exchangeerrors.ErrInvalidBid):
		return http.StatusUnprocessableEntity, "invalid bid details"
	case errors.Is(err, exchangeerrors.ErrInvalidContract):
		return http.StatusUnprocessableEntity, "invalid contract update"
	case errors.Is(err, exchangeerrors.ErrContractFinal):
		return http.StatusConflict, "contract already confirmed"
	case errors.Is(err, exchangeerrors.ErrContractConflict):
		return http.StatusConflict, "contract changed, reload and retry"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
