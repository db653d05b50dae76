// Package handler defines the HTTP handlers that sit between Echo and
// the workflows.  Handlers bind and coarsely parse requests, resolve
// the caller's identity and role, call a workflow or repository, and
// translate the outcome into an HTTP response.  No business rule
// lives here.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lost-and-found/internal/workflow"
)

// dbTimeout bounds every persistence call made from a handler.
const dbTimeout = 5 * time.Second

// reqContext derives a bounded context from the incoming request.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// getUserID extracts the user_id claim from echo.Context and converts
// it to uint64.  JWT numeric claims decode as float64; older tokens
// may carry strings.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// writeError maps a workflow error onto the HTTP response.  Every
// workflow operation is terminal: one success value or one typed
// failure, so this switch is the single place domain errors meet
// status codes.
func writeError(c echo.Context, err error) error {
	var verr *workflow.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, workflow.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, workflow.ErrPermissionDenied):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "permission denied"})
	case errors.Is(err, workflow.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": "invalid status transition"})
	case errors.Is(err, workflow.ErrSelfClaim):
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot claim your own item"})
	case errors.Is(err, workflow.ErrItemNotClaimable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "item is no longer claimable"})
	default:
		// PersistenceError and anything unclassified.
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
