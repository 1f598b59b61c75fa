// Package handler implements the HTTP surface.  Handlers bind and validate
// requests, resolve the active exchange rate once per workflow, call into
// repositories (within one transaction for multi-step writes) and map
// sentinel errors onto HTTP statuses.
package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
)

// parseIDParam extracts a positive numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// clientDirectory and staffDirectory are the slices of the client and user
// repositories the referent preflight needs.
type clientDirectory interface {
	GetByID(ctx context.Context, id uint64) (model.Client, error)
}

type staffDirectory interface {
	Exists(ctx context.Context, id uint64) (bool, error)
}

// requireRefs verifies that the client and staff user a workflow is about
// to reference actually exist, so a dangling id surfaces as a 404 instead
// of a foreign-key failure at commit time.  It writes the error response
// itself and reports whether the caller may proceed.
func requireRefs(c echo.Context, clients clientDirectory, staff staffDirectory, clientID, staffID uint64) bool {
	ctx := c.Request().Context()
	if _, err := clients.GetByID(ctx, clientID); err == sql.ErrNoRows {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		return false
	} else if err != nil {
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not verify client"})
		return false
	}
	if ok, err := staff.Exists(ctx, staffID); err != nil {
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not verify staff"})
		return false
	} else if !ok {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "staff user not found"})
		return false
	}
	return true
}

// getUserID extracts the authenticated staff id placed in the context by
// the JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
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
