package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
)

func runRole(t *testing.T, role interface{}, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/rates", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := RequireRole(allowed...)(next)(c)
	require.NoError(t, err)
	return rec
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	rec := runRole(t, model.RoleAdmin, model.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleAllowsAnyOfSeveral(t *testing.T) {
	rec := runRole(t, model.RoleManager, model.RoleAdmin, model.RoleManager)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	rec := runRole(t, model.RoleReceptionist, model.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	rec := runRole(t, nil, model.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleRejectsNonStringRole(t *testing.T) {
	rec := runRole(t, 123, model.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
