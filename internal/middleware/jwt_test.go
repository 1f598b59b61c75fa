package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enmanuellle/lemahotelreservas/internal/utils"
)

const testSecret = "unit-test-secret"

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured echo.Context
	next := func(c echo.Context) error {
		captured = c
		return c.NoContent(http.StatusOK)
	}
	err := JWTAuth(testSecret)(next)(c)
	require.NoError(t, err)
	return rec, captured
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "RECEPTIONIST", 5)
	require.NoError(t, err)

	rec, captured := runJWT(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, float64(7), captured.Get("user_id"))
	assert.Equal(t, "RECEPTIONIST", captured.Get("role"))
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	rec, captured := runJWT(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, captured)
}

func TestJWTAuthRejectsForeignToken(t *testing.T) {
	tok, err := utils.NewAccessToken("some-other-secret", 7, "ADMIN", 5)
	require.NoError(t, err)

	rec, captured := runJWT(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, captured)
}

func TestJWTAuthRejectsGarbage(t *testing.T) {
	rec, captured := runJWT(t, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, captured)
}
