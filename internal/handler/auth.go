package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/enmanuellle/lemahotelreservas/internal/config"
	"github.com/enmanuellle/lemahotelreservas/internal/repository"
	"github.com/enmanuellle/lemahotelreservas/internal/utils"
)

// AuthHandler serves staff login and the authenticated identity endpoint.
type AuthHandler struct {
	Users *repository.UserRepo
	Cfg   config.Config
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies staff credentials and issues an access token.  Unknown
// usernames and wrong passwords share one response so the endpoint does
// not leak which accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil || req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.GetByUsername(ctx, req.Username)
	if err == sql.ErrNoRows || (err == nil && !utils.VerifyPassword(user.PasswordHash, req.Password)) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not verify credentials"})
	}
	if !user.Active {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account is disabled"})
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, user.ID, user.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": token.Token,
		"token_type":   "Bearer",
		"expires_at":   token.Exp.Format(time.RFC3339),
		"user": echo.Map{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// Me returns the authenticated staff account.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	user, err := h.Users.GetByID(c.Request().Context(), userID)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load user"})
	}
	return c.JSON(http.StatusOK, user)
}
