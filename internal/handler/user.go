package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/enmanuellle/lemahotelreservas/internal/config"
	"github.com/enmanuellle/lemahotelreservas/internal/model"
	"github.com/enmanuellle/lemahotelreservas/internal/repository"
)

// UserHandler serves staff-account administration.
type UserHandler struct {
	Users *repository.UserRepo
	Cfg   config.Config
}

type createUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

func validRole(r string) bool {
	switch r {
	case model.RoleAdmin, model.RoleManager, model.RoleReceptionist:
		return true
	}
	return false
}

// Create registers a staff account.  Admin only; passwords are hashed
// before they ever reach the database.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Username == "" || req.Password == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username, email and password are required"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}
	if !validRole(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be ADMIN, MANAGER or RECEPTIONIST"})
	}

	user := model.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Username:  req.Username,
		Role:      req.Role,
		Active:    true,
	}
	err := h.Users.Create(c.Request().Context(), &user, req.Password, h.Cfg.BcryptCost)
	if errors.Is(err, repository.ErrDuplicateEntry) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username or email already in use"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create user"})
	}
	return c.JSON(http.StatusCreated, user)
}
