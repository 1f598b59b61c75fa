package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
	"github.com/enmanuellle/lemahotelreservas/internal/repository"
)

// ClientHandler serves guest records.
type ClientHandler struct {
	Clients *repository.ClientRepo
}

type clientRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Document  string `json:"document"`
}

func (req *clientRequest) check() string {
	if req.FirstName == "" || req.LastName == "" || req.Document == "" {
		return "first_name, last_name and document are required"
	}
	return ""
}

// List returns all clients.
func (h *ClientHandler) List(c echo.Context) error {
	out, err := h.Clients.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load clients"})
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one client.
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	cl, err := h.Clients.GetByID(c.Request().Context(), id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load client"})
	}
	return c.JSON(http.StatusOK, cl)
}

// Create registers a guest.
func (h *ClientHandler) Create(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.check(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	cl := model.Client{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Document:  req.Document,
	}
	if err := h.Clients.Create(c.Request().Context(), &cl); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "a client with that document or email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create client"})
	}
	return c.JSON(http.StatusCreated, cl)
}

// Update edits a guest record.
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.check(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	cl, err := h.Clients.GetByID(ctx, id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load client"})
	}
	cl.FirstName = req.FirstName
	cl.LastName = req.LastName
	cl.Email = req.Email
	cl.Phone = req.Phone
	cl.Address = req.Address
	cl.Document = req.Document
	if err := h.Clients.Update(ctx, &cl); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "a client with that document or email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update client"})
	}
	return c.JSON(http.StatusOK, cl)
}
