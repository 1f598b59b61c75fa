package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
	"github.com/enmanuellle/lemahotelreservas/internal/repository"
)

// RoomHandler serves physical room records.
type RoomHandler struct {
	Rooms     *repository.RoomRepo
	RoomTypes *repository.RoomTypeRepo
}

type roomRequest struct {
	RoomTypeID uint64 `json:"room_type_id"`
	Number     string `json:"number"`
	Floor      string `json:"floor"`
	Status     string `json:"status"`
	Notes      string `json:"notes"`
}

func (req *roomRequest) check() string {
	if req.RoomTypeID == 0 || req.Number == "" {
		return "room_type_id and number are required"
	}
	if req.Status == "" {
		req.Status = model.RoomAvailable
	}
	if !model.ValidRoomStatus(req.Status) {
		return "unknown room status"
	}
	return ""
}

// List returns all rooms.
func (h *RoomHandler) List(c echo.Context) error {
	out, err := h.Rooms.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load rooms"})
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one room.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	rm, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load room"})
	}
	return c.JSON(http.StatusOK, rm)
}

// Create adds a room under an existing room type.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.check(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	if _, err := h.RoomTypes.GetByID(ctx, req.RoomTypeID); err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
	} else if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not verify room type"})
	}
	rm := model.Room{
		RoomTypeID: req.RoomTypeID,
		Number:     req.Number,
		Floor:      req.Floor,
		Status:     req.Status,
		Notes:      req.Notes,
	}
	if err := h.Rooms.Create(ctx, &rm); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "room number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create room"})
	}
	return c.JSON(http.StatusCreated, rm)
}

// Update edits a room.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.check(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	rm, err := h.Rooms.GetByID(ctx, id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load room"})
	}
	rm.RoomTypeID = req.RoomTypeID
	rm.Number = req.Number
	rm.Floor = req.Floor
	rm.Status = req.Status
	rm.Notes = req.Notes
	if err := h.Rooms.Update(ctx, &rm); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "room number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update room"})
	}
	return c.JSON(http.StatusOK, rm)
}
