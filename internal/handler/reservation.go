package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
	"github.com/enmanuellle/lemahotelreservas/internal/money"
	"github.com/enmanuellle/lemahotelreservas/internal/pricing"
	"github.com/enmanuellle/lemahotelreservas/internal/queue"
	"github.com/enmanuellle/lemahotelreservas/internal/repository"
	queue_publisher "github.com/enmanuellle/lemahotelreservas/internal/service"
)

// ReservationHandler serves the booking workflow.  Create and update run
// the availability check, the price snapshot and the write inside one
// transaction so two concurrent requests cannot double-book a room.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Rooms        *repository.RoomRepo
	Clients      *repository.ClientRepo
	Users        *repository.UserRepo
	Rates        *repository.RateRepo
}

type reservationRequest struct {
	ClientID uint64 `json:"client_id"`
	RoomID   uint64 `json:"room_id"`
	StaffID  uint64 `json:"staff_id"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
}

// validate normalizes the request and reports the first problem found.
// The authenticated user backfills staff_id when the client omits it, and
// defaultStatus fills an omitted status: confirmed on create, empty on
// update (the handler substitutes the reservation's current state there).
func (req *reservationRequest) validate(c echo.Context, defaultStatus string) (time.Time, time.Time, string) {
	if req.StaffID == 0 {
		if id, err := getUserID(c); err == nil {
			req.StaffID = id
		}
	}
	if req.ClientID == 0 || req.RoomID == 0 || req.StaffID == 0 {
		return time.Time{}, time.Time{}, "client_id, room_id and staff_id are required"
	}
	if req.Status == "" {
		req.Status = defaultStatus
	}
	if req.Status != "" && !model.ValidReservationStatus(req.Status) {
		return time.Time{}, time.Time{}, "unknown reservation status"
	}
	in, out, err := pricing.ParseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return time.Time{}, time.Time{}, "check_in and check_out must be YYYY-MM-DD with check_in before check_out"
	}
	return in, out, ""
}

// List returns all reservations, newest first.
func (h *ReservationHandler) List(c echo.Context) error {
	out, err := h.Reservations.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load reservations"})
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one reservation.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	res, err := h.Reservations.GetByID(c.Request().Context(), id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load reservation"})
	}
	return c.JSON(http.StatusOK, res)
}

// Create books a room for a half-open date range.  The nightly price is
// snapshotted from the room type's catalog price at the rate active right
// now; later catalog or rate changes never touch this record.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	checkIn, checkOut, msg := req.validate(c, model.ReservationConfirmed)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx := c.Request().Context()
	if !requireRefs(c, h.Clients, h.Users, req.ClientID, req.StaffID) {
		return nil
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	nightlyUSD, err := h.Rooms.NightlyPriceTx(ctx, tx, req.RoomID)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	}
	if errors.Is(err, repository.ErrNoPriceDefined) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room type has no nightly price defined"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not resolve room price"})
	}

	rate, err := h.Rates.CurrentTx(ctx, tx)
	if errors.Is(err, repository.ErrNoActiveRate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no active exchange rate registered"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load exchange rate"})
	}

	conflict, err := h.Reservations.HasConflictTx(ctx, tx, req.RoomID, checkIn, checkOut, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not check availability"})
	}
	if conflict {
		return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrRoomUnavailable.Error()})
	}

	res := model.Reservation{
		ClientID:   req.ClientID,
		RoomID:     req.RoomID,
		StaffID:    req.StaffID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     req.Status,
		Notes:      req.Notes,
		NightlyUSD: nightlyUSD,
		NightlyBS:  money.Convert(nightlyUSD, rate.Rate),
	}
	if err := h.Reservations.CreateTx(ctx, tx, &res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create reservation"})
	}
	committed = true

	if res.Status == model.ReservationConfirmed {
		go func(res model.Reservation) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = queue_publisher.PublishReservationConfirmed(ctx, queue.ReservationConfirmedEvent{
				ReservationID: res.ID,
				ClientID:      res.ClientID,
				RoomID:        res.RoomID,
				StaffID:       res.StaffID,
				CheckIn:       res.CheckIn.Format(pricing.DateLayout),
				CheckOut:      res.CheckOut.Format(pricing.DateLayout),
				NightlyUSD:    res.NightlyUSD.String(),
				NightlyBS:     res.NightlyBS.String(),
				ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
			})
		}(res)
	}

	return c.JSON(http.StatusCreated, res)
}

// Update edits a reservation.  Dates are re-validated against every other
// reservation of the room, and the price snapshot is retaken from the
// current catalog price and rate.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req reservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	checkIn, checkOut, msg := req.validate(c, "")
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	if !requireRefs(c, h.Clients, h.Users, req.ClientID, req.StaffID) {
		return nil
	}

	ctx := c.Request().Context()
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.GetByIDTx(ctx, tx, id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load reservation"})
	}

	// An omitted status keeps the reservation where it is; an explicit one
	// must be a legal move of the state machine.  Terminal reservations
	// (checked_out, cancelled) cannot be resurrected through an edit.
	if req.Status == "" {
		req.Status = res.Status
	}
	if !model.ValidReservationTransition(res.Status, req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid status transition from " + res.Status + " to " + req.Status,
		})
	}

	nightlyUSD, err := h.Rooms.NightlyPriceTx(ctx, tx, req.RoomID)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	}
	if errors.Is(err, repository.ErrNoPriceDefined) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room type has no nightly price defined"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not resolve room price"})
	}

	rate, err := h.Rates.CurrentTx(ctx, tx)
	if errors.Is(err, repository.ErrNoActiveRate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no active exchange rate registered"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load exchange rate"})
	}

	// The edited reservation must not collide with its siblings, but it is
	// allowed to keep (or shrink within) its own dates.
	conflict, err := h.Reservations.HasConflictTx(ctx, tx, req.RoomID, checkIn, checkOut, res.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not check availability"})
	}
	if conflict {
		return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrRoomUnavailable.Error()})
	}

	res.ClientID = req.ClientID
	res.RoomID = req.RoomID
	res.StaffID = req.StaffID
	res.CheckIn = checkIn
	res.CheckOut = checkOut
	res.Status = req.Status
	res.Notes = req.Notes
	res.NightlyUSD = nightlyUSD
	res.NightlyBS = money.Convert(nightlyUSD, rate.Rate)

	if err := h.Reservations.UpdateTx(ctx, tx, &res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update reservation"})
	}
	committed = true
	return c.JSON(http.StatusOK, res)
}

// Cancel moves a reservation to the cancelled state, releasing its dates.
// Only non-terminal reservations can be cancelled: a checked-out stay is
// history and stays that way.  Cancelling an already cancelled reservation
// is a no-op.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	res, err := h.Reservations.GetByID(ctx, id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load reservation"})
	}
	if res.Status == model.ReservationCancelled {
		return c.JSON(http.StatusOK, res)
	}
	if !model.ValidReservationTransition(res.Status, model.ReservationCancelled) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "cannot cancel a " + res.Status + " reservation",
		})
	}
	if err := h.Reservations.SetStatus(ctx, id, model.ReservationCancelled); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not cancel reservation"})
	}
	res.Status = model.ReservationCancelled
	return c.JSON(http.StatusOK, res)
}
