package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
	"github.com/enmanuellle/lemahotelreservas/internal/pricing"
	"github.com/enmanuellle/lemahotelreservas/internal/queue"
	"github.com/enmanuellle/lemahotelreservas/internal/repository"
	queue_publisher "github.com/enmanuellle/lemahotelreservas/internal/service"
)

// RateHandler serves the exchange-rate ledger: the current-rate lookup the
// front desk polls, registration of new rates and the bulk reprice pass.
type RateHandler struct {
	Rates *repository.RateRepo
}

type registerRateRequest struct {
	Date string          `json:"date"`
	Rate decimal.Decimal `json:"rate"`
}

func rateResponse(er model.ExchangeRate) echo.Map {
	return echo.Map{
		"id":         er.ID,
		"date":       er.EffectiveDate.Format(pricing.DateLayout),
		"rate":       er.Rate,
		"active":     er.Active,
		"created_at": er.CreatedAt.Format(time.RFC3339),
	}
}

// Current returns the rate every pricing operation would use right now.
func (h *RateHandler) Current(c echo.Context) error {
	er, err := h.Rates.Current(c.Request().Context())
	if errors.Is(err, repository.ErrNoActiveRate) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active exchange rate registered"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load exchange rate"})
	}
	return c.JSON(http.StatusOK, rateResponse(er))
}

// List returns the full ledger, newest first.
func (h *RateHandler) List(c echo.Context) error {
	rates, err := h.Rates.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load exchange rates"})
	}
	out := make([]echo.Map, 0, len(rates))
	for _, er := range rates {
		out = append(out, rateResponse(er))
	}
	return c.JSON(http.StatusOK, out)
}

// Register appends a rate record to the ledger.  One record per date; a
// duplicate date is rejected rather than silently replaced, keeping the
// ledger append-only.
func (h *RateHandler) Register(c echo.Context) error {
	var req registerRateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Date == "" {
		req.Date = time.Now().UTC().Format(pricing.DateLayout)
	}
	date, err := time.Parse(pricing.DateLayout, req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	if !req.Rate.IsPositive() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rate must be positive"})
	}

	er, err := h.Rates.Register(c.Request().Context(), date, req.Rate)
	if errors.Is(err, repository.ErrDuplicateRateDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a rate for that date is already registered"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not register exchange rate"})
	}

	go func(er model.ExchangeRate) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishRateRegistered(ctx, queue.RateRegisteredEvent{
			RateID:        er.ID,
			EffectiveDate: er.EffectiveDate.Format(pricing.DateLayout),
			RateBsPerUSD:  er.Rate.String(),
			RegisteredAt:  time.Now().UTC().Format(time.RFC3339),
		})
	}(er)

	return c.JSON(http.StatusCreated, rateResponse(er))
}

// Reprice recomputes every Bs column from its USD counterpart at the
// current rate.  USD values never move; running it twice is harmless.
func (h *RateHandler) Reprice(c echo.Context) error {
	ctx := c.Request().Context()
	rates, err := h.Rates.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load exchange rates"})
	}
	er, ok := repository.CurrentOf(rates)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no active exchange rate registered"})
	}

	counts, err := h.Rates.RepriceAll(ctx, er.Rate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reprice failed, no table was changed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"rate":    er.Rate,
		"date":    er.EffectiveDate.Format(pricing.DateLayout),
		"updated": counts,
	})
}
