package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
	"github.com/enmanuellle/lemahotelreservas/internal/pricing"
	"github.com/enmanuellle/lemahotelreservas/internal/repository"
)

// SaleHandler serves point-of-sale transactions.  Every monetary figure on
// a sale is computed server-side by the composer: unit prices come from the
// catalog and all Bs amounts are conversions of their USD counterparts at
// the rate active when the sale is created or edited.
type SaleHandler struct {
	Sales   *repository.SaleRepo
	Clients *repository.ClientRepo
	Users   *repository.UserRepo
	Rates   *repository.RateRepo
	Catalog repository.CatalogSource
}

type saleLineRequest struct {
	Type     string          `json:"type"` // "product" or "plan"
	ItemID   uint64          `json:"item_id"`
	Quantity int             `json:"quantity"`
	UnitUSD  decimal.Decimal `json:"unit_price_usd"` // accepted, ignored; the catalog is authoritative
}

type saleRequest struct {
	ClientID      uint64            `json:"client_id"`
	StaffID       uint64            `json:"staff_id"`
	ReservationID *uint64           `json:"reservation_id"`
	SaleType      string            `json:"sale_type"`
	PaymentMethod string            `json:"payment_method"`
	TaxUSD        decimal.Decimal   `json:"tax_usd"`
	Status        string            `json:"status"`
	Notes         string            `json:"notes"`
	Items         []saleLineRequest `json:"items"`
}

// validate normalizes the request and reports the first problem found.
func (req *saleRequest) validate(c echo.Context) string {
	if req.StaffID == 0 {
		if id, err := getUserID(c); err == nil {
			req.StaffID = id
		}
	}
	if req.ClientID == 0 || req.StaffID == 0 {
		return "client_id and staff_id are required"
	}
	if req.SaleType == "" {
		return "sale_type is required"
	}
	if !model.ValidSaleType(req.SaleType) {
		return "unknown sale_type"
	}
	if len(req.Items) == 0 {
		return "items are required"
	}
	if req.PaymentMethod != "" && !model.ValidPaymentMethod(req.PaymentMethod) {
		return "unknown payment_method"
	}
	if req.Status == "" {
		req.Status = model.SalePaid
	}
	if !model.ValidSaleStatus(req.Status) {
		return "unknown sale status"
	}
	if req.TaxUSD.IsNegative() {
		return "tax_usd must not be negative"
	}
	return ""
}

func (req *saleRequest) lineRequests() []pricing.LineRequest {
	out := make([]pricing.LineRequest, 0, len(req.Items))
	for _, it := range req.Items {
		out = append(out, pricing.LineRequest{
			Ref:      model.LineRef{Kind: model.LineKind(it.Type), ItemID: it.ItemID},
			Quantity: it.Quantity,
		})
	}
	return out
}

// List returns all sale headers, newest first.
func (h *SaleHandler) List(c echo.Context) error {
	out, err := h.Sales.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load sales"})
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one sale with its items.
func (h *SaleHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	sa, err := h.Sales.GetByID(c.Request().Context(), id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "sale not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load sale"})
	}
	return c.JSON(http.StatusOK, sa)
}

// Create composes and persists a sale.  Requested lines that reference a
// missing or inactive catalog item, or carry a quantity below one, are
// dropped; a sale where nothing survives filtering is rejected.
func (h *SaleHandler) Create(c echo.Context) error {
	var req saleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(c); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx := c.Request().Context()
	if !requireRefs(c, h.Clients, h.Users, req.ClientID, req.StaffID) {
		return nil
	}

	rate, err := h.Rates.Current(ctx)
	if errors.Is(err, repository.ErrNoActiveRate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no active exchange rate registered"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load exchange rate"})
	}

	composed, err := pricing.Compose(ctx, h.Catalog, req.lineRequests(), req.TaxUSD.Round(2), rate.Rate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not compose sale"})
	}
	if len(composed.Lines) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": pricing.ErrNoLineItems.Error()})
	}

	sa := saleFromComposed(&req, composed)

	tx, err := h.Sales.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := h.Sales.CreateTx(ctx, tx, &sa); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create sale"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create sale"})
	}
	committed = true
	return c.JSON(http.StatusCreated, sa)
}

// Update re-composes a sale from scratch at the current rate and replaces
// its entire item collection.  Old line identifiers do not survive.
func (h *SaleHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req saleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(c); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx := c.Request().Context()
	if !requireRefs(c, h.Clients, h.Users, req.ClientID, req.StaffID) {
		return nil
	}

	rate, err := h.Rates.Current(ctx)
	if errors.Is(err, repository.ErrNoActiveRate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no active exchange rate registered"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load exchange rate"})
	}

	composed, err := pricing.Compose(ctx, h.Catalog, req.lineRequests(), req.TaxUSD.Round(2), rate.Rate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not compose sale"})
	}
	if len(composed.Lines) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": pricing.ErrNoLineItems.Error()})
	}

	tx, err := h.Sales.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	existing, err := h.Sales.GetByIDTx(ctx, tx, id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "sale not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load sale"})
	}

	sa := saleFromComposed(&req, composed)
	sa.ID = existing.ID
	sa.SoldAt = existing.SoldAt

	if err := h.Sales.UpdateTx(ctx, tx, &sa); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update sale"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update sale"})
	}
	committed = true
	return c.JSON(http.StatusOK, sa)
}

// saleFromComposed builds the persistence model from a composed sale.  The
// stored sale_type is the composer's classification of the kept lines, not
// whatever the client sent.
func saleFromComposed(req *saleRequest, composed pricing.ComposedSale) model.Sale {
	items := make([]model.SaleItem, 0, len(composed.Lines))
	for _, l := range composed.Lines {
		items = append(items, model.SaleItem{
			Ref:         l.Ref,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitUSD:     l.UnitUSD,
			UnitBS:      l.UnitBS,
			TotalUSD:    l.TotalUSD,
			TotalBS:     l.TotalBS,
		})
	}
	return model.Sale{
		ClientID:      req.ClientID,
		StaffID:       req.StaffID,
		ReservationID: req.ReservationID,
		Type:          composed.Type,
		SubtotalUSD:   composed.SubtotalUSD,
		SubtotalBS:    composed.SubtotalBS,
		TaxUSD:        composed.TaxUSD,
		TaxBS:         composed.TaxBS,
		TotalUSD:      composed.TotalUSD,
		TotalBS:       composed.TotalBS,
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
		Notes:         req.Notes,
		Items:         items,
	}
}
