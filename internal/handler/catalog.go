package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
	"github.com/enmanuellle/lemahotelreservas/internal/money"
	"github.com/enmanuellle/lemahotelreservas/internal/repository"
)

// CatalogHandler serves the priced catalog: room types, tourism plans and
// restaurant products.  USD is the source of truth; the Bs price is
// computed at write time from the rate active at that moment and later
// realigned only by the bulk reprice pass.
type CatalogHandler struct {
	RoomTypes *repository.RoomTypeRepo
	Plans     *repository.PlanRepo
	Products  *repository.ProductRepo
	Rates     *repository.RateRepo
}

// currentRate resolves the active rate or writes the 400 response.
func (h *CatalogHandler) currentRate(c echo.Context) (decimal.Decimal, bool) {
	rate, err := h.Rates.Current(c.Request().Context())
	if errors.Is(err, repository.ErrNoActiveRate) {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "no active exchange rate registered"})
		return decimal.Zero, false
	}
	if err != nil {
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load exchange rate"})
		return decimal.Zero, false
	}
	return rate.Rate, true
}

type roomTypeRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	NightlyUSD  decimal.Decimal `json:"nightly_price_usd"`
	Active      *bool           `json:"active"`
}

func (req *roomTypeRequest) check() string {
	if req.Name == "" {
		return "name is required"
	}
	if !req.NightlyUSD.IsPositive() {
		return "nightly_price_usd must be positive"
	}
	return ""
}

// ListRoomTypes returns the room-type catalog.
func (h *CatalogHandler) ListRoomTypes(c echo.Context) error {
	out, err := h.RoomTypes.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load room types"})
	}
	return c.JSON(http.StatusOK, out)
}

// CreateRoomType adds a room type, deriving the Bs price from the current
// rate.
func (h *CatalogHandler) CreateRoomType(c echo.Context) error {
	var req roomTypeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.check(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	rate, ok := h.currentRate(c)
	if !ok {
		return nil
	}
	rt := model.RoomType{
		Name:        req.Name,
		Description: req.Description,
		NightlyUSD:  req.NightlyUSD.Round(money.StoragePrecision),
		NightlyBS:   money.Convert(req.NightlyUSD, rate),
		Active:      req.Active == nil || *req.Active,
	}
	if err := h.RoomTypes.Create(c.Request().Context(), &rt); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create room type"})
	}
	return c.JSON(http.StatusCreated, rt)
}

// UpdateRoomType edits a room type, recomputing the Bs price.
func (h *CatalogHandler) UpdateRoomType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req roomTypeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.check(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	rt, err := h.RoomTypes.GetByID(ctx, id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load room type"})
	}
	rate, ok := h.currentRate(c)
	if !ok {
		return nil
	}
	rt.Name = req.Name
	rt.Description = req.Description
	rt.NightlyUSD = req.NightlyUSD.Round(money.StoragePrecision)
	rt.NightlyBS = money.Convert(req.NightlyUSD, rate)
	if req.Active != nil {
		rt.Active = *req.Active
	}
	if err := h.RoomTypes.Update(ctx, &rt); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update room type"})
	}
	return c.JSON(http.StatusOK, rt)
}

type planRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	PriceUSD     decimal.Decimal `json:"price_usd"`
	DurationDays int             `json:"duration_days"`
	Active       *bool           `json:"active"`
}

func (req *planRequest) check() string {
	if req.Name == "" {
		return "name is required"
	}
	if !req.PriceUSD.IsPositive() {
		return "price_usd must be positive"
	}
	return ""
}

// ListPlans returns the tourism-plan catalog.
func (h *CatalogHandler) ListPlans(c echo.Context) error {
	out, err := h.Plans.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load tourism plans"})
	}
	return c.JSON(http.StatusOK, out)
}

// CreatePlan adds a tourism plan.
func (h *CatalogHandler) CreatePlan(c echo.Context) error {
	var req planRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.check(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	rate, ok := h.currentRate(c)
	if !ok {
		return nil
	}
	p := model.TourismPlan{
		Name:         req.Name,
		Description:  req.Description,
		PriceUSD:     req.PriceUSD.Round(money.StoragePrecision),
		PriceBS:      money.Convert(req.PriceUSD, rate),
		DurationDays: req.DurationDays,
		Active:       req.Active == nil || *req.Active,
	}
	if err := h.Plans.Create(c.Request().Context(), &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create tourism plan"})
	}
	return c.JSON(http.StatusCreated, p)
}

// UpdatePlan edits a tourism plan.
func (h *CatalogHandler) UpdatePlan(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req planRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.check(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	p, err := h.Plans.GetByID(ctx, id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "tourism plan not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load tourism plan"})
	}
	rate, ok := h.currentRate(c)
	if !ok {
		return nil
	}
	p.Name = req.Name
	p.Description = req.Description
	p.PriceUSD = req.PriceUSD.Round(money.StoragePrecision)
	p.PriceBS = money.Convert(req.PriceUSD, rate)
	p.DurationDays = req.DurationDays
	if req.Active != nil {
		p.Active = *req.Active
	}
	if err := h.Plans.Update(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update tourism plan"})
	}
	return c.JSON(http.StatusOK, p)
}

type productRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitUSD     decimal.Decimal `json:"unit_price_usd"`
	Category    string          `json:"category"`
	Active      *bool           `json:"active"`
}

func (req *productRequest) check() string {
	if req.Name == "" {
		return "name is required"
	}
	if !req.UnitUSD.IsPositive() {
		return "unit_price_usd must be positive"
	}
	return ""
}

// ListProducts returns the restaurant menu.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	out, err := h.Products.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load products"})
	}
	return c.JSON(http.StatusOK, out)
}

// CreateProduct adds a restaurant product.
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.check(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	rate, ok := h.currentRate(c)
	if !ok {
		return nil
	}
	p := model.RestaurantProduct{
		Name:        req.Name,
		Description: req.Description,
		UnitUSD:     req.UnitUSD.Round(money.StoragePrecision),
		UnitBS:      money.Convert(req.UnitUSD, rate),
		Category:    req.Category,
		Active:      req.Active == nil || *req.Active,
	}
	if err := h.Products.Create(c.Request().Context(), &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create product"})
	}
	return c.JSON(http.StatusCreated, p)
}

// UpdateProduct edits a restaurant product.
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.check(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	p, err := h.Products.GetByID(ctx, id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load product"})
	}
	rate, ok := h.currentRate(c)
	if !ok {
		return nil
	}
	p.Name = req.Name
	p.Description = req.Description
	p.UnitUSD = req.UnitUSD.Round(money.StoragePrecision)
	p.UnitBS = money.Convert(req.UnitUSD, rate)
	p.Category = req.Category
	if req.Active != nil {
		p.Active = *req.Active
	}
	if err := h.Products.Update(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update product"})
	}
	return c.JSON(http.StatusOK, p)
}
