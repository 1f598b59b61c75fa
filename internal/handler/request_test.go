package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
)

func testContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("user_id", float64(9)) // what the JWT middleware injects
	return c
}

func validReservation() reservationRequest {
	return reservationRequest{
		ClientID: 1,
		RoomID:   2,
		CheckIn:  "2026-09-01",
		CheckOut: "2026-09-04",
	}
}

func TestReservationValidateDefaults(t *testing.T) {
	req := validReservation()
	in, out, msg := req.validate(testContext(), model.ReservationConfirmed)
	assert.Empty(t, msg)
	assert.Equal(t, model.ReservationConfirmed, req.Status)
	assert.Equal(t, uint64(9), req.StaffID, "staff_id backfilled from the token")
	assert.True(t, in.Before(out))
}

func TestReservationValidateKeepsOmittedStatusOnEdit(t *testing.T) {
	// An edit passes an empty default so the handler can keep whatever
	// state the stored reservation is in.
	req := validReservation()
	_, _, msg := req.validate(testContext(), "")
	assert.Empty(t, msg)
	assert.Empty(t, req.Status)
}

func TestReservationValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*reservationRequest)
	}{
		{"missing client", func(r *reservationRequest) { r.ClientID = 0 }},
		{"missing room", func(r *reservationRequest) { r.RoomID = 0 }},
		{"unknown status", func(r *reservationRequest) { r.Status = "parked" }},
		{"equal dates", func(r *reservationRequest) { r.CheckOut = r.CheckIn }},
		{"reversed dates", func(r *reservationRequest) { r.CheckIn, r.CheckOut = r.CheckOut, r.CheckIn }},
		{"bad date format", func(r *reservationRequest) { r.CheckIn = "01-09-2026" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validReservation()
			tc.mutate(&req)
			_, _, msg := req.validate(testContext(), model.ReservationConfirmed)
			assert.NotEmpty(t, msg)
		})
	}
}

func validSale() saleRequest {
	return saleRequest{
		ClientID: 1,
		StaffID:  2,
		SaleType: model.SaleRestaurant,
		Items:    []saleLineRequest{{Type: "product", ItemID: 3, Quantity: 1}},
	}
}

func TestSaleValidateDefaults(t *testing.T) {
	req := validSale()
	msg := req.validate(testContext())
	assert.Empty(t, msg)
	assert.Equal(t, model.SalePaid, req.Status)
}

func TestSaleValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*saleRequest)
	}{
		{"missing client", func(r *saleRequest) { r.ClientID = 0 }},
		{"missing sale_type", func(r *saleRequest) { r.SaleType = "" }},
		{"unknown sale_type", func(r *saleRequest) { r.SaleType = "spa" }},
		{"no items", func(r *saleRequest) { r.Items = nil }},
		{"unknown payment method", func(r *saleRequest) { r.PaymentMethod = "barter" }},
		{"unknown status", func(r *saleRequest) { r.Status = "maybe" }},
		{"negative tax", func(r *saleRequest) { r.TaxUSD = decimal.RequireFromString("-1") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validSale()
			tc.mutate(&req)
			assert.NotEmpty(t, req.validate(testContext()))
		})
	}
}

func TestSaleLineRequestsMapUnion(t *testing.T) {
	req := saleRequest{Items: []saleLineRequest{
		{Type: "product", ItemID: 3, Quantity: 2},
		{Type: "plan", ItemID: 7, Quantity: 1},
	}}
	lines := req.lineRequests()
	assert.Equal(t, model.LineProduct, lines[0].Ref.Kind)
	assert.Equal(t, uint64(3), lines[0].Ref.ItemID)
	assert.Equal(t, model.LinePlan, lines[1].Ref.Kind)
	assert.Equal(t, 1, lines[1].Quantity)
}

type fakeClients struct{ ids map[uint64]bool }

func (f fakeClients) GetByID(_ context.Context, id uint64) (model.Client, error) {
	if !f.ids[id] {
		return model.Client{}, sql.ErrNoRows
	}
	return model.Client{ID: id}, nil
}

type fakeStaff struct{ ids map[uint64]bool }

func (f fakeStaff) Exists(_ context.Context, id uint64) (bool, error) {
	return f.ids[id], nil
}

func TestRequireRefs(t *testing.T) {
	clients := fakeClients{ids: map[uint64]bool{1: true}}
	staff := fakeStaff{ids: map[uint64]bool{2: true}}

	cases := []struct {
		name     string
		clientID uint64
		staffID  uint64
		ok       bool
		code     int
	}{
		{"both exist", 1, 2, true, 0},
		{"missing client", 99, 2, false, http.StatusNotFound},
		{"missing staff", 1, 99, false, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
			ok := requireRefs(c, clients, staff, tc.clientID, tc.staffID)
			assert.Equal(t, tc.ok, ok)
			if !tc.ok {
				assert.Equal(t, tc.code, rec.Code)
			}
		})
	}
}

func TestGetUserIDTypes(t *testing.T) {
	e := echo.New()
	for _, v := range []interface{}{uint64(5), int(5), int64(5), float64(5), "5"} {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.Set("user_id", v)
		id, err := getUserID(c)
		assert.NoError(t, err)
		assert.Equal(t, uint64(5), id)
	}
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, err := getUserID(c)
	assert.Error(t, err)
}
