package pricing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
)

func usd(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeCatalog serves composer lookups from two in-memory maps.
type fakeCatalog struct {
	products map[uint64]CatalogItem
	plans    map[uint64]CatalogItem
}

func (f fakeCatalog) Product(_ context.Context, id uint64) (CatalogItem, bool, error) {
	it, ok := f.products[id]
	return it, ok, nil
}

func (f fakeCatalog) Plan(_ context.Context, id uint64) (CatalogItem, bool, error) {
	it, ok := f.plans[id]
	return it, ok, nil
}

func testCatalog() fakeCatalog {
	return fakeCatalog{
		products: map[uint64]CatalogItem{
			2: {ID: 2, Name: "Pabellon criollo", PriceUSD: usd("10"), Active: true},
			3: {ID: 3, Name: "Discontinued dish", PriceUSD: usd("7.50"), Active: false},
		},
		plans: map[uint64]CatalogItem{
			1: {ID: 1, Name: "Canaima day trip", PriceUSD: usd("50"), Active: true},
		},
	}
}

func product(id uint64, qty int) LineRequest {
	return LineRequest{Ref: model.LineRef{Kind: model.LineProduct, ItemID: id}, Quantity: qty}
}

func plan(id uint64, qty int) LineRequest {
	return LineRequest{Ref: model.LineRef{Kind: model.LinePlan, ItemID: id}, Quantity: qty}
}

func TestComposeMixedSale(t *testing.T) {
	reqs := []LineRequest{plan(1, 1), product(2, 2)}

	got, err := Compose(context.Background(), testCatalog(), reqs, usd("6"), usd("40"))
	require.NoError(t, err)

	require.Len(t, got.Lines, 2)
	assert.Equal(t, model.SaleMixed, got.Type)

	assert.True(t, usd("50").Equal(got.Lines[0].TotalUSD), "plan line: %s", got.Lines[0].TotalUSD)
	assert.True(t, usd("20").Equal(got.Lines[1].TotalUSD), "product line: %s", got.Lines[1].TotalUSD)
	assert.True(t, usd("800").Equal(got.Lines[1].TotalBS))

	assert.True(t, usd("70").Equal(got.SubtotalUSD), "subtotal: %s", got.SubtotalUSD)
	assert.True(t, usd("76").Equal(got.TotalUSD), "total: %s", got.TotalUSD)
	assert.True(t, usd("2800").Equal(got.SubtotalBS), "subtotal bs: %s", got.SubtotalBS)
	assert.True(t, usd("240").Equal(got.TaxBS))
	assert.True(t, usd("3040").Equal(got.TotalBS), "total bs: %s", got.TotalBS)
}

func TestComposeIgnoresClientPricing(t *testing.T) {
	// The request carries no price fields at all; whatever price a caller
	// tried to suggest never reaches the composer.
	got, err := Compose(context.Background(), testCatalog(), []LineRequest{product(2, 1)}, decimal.Zero, usd("40"))
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.True(t, usd("10").Equal(got.Lines[0].UnitUSD))
	assert.Equal(t, "Pabellon criollo", got.Lines[0].Description)
}

func TestComposeFiltersBadLines(t *testing.T) {
	reqs := []LineRequest{
		product(2, 0),   // quantity below one
		product(999, 3), // unknown product
		product(3, 1),   // inactive product
		plan(999, 2),    // unknown plan
		plan(1, 1),      // the only line that survives
	}
	got, err := Compose(context.Background(), testCatalog(), reqs, decimal.Zero, usd("40"))
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, model.SaleTourismPlan, got.Type)
	assert.True(t, usd("50").Equal(got.SubtotalUSD))
}

func TestComposeAllLinesFiltered(t *testing.T) {
	got, err := Compose(context.Background(), testCatalog(), []LineRequest{product(999, 1)}, decimal.Zero, usd("40"))
	require.NoError(t, err)
	assert.Empty(t, got.Lines)
	assert.True(t, decimal.Zero.Equal(got.SubtotalUSD))
	assert.True(t, decimal.Zero.Equal(got.TotalBS))
}

func TestClassify(t *testing.T) {
	productLine := ComposedLine{Ref: model.LineRef{Kind: model.LineProduct, ItemID: 2}}
	planLine := ComposedLine{Ref: model.LineRef{Kind: model.LinePlan, ItemID: 1}}

	assert.Equal(t, model.SaleRestaurant, Classify([]ComposedLine{productLine}))
	assert.Equal(t, model.SaleTourismPlan, Classify([]ComposedLine{planLine}))
	assert.Equal(t, model.SaleMixed, Classify([]ComposedLine{productLine, planLine}))
	assert.Equal(t, model.SaleRestaurant, Classify(nil))
}

func TestComposeBsDerivedFromUSDTotals(t *testing.T) {
	// A price that rounds at line level: 3 x 1.11 = 3.33 USD, 133.20 Bs.
	cat := fakeCatalog{products: map[uint64]CatalogItem{
		5: {ID: 5, Name: "Cafe", PriceUSD: usd("1.11"), Active: true},
	}}
	got, err := Compose(context.Background(), cat, []LineRequest{product(5, 3)}, decimal.Zero, usd("40"))
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.True(t, usd("3.33").Equal(got.Lines[0].TotalUSD))
	assert.True(t, usd("133.2").Equal(got.Lines[0].TotalBS))
	// Subtotal Bs converts the USD subtotal, it does not sum line Bs.
	assert.True(t, usd("133.2").Equal(got.SubtotalBS))
}
