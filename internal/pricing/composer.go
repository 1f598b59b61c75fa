package pricing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
	"github.com/enmanuellle/lemahotelreservas/internal/money"
)

// ErrNoLineItems is returned by create/update call sites when composition
// keeps zero lines.  Compose itself is total and never returns it: the
// bulk-reprice path legitimately walks zero-line sales.
var ErrNoLineItems = errors.New("sale has no line items")

// LineRequest is one requested sale line before resolution against the
// catalog.
type LineRequest struct {
	Ref      model.LineRef
	Quantity int
}

// CatalogItem is the slice of a catalog entity the composer needs: its USD
// price, display name and whether it is currently sellable.
type CatalogItem struct {
	ID       uint64
	Name     string
	PriceUSD decimal.Decimal
	Active   bool
}

// Catalog resolves line references.  The second return value is false when
// the item does not exist; a non-nil error means the lookup itself failed
// and aborts composition.
type Catalog interface {
	Product(ctx context.Context, id uint64) (CatalogItem, bool, error)
	Plan(ctx context.Context, id uint64) (CatalogItem, bool, error)
}

// ComposedLine is a kept sale line with snapshot prices in both currencies.
type ComposedLine struct {
	Ref         model.LineRef
	Description string
	Quantity    int
	UnitUSD     decimal.Decimal
	UnitBS      decimal.Decimal
	TotalUSD    decimal.Decimal
	TotalBS     decimal.Decimal
}

// ComposedSale is the result of composing line requests at a given rate.
type ComposedSale struct {
	Lines       []ComposedLine
	Type        string
	SubtotalUSD decimal.Decimal
	SubtotalBS  decimal.Decimal
	TaxUSD      decimal.Decimal
	TaxBS       decimal.Decimal
	TotalUSD    decimal.Decimal
	TotalBS     decimal.Decimal
}

// Compose resolves the requested lines against the catalog and produces a
// priced sale.  Requests that reference a missing or inactive item, or
// carry a non-positive quantity, are dropped silently — that is the
// filtering policy, not an error path.  Unit prices always come from the
// catalog, never from the caller.  Every Bs figure is the conversion of
// its USD counterpart with the single rate passed in.
func Compose(ctx context.Context, cat Catalog, reqs []LineRequest, taxUSD, rate decimal.Decimal) (ComposedSale, error) {
	var (
		lines       []ComposedLine
		subtotalUSD = decimal.Zero
	)
	for _, req := range reqs {
		if req.Quantity < 1 {
			continue
		}
		var (
			item  CatalogItem
			found bool
			err   error
		)
		switch req.Ref.Kind {
		case model.LineProduct:
			item, found, err = cat.Product(ctx, req.Ref.ItemID)
		case model.LinePlan:
			item, found, err = cat.Plan(ctx, req.Ref.ItemID)
		default:
			continue
		}
		if err != nil {
			return ComposedSale{}, err
		}
		if !found || !item.Active {
			continue
		}
		qty := decimal.NewFromInt(int64(req.Quantity))
		lineUSD := item.PriceUSD.Mul(qty).Round(money.StoragePrecision)
		lines = append(lines, ComposedLine{
			Ref:         model.LineRef{Kind: req.Ref.Kind, ItemID: item.ID},
			Description: item.Name,
			Quantity:    req.Quantity,
			UnitUSD:     item.PriceUSD,
			UnitBS:      money.Convert(item.PriceUSD, rate),
			TotalUSD:    lineUSD,
			TotalBS:     money.Convert(lineUSD, rate),
		})
		subtotalUSD = subtotalUSD.Add(lineUSD)
	}

	totalUSD := subtotalUSD.Add(taxUSD)
	return ComposedSale{
		Lines:       lines,
		Type:        Classify(lines),
		SubtotalUSD: subtotalUSD,
		SubtotalBS:  money.Convert(subtotalUSD, rate),
		TaxUSD:      taxUSD,
		TaxBS:       money.Convert(taxUSD, rate),
		TotalUSD:    totalUSD,
		TotalBS:     money.Convert(totalUSD, rate),
	}, nil
}

// Classify derives the sale type from the kept lines: mixed when both
// catalogs appear, tourism_plan when only plans do, restaurant otherwise.
// The zero-line case also lands on restaurant; API call sites reject empty
// sales before it can matter.
func Classify(lines []ComposedLine) string {
	var hasPlan, hasProduct bool
	for _, l := range lines {
		switch l.Ref.Kind {
		case model.LinePlan:
			hasPlan = true
		case model.LineProduct:
			hasProduct = true
		}
	}
	switch {
	case hasPlan && hasProduct:
		return model.SaleMixed
	case hasPlan:
		return model.SaleTourismPlan
	default:
		return model.SaleRestaurant
	}
}
