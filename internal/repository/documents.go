package repository

import (
	"fmt"
	"time"

	"github.com/fjod/pharmacy_cashier/internal/domain"
	"github.com/shopspring/decimal"
)

// Prices are stored as decimal strings so they round-trip exactly.
type hangItemDocument struct {
	ProductID       string  `bson:"product_id"`
	Name            string  `bson:"name"`
	Specification   string  `bson:"specification,omitempty"`
	UnitPrice       string  `bson:"unit_price"`
	RetailUnitPrice string  `bson:"retail_unit_price"`
	MemberUnitPrice *string `bson:"member_unit_price,omitempty"`
	Quantity        int     `bson:"quantity"`
	UsageNote       string  `bson:"usage_note,omitempty"`
	DietaryWarning  string  `bson:"dietary_warning,omitempty"`
}

type hangOrderDocument struct {
	HangID     string             `bson:"hang_id"`
	StoreID    string             `bson:"store_id"`
	MemberID   string             `bson:"member_id,omitempty"`
	MemberName string             `bson:"member_name,omitempty"`
	Items      []hangItemDocument `bson:"items"`
	HangTime   time.Time          `bson:"hang_time"`
}

func toDocument(o domain.ParkedOrder) hangOrderDocument {
	doc := hangOrderDocument{
		HangID:     o.HangID,
		StoreID:    o.StoreID,
		MemberID:   o.MemberID,
		MemberName: o.MemberName,
		Items:      make([]hangItemDocument, 0, len(o.Lines)),
		HangTime:   o.CreatedAt.UTC(),
	}
	for _, l := range o.Lines {
		item := hangItemDocument{
			ProductID:       l.ProductID,
			Name:            l.Name,
			Specification:   l.Specification,
			UnitPrice:       l.UnitPrice.String(),
			RetailUnitPrice: l.RetailUnitPrice.String(),
			Quantity:        l.Quantity,
			UsageNote:       l.UsageNote,
			DietaryWarning:  l.DietaryWarning,
		}
		if l.MemberUnitPrice != nil {
			mp := l.MemberUnitPrice.String()
			item.MemberUnitPrice = &mp
		}
		doc.Items = append(doc.Items, item)
	}
	return doc
}

func (d hangOrderDocument) toDomain() (*domain.ParkedOrder, error) {
	o := &domain.ParkedOrder{
		HangID:     d.HangID,
		StoreID:    d.StoreID,
		MemberID:   d.MemberID,
		MemberName: d.MemberName,
		Lines:      make([]domain.CartLine, 0, len(d.Items)),
		CreatedAt:  d.HangTime,
	}
	for _, it := range d.Items {
		unit, err := decimal.NewFromString(it.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid unit price for %s in %s: %w", it.ProductID, d.HangID, err)
		}
		retail, err := decimal.NewFromString(it.RetailUnitPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid retail price for %s in %s: %w", it.ProductID, d.HangID, err)
		}
		line := domain.CartLine{
			ProductID:       it.ProductID,
			Name:            it.Name,
			Specification:   it.Specification,
			UnitPrice:       unit,
			RetailUnitPrice: retail,
			Quantity:        it.Quantity,
			UsageNote:       it.UsageNote,
			DietaryWarning:  it.DietaryWarning,
		}
		if it.MemberUnitPrice != nil {
			mp, err := decimal.NewFromString(*it.MemberUnitPrice)
			if err != nil {
				return nil, fmt.Errorf("invalid member price for %s in %s: %w", it.ProductID, d.HangID, err)
			}
			line.MemberUnitPrice = &mp
		}
		o.Lines = append(o.Lines, line)
	}
	return o, nil
}
