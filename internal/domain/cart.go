package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one product in the active transaction. UnitPrice is what the
// customer is charged; RetailUnitPrice and MemberUnitPrice are the reference
// prices it is derived from.
type CartLine struct {
	ProductID       string           `json:"product_id"`
	Name            string           `json:"name"`
	Specification   string           `json:"specification,omitempty"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	RetailUnitPrice decimal.Decimal  `json:"retail_unit_price"`
	MemberUnitPrice *decimal.Decimal `json:"member_unit_price,omitempty"`
	Quantity        int              `json:"quantity"`
	UsageNote       string           `json:"usage_note,omitempty"`
	DietaryWarning  string           `json:"dietary_warning,omitempty"`
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Clone returns a copy that shares no pointers with l.
func (l CartLine) Clone() CartLine {
	c := l
	if l.MemberUnitPrice != nil {
		mp := *l.MemberUnitPrice
		c.MemberUnitPrice = &mp
	}
	return c
}

func CloneLines(lines []CartLine) []CartLine {
	if lines == nil {
		return nil
	}
	out := make([]CartLine, len(lines))
	for i, l := range lines {
		out[i] = l.Clone()
	}
	return out
}

type Summary struct {
	OriginalTotal   decimal.Decimal `json:"original_total"`
	Discount        decimal.Decimal `json:"discount"`
	PointsDeduction decimal.Decimal `json:"points_deduction"`
	Payable         decimal.Decimal `json:"payable"`
}

// ParkedOrder is a cart set aside for later checkout ("hang order").
type ParkedOrder struct {
	HangID     string     `json:"hang_id"`
	StoreID    string     `json:"store_id,omitempty"`
	Lines      []CartLine `json:"lines"`
	MemberID   string     `json:"member_id,omitempty"`
	MemberName string     `json:"member_name,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (p ParkedOrder) ItemCount() int {
	n := 0
	for _, l := range p.Lines {
		n += l.Quantity
	}
	return n
}

// NewHangID returns an id of the form H<unix-millis>-<8 hex chars>.
func NewHangID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("H%d-%s", now.UnixMilli(), suffix)
}
