package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReceiptLine struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	Specification string          `json:"specification,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// Advisory pairs a product display name with a usage note or dietary warning.
type Advisory struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type Receipt struct {
	Lines           []ReceiptLine `json:"lines"`
	UsageNotes      []Advisory    `json:"usage_notes"`
	DietaryWarnings []Advisory    `json:"dietary_warnings"`
	Summary         Summary       `json:"summary"`
	MemberName      string        `json:"member_name,omitempty"`
	PrintedAt       time.Time     `json:"printed_at"`
}
