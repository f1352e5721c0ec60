package domain

import "github.com/shopspring/decimal"

// Product is a medicine as returned by the catalog backend.
type Product struct {
	ID             string           `json:"product_id"`
	Name           string           `json:"name"`
	Specification  string           `json:"specification,omitempty"`
	RetailPrice    decimal.Decimal  `json:"retail_price"`
	MemberPrice    *decimal.Decimal `json:"member_price,omitempty"`
	UsageNote      string           `json:"usage_note,omitempty"`
	DietaryWarning string           `json:"dietary_warning,omitempty"`
}

type Member struct {
	ID        string `json:"member_id"`
	Name      string `json:"name"`
	Points    int    `json:"points"`
	TierLabel string `json:"tier_label"`
}

// PointReward is a benefit a member can redeem once they hold enough points.
type PointReward struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	PointsRequired int    `json:"points_required"`
	Description    string `json:"description,omitempty"`
	Active         bool   `json:"active"`
}
