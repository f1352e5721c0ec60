package cart

import (
	"github.com/fjod/pharmacy_cashier/internal/domain"
	"github.com/shopspring/decimal"
)

// Summarize derives the totals of lines. The discount is reported as given even
// when it exceeds the original total; payable is floored at zero.
func Summarize(lines []domain.CartLine, discount decimal.Decimal) domain.Summary {
	original := decimal.Zero
	for _, l := range lines {
		original = original.Add(l.LineTotal())
	}
	payable := original.Sub(discount)
	if payable.IsNegative() {
		payable = decimal.Zero
	}
	return domain.Summary{
		OriginalTotal:   original,
		Discount:        discount,
		PointsDeduction: decimal.Zero,
		Payable:         payable,
	}
}
