package cart

import (
	"time"

	"github.com/fjod/pharmacy_cashier/internal/domain"
)

// BuildReceipt composes the printable receipt: itemised lines followed by the
// usage and dietary advisories of the products that carry one, all in cart
// order.
func BuildReceipt(lines []domain.CartLine, summary domain.Summary, member *domain.Member, now time.Time) domain.Receipt {
	r := domain.Receipt{
		Lines:           make([]domain.ReceiptLine, 0, len(lines)),
		UsageNotes:      []domain.Advisory{},
		DietaryWarnings: []domain.Advisory{},
		Summary:         summary,
		PrintedAt:       now,
	}
	if member != nil {
		r.MemberName = member.Name
	}
	for _, l := range lines {
		r.Lines = append(r.Lines, domain.ReceiptLine{
			ProductID:     l.ProductID,
			Name:          l.Name,
			Specification: l.Specification,
			UnitPrice:     l.UnitPrice,
			Quantity:      l.Quantity,
			Subtotal:      l.LineTotal(),
		})
		if l.UsageNote != "" {
			r.UsageNotes = append(r.UsageNotes, domain.Advisory{Name: l.Name, Text: l.UsageNote})
		}
		if l.DietaryWarning != "" {
			r.DietaryWarnings = append(r.DietaryWarnings, domain.Advisory{Name: l.Name, Text: l.DietaryWarning})
		}
	}
	return r
}

func (s *Session) Receipt() domain.Receipt {
	return BuildReceipt(s.lines, s.summary, s.member, s.now())
}
