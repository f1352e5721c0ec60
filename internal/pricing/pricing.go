package pricing

import (
	"strings"

	"github.com/fjod/pharmacy_cashier/internal/domain"
	"github.com/shopspring/decimal"
)

type tierRule struct {
	keywords   []string
	multiplier decimal.Decimal
}

// Checked in order; the first rule with a matching keyword wins.
var tierRules = []tierRule{
	{keywords: []string{"silver", "白银"}, multiplier: decimal.RequireFromString("0.95")},
	{keywords: []string{"gold", "黄金"}, multiplier: decimal.RequireFromString("0.90")},
	{keywords: []string{"platinum", "铂金"}, multiplier: decimal.RequireFromString("0.85")},
}

var one = decimal.NewFromInt(1)

// TierMultiplier maps a free-text member tier label to the factor applied to
// retail prices. Unknown or empty labels get 1.
func TierMultiplier(label string) decimal.Decimal {
	lvl := strings.ToLower(strings.TrimSpace(label))
	if lvl == "" {
		return one
	}
	for _, r := range tierRules {
		for _, kw := range r.keywords {
			if strings.Contains(lvl, kw) {
				return r.multiplier
			}
		}
	}
	return one
}

// Resolve returns the effective unit price. An explicit member price always
// wins over the tier multiplier once a member is selected.
func Resolve(retail decimal.Decimal, memberPrice *decimal.Decimal, member *domain.Member) decimal.Decimal {
	if member == nil {
		return retail
	}
	if memberPrice != nil {
		return *memberPrice
	}
	return retail.Mul(TierMultiplier(member.TierLabel)).Round(2)
}

func ResolveProduct(p domain.Product, member *domain.Member) decimal.Decimal {
	return Resolve(p.RetailPrice, p.MemberPrice, member)
}

// Reprice recomputes UnitPrice of every line in place from its reference
// prices, never from the current UnitPrice.
func Reprice(lines []domain.CartLine, member *domain.Member) {
	for i := range lines {
		lines[i].UnitPrice = Resolve(lines[i].RetailUnitPrice, lines[i].MemberUnitPrice, member)
	}
}
