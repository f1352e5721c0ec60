package cart

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/fjod/pharmacy_cashier/internal/domain"
	"github.com/fjod/pharmacy_cashier/internal/pricing"
	"github.com/shopspring/decimal"
)

// Session is the active transaction of one cashier terminal. It is not safe for
// concurrent use; callers serialise access.
type Session struct {
	products ProductLookup
	members  MemberLookup
	parked   ParkedOrderStore
	orders   OrderSubmitter
	rewards  RewardLookup

	storeID  string
	now      func() time.Time
	onChange func(domain.Summary)

	lines    []domain.CartLine
	member   *domain.Member
	discount decimal.Decimal
	summary  domain.Summary
}

type Option func(*Session)

// WithStoreID stamps parked orders with the store they were created in.
func WithStoreID(id string) Option {
	return func(s *Session) { s.storeID = id }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithOnChange registers a hook invoked with the fresh summary after every
// successful state change.
func WithOnChange(fn func(domain.Summary)) Option {
	return func(s *Session) { s.onChange = fn }
}

func NewSession(c Collaborators, opts ...Option) *Session {
	s := &Session{
		products: c.Products,
		members:  c.Members,
		parked:   c.Parked,
		orders:   c.Orders,
		rewards:  c.Rewards,
		now:      time.Now,
		discount: decimal.Zero,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.summary = Summarize(nil, s.discount)
	return s
}

// Lines returns a copy of the active cart lines in insertion order.
func (s *Session) Lines() []domain.CartLine {
	return domain.CloneLines(s.lines)
}

func (s *Session) Member() *domain.Member {
	if s.member == nil {
		return nil
	}
	m := *s.member
	return &m
}

func (s *Session) Discount() decimal.Decimal { return s.discount }

func (s *Session) Summary() domain.Summary { return s.summary }

func (s *Session) IsEmpty() bool { return len(s.lines) == 0 }

func (s *Session) changed() {
	s.summary = Summarize(s.lines, s.discount)
	if s.onChange != nil {
		s.onChange(s.summary)
	}
}

func (s *Session) indexOf(productID string) int {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem looks the product up and adds it. A lookup failure leaves the cart
// untouched.
func (s *Session) AddItem(ctx context.Context, productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return validation("product id is required")
	}
	if i := s.indexOf(productID); i >= 0 {
		s.lines[i].Quantity++
		s.changed()
		return nil
	}
	if s.products == nil {
		return &CollaboratorError{Op: "lookup product", Err: ErrNoCollaborator}
	}
	p, err := s.products.Product(ctx, productID)
	if err != nil {
		return collaborator("lookup product", err)
	}
	if p == nil {
		return notFound("product", productID)
	}
	s.AddProduct(*p)
	return nil
}

// AddProduct bumps the quantity of an existing line without repricing it, or
// appends a new line priced for the current member.
func (s *Session) AddProduct(p domain.Product) {
	if i := s.indexOf(p.ID); i >= 0 {
		s.lines[i].Quantity++
		s.changed()
		return
	}
	line := domain.CartLine{
		ProductID:       p.ID,
		Name:            p.Name,
		Specification:   p.Specification,
		UnitPrice:       pricing.ResolveProduct(p, s.member),
		RetailUnitPrice: p.RetailPrice,
		Quantity:        1,
		UsageNote:       p.UsageNote,
		DietaryWarning:  p.DietaryWarning,
	}
	if p.MemberPrice != nil {
		mp := *p.MemberPrice
		line.MemberUnitPrice = &mp
	}
	s.lines = append(s.lines, line)
	s.changed()
}

// SetQuantity clamps n to at least 1.
func (s *Session) SetQuantity(productID string, n int) error {
	i := s.indexOf(productID)
	if i < 0 {
		return notFound("product", productID)
	}
	if n < 1 {
		n = 1
	}
	s.lines[i].Quantity = n
	s.changed()
	return nil
}

func (s *Session) Increment(productID string) error {
	i := s.indexOf(productID)
	if i < 0 {
		return notFound("product", productID)
	}
	s.lines[i].Quantity++
	s.changed()
	return nil
}

// Decrement never takes a line below quantity 1; use Remove to drop it.
func (s *Session) Decrement(productID string) error {
	i := s.indexOf(productID)
	if i < 0 {
		return notFound("product", productID)
	}
	if s.lines[i].Quantity > 1 {
		s.lines[i].Quantity--
	}
	s.changed()
	return nil
}

func (s *Session) Remove(productID string) error {
	i := s.indexOf(productID)
	if i < 0 {
		return notFound("product", productID)
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.changed()
	return nil
}

// ParseQuantity turns operator input into a quantity. Anything that is not a
// positive integer becomes 1.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (s *Session) SelectMember(ctx context.Context, memberID string) error {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return validation("member id is required")
	}
	if s.members == nil {
		return &CollaboratorError{Op: "lookup member", Err: ErrNoCollaborator}
	}
	m, err := s.members.Member(ctx, memberID)
	if err != nil {
		return collaborator("lookup member", err)
	}
	if m == nil {
		return notFound("member", memberID)
	}
	s.SetMember(*m)
	return nil
}

// SetMember makes m the member context and reprices every line.
func (s *Session) SetMember(m domain.Member) {
	s.member = &m
	pricing.Reprice(s.lines, s.member)
	s.changed()
}

// ClearMember drops the member context; every line returns to retail price.
func (s *Session) ClearMember() {
	s.member = nil
	pricing.Reprice(s.lines, nil)
	s.changed()
}

func (s *Session) SetDiscount(d decimal.Decimal) error {
	if d.IsNegative() {
		return validation("discount must not be negative")
	}
	s.discount = d
	s.changed()
	return nil
}

// SetDiscountInput parses operator text. Empty input resets the discount.
func (s *Session) SetDiscountInput(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.SetDiscount(decimal.Zero)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return validation("discount is not a number")
	}
	return s.SetDiscount(d)
}

// clear empties the cart and resets the discount. The member context stays.
func (s *Session) clear() {
	s.lines = nil
	s.discount = decimal.Zero
	s.changed()
}
