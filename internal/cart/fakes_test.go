package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/fjod/pharmacy_cashier/internal/domain"
	"github.com/shopspring/decimal"
)

var errBackendDown = errors.New("backend down")

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type mockCatalog struct {
	m        sync.RWMutex
	products map[string]domain.Product
	calls    int
	err      error
}

func (m *mockCatalog) Product(_ context.Context, id string) (*domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, notFound("product", id)
	}
	return &p, nil
}

type mockMembers struct {
	members map[string]domain.Member
	err     error
}

func (m *mockMembers) Member(_ context.Context, id string) (*domain.Member, error) {
	if m.err != nil {
		return nil, m.err
	}
	mem, ok := m.members[id]
	if !ok {
		return nil, notFound("member", id)
	}
	return &mem, nil
}

type mockParkedStore struct {
	m         sync.RWMutex
	orders    map[string]domain.ParkedOrder
	order     []string
	creates   int
	createErr error
	getErr    error
	deleteErr error
}

func newMockParkedStore() *mockParkedStore {
	return &mockParkedStore{orders: map[string]domain.ParkedOrder{}}
}

func (m *mockParkedStore) Create(_ context.Context, o domain.ParkedOrder) (string, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.creates++
	if m.createErr != nil {
		return "", m.createErr
	}
	o.Lines = domain.CloneLines(o.Lines)
	m.orders[o.HangID] = o
	m.order = append(m.order, o.HangID)
	return o.HangID, nil
}

func (m *mockParkedStore) List(context.Context) ([]domain.ParkedOrder, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	out := []domain.ParkedOrder{}
	for i := len(m.order) - 1; i >= 0; i-- {
		if o, ok := m.orders[m.order[i]]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockParkedStore) Get(_ context.Context, id string) (*domain.ParkedOrder, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	o, ok := m.orders[id]
	if !ok {
		return nil, notFound("parked order", id)
	}
	o.Lines = domain.CloneLines(o.Lines)
	return &o, nil
}

func (m *mockParkedStore) Delete(_ context.Context, id string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.orders[id]; !ok {
		return notFound("parked order", id)
	}
	delete(m.orders, id)
	return nil
}

func (m *mockParkedStore) count() int {
	m.m.RLock()
	defer m.m.RUnlock()
	return len(m.orders)
}

type mockOrders struct {
	payloads []domain.OrderPayload
	orderID  string
	err      error
}

func (m *mockOrders) SubmitOrder(_ context.Context, p domain.OrderPayload) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.payloads = append(m.payloads, p)
	return m.orderID, nil
}

type mockRewards struct {
	rewards []domain.PointReward
	err     error
}

func (m *mockRewards) ActiveRewards(context.Context) ([]domain.PointReward, error) {
	return m.rewards, m.err
}

func testCatalog() *mockCatalog {
	return &mockCatalog{products: map[string]domain.Product{
		"A": {ID: "A", Name: "Amoxicillin", Specification: "0.25g*24", RetailPrice: dec("25.00"),
			UsageNote: "Twice daily after meals", DietaryWarning: "No alcohol"},
		"B": {ID: "B", Name: "Vitamin C", RetailPrice: dec("12.80"), MemberPrice: decPtr("10.00")},
		"C": {ID: "C", Name: "Ibuprofen", RetailPrice: dec("9.99"), DietaryWarning: "Avoid spicy food"},
	}}
}

func testMembers() *mockMembers {
	return &mockMembers{members: map[string]domain.Member{
		"gold":   {ID: "gold", Name: "Li Wei", Points: 1200, TierLabel: "Gold"},
		"silver": {ID: "silver", Name: "Zhang Min", Points: 80, TierLabel: "白银会员"},
		"plain":  {ID: "plain", Name: "Wang Fang", Points: 0, TierLabel: "普通会员"},
	}}
}
