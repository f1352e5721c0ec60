package cart

import (
	"context"

	"github.com/fjod/pharmacy_cashier/internal/domain"
)

// ProductLookup resolves a product id against the catalog. Unknown ids must
// yield an error matching ErrNotFound.
type ProductLookup interface {
	Product(ctx context.Context, productID string) (*domain.Product, error)
}

type MemberLookup interface {
	Member(ctx context.Context, memberID string) (*domain.Member, error)
}

// ParkedOrderStore persists hang orders so they survive a terminal reload.
// Get and Delete return an error matching ErrNotFound for unknown ids.
type ParkedOrderStore interface {
	Create(ctx context.Context, order domain.ParkedOrder) (string, error)
	List(ctx context.Context) ([]domain.ParkedOrder, error)
	Get(ctx context.Context, hangID string) (*domain.ParkedOrder, error)
	Delete(ctx context.Context, hangID string) error
}

type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, payload domain.OrderPayload) (string, error)
}

type RewardLookup interface {
	ActiveRewards(ctx context.Context) ([]domain.PointReward, error)
}

// Collaborators groups the external dependencies of a Session. Any of them may
// be nil when the corresponding operations are never used.
type Collaborators struct {
	Products ProductLookup
	Members  MemberLookup
	Parked   ParkedOrderStore
	Orders   OrderSubmitter
	Rewards  RewardLookup
}
