package cart

import (
	"context"
	"errors"

	"github.com/fjod/pharmacy_cashier/internal/domain"
)

// Park persists a snapshot of the cart and then empties it. If the store
// rejects the snapshot the cart is left exactly as it was.
func (s *Session) Park(ctx context.Context) (*domain.ParkedOrder, error) {
	if s.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if s.parked == nil {
		return nil, &CollaboratorError{Op: "park order", Err: ErrNoCollaborator}
	}

	now := s.now()
	order := domain.ParkedOrder{
		HangID:    domain.NewHangID(now),
		StoreID:   s.storeID,
		Lines:     domain.CloneLines(s.lines),
		CreatedAt: now,
	}
	if s.member != nil {
		order.MemberID = s.member.ID
		order.MemberName = s.member.Name
	}

	id, err := s.parked.Create(ctx, order)
	if err != nil {
		return nil, &CollaboratorError{Op: "park order", Err: err}
	}
	if id != "" {
		order.HangID = id
	}

	s.clear()
	return &order, nil
}

// Restore replaces the active lines with a parked snapshot and removes the
// snapshot from the store. The store entry is deleted before the cart is
// touched, so a concurrent discard makes Restore fail with ErrNotFound and
// the cart stays intact. Member context is not changed.
func (s *Session) Restore(ctx context.Context, hangID string) (*domain.ParkedOrder, error) {
	if s.parked == nil {
		return nil, &CollaboratorError{Op: "restore order", Err: ErrNoCollaborator}
	}
	order, err := s.parked.Get(ctx, hangID)
	if err != nil {
		return nil, parkedErr("restore order", hangID, err)
	}
	if order == nil {
		return nil, notFound("parked order", hangID)
	}
	if err := s.parked.Delete(ctx, hangID); err != nil {
		return nil, parkedErr("restore order", hangID, err)
	}

	s.lines = domain.CloneLines(order.Lines)
	s.changed()
	return order, nil
}

// Discard deletes a parked order without touching the active cart.
func (s *Session) Discard(ctx context.Context, hangID string) error {
	if s.parked == nil {
		return &CollaboratorError{Op: "discard order", Err: ErrNoCollaborator}
	}
	if err := s.parked.Delete(ctx, hangID); err != nil {
		return parkedErr("discard order", hangID, err)
	}
	return nil
}

// ParkedOrders lists parked orders, newest first.
func (s *Session) ParkedOrders(ctx context.Context) ([]domain.ParkedOrder, error) {
	if s.parked == nil {
		return nil, &CollaboratorError{Op: "list parked orders", Err: ErrNoCollaborator}
	}
	orders, err := s.parked.List(ctx)
	if err != nil {
		return nil, &CollaboratorError{Op: "list parked orders", Err: err}
	}
	return orders, nil
}

func parkedErr(op, hangID string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return notFound("parked order", hangID)
	}
	return &CollaboratorError{Op: op, Err: err}
}
