package cart

import (
	"context"
	"testing"
	"time"

	"github.com/fjod/pharmacy_cashier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceipt(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 5, 2, 14, 0, 0, 0, time.UTC)
	s, _, _ := newTestSession(WithClock(func() time.Time { return at }))

	require.NoError(t, s.AddItem(ctx, "A"))
	require.NoError(t, s.AddItem(ctx, "B"))
	require.NoError(t, s.AddItem(ctx, "C"))
	require.NoError(t, s.SetQuantity("C", 3))
	require.NoError(t, s.SelectMember(ctx, "gold"))

	r := s.Receipt()
	require.Len(t, r.Lines, 3)
	assert.Equal(t, "Amoxicillin", r.Lines[0].Name)
	assert.Equal(t, "0.25g*24", r.Lines[0].Specification)
	assert.Equal(t, "22.50", r.Lines[0].Subtotal.StringFixed(2))
	assert.Equal(t, "26.97", r.Lines[2].Subtotal.StringFixed(2))

	assert.Equal(t, []domain.Advisory{
		{Name: "Amoxicillin", Text: "Twice daily after meals"},
	}, r.UsageNotes)
	assert.Equal(t, []domain.Advisory{
		{Name: "Amoxicillin", Text: "No alcohol"},
		{Name: "Ibuprofen", Text: "Avoid spicy food"},
	}, r.DietaryWarnings)

	assert.Equal(t, "Li Wei", r.MemberName)
	assert.Equal(t, at, r.PrintedAt)
	assert.Equal(t, s.Summary(), r.Summary)
}

func TestReceipt_EmptyCart(t *testing.T) {
	r := BuildReceipt(nil, Summarize(nil, dec("0")), nil, time.Time{})
	assert.Empty(t, r.Lines)
	assert.NotNil(t, r.UsageNotes)
	assert.NotNil(t, r.DietaryWarnings)
	assert.Empty(t, r.MemberName)
}
