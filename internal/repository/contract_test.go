package repository

import (
	"context"
	"testing"
	"time"

	"github.com/fjod/pharmacy_cashier/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parkedOrder(id, store string, at time.Time) domain.ParkedOrder {
	mp := decimal.RequireFromString("10.00")
	return domain.ParkedOrder{
		HangID:     id,
		StoreID:    store,
		MemberID:   "m-1",
		MemberName: "Li Wei",
		CreatedAt:  at,
		Lines: []domain.CartLine{
			{
				ProductID:       "A",
				Name:            "Amoxicillin",
				Specification:   "0.25g*24",
				UnitPrice:       decimal.RequireFromString("22.50"),
				RetailUnitPrice: decimal.RequireFromString("25.00"),
				Quantity:        2,
				UsageNote:       "Twice daily",
				DietaryWarning:  "No alcohol",
			},
			{
				ProductID:       "B",
				Name:            "Vitamin C",
				UnitPrice:       mp,
				RetailUnitPrice: decimal.RequireFromString("12.80"),
				MemberUnitPrice: &mp,
				Quantity:        1,
			},
		},
	}
}

// runRepositoryContract exercises behaviour every ParkedOrderRepository must share.
func runRepositoryContract(t *testing.T, repo ParkedOrderRepository) {
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	t.Run("get missing", func(t *testing.T) {
		o, err := repo.Get(ctx, "H0-missing")
		assert.ErrorIs(t, err, ErrParkedOrderNotFound)
		assert.Nil(t, o)
	})

	t.Run("create and get", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, parkedOrder("H1-aaaaaaaa", "s1", base)))

		o, err := repo.Get(ctx, "H1-aaaaaaaa")
		require.NoError(t, err)
		assert.Equal(t, "s1", o.StoreID)
		assert.Equal(t, "Li Wei", o.MemberName)
		assert.True(t, base.Equal(o.CreatedAt))
		require.Len(t, o.Lines, 2)
		assert.Equal(t, "22.50", o.Lines[0].UnitPrice.StringFixed(2))
		assert.Equal(t, "25.00", o.Lines[0].RetailUnitPrice.StringFixed(2))
		assert.Nil(t, o.Lines[0].MemberUnitPrice)
		assert.Equal(t, "Twice daily", o.Lines[0].UsageNote)
		require.NotNil(t, o.Lines[1].MemberUnitPrice)
		assert.Equal(t, "10.00", o.Lines[1].MemberUnitPrice.StringFixed(2))
		assert.Equal(t, 3, o.ItemCount())
	})

	t.Run("list newest first per store", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, parkedOrder("H2-bbbbbbbb", "s1", base.Add(time.Minute))))
		require.NoError(t, repo.Create(ctx, parkedOrder("H3-cccccccc", "s2", base.Add(2*time.Minute))))
		require.NoError(t, repo.Create(ctx, parkedOrder("H4-dddddddd", "s1", base.Add(3*time.Minute))))

		orders, err := repo.List(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, orders, 3)
		assert.Equal(t, "H4-dddddddd", orders[0].HangID)
		assert.Equal(t, "H2-bbbbbbbb", orders[1].HangID)
		assert.Equal(t, "H1-aaaaaaaa", orders[2].HangID)

		orders, err = repo.List(ctx, "nowhere")
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "H2-bbbbbbbb"))
		assert.ErrorIs(t, repo.Delete(ctx, "H2-bbbbbbbb"), ErrParkedOrderNotFound)

		_, err := repo.Get(ctx, "H2-bbbbbbbb")
		assert.ErrorIs(t, err, ErrParkedOrderNotFound)

		orders, err := repo.List(ctx, "s1")
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("duplicate hang id", func(t *testing.T) {
		assert.Error(t, repo.Create(ctx, parkedOrder("H1-aaaaaaaa", "s1", base)))
	})
}
