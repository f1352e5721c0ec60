package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	runRepositoryContract(t, NewMemoryRepository())
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.Create(ctx, parkedOrder("H1-aaaaaaaa", "s1", time.Now())))

	o, err := repo.Get(ctx, "H1-aaaaaaaa")
	require.NoError(t, err)
	o.Lines[0].Quantity = 99

	again, err := repo.Get(ctx, "H1-aaaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Lines[0].Quantity)
}
