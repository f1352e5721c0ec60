package cart

import (
	"context"
	"testing"

	"github.com/fjod/pharmacy_cashier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRewards = []domain.PointReward{
	{ID: 1, Name: "Thermometer", PointsRequired: 1000, Active: true},
	{ID: 2, Name: "Mask pack", PointsRequired: 100, Active: true},
	{ID: 3, Name: "Blood pressure check", PointsRequired: 50, Active: false},
	{ID: 4, Name: "Hand cream", PointsRequired: 1500, Active: true},
	{ID: 5, Name: "Cotton swabs", PointsRequired: 50, Active: true},
}

func TestEligibleRewards(t *testing.T) {
	got := EligibleRewards(1200, testRewards)
	require.Len(t, got, 3)
	assert.Equal(t, int64(5), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, int64(1), got[2].ID)

	assert.Empty(t, EligibleRewards(10, testRewards))
	assert.Empty(t, EligibleRewards(5000, nil))
}

func TestMemberRewards(t *testing.T) {
	ctx := context.Background()
	s := NewSession(Collaborators{
		Products: testCatalog(),
		Members:  testMembers(),
		Rewards:  &mockRewards{rewards: testRewards},
	})

	got, err := s.MemberRewards(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.SelectMember(ctx, "silver"))
	got, err = s.MemberRewards(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Cotton swabs", got[0].Name)

	require.NoError(t, s.AddItem(ctx, "A"))
	assert.Equal(t, "23.75", s.Summary().Payable.StringFixed(2))
}

func TestMemberRewards_BackendDown(t *testing.T) {
	ctx := context.Background()
	s := NewSession(Collaborators{
		Members: testMembers(),
		Rewards: &mockRewards{err: errBackendDown},
	})
	require.NoError(t, s.SelectMember(ctx, "gold"))

	_, err := s.MemberRewards(ctx)
	assert.ErrorIs(t, err, ErrCollaborator)
}
