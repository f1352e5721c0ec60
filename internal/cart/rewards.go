package cart

import (
	"context"
	"sort"

	"github.com/fjod/pharmacy_cashier/internal/domain"
)

// EligibleRewards filters rewards down to the active ones a member holding
// points can redeem, cheapest first.
func EligibleRewards(points int, rewards []domain.PointReward) []domain.PointReward {
	out := make([]domain.PointReward, 0, len(rewards))
	for _, r := range rewards {
		if r.Active && r.PointsRequired <= points {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PointsRequired < out[j].PointsRequired
	})
	return out
}

// MemberRewards lists rewards the selected member qualifies for. Points never
// reduce the payable amount; this is shown to the cashier only.
func (s *Session) MemberRewards(ctx context.Context) ([]domain.PointReward, error) {
	if s.member == nil {
		return []domain.PointReward{}, nil
	}
	if s.rewards == nil {
		return nil, &CollaboratorError{Op: "list rewards", Err: ErrNoCollaborator}
	}
	all, err := s.rewards.ActiveRewards(ctx)
	if err != nil {
		return nil, collaborator("list rewards", err)
	}
	return EligibleRewards(s.member.Points, all), nil
}
