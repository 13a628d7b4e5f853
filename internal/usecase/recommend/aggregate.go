package recommend

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
)

// GroupRestrictions returns the union of every member's stored dietary
// restrictions. Duplicates across members are kept: downstream filtering
// only checks membership, so deduplication buys nothing.
func (s *Service) GroupRestrictions(ctx context.Context, groupID uuid.UUID) ([]string, error) {
	members, err := s.groupRepo.FindMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	var restrictions []string
	for _, m := range members {
		restrictions = append(restrictions, m.Restrictions()...)
	}
	return restrictions, nil
}

// MeetingPreferences aggregates the per-member soft submissions for a
// meeting into frequency-ranked cuisine and budget lists.
func (s *Service) MeetingPreferences(ctx context.Context, meetingID uuid.UUID) (entities.MeetingPreferences, error) {
	prefs, err := s.preferenceRepo.FindByMeeting(ctx, meetingID)
	if err != nil {
		return entities.MeetingPreferences{}, err
	}

	var cuisines, budgets []string
	for _, p := range prefs {
		cuisines = append(cuisines, p.CuisineList()...)
		if p.Budget != "" {
			budgets = append(budgets, p.Budget)
		}
	}

	return entities.MeetingPreferences{
		TopCuisines: rankByFrequency(cuisines),
		TopBudgets:  rankByFrequency(budgets),
	}, nil
}

// rankByFrequency returns the distinct values of the input ordered by
// occurrence count descending. The sort is stable over first-seen order,
// so equal counts keep a deterministic relative order across calls.
func rankByFrequency(values []string) []string {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order
}
