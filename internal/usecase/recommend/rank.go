package recommend

import (
	"sort"
	"strings"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
)

// applyHalalFilter enforces the only hard dietary rule. When Halal is among
// the group restrictions, candidates tagged with other diets but not Halal
// are dropped; candidates with no dietary data at all pass, because absence
// of data is not a violation. Kept candidates are stably reordered so
// Halal-flagged ones come first.
func applyHalalFilter(candidates []entities.Place, restrictions []string) []entities.Place {
	if !contains(restrictions, entities.RestrictionHalal) {
		return candidates
	}

	kept := make([]entities.Place, 0, len(candidates))
	for _, c := range candidates {
		if c.HasFlag(entities.RestrictionHalal) || c.Untagged() {
			kept = append(kept, c)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].HasFlag(entities.RestrictionHalal) && !kept[j].HasFlag(entities.RestrictionHalal)
	})
	return kept
}

// softTagFloor guarantees representation for each recognized soft dietary
// tag the group asked for: all candidates carrying the tag, padded with
// untagged candidates up to two total when the tagged ones are scarce.
// The floor is additive; it never removes anything from the deck.
func softTagFloor(candidates []entities.Place, restrictions []string) []entities.Place {
	var floor []entities.Place
	for _, tag := range entities.SoftDietaryTags {
		if !contains(restrictions, tag) {
			continue
		}

		var tagged []entities.Place
		for _, c := range candidates {
			if c.HasFlag(tag) {
				tagged = append(tagged, c)
			}
		}

		if len(tagged) < 2 {
			for _, c := range candidates {
				if len(tagged) >= 2 {
					break
				}
				if c.Untagged() {
					tagged = append(tagged, c)
				}
			}
		}

		floor = append(floor, tagged...)
	}
	return floor
}

// mergeByID builds the final candidate set keyed by place id, preserving
// insertion order. Earlier groups win id collisions, which is why manual
// suggestions go in first: they are guaranteed present no matter what the
// filters did to provider candidates.
func mergeByID(groups ...[]entities.Place) []entities.Place {
	seen := make(map[string]bool)
	var merged []entities.Place
	for _, group := range groups {
		for _, c := range group {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			merged = append(merged, c)
		}
	}
	return merged
}

// rankCandidates orders the merged deck by a composite descending score:
// carrying any requested soft dietary tag outranks everything, then a
// category/cuisine match against the top cuisines, then a budget-band
// match. The sort is stable, so unboosted candidates keep their input
// order.
func rankCandidates(candidates []entities.Place, restrictions []string, prefs entities.MeetingPreferences) []entities.Place {
	requested := requestedSoftTags(restrictions)

	score := func(p entities.Place) int {
		s := 0
		if hasAnyFlag(p, requested) {
			s += 4
		}
		if matchesCuisine(p, prefs.TopCuisines) {
			s += 2
		}
		if contains(prefs.TopBudgets, p.Budget) && p.Budget != "" {
			s++
		}
		return s
	}

	ranked := make([]entities.Place, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return score(ranked[i]) > score(ranked[j])
	})
	return ranked
}

// requestedSoftTags intersects the group restrictions with the recognized
// soft dietary tags.
func requestedSoftTags(restrictions []string) []string {
	var tags []string
	for _, tag := range entities.SoftDietaryTags {
		if contains(restrictions, tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}

func hasAnyFlag(p entities.Place, tags []string) bool {
	for _, tag := range tags {
		if p.HasFlag(tag) {
			return true
		}
	}
	return false
}

func matchesCuisine(p entities.Place, topCuisines []string) bool {
	for _, cuisine := range topCuisines {
		if strings.EqualFold(p.Category, cuisine) {
			return true
		}
		for _, c := range p.Cuisines {
			if strings.EqualFold(c, cuisine) {
				return true
			}
		}
	}
	return false
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
