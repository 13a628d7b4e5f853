package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
	"github.com/tablevote/tablevote-backend/internal/infrastructure/external/overpass"
)

// enrichAll augments every provider-sourced candidate with dietary and
// cuisine tags from the geodata provider and a photo from the search
// provider, one set of lookups per candidate in parallel. Enrichment is
// best-effort: a failed or malformed lookup leaves the candidate with
// empty tag sets (or no photo) and the run continues.
func (s *Service) enrichAll(ctx context.Context, candidates []entities.Place) []entities.Place {
	enriched := make([]entities.Place, len(candidates))
	copy(enriched, candidates)

	var wg sync.WaitGroup
	for i := range enriched {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tags := s.lookupTags(ctx, enriched[i].Lat, enriched[i].Lng)
			enriched[i].DietaryFlags = tags.DietaryFlags
			enriched[i].Cuisines = append(enriched[i].Cuisines, tags.Cuisines...)
			if enriched[i].PhotoURL == "" {
				enriched[i].PhotoURL = s.lookupPhoto(ctx, enriched[i].ID)
			}
		}(i)
	}
	wg.Wait()

	return enriched
}

// lookupPhoto resolves at most one photo URL for a place. A miss or a
// provider error means no photo, never a failed run.
func (s *Service) lookupPhoto(ctx context.Context, placeID string) string {
	photoURL, err := s.searcher.PhotoURL(ctx, placeID)
	if err != nil {
		s.logger.Warn("photo lookup failed, continuing without photo",
			zap.String("place_id", placeID),
			zap.Error(err),
		)
		return ""
	}
	return photoURL
}

// lookupTags resolves tags for one coordinate, consulting the cache first.
// Tag data for a fixed coordinate changes rarely, so hits are cheap wins
// against a rate-limited public endpoint.
func (s *Service) lookupTags(ctx context.Context, lat, lng float64) overpass.Tags {
	key := tagCacheKey(lat, lng)

	if cached, ok := s.tagCache.Get(ctx, key); ok {
		var tags overpass.Tags
		if err := json.Unmarshal([]byte(cached), &tags); err == nil {
			return tags
		}
	}

	tags, err := s.tagClient.Lookup(ctx, lat, lng)
	if err != nil {
		s.logger.Warn("tag enrichment failed, continuing without tags",
			zap.Float64("lat", lat),
			zap.Float64("lng", lng),
			zap.Error(err),
		)
		return overpass.Tags{}
	}

	if payload, err := json.Marshal(tags); err == nil {
		s.tagCache.Set(ctx, key, string(payload), s.cfg.CacheTTL)
	}
	return tags
}

// tagCacheKey rounds coordinates to ~10m so neighboring lookups share an
// entry.
func tagCacheKey(lat, lng float64) string {
	return fmt.Sprintf("tags:%.4f:%.4f", lat, lng)
}
