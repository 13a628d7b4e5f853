package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
	"github.com/tablevote/tablevote-backend/internal/domain/repositories"
	"github.com/tablevote/tablevote-backend/internal/infrastructure/cache"
	"github.com/tablevote/tablevote-backend/internal/infrastructure/external/overpass"
	usecaseErrors "github.com/tablevote/tablevote-backend/internal/usecase/errors"
	"github.com/tablevote/tablevote-backend/pkg/config"
)

// PlaceSearcher fetches dining candidates from the points-of-interest
// search provider, by coordinates or by free-text location, and resolves
// at most one photo per place.
type PlaceSearcher interface {
	SearchByCoordinates(ctx context.Context, lat, lng float64, limit int) ([]entities.Place, error)
	SearchByText(ctx context.Context, near string, limit int) ([]entities.Place, error)
	PhotoURL(ctx context.Context, placeID string) (string, error)
}

// TagLookup resolves dietary and cuisine tags for a coordinate from the
// open geodata provider.
type TagLookup interface {
	Lookup(ctx context.Context, lat, lng float64) (overpass.Tags, error)
}

// Service builds the recommendation deck for a meeting: source candidates
// plus manual suggestions, enriched, filtered against group restrictions
// and ranked by aggregated soft preferences. Every served deck is merged
// into the meeting candidate store, which backs the outage fallback and
// the finalize lookup.
type Service struct {
	groupRepo      repositories.GroupRepository
	meetingRepo    repositories.MeetingRepository
	suggestionRepo repositories.SuggestionRepository
	preferenceRepo repositories.PreferenceRepository
	candidateRepo  repositories.CandidateRepository
	searcher       PlaceSearcher
	tagClient      TagLookup
	tagCache       cache.Store
	cfg            config.RecommendConfig
	logger         *zap.Logger
}

// NewService creates a new recommendation service
func NewService(
	groupRepo repositories.GroupRepository,
	meetingRepo repositories.MeetingRepository,
	suggestionRepo repositories.SuggestionRepository,
	preferenceRepo repositories.PreferenceRepository,
	candidateRepo repositories.CandidateRepository,
	searcher PlaceSearcher,
	tagClient TagLookup,
	tagCache cache.Store,
	cfg config.RecommendConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		groupRepo:      groupRepo,
		meetingRepo:    meetingRepo,
		suggestionRepo: suggestionRepo,
		preferenceRepo: preferenceRepo,
		candidateRepo:  candidateRepo,
		searcher:       searcher,
		tagClient:      tagClient,
		tagCache:       tagCache,
		cfg:            cfg,
		logger:         logger,
	}
}

// FetchRecommendations builds the ordered candidate deck for a meeting:
// manual suggestions first (always kept), then source candidates fetched
// by the meeting location, enriched in parallel, hard-filtered for Halal,
// topped up per requested soft tag, merged by id and stably ranked. The
// served deck is merged into the candidate store.
func (s *Service) FetchRecommendations(ctx context.Context, groupID, meetingID uuid.UUID) ([]entities.Place, error) {
	meeting, err := s.getMeeting(ctx, groupID, meetingID)
	if err != nil {
		return nil, err
	}

	manual, err := s.manualPlaces(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	sourced, restored, err := s.fetchSourceCandidates(ctx, meeting)
	if err != nil {
		return nil, err
	}
	if !restored {
		// Stored candidates already carry their tags.
		sourced = s.enrichAll(ctx, sourced)
	}

	restrictions, err := s.GroupRestrictions(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate restrictions: %w", err)
	}
	prefs, err := s.MeetingPreferences(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate preferences: %w", err)
	}

	filtered := applyHalalFilter(sourced, restrictions)
	floor := softTagFloor(filtered, restrictions)
	merged := mergeByID(manual, floor, filtered)

	ranked := rankCandidates(merged, restrictions, prefs)
	s.persistDeck(ctx, meetingID, ranked)
	return ranked, nil
}

// FetchManual returns the meeting's manual suggestions as candidates,
// verbatim and in submission order.
func (s *Service) FetchManual(ctx context.Context, groupID, meetingID uuid.UUID) ([]entities.Place, error) {
	if _, err := s.getMeeting(ctx, groupID, meetingID); err != nil {
		return nil, err
	}
	return s.manualPlaces(ctx, meetingID)
}

func (s *Service) manualPlaces(ctx context.Context, meetingID uuid.UUID) ([]entities.Place, error) {
	suggestions, err := s.suggestionRepo.FindByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch suggestions: %w", err)
	}

	places := make([]entities.Place, 0, len(suggestions))
	for _, sg := range suggestions {
		places = append(places, sg.ToPlace())
	}
	return places, nil
}

// AddSuggestion persists a member-submitted candidate for a meeting.
func (s *Service) AddSuggestion(ctx context.Context, groupID, meetingID, memberID uuid.UUID, place entities.Place) (*entities.Suggestion, error) {
	if place.ID == "" {
		// Manually entered places have no provider identifier.
		place.ID = uuid.New().String()
	}
	if place.Name == "" {
		return nil, usecaseErrors.ErrInvalidInput
	}
	if !entities.IsValidBudget(place.Budget) {
		return nil, usecaseErrors.ErrInvalidBudgetBand
	}
	if _, err := s.getMeeting(ctx, groupID, meetingID); err != nil {
		return nil, err
	}
	if err := s.checkMember(ctx, groupID, memberID); err != nil {
		return nil, err
	}

	suggestion := &entities.Suggestion{
		MeetingID:    meetingID,
		CreatedBy:    memberID,
		PlaceID:      place.ID,
		Name:         place.Name,
		Address:      place.Address,
		Lat:          place.Lat,
		Lng:          place.Lng,
		Category:     place.Category,
		Cuisines:     entities.JSONList(place.Cuisines),
		Budget:       place.Budget,
		DietaryFlags: entities.JSONList(place.DietaryFlags),
		CategoryIcon: place.CategoryIcon,
	}
	if err := s.suggestionRepo.Create(ctx, suggestion); err != nil {
		return nil, fmt.Errorf("failed to create suggestion: %w", err)
	}
	return suggestion, nil
}

// SubmitPreference records (or replaces) a member's soft preferences for a
// meeting. An empty budget means no preference.
func (s *Service) SubmitPreference(ctx context.Context, groupID, meetingID, memberID uuid.UUID, cuisines []string, budget string) error {
	if !entities.IsValidBudget(budget) {
		return usecaseErrors.ErrInvalidBudgetBand
	}
	if _, err := s.getMeeting(ctx, groupID, meetingID); err != nil {
		return err
	}
	if err := s.checkMember(ctx, groupID, memberID); err != nil {
		return err
	}

	pref := &entities.Preference{
		MeetingID: meetingID,
		MemberID:  memberID,
		Cuisines:  entities.JSONList(cuisines),
		Budget:    budget,
	}
	if err := s.preferenceRepo.Upsert(ctx, pref); err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}
	return nil
}

// getMeeting loads a meeting and verifies it belongs to the group.
func (s *Service) getMeeting(ctx context.Context, groupID, meetingID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	if meeting.GroupID != groupID {
		return nil, usecaseErrors.ErrMeetingNotInGroup
	}
	return meeting, nil
}

// checkMember verifies the member exists and belongs to the group.
// Suggestions and preferences from outside the roster would skew the
// aggregated ranking, so member-scoped writes run through here first.
func (s *Service) checkMember(ctx context.Context, groupID, memberID uuid.UUID) error {
	member, err := s.groupRepo.FindMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrMemberNotFound
		}
		return fmt.Errorf("failed to get member: %w", err)
	}
	if member.GroupID != groupID {
		return usecaseErrors.ErrMemberNotInGroup
	}
	return nil
}

// fetchSourceCandidates resolves the meeting location and queries the
// search provider: coordinates first, free text second. Provider failure
// falls back to the configured default coordinate so a transient outage
// never empties the deck; only a meeting with no location at all is an
// error, because that is caller misuse rather than bad luck. The restored
// result is true when the deck came from the candidate store instead of
// the provider.
func (s *Service) fetchSourceCandidates(ctx context.Context, meeting *entities.Meeting) ([]entities.Place, bool, error) {
	var places []entities.Place
	var err error

	switch {
	case meeting.HasCoordinates():
		places, err = s.searchWithRetry(ctx, func(ctx context.Context) ([]entities.Place, error) {
			return s.searcher.SearchByCoordinates(ctx, *meeting.Lat, *meeting.Lng, s.cfg.SearchLimit)
		})
	case meeting.HasLocationText():
		places, err = s.searchWithRetry(ctx, func(ctx context.Context) ([]entities.Place, error) {
			return s.searcher.SearchByText(ctx, *meeting.LocationText, s.cfg.SearchLimit)
		})
	default:
		return nil, false, usecaseErrors.ErrNoMeetingLocation
	}

	if err == nil {
		return places, false, nil
	}

	s.logger.Warn("place search failed, falling back to default coordinate",
		zap.String("meeting_id", meeting.ID.String()),
		zap.Error(err),
	)

	places, err = s.searchWithRetry(ctx, func(ctx context.Context) ([]entities.Place, error) {
		return s.searcher.SearchByCoordinates(ctx, s.cfg.DefaultLat, s.cfg.DefaultLng, s.cfg.SearchLimit)
	})
	if err == nil {
		return places, false, nil
	}

	// Even the fallback is down. Serve the last stored deck if one exists,
	// otherwise degrade to manual suggestions only.
	if stored := s.storedCandidates(ctx, meeting.ID); len(stored) > 0 {
		s.logger.Warn("place search unavailable, serving stored candidates",
			zap.String("meeting_id", meeting.ID.String()),
			zap.Int("count", len(stored)),
			zap.Error(err),
		)
		return stored, true, nil
	}

	s.logger.Warn("fallback place search failed, continuing with manual suggestions only",
		zap.String("meeting_id", meeting.ID.String()),
		zap.Error(err),
	)
	return nil, false, nil
}

// storedCandidates loads the meeting's persisted deck, oldest first.
func (s *Service) storedCandidates(ctx context.Context, meetingID uuid.UUID) []entities.Place {
	records, err := s.candidateRepo.FindByMeeting(ctx, meetingID)
	if err != nil {
		s.logger.Warn("failed to load stored candidates",
			zap.String("meeting_id", meetingID.String()),
			zap.Error(err),
		)
		return nil
	}

	places := make([]entities.Place, 0, len(records))
	for _, rec := range records {
		places = append(places, rec.ToPlace())
	}
	return places
}

// persistDeck merges the served deck into the meeting candidate store.
// Best-effort: the store backs the outage fallback and the finalize
// lookup, never the response itself.
func (s *Service) persistDeck(ctx context.Context, meetingID uuid.UUID, deck []entities.Place) {
	for i := range deck {
		record := entities.CandidateFromPlace(meetingID, deck[i])
		if err := s.candidateRepo.Merge(ctx, &record); err != nil {
			s.logger.Warn("failed to store candidate",
				zap.String("meeting_id", meetingID.String()),
				zap.String("place_id", deck[i].ID),
				zap.Error(err),
			)
			return
		}
	}
}

// searchWithRetry wraps one provider call in a short exponential backoff.
func (s *Service) searchWithRetry(ctx context.Context, fetch func(ctx context.Context) ([]entities.Place, error)) ([]entities.Place, error) {
	var places []entities.Place

	fetchFn := func() error {
		var err error
		places, err = fetch(ctx)
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = s.cfg.RetryElapsed
	if bo.MaxElapsedTime == 0 {
		bo.MaxElapsedTime = 8 * time.Second
	}

	if err := backoff.Retry(fetchFn, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return places, nil
}
