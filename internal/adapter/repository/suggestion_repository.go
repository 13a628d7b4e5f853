package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
	"github.com/tablevote/tablevote-backend/internal/domain/repositories"
)

// suggestionRepository implements the SuggestionRepository interface
type suggestionRepository struct {
	db *gorm.DB
}

// NewSuggestionRepository creates a new suggestion repository
func NewSuggestionRepository(db *gorm.DB) repositories.SuggestionRepository {
	return &suggestionRepository{db: db}
}

// Create persists a new manual suggestion
func (r *suggestionRepository) Create(ctx context.Context, suggestion *entities.Suggestion) error {
	return r.db.WithContext(ctx).Create(suggestion).Error
}

// FindByMeeting retrieves all suggestions for a meeting, oldest first
func (r *suggestionRepository) FindByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Suggestion, error) {
	var suggestions []*entities.Suggestion
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&suggestions).Error

	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

// preferenceRepository implements the PreferenceRepository interface
type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *gorm.DB) repositories.PreferenceRepository {
	return &preferenceRepository{db: db}
}

// Upsert creates or replaces a member's preference for a meeting
func (r *preferenceRepository) Upsert(ctx context.Context, pref *entities.Preference) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meeting_id"}, {Name: "member_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"cuisines", "budget", "updated_at"}),
		}).
		Create(pref).Error
}

// FindByMeeting retrieves all preference submissions for a meeting, oldest first
func (r *preferenceRepository) FindByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Preference, error) {
	var prefs []*entities.Preference
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&prefs).Error

	if err != nil {
		return nil, err
	}
	return prefs, nil
}
