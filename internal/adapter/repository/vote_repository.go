package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
	"github.com/tablevote/tablevote-backend/internal/domain/repositories"
)

// voteRepository implements the VoteRepository interface
type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *gorm.DB) repositories.VoteRepository {
	return &voteRepository{db: db}
}

// Upsert records a vote, replacing any earlier vote by the same member on
// the same candidate
func (r *voteRepository) Upsert(ctx context.Context, vote *entities.Vote) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meeting_id"}, {Name: "member_id"}, {Name: "place_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"liked", "updated_at"}),
		}).
		Create(vote).Error
}

// FindByMeeting retrieves the full vote log for a meeting
func (r *voteRepository) FindByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Vote, error) {
	var votes []*entities.Vote
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("updated_at ASC").
		Find(&votes).Error

	if err != nil {
		return nil, err
	}
	return votes, nil
}

// progressRepository implements the ProgressRepository interface
type progressRepository struct {
	db *gorm.DB
}

// NewProgressRepository creates a new swipe progress repository
func NewProgressRepository(db *gorm.DB) repositories.ProgressRepository {
	return &progressRepository{db: db}
}

// Upsert saves a member's deck position. The conflict assignments enforce
// the monotonic index and the sticky finished flag at the SQL level, so a
// late write from a stale client cannot rewind a session.
func (r *progressRepository) Upsert(ctx context.Context, progress *entities.SwipeProgress) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "meeting_id"}, {Name: "member_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"deck_index": gorm.Expr("GREATEST(swipe_progress.deck_index, EXCLUDED.deck_index)"),
				"finished":   gorm.Expr("swipe_progress.finished OR EXCLUDED.finished"),
				"updated_at": gorm.Expr("EXCLUDED.updated_at"),
			}),
		}).
		Create(progress).Error
}

// Find retrieves one member's progress, nil if absent
func (r *progressRepository) Find(ctx context.Context, meetingID, memberID uuid.UUID) (*entities.SwipeProgress, error) {
	var progress entities.SwipeProgress
	err := r.db.WithContext(ctx).
		Where("meeting_id = ? AND member_id = ?", meetingID, memberID).
		First(&progress).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &progress, nil
}

// FindByMeeting retrieves every member's progress for a meeting
func (r *progressRepository) FindByMeeting(ctx context.Context, meetingID uuid.UUID) ([]entities.SwipeProgress, error) {
	var entries []entities.SwipeProgress
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&entries).Error

	if err != nil {
		return nil, err
	}
	return entries, nil
}
