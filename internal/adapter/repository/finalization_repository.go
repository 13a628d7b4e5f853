package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
	"github.com/tablevote/tablevote-backend/internal/domain/repositories"
)

// candidateRepository implements the CandidateRepository interface
type candidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository creates a new meeting candidate repository
func NewCandidateRepository(db *gorm.DB) repositories.CandidateRepository {
	return &candidateRepository{db: db}
}

// Merge upserts a candidate record for a meeting
func (r *candidateRepository) Merge(ctx context.Context, record *entities.CandidateRecord) error {
	return mergeCandidate(r.db.WithContext(ctx), record)
}

// FindByMeeting retrieves all stored candidate records for a meeting
func (r *candidateRepository) FindByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.CandidateRecord, error) {
	var records []*entities.CandidateRecord
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&records).Error

	if err != nil {
		return nil, err
	}
	return records, nil
}

func mergeCandidate(tx *gorm.DB, record *entities.CandidateRecord) error {
	return tx.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "meeting_id"}, {Name: "place_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "address", "lat", "lng", "category", "cuisines",
				"budget", "dietary_flags", "category_icon", "photo_url", "updated_at",
			}),
		}).
		Create(record).Error
}

// visitRepository implements the VisitRepository interface
type visitRepository struct {
	db *gorm.DB
}

// NewVisitRepository creates a new visit repository
func NewVisitRepository(db *gorm.DB) repositories.VisitRepository {
	return &visitRepository{db: db}
}

// FindByMember retrieves a member's visit history, newest first
func (r *visitRepository) FindByMember(ctx context.Context, memberID uuid.UUID) ([]*entities.Visit, error) {
	var visits []*entities.Visit
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("visited_at DESC").
		Find(&visits).Error

	if err != nil {
		return nil, err
	}
	return visits, nil
}

// finalizationRepository implements the FinalizationRepository interface
type finalizationRepository struct {
	db *gorm.DB
}

// NewFinalizationRepository creates a new finalization repository
func NewFinalizationRepository(db *gorm.DB) repositories.FinalizationRepository {
	return &finalizationRepository{db: db}
}

// Commit records the meeting outcome in a single transaction: merge the
// chosen place into the candidate store (it may have arrived via manual
// override and not exist there yet), merge-update the meeting record, and
// write one visit row per member.
func (r *finalizationRepository) Commit(ctx context.Context, input repositories.FinalizationInput) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := entities.CandidateFromPlace(input.MeetingID, input.Place)
		if err := mergeCandidate(tx, &record); err != nil {
			return err
		}

		fields := map[string]interface{}{
			"eating_confirmed": true,
			"final_place_id":   input.Place.ID,
		}
		if err := tx.Model(&entities.Meeting{}).
			Where("id = ?", input.MeetingID).
			Updates(fields).Error; err != nil {
			return err
		}

		for _, memberID := range input.MemberIDs {
			visit := entities.Visit{
				MemberID:  memberID,
				MeetingID: input.MeetingID,
				PlaceID:   input.Place.ID,
				PlaceName: input.Place.Name,
				VisitedAt: input.VisitedAt,
			}
			if err := tx.Create(&visit).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
