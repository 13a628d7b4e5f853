package decision

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
	"github.com/tablevote/tablevote-backend/internal/domain/repositories"
	usecaseErrors "github.com/tablevote/tablevote-backend/internal/usecase/errors"
)

// Finalize commits the group's dining outcome. The place may come from the
// consensus set or from an entirely out-of-pipeline manual pick — either
// way its descriptive record lands in the meeting's candidate store, the
// meeting is merge-updated and every member gets a visit-history row, all
// in one transaction.
func (s *Service) Finalize(ctx context.Context, groupID, meetingID uuid.UUID, place entities.Place) error {
	if place.ID == "" {
		return usecaseErrors.ErrInvalidPlaceID
	}
	meeting, err := s.getMeeting(ctx, groupID, meetingID)
	if err != nil {
		return err
	}
	if meeting.EatingConfirmed {
		return usecaseErrors.ErrMeetingAlreadyFinal
	}

	members, err := s.groupRepo.FindMembers(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to read group roster: %w", err)
	}
	if len(members) == 0 {
		return usecaseErrors.ErrEmptyGroup
	}

	memberIDs := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.ID)
	}

	input := repositories.FinalizationInput{
		MeetingID: meetingID,
		Place:     place,
		MemberIDs: memberIDs,
		VisitedAt: time.Now().UTC(),
	}
	if err := s.finalizeRepo.Commit(ctx, input); err != nil {
		return fmt.Errorf("failed to finalize meeting: %w", err)
	}

	s.logger.Info("meeting outcome finalized",
		zap.String("meeting_id", meetingID.String()),
		zap.String("place_id", place.ID),
		zap.Int("members", len(memberIDs)),
	)
	return nil
}
