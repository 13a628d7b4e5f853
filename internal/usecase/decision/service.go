package decision

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
	"github.com/tablevote/tablevote-backend/internal/domain/repositories"
	"github.com/tablevote/tablevote-backend/internal/infrastructure/notify"
	usecaseErrors "github.com/tablevote/tablevote-backend/internal/usecase/errors"
)

// Service handles the multi-party agreement flow: vote recording, swipe
// progress, consensus computation and the final outcome commit. All
// cross-client coordination goes through the persisted records — every
// write is an upsert keyed per member, and consensus is a pure function of
// the vote log, so concurrent clients converge without locks.
type Service struct {
	groupRepo    repositories.GroupRepository
	meetingRepo  repositories.MeetingRepository
	voteRepo     repositories.VoteRepository
	progressRepo repositories.ProgressRepository
	finalizeRepo repositories.FinalizationRepository
	notifier     notify.ProgressNotifier
	logger       *zap.Logger
}

// NewService creates a new decision service
func NewService(
	groupRepo repositories.GroupRepository,
	meetingRepo repositories.MeetingRepository,
	voteRepo repositories.VoteRepository,
	progressRepo repositories.ProgressRepository,
	finalizeRepo repositories.FinalizationRepository,
	notifier notify.ProgressNotifier,
	logger *zap.Logger,
) *Service {
	return &Service{
		groupRepo:    groupRepo,
		meetingRepo:  meetingRepo,
		voteRepo:     voteRepo,
		progressRepo: progressRepo,
		finalizeRepo: finalizeRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

// RecordVote upserts one member's like/dislike on one candidate. A repeat
// vote on the same candidate replaces the earlier one. Persistence failure
// surfaces to the caller; a vote must never be dropped silently.
func (s *Service) RecordVote(ctx context.Context, groupID, meetingID, memberID uuid.UUID, placeID string, liked bool) error {
	if placeID == "" {
		return usecaseErrors.ErrInvalidPlaceID
	}
	if err := s.checkMeeting(ctx, groupID, meetingID); err != nil {
		return err
	}
	if err := s.checkMember(ctx, groupID, memberID); err != nil {
		return err
	}

	vote := &entities.Vote{
		MeetingID: meetingID,
		MemberID:  memberID,
		PlaceID:   placeID,
		Liked:     liked,
	}
	if err := s.voteRepo.Upsert(ctx, vote); err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}
	return nil
}

// checkMeeting verifies the meeting exists and belongs to the group.
func (s *Service) checkMeeting(ctx context.Context, groupID, meetingID uuid.UUID) error {
	_, err := s.getMeeting(ctx, groupID, meetingID)
	return err
}

// checkMember verifies the member exists and belongs to the group. A write
// keyed by an out-of-roster member would distort the unanimity count, so
// every member-scoped write runs through here first.
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
