package decision

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
	usecaseErrors "github.com/tablevote/tablevote-backend/internal/usecase/errors"
)

// SaveProgress upserts a member's deck position and publishes the fresh
// snapshot to observers. When the save completes the round — every current
// member finished — the consensus is computed and persisted right here;
// racing observers doing the same is safe because EnsureConsensus is
// idempotent.
func (s *Service) SaveProgress(ctx context.Context, groupID, meetingID, memberID uuid.UUID, index int, finished bool) error {
	if index < 0 {
		return usecaseErrors.ErrInvalidDeckIndex
	}
	if err := s.checkMeeting(ctx, groupID, meetingID); err != nil {
		return err
	}
	if err := s.checkMember(ctx, groupID, memberID); err != nil {
		return err
	}

	progress := &entities.SwipeProgress{
		MeetingID: meetingID,
		MemberID:  memberID,
		DeckIndex: index,
		Finished:  finished,
	}
	if err := s.progressRepo.Upsert(ctx, progress); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	snapshot, err := s.snapshot(ctx, meetingID)
	if err != nil {
		return err
	}

	if err := s.notifier.Publish(ctx, snapshot); err != nil {
		// Observers reconcile from the stored rows on their next read;
		// a missed wake-up is not a lost update.
		s.logger.Warn("failed to publish progress snapshot",
			zap.String("meeting_id", meetingID.String()),
			zap.Error(err),
		)
	}

	members, err := s.groupRepo.FindMembers(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to read group roster: %w", err)
	}
	if AllFinished(snapshot, members) {
		if _, err := s.EnsureConsensus(ctx, groupID, meetingID); err != nil {
			return err
		}
	}
	return nil
}

// LoadProgress returns a member's saved deck position, defaulting to
// index 0 and unfinished when no record exists yet.
func (s *Service) LoadProgress(ctx context.Context, groupID, meetingID, memberID uuid.UUID) (entities.SwipeProgress, error) {
	if err := s.checkMeeting(ctx, groupID, meetingID); err != nil {
		return entities.SwipeProgress{}, err
	}
	if err := s.checkMember(ctx, groupID, memberID); err != nil {
		return entities.SwipeProgress{}, err
	}

	progress, err := s.progressRepo.Find(ctx, meetingID, memberID)
	if err != nil {
		return entities.SwipeProgress{}, fmt.Errorf("failed to load progress: %w", err)
	}
	if progress == nil {
		return entities.SwipeProgress{
			MeetingID: meetingID,
			MemberID:  memberID,
			DeckIndex: 0,
			Finished:  false,
		}, nil
	}
	return *progress, nil
}

// WatchProgress registers interest in a meeting's swipe progress and
// returns the snapshot stream. Each snapshot is complete; observers derive
// whatever they need (such as AllFinished) from the snapshot alone.
func (s *Service) WatchProgress(ctx context.Context, groupID, meetingID uuid.UUID) (<-chan entities.ProgressSnapshot, func(), error) {
	if err := s.checkMeeting(ctx, groupID, meetingID); err != nil {
		return nil, nil, err
	}
	return s.notifier.Subscribe(ctx, meetingID)
}

// AllFinished reports whether every current member has finished swiping.
// It compares membership, not just counts: a finished set left by departed
// members must not satisfy a roster of different people.
func AllFinished(snapshot entities.ProgressSnapshot, members []*entities.Member) bool {
	if len(members) == 0 {
		return false
	}

	finished := make(map[uuid.UUID]bool)
	for _, e := range snapshot.Entries {
		if e.Finished {
			finished[e.MemberID] = true
		}
	}

	for _, m := range members {
		if !finished[m.ID] {
			return false
		}
	}
	return true
}

// Snapshot returns the meeting's current progress snapshot. Watchers emit
// it as their initial state before any notification arrives.
func (s *Service) Snapshot(ctx context.Context, groupID, meetingID uuid.UUID) (entities.ProgressSnapshot, error) {
	if err := s.checkMeeting(ctx, groupID, meetingID); err != nil {
		return entities.ProgressSnapshot{}, err
	}
	return s.snapshot(ctx, meetingID)
}

// Roster returns the group's current member list.
func (s *Service) Roster(ctx context.Context, groupID uuid.UUID) ([]*entities.Member, error) {
	members, err := s.groupRepo.FindMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to read group roster: %w", err)
	}
	return members, nil
}

func (s *Service) snapshot(ctx context.Context, meetingID uuid.UUID) (entities.ProgressSnapshot, error) {
	entries, err := s.progressRepo.FindByMeeting(ctx, meetingID)
	if err != nil {
		return entities.ProgressSnapshot{}, fmt.Errorf("failed to read progress: %w", err)
	}
	return entities.ProgressSnapshot{MeetingID: meetingID, Entries: entries}, nil
}
