package decision

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
)

// Consensus computes the group outcome from the current vote log: any
// candidate liked by every member wins outright ("chosen", possibly more
// than one); otherwise the candidates tied at the highest like count win
// ("top"); an empty vote log yields "none".
//
// The roster size is read fresh at computation time, not frozen when
// voting started. Membership changes mid-vote therefore shift the
// unanimity bar; see ComputeConsensus for the pure core.
func (s *Service) Consensus(ctx context.Context, groupID, meetingID uuid.UUID) (entities.ConsensusResult, error) {
	if err := s.checkMeeting(ctx, groupID, meetingID); err != nil {
		return entities.ConsensusResult{}, err
	}

	votes, err := s.voteRepo.FindByMeeting(ctx, meetingID)
	if err != nil {
		return entities.ConsensusResult{}, fmt.Errorf("failed to read vote log: %w", err)
	}

	members, err := s.groupRepo.FindMembers(ctx, groupID)
	if err != nil {
		return entities.ConsensusResult{}, fmt.Errorf("failed to read group roster: %w", err)
	}

	return ComputeConsensus(votes, len(members)), nil
}

// ComputeConsensus is the pure consensus function: same vote log and
// roster size in, same result out, no hidden state. That determinism is
// what makes concurrent recomputation by racing clients harmless — the
// losing writer just repeats the winner's output.
func ComputeConsensus(votes []*entities.Vote, memberCount int) entities.ConsensusResult {
	if len(votes) == 0 {
		return entities.ConsensusResult{Status: entities.ConsensusNone, PlaceIDs: []string{}}
	}

	likes := make(map[string]int)
	voted := make(map[string]bool)
	for _, v := range votes {
		voted[v.PlaceID] = true
		if v.Liked {
			likes[v.PlaceID]++
		}
	}

	var unanimous []string
	for placeID, count := range likes {
		if memberCount > 0 && count == memberCount {
			unanimous = append(unanimous, placeID)
		}
	}
	if len(unanimous) > 0 {
		sort.Strings(unanimous)
		return entities.ConsensusResult{Status: entities.ConsensusChosen, PlaceIDs: unanimous}
	}

	max := 0
	for placeID := range voted {
		if likes[placeID] > max {
			max = likes[placeID]
		}
	}

	var top []string
	for placeID := range voted {
		if likes[placeID] == max {
			top = append(top, placeID)
		}
	}
	sort.Strings(top)
	return entities.ConsensusResult{Status: entities.ConsensusTop, PlaceIDs: top}
}

// EnsureConsensus computes the consensus and merge-writes it onto the
// meeting record. It may be called any number of times, by any number of
// concurrent observers: the result is a pure function of the vote log, so
// every write carries the same value and overwriting is harmless.
func (s *Service) EnsureConsensus(ctx context.Context, groupID, meetingID uuid.UUID) (entities.ConsensusResult, error) {
	result, err := s.Consensus(ctx, groupID, meetingID)
	if err != nil {
		return entities.ConsensusResult{}, err
	}

	fields := map[string]interface{}{
		"consensus_status":    string(result.Status),
		"consensus_place_ids": entities.JSONList(result.PlaceIDs),
	}
	if result.Status != entities.ConsensusNone {
		fields["final_recommendations"] = entities.JSONList(result.PlaceIDs)
	}
	if err := s.meetingRepo.MergeFields(ctx, meetingID, fields); err != nil {
		return entities.ConsensusResult{}, fmt.Errorf("failed to persist consensus: %w", err)
	}

	s.logger.Info("consensus persisted",
		zap.String("meeting_id", meetingID.String()),
		zap.String("status", string(result.Status)),
		zap.Int("winners", len(result.PlaceIDs)),
	)
	return result, nil
}
