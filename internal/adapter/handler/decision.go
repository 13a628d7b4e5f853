package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tablevote/tablevote-backend/errors"
	decisionDTO "github.com/tablevote/tablevote-backend/internal/adapter/dto/decision"
	"github.com/tablevote/tablevote-backend/internal/adapter/presenter"
	"github.com/tablevote/tablevote-backend/internal/domain/entities"
	decisionUsecase "github.com/tablevote/tablevote-backend/internal/usecase/decision"
)

// Decision handles vote, consensus and swipe progress HTTP requests
type Decision struct {
	decisionService *decisionUsecase.Service
}

// NewDecisionHandler creates a new decision handler
func NewDecisionHandler(decisionService *decisionUsecase.Service) *Decision {
	return &Decision{
		decisionService: decisionService,
	}
}

// RecordVote handles POST /groups/:groupID/meetings/:meetingID/votes
// @Summary      Record a vote
// @Description  Upserts one member's like or dislike on a candidate; a repeat vote replaces the earlier one
// @Tags         Decisions
// @Accept       json
// @Produce      json
// @Param        groupID    path      string  true  "Group ID (UUID)"
// @Param        meetingID  path      string  true  "Meeting ID (UUID)"
// @Param        request    body      decision.RecordVoteRequest  true  "Vote"
// @Success      204        "Vote recorded"
// @Failure      400        {object}  common.ErrorResponse  "Invalid request"
// @Failure      404        {object}  common.ErrorResponse  "Meeting not found"
// @Failure      500        {object}  common.ErrorResponse  "Failed to record vote"
// @Router       /groups/{groupID}/meetings/{meetingID}/votes [post]
func (h *Decision) RecordVote(c echo.Context) error {
	groupID, meetingID, err := meetingPath(c)
	if err != nil {
		return err
	}

	var req decisionDTO.RecordVoteRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	memberID, _ := uuid.Parse(req.MemberID)

	if err := h.decisionService.RecordVote(c.Request().Context(), groupID, meetingID, memberID, req.PlaceID, req.Liked); err != nil {
		return respondUsecaseError(c, err, errors.ErrVoteFailed)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetConsensus handles GET /groups/:groupID/meetings/:meetingID/consensus
// @Summary      Get the consensus state
// @Description  Computes the unanimous or most-liked outcome from the current vote log
// @Tags         Decisions
// @Produce      json
// @Param        groupID    path      string  true  "Group ID (UUID)"
// @Param        meetingID  path      string  true  "Meeting ID (UUID)"
// @Success      200        {object}  meeting.ConsensusResponse  "Consensus state"
// @Failure      404        {object}  common.ErrorResponse  "Meeting not found"
// @Failure      500        {object}  common.ErrorResponse  "Failed to compute consensus"
// @Router       /groups/{groupID}/meetings/{meetingID}/consensus [get]
func (h *Decision) GetConsensus(c echo.Context) error {
	groupID, meetingID, err := meetingPath(c)
	if err != nil {
		return err
	}

	result, err := h.decisionService.Consensus(c.Request().Context(), groupID, meetingID)
	if err != nil {
		return respondUsecaseError(c, err, errors.ErrConsensusFailed)
	}

	return c.JSON(http.StatusOK, presenter.ToConsensusResponse(result))
}

// SaveProgress handles PUT /groups/:groupID/meetings/:meetingID/progress/:memberID
// @Summary      Save a member's swipe progress
// @Description  Upserts the member's deck position. The index never moves backwards and a finished flag sticks.
// @Tags         Decisions
// @Accept       json
// @Produce      json
// @Param        groupID    path      string  true  "Group ID (UUID)"
// @Param        meetingID  path      string  true  "Meeting ID (UUID)"
// @Param        memberID   path      string  true  "Member ID (UUID)"
// @Param        request    body      decision.SaveProgressRequest  true  "Deck position"
// @Success      204        "Progress saved"
// @Failure      400        {object}  common.ErrorResponse  "Invalid deck index"
// @Failure      404        {object}  common.ErrorResponse  "Meeting not found"
// @Failure      500        {object}  common.ErrorResponse  "Failed to save progress"
// @Router       /groups/{groupID}/meetings/{meetingID}/progress/{memberID} [put]
func (h *Decision) SaveProgress(c echo.Context) error {
	groupID, meetingID, err := meetingPath(c)
	if err != nil {
		return err
	}
	memberID, err := parseIDParam(c, "memberID")
	if err != nil {
		return err
	}

	var req decisionDTO.SaveProgressRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if err := h.decisionService.SaveProgress(c.Request().Context(), groupID, meetingID, memberID, req.DeckIndex, req.Finished); err != nil {
		return respondUsecaseError(c, err, errors.ErrProgressFailed)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetProgress handles GET /groups/:groupID/meetings/:meetingID/progress/:memberID
// @Summary      Get a member's saved swipe progress
// @Description  Returns the member's deck position for resuming, defaulting to the start when no record exists
// @Tags         Decisions
// @Produce      json
// @Param        groupID    path      string  true  "Group ID (UUID)"
// @Param        meetingID  path      string  true  "Meeting ID (UUID)"
// @Param        memberID   path      string  true  "Member ID (UUID)"
// @Success      200        {object}  meeting.ProgressResponse  "Saved deck position"
// @Failure      400        {object}  common.ErrorResponse  "Invalid ID"
// @Failure      404        {object}  common.ErrorResponse  "Meeting or member not found"
// @Router       /groups/{groupID}/meetings/{meetingID}/progress/{memberID} [get]
func (h *Decision) GetProgress(c echo.Context) error {
	groupID, meetingID, err := meetingPath(c)
	if err != nil {
		return err
	}
	memberID, err := parseIDParam(c, "memberID")
	if err != nil {
		return err
	}

	progress, err := h.decisionService.LoadProgress(c.Request().Context(), groupID, meetingID, memberID)
	if err != nil {
		return respondUsecaseError(c, err, errors.ErrProgressFailed)
	}

	return c.JSON(http.StatusOK, presenter.ToProgressResponse(progress))
}

// StreamProgress handles GET /groups/:groupID/meetings/:meetingID/progress
// @Summary      Stream swipe progress
// @Description  Server-sent event stream of progress snapshots. The current snapshot is emitted immediately, then one event per member update until the client disconnects.
// @Tags         Decisions
// @Produce      text/event-stream
// @Param        groupID    path      string  true  "Group ID (UUID)"
// @Param        meetingID  path      string  true  "Meeting ID (UUID)"
// @Success      200        {object}  meeting.ProgressSnapshotResponse  "Snapshot stream"
// @Failure      404        {object}  common.ErrorResponse  "Meeting not found"
// @Router       /groups/{groupID}/meetings/{meetingID}/progress [get]
func (h *Decision) StreamProgress(c echo.Context) error {
	groupID, meetingID, err := meetingPath(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	snapshots, cancel, err := h.decisionService.WatchProgress(ctx, groupID, meetingID)
	if err != nil {
		return respondUsecaseError(c, err, errors.ErrProgressFailed)
	}
	defer cancel()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)

	// Initial state so the client is not blind until the first update.
	initial, err := h.decisionService.Snapshot(ctx, groupID, meetingID)
	if err == nil {
		if err := h.writeSnapshotEvent(c, groupID, initial); err != nil {
			return nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case snapshot, open := <-snapshots:
			if !open {
				return nil
			}
			if err := h.writeSnapshotEvent(c, groupID, snapshot); err != nil {
				return nil
			}
		}
	}
}

func (h *Decision) writeSnapshotEvent(c echo.Context, groupID uuid.UUID, snapshot entities.ProgressSnapshot) error {
	ctx := c.Request().Context()

	allFinished := false
	if members, err := h.decisionService.Roster(ctx, groupID); err == nil {
		allFinished = decisionUsecase.AllFinished(snapshot, members)
	}

	payload, err := json.Marshal(presenter.ToProgressSnapshotResponse(snapshot, allFinished))
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.Response(), "data: %s\n\n", payload); err != nil {
		return err
	}
	c.Response().Flush()
	return nil
}
