package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tablevote/tablevote-backend/errors"
	meetingDTO "github.com/tablevote/tablevote-backend/internal/adapter/dto/meeting"
	"github.com/tablevote/tablevote-backend/internal/adapter/presenter"
	decisionUsecase "github.com/tablevote/tablevote-backend/internal/usecase/decision"
	groupUsecase "github.com/tablevote/tablevote-backend/internal/usecase/group"
)

// Meeting handles meeting lifecycle HTTP requests
type Meeting struct {
	groupService    *groupUsecase.Service
	decisionService *decisionUsecase.Service
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(groupService *groupUsecase.Service, decisionService *decisionUsecase.Service) *Meeting {
	return &Meeting{
		groupService:    groupService,
		decisionService: decisionService,
	}
}

// CreateMeeting handles POST /groups/:groupID/meetings
// @Summary      Create a meeting
// @Description  Creates a meeting for a group; location may be coordinates, free text, or absent
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        groupID  path      string  true  "Group ID (UUID)"
// @Param        request  body      meeting.CreateMeetingRequest  true  "Meeting creation request"
// @Success      201      {object}  meeting.MeetingResponse  "Meeting created"
// @Failure      400      {object}  common.ErrorResponse  "Invalid request"
// @Failure      404      {object}  common.ErrorResponse  "Group not found"
// @Router       /groups/{groupID}/meetings [post]
func (h *Meeting) CreateMeeting(c echo.Context) error {
	groupID, err := parseIDParam(c, "groupID")
	if err != nil {
		return err
	}

	var req meetingDTO.CreateMeetingRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	created, err := h.groupService.CreateMeeting(c.Request().Context(), groupUsecase.CreateMeetingInput{
		GroupID:      groupID,
		Name:         req.Name,
		ScheduledAt:  req.ScheduledAt,
		Lat:          req.Lat,
		Lng:          req.Lng,
		LocationText: req.LocationText,
	})
	if err != nil {
		return respondUsecaseError(c, err, errors.ErrInternal)
	}

	return c.JSON(http.StatusCreated, presenter.ToMeetingResponse(created))
}

// ListMeetings handles GET /groups/:groupID/meetings
// @Summary      List a group's meetings
// @Tags         Meetings
// @Produce      json
// @Param        groupID  path      string  true  "Group ID (UUID)"
// @Success      200      {array}   meeting.MeetingResponse  "Meetings, newest first"
// @Failure      400      {object}  common.ErrorResponse  "Invalid group ID"
// @Router       /groups/{groupID}/meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	groupID, err := parseIDParam(c, "groupID")
	if err != nil {
		return err
	}

	meetings, err := h.groupService.ListMeetings(c.Request().Context(), groupID)
	if err != nil {
		return respondUsecaseError(c, err, errors.ErrInternal)
	}

	responses := make([]*meetingDTO.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		responses = append(responses, presenter.ToMeetingResponse(m))
	}
	return c.JSON(http.StatusOK, responses)
}

// GetMeeting handles GET /groups/:groupID/meetings/:meetingID
// @Summary      Get meeting details
// @Description  Gets a meeting with its consensus state and finalized outcome, if any
// @Tags         Meetings
// @Produce      json
// @Param        groupID    path      string  true  "Group ID (UUID)"
// @Param        meetingID  path      string  true  "Meeting ID (UUID)"
// @Success      200        {object}  meeting.MeetingResponse  "Meeting details"
// @Failure      404        {object}  common.ErrorResponse  "Meeting not found"
// @Router       /groups/{groupID}/meetings/{meetingID} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	groupID, err := parseIDParam(c, "groupID")
	if err != nil {
		return err
	}
	meetingID, err := parseIDParam(c, "meetingID")
	if err != nil {
		return err
	}

	found, err := h.groupService.GetMeeting(c.Request().Context(), meetingID)
	if err != nil {
		return respondUsecaseError(c, err, errors.ErrInternal)
	}
	if found.GroupID != groupID {
		appErr := errors.ErrMeetingNotFound(meetingID.String())
		return c.JSON(appErr.HTTPCode, toErrorResponse(appErr))
	}

	return c.JSON(http.StatusOK, presenter.ToMeetingResponse(found))
}

// Finalize handles POST /groups/:groupID/meetings/:meetingID/finalize
// @Summary      Commit the meeting outcome
// @Description  Records the chosen place and a visit for every member. The place may be a manual override outside the recommendation deck.
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        groupID    path      string  true  "Group ID (UUID)"
// @Param        meetingID  path      string  true  "Meeting ID (UUID)"
// @Param        request    body      meeting.FinalizeRequest  true  "Chosen place"
// @Success      200        {object}  meeting.MeetingResponse  "Outcome committed"
// @Failure      400        {object}  common.ErrorResponse  "Invalid request"
// @Failure      404        {object}  common.ErrorResponse  "Meeting not found"
// @Failure      500        {object}  common.ErrorResponse  "Failed to finalize"
// @Router       /groups/{groupID}/meetings/{meetingID}/finalize [post]
func (h *Meeting) Finalize(c echo.Context) error {
	groupID, err := parseIDParam(c, "groupID")
	if err != nil {
		return err
	}
	meetingID, err := parseIDParam(c, "meetingID")
	if err != nil {
		return err
	}

	var req meetingDTO.FinalizeRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	place := presenter.PlaceFromRequest(req.Place)
	if err := h.decisionService.Finalize(c.Request().Context(), groupID, meetingID, place); err != nil {
		return respondUsecaseError(c, err, errors.ErrFinalizeFailed)
	}

	final, err := h.groupService.GetMeeting(c.Request().Context(), meetingID)
	if err != nil {
		return respondUsecaseError(c, err, errors.ErrInternal)
	}
	return c.JSON(http.StatusOK, presenter.ToMeetingResponse(final))
}
