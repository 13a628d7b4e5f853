package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tablevote/tablevote-backend/errors"
	meetingDTO "github.com/tablevote/tablevote-backend/internal/adapter/dto/meeting"
	"github.com/tablevote/tablevote-backend/internal/adapter/presenter"
	recommendUsecase "github.com/tablevote/tablevote-backend/internal/usecase/recommend"
)

// Recommendation handles recommendation pipeline HTTP requests
type Recommendation struct {
	recommendService *recommendUsecase.Service
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(recommendService *recommendUsecase.Service) *Recommendation {
	return &Recommendation{
		recommendService: recommendService,
	}
}

// GetRecommendations handles GET /groups/:groupID/meetings/:meetingID/recommendations
// @Summary      Build the recommendation deck
// @Description  Sources candidates, enriches them with dietary tags, applies the group's hard filters and ranks by shared preferences
// @Tags         Recommendations
// @Produce      json
// @Param        groupID    path      string  true  "Group ID (UUID)"
// @Param        meetingID  path      string  true  "Meeting ID (UUID)"
// @Success      200        {array}   meeting.PlaceResponse  "Ranked candidate deck"
// @Failure      400        {object}  common.ErrorResponse  "Meeting has no usable location"
// @Failure      404        {object}  common.ErrorResponse  "Meeting not found"
// @Failure      500        {object}  common.ErrorResponse  "Failed to build recommendations"
// @Router       /groups/{groupID}/meetings/{meetingID}/recommendations [get]
func (h *Recommendation) GetRecommendations(c echo.Context) error {
	groupID, meetingID, err := meetingPath(c)
	if err != nil {
		return err
	}

	places, err := h.recommendService.FetchRecommendations(c.Request().Context(), groupID, meetingID)
	if err != nil {
		return respondUsecaseError(c, err, errors.ErrRecommendFailed)
	}

	return c.JSON(http.StatusOK, presenter.ToPlaceListResponse(places))
}

// ListSuggestions handles GET /groups/:groupID/meetings/:meetingID/suggestions
// @Summary      List manual suggestions
// @Tags         Recommendations
// @Produce      json
// @Param        groupID    path      string  true  "Group ID (UUID)"
// @Param        meetingID  path      string  true  "Meeting ID (UUID)"
// @Success      200        {array}   meeting.PlaceResponse  "Suggestions, oldest first"
// @Failure      400        {object}  common.ErrorResponse  "Invalid meeting ID"
// @Failure      404        {object}  common.ErrorResponse  "Meeting not found"
// @Router       /groups/{groupID}/meetings/{meetingID}/suggestions [get]
func (h *Recommendation) ListSuggestions(c echo.Context) error {
	groupID, meetingID, err := meetingPath(c)
	if err != nil {
		return err
	}

	places, err := h.recommendService.FetchManual(c.Request().Context(), groupID, meetingID)
	if err != nil {
		return respondUsecaseError(c, err, errors.ErrInternal)
	}

	return c.JSON(http.StatusOK, presenter.ToPlaceListResponse(places))
}

// AddSuggestion handles POST /groups/:groupID/meetings/:meetingID/suggestions
// @Summary      Add a manual suggestion
// @Description  Adds a member-suggested place; it bypasses the hard dietary filter and ranks first in the deck
// @Tags         Recommendations
// @Accept       json
// @Produce      json
// @Param        groupID    path      string  true  "Group ID (UUID)"
// @Param        meetingID  path      string  true  "Meeting ID (UUID)"
// @Param        request    body      meeting.AddSuggestionRequest  true  "Suggested place"
// @Success      201        {object}  meeting.PlaceResponse  "Suggestion recorded"
// @Failure      400        {object}  common.ErrorResponse  "Invalid request"
// @Failure      404        {object}  common.ErrorResponse  "Meeting not found"
// @Router       /groups/{groupID}/meetings/{meetingID}/suggestions [post]
func (h *Recommendation) AddSuggestion(c echo.Context) error {
	groupID, meetingID, err := meetingPath(c)
	if err != nil {
		return err
	}

	var req meetingDTO.AddSuggestionRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	memberID, _ := uuid.Parse(req.MemberID)

	place := presenter.PlaceFromRequest(req.Place)
	suggestion, err := h.recommendService.AddSuggestion(c.Request().Context(), groupID, meetingID, memberID, place)
	if err != nil {
		return respondUsecaseError(c, err, errors.ErrInternal)
	}

	return c.JSON(http.StatusCreated, presenter.ToPlaceResponse(suggestion.ToPlace()))
}

// SubmitPreference handles PUT /groups/:groupID/meetings/:meetingID/preferences/:memberID
// @Summary      Submit a member's soft preferences
// @Description  Replaces the member's cuisine and budget preferences for this meeting
// @Tags         Recommendations
// @Accept       json
// @Produce      json
// @Param        groupID    path      string  true  "Group ID (UUID)"
// @Param        meetingID  path      string  true  "Meeting ID (UUID)"
// @Param        memberID   path      string  true  "Member ID (UUID)"
// @Param        request    body      meeting.SubmitPreferenceRequest  true  "Preference submission"
// @Success      204        "Preferences recorded"
// @Failure      400        {object}  common.ErrorResponse  "Invalid budget band"
// @Failure      404        {object}  common.ErrorResponse  "Meeting or member not found"
// @Router       /groups/{groupID}/meetings/{meetingID}/preferences/{memberID} [put]
func (h *Recommendation) SubmitPreference(c echo.Context) error {
	groupID, meetingID, err := meetingPath(c)
	if err != nil {
		return err
	}
	memberID, err := parseIDParam(c, "memberID")
	if err != nil {
		return err
	}

	var req meetingDTO.SubmitPreferenceRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if err := h.recommendService.SubmitPreference(c.Request().Context(), groupID, meetingID, memberID, req.Cuisines, req.Budget); err != nil {
		return respondUsecaseError(c, err, errors.ErrInternal)
	}

	return c.NoContent(http.StatusNoContent)
}

// meetingPath parses the groupID and meetingID path parameters.
func meetingPath(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	groupID, err := parseIDParam(c, "groupID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	meetingID, err := parseIDParam(c, "meetingID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return groupID, meetingID, nil
}
