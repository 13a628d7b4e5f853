package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tablevote/tablevote-backend/errors"
	groupDTO "github.com/tablevote/tablevote-backend/internal/adapter/dto/group"
	"github.com/tablevote/tablevote-backend/internal/adapter/presenter"
	groupUsecase "github.com/tablevote/tablevote-backend/internal/usecase/group"
)

// Group handles group and member HTTP requests
type Group struct {
	groupService *groupUsecase.Service
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(groupService *groupUsecase.Service) *Group {
	return &Group{
		groupService: groupService,
	}
}

// CreateGroup handles POST /groups
// @Summary      Create a new group
// @Description  Creates a dining group, optionally with its initial members
// @Tags         Groups
// @Accept       json
// @Produce      json
// @Param        request  body      group.CreateGroupRequest  true  "Group creation request"
// @Success      201      {object}  group.GroupResponse  "Group created successfully"
// @Failure      400      {object}  common.ErrorResponse  "Invalid request or validation failed"
// @Failure      500      {object}  common.ErrorResponse  "Failed to create group"
// @Router       /groups [post]
func (h *Group) CreateGroup(c echo.Context) error {
	var req groupDTO.CreateGroupRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	input := groupUsecase.CreateGroupInput{Name: req.Name}
	for _, m := range req.Members {
		input.Members = append(input.Members, groupUsecase.MemberInput{
			Name:                m.Name,
			DietaryRestrictions: m.DietaryRestrictions,
		})
	}

	created, err := h.groupService.CreateGroup(c.Request().Context(), input)
	if err != nil {
		return respondUsecaseError(c, err, errors.ErrInternal)
	}

	return c.JSON(http.StatusCreated, presenter.ToGroupResponse(created))
}

// GetGroup handles GET /groups/:groupID
// @Summary      Get group details
// @Description  Gets a group with its full member roster
// @Tags         Groups
// @Produce      json
// @Param        groupID  path      string  true  "Group ID (UUID)"
// @Success      200      {object}  group.GroupResponse  "Group details"
// @Failure      404      {object}  common.ErrorResponse  "Group not found"
// @Router       /groups/{groupID} [get]
func (h *Group) GetGroup(c echo.Context) error {
	groupID, err := parseIDParam(c, "groupID")
	if err != nil {
		return err
	}

	found, err := h.groupService.GetGroup(c.Request().Context(), groupID)
	if err != nil {
		return respondUsecaseError(c, err, errors.ErrInternal)
	}

	return c.JSON(http.StatusOK, presenter.ToGroupResponse(found))
}

// AddMember handles POST /groups/:groupID/members
// @Summary      Add a member to a group
// @Tags         Groups
// @Accept       json
// @Produce      json
// @Param        groupID  path      string  true  "Group ID (UUID)"
// @Param        request  body      group.MemberRequest  true  "Member to add"
// @Success      201      {object}  group.MemberResponse  "Member added"
// @Failure      400      {object}  common.ErrorResponse  "Invalid request"
// @Failure      404      {object}  common.ErrorResponse  "Group not found"
// @Router       /groups/{groupID}/members [post]
func (h *Group) AddMember(c echo.Context) error {
	groupID, err := parseIDParam(c, "groupID")
	if err != nil {
		return err
	}

	var req groupDTO.MemberRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	member, err := h.groupService.AddMember(c.Request().Context(), groupID, groupUsecase.MemberInput{
		Name:                req.Name,
		DietaryRestrictions: req.DietaryRestrictions,
	})
	if err != nil {
		return respondUsecaseError(c, err, errors.ErrInternal)
	}

	return c.JSON(http.StatusCreated, presenter.ToMemberResponse(member))
}

// UpdateRestrictions handles PUT /groups/:groupID/members/:memberID/restrictions
// @Summary      Replace a member's dietary restrictions
// @Description  Replaces the stored restriction list; an empty list clears it
// @Tags         Groups
// @Accept       json
// @Produce      json
// @Param        groupID   path      string  true  "Group ID (UUID)"
// @Param        memberID  path      string  true  "Member ID (UUID)"
// @Param        request   body      group.UpdateRestrictionsRequest  true  "New restriction list"
// @Success      204       "Restrictions replaced"
// @Failure      404       {object}  common.ErrorResponse  "Member not found"
// @Router       /groups/{groupID}/members/{memberID}/restrictions [put]
func (h *Group) UpdateRestrictions(c echo.Context) error {
	groupID, err := parseIDParam(c, "groupID")
	if err != nil {
		return err
	}
	memberID, err := parseIDParam(c, "memberID")
	if err != nil {
		return err
	}

	var req groupDTO.UpdateRestrictionsRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if err := h.groupService.UpdateRestrictions(c.Request().Context(), groupID, memberID, req.DietaryRestrictions); err != nil {
		return respondUsecaseError(c, err, errors.ErrInternal)
	}

	return c.NoContent(http.StatusNoContent)
}

// VisitHistory handles GET /members/:memberID/visits
// @Summary      Get a member's dining history
// @Description  Lists places the member has eaten at, newest first
// @Tags         Groups
// @Produce      json
// @Param        memberID  path      string  true  "Member ID (UUID)"
// @Success      200       {array}   group.VisitResponse  "Visit history"
// @Failure      400       {object}  common.ErrorResponse  "Invalid member ID"
// @Router       /members/{memberID}/visits [get]
func (h *Group) VisitHistory(c echo.Context) error {
	memberID, err := parseIDParam(c, "memberID")
	if err != nil {
		return err
	}

	visits, err := h.groupService.VisitHistory(c.Request().Context(), memberID)
	if err != nil {
		return respondUsecaseError(c, err, errors.ErrInternal)
	}

	return c.JSON(http.StatusOK, presenter.ToVisitListResponse(visits))
}
