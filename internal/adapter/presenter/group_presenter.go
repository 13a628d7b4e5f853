package presenter

import (
	"github.com/tablevote/tablevote-backend/internal/adapter/dto/group"
	"github.com/tablevote/tablevote-backend/internal/domain/entities"
)

// ToMemberResponse converts a Member entity to MemberResponse DTO
func ToMemberResponse(m *entities.Member) *group.MemberResponse {
	if m == nil {
		return nil
	}
	return &group.MemberResponse{
		ID:                  m.ID.String(),
		GroupID:             m.GroupID.String(),
		Name:                m.Name,
		DietaryRestrictions: m.Restrictions(),
		CreatedAt:           m.CreatedAt,
	}
}

// ToGroupResponse converts a Group entity to GroupResponse DTO
func ToGroupResponse(g *entities.Group) *group.GroupResponse {
	if g == nil {
		return nil
	}

	response := &group.GroupResponse{
		ID:        g.ID.String(),
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
	}
	for i := range g.Members {
		response.Members = append(response.Members, ToMemberResponse(&g.Members[i]))
	}
	return response
}

// ToVisitListResponse converts Visit entities to their DTO list
func ToVisitListResponse(visits []*entities.Visit) []*group.VisitResponse {
	responses := make([]*group.VisitResponse, 0, len(visits))
	for _, v := range visits {
		responses = append(responses, &group.VisitResponse{
			PlaceID:   v.PlaceID,
			PlaceName: v.PlaceName,
			MeetingID: v.MeetingID.String(),
			VisitedAt: v.VisitedAt,
		})
	}
	return responses
}
