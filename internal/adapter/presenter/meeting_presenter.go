package presenter

import (
	"github.com/tablevote/tablevote-backend/internal/adapter/dto/meeting"
	"github.com/tablevote/tablevote-backend/internal/domain/entities"
)

// ToPlaceResponse converts a Place candidate to PlaceResponse DTO
func ToPlaceResponse(p entities.Place) *meeting.PlaceResponse {
	cuisines := p.Cuisines
	if cuisines == nil {
		cuisines = []string{}
	}
	flags := p.DietaryFlags
	if flags == nil {
		flags = []string{}
	}

	return &meeting.PlaceResponse{
		ID:           p.ID,
		Name:         p.Name,
		Address:      p.Address,
		Lat:          p.Lat,
		Lng:          p.Lng,
		Category:     p.Category,
		Cuisines:     cuisines,
		Budget:       p.Budget,
		DietaryFlags: flags,
		CategoryIcon: p.CategoryIcon,
		PhotoURL:     p.PhotoURL,
	}
}

// ToPlaceListResponse converts a candidate deck to its DTO list
func ToPlaceListResponse(places []entities.Place) []*meeting.PlaceResponse {
	responses := make([]*meeting.PlaceResponse, 0, len(places))
	for _, p := range places {
		responses = append(responses, ToPlaceResponse(p))
	}
	return responses
}

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meeting.MeetingResponse {
	if m == nil {
		return nil
	}

	return &meeting.MeetingResponse{
		ID:                m.ID.String(),
		GroupID:           m.GroupID.String(),
		Name:              m.Name,
		ScheduledAt:       m.ScheduledAt,
		Lat:               m.Lat,
		Lng:               m.Lng,
		LocationText:      m.LocationText,
		ConsensusStatus:   m.ConsensusStatus,
		ConsensusPlaceIDs: entities.StringList(m.ConsensusPlaceIDs),
		EatingConfirmed:   m.EatingConfirmed,
		FinalPlaceID:      m.FinalPlaceID,
		CreatedAt:         m.CreatedAt,
	}
}

// ToConsensusResponse converts a consensus result to its DTO
func ToConsensusResponse(result entities.ConsensusResult) *meeting.ConsensusResponse {
	ids := result.PlaceIDs
	if ids == nil {
		ids = []string{}
	}
	return &meeting.ConsensusResponse{
		Status:   string(result.Status),
		PlaceIDs: ids,
	}
}

// ToProgressResponse converts a SwipeProgress entity to its DTO
func ToProgressResponse(p entities.SwipeProgress) *meeting.ProgressResponse {
	return &meeting.ProgressResponse{
		MemberID:  p.MemberID.String(),
		DeckIndex: p.DeckIndex,
		Finished:  p.Finished,
	}
}

// ToProgressSnapshotResponse converts a progress snapshot plus the derived
// "all finished" flag to its DTO
func ToProgressSnapshotResponse(snapshot entities.ProgressSnapshot, allFinished bool) *meeting.ProgressSnapshotResponse {
	entries := make([]*meeting.ProgressResponse, 0, len(snapshot.Entries))
	for _, e := range snapshot.Entries {
		entries = append(entries, ToProgressResponse(e))
	}
	return &meeting.ProgressSnapshotResponse{
		MeetingID:   snapshot.MeetingID.String(),
		Entries:     entries,
		AllFinished: allFinished,
	}
}

// PlaceFromRequest converts an inbound place payload to the domain shape
func PlaceFromRequest(req meeting.PlaceRequest) entities.Place {
	return entities.Place{
		ID:           req.ID,
		Name:         req.Name,
		Address:      req.Address,
		Lat:          req.Lat,
		Lng:          req.Lng,
		Category:     req.Category,
		Cuisines:     req.Cuisines,
		Budget:       req.Budget,
		DietaryFlags: req.DietaryFlags,
		CategoryIcon: req.CategoryIcon,
	}
}
