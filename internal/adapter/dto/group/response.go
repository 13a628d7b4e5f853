package group

import "time"

// MemberResponse represents a member in API responses
type MemberResponse struct {
	ID                  string    `json:"id"`
	GroupID             string    `json:"group_id"`
	Name                string    `json:"name"`
	DietaryRestrictions []string  `json:"dietary_restrictions"`
	CreatedAt           time.Time `json:"created_at"`
}

// GroupResponse represents a group in API responses
type GroupResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Members   []*MemberResponse `json:"members,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// VisitResponse represents one visit-history entry
type VisitResponse struct {
	PlaceID   string    `json:"place_id"`
	PlaceName string    `json:"place_name"`
	MeetingID string    `json:"meeting_id"`
	VisitedAt time.Time `json:"visited_at"`
}
