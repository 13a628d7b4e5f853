package meeting

import "time"

// PlaceResponse represents a candidate in API responses
type PlaceResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	Category     string   `json:"category"`
	Cuisines     []string `json:"cuisines"`
	Budget       string   `json:"budget"`
	DietaryFlags []string `json:"dietary_flags"`
	CategoryIcon string   `json:"category_icon,omitempty"`
	PhotoURL     string   `json:"photo_url,omitempty"`
}

// MeetingResponse represents a meeting in API responses
type MeetingResponse struct {
	ID                string     `json:"id"`
	GroupID           string     `json:"group_id"`
	Name              string     `json:"name"`
	ScheduledAt       *time.Time `json:"scheduled_at,omitempty"`
	Lat               *float64   `json:"lat,omitempty"`
	Lng               *float64   `json:"lng,omitempty"`
	LocationText      *string    `json:"location_text,omitempty"`
	ConsensusStatus   string     `json:"consensus_status,omitempty"`
	ConsensusPlaceIDs []string   `json:"consensus_place_ids,omitempty"`
	EatingConfirmed   bool       `json:"eating_confirmed"`
	FinalPlaceID      *string    `json:"final_place_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// ConsensusResponse represents the computed consensus
type ConsensusResponse struct {
	Status   string   `json:"status"`
	PlaceIDs []string `json:"place_ids"`
}

// ProgressResponse represents a member's swipe progress
type ProgressResponse struct {
	MemberID  string `json:"member_id"`
	DeckIndex int    `json:"deck_index"`
	Finished  bool   `json:"finished"`
}

// ProgressSnapshotResponse represents a full progress snapshot for one
// meeting, streamed to observers
type ProgressSnapshotResponse struct {
	MeetingID   string              `json:"meeting_id"`
	Entries     []*ProgressResponse `json:"entries"`
	AllFinished bool                `json:"all_finished"`
}
