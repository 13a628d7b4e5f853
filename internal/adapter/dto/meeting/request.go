package meeting

import "time"

// CreateMeetingRequest represents the request to create a meeting
type CreateMeetingRequest struct {
	Name         string     `json:"name" validate:"required,min=1,max=255"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"`
	Lat          *float64   `json:"lat,omitempty" validate:"omitempty,latitude"`
	Lng          *float64   `json:"lng,omitempty" validate:"omitempty,longitude"`
	LocationText *string    `json:"location_text,omitempty" validate:"omitempty,max=255"`
}

// PlaceRequest carries a full place record: a manual suggestion or a
// manual-override finalization target
type PlaceRequest struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name" validate:"required,min=1,max=255"`
	Address      string   `json:"address,omitempty"`
	Lat          float64  `json:"lat" validate:"omitempty,latitude"`
	Lng          float64  `json:"lng" validate:"omitempty,longitude"`
	Category     string   `json:"category,omitempty"`
	Cuisines     []string `json:"cuisines,omitempty"`
	Budget       string   `json:"budget,omitempty" validate:"budgetband"`
	DietaryFlags []string `json:"dietary_flags,omitempty"`
	CategoryIcon string   `json:"category_icon,omitempty"`
}

// AddSuggestionRequest represents the request to add a manual suggestion
type AddSuggestionRequest struct {
	MemberID string       `json:"member_id" validate:"required,uuid"`
	Place    PlaceRequest `json:"place" validate:"required"`
}

// SubmitPreferenceRequest represents a member's soft preference submission
type SubmitPreferenceRequest struct {
	Cuisines []string `json:"cuisines,omitempty"`
	Budget   string   `json:"budget,omitempty" validate:"budgetband"`
}

// FinalizeRequest represents the request to commit the meeting outcome.
// Place may describe a candidate the pipeline never produced (manual
// override).
type FinalizeRequest struct {
	Place PlaceRequest `json:"place" validate:"required"`
}
