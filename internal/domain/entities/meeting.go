package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ConsensusStatus is the outcome kind of a voting round.
type ConsensusStatus string

const (
	// ConsensusNone means no votes were recorded at all.
	ConsensusNone ConsensusStatus = "none"
	// ConsensusChosen means at least one candidate was liked by every member.
	ConsensusChosen ConsensusStatus = "chosen"
	// ConsensusTop means no candidate was unanimous; the top-voted ones win.
	ConsensusTop ConsensusStatus = "top"
)

// ConsensusResult is a pure function of the vote log and the current roster
// size; it carries one id for "chosen" and one or more tied ids for "top".
type ConsensusResult struct {
	Status   ConsensusStatus `json:"status"`
	PlaceIDs []string        `json:"place_ids"`
}

// Meeting is one planned group meal. Its location is either a coordinate
// pair or a free-text hint, resolved in that order by the pipeline.
type Meeting struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	GroupID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"group_id"`
	Group       *Group     `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	ScheduledAt *time.Time `gorm:"index" json:"scheduled_at,omitempty"`

	Lat          *float64 `gorm:"type:decimal(10,8)" json:"lat,omitempty"`
	Lng          *float64 `gorm:"type:decimal(11,8)" json:"lng,omitempty"`
	LocationText *string  `gorm:"type:varchar(255)" json:"location_text,omitempty"`

	ConsensusStatus   string         `gorm:"type:varchar(20);default:''" json:"consensus_status"`
	ConsensusPlaceIDs datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"consensus_place_ids"`

	EatingConfirmed      bool           `gorm:"default:false" json:"eating_confirmed"`
	FinalPlaceID         *string        `gorm:"type:varchar(255)" json:"final_place_id,omitempty"`
	FinalRecommendations datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"final_recommendations,omitempty"`

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// HasCoordinates reports whether the meeting location is a coordinate pair.
func (m *Meeting) HasCoordinates() bool {
	return m.Lat != nil && m.Lng != nil
}

// HasLocationText reports whether a free-text location hint is present.
func (m *Meeting) HasLocationText() bool {
	return m.LocationText != nil && *m.LocationText != ""
}

// Consensus decodes the persisted consensus snapshot, or a zero result if
// none has been computed yet.
func (m *Meeting) Consensus() ConsensusResult {
	if m.ConsensusStatus == "" {
		return ConsensusResult{}
	}
	return ConsensusResult{
		Status:   ConsensusStatus(m.ConsensusStatus),
		PlaceIDs: StringList(m.ConsensusPlaceIDs),
	}
}
