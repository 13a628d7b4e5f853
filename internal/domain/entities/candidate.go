package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CandidateRecord is a meeting-scoped persisted copy of a candidate's
// descriptive fields. The manual-override finalize path writes the chosen
// place here (merge, not overwrite) so the meeting outcome always points at
// a known record, even for places the pipeline never produced.
type CandidateRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_candidate_meeting_place" json:"meeting_id"`
	PlaceID   string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_candidate_meeting_place" json:"place_id"`

	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Address      string         `gorm:"type:varchar(512)" json:"address"`
	Lat          float64        `gorm:"type:decimal(10,8)" json:"lat"`
	Lng          float64        `gorm:"type:decimal(11,8)" json:"lng"`
	Category     string         `gorm:"type:varchar(255)" json:"category"`
	Cuisines     datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"cuisines"`
	Budget       string         `gorm:"type:varchar(20);default:''" json:"budget"`
	DietaryFlags datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"dietary_flags"`
	CategoryIcon string         `gorm:"type:text" json:"category_icon,omitempty"`
	PhotoURL     string         `gorm:"type:text" json:"photo_url,omitempty"`

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for CandidateRecord
func (CandidateRecord) TableName() string {
	return "meeting_candidates"
}

// ToPlace converts a stored record back into a pipeline candidate.
func (c *CandidateRecord) ToPlace() Place {
	return Place{
		ID:           c.PlaceID,
		Name:         c.Name,
		Address:      c.Address,
		Lat:          c.Lat,
		Lng:          c.Lng,
		Category:     c.Category,
		Cuisines:     StringList(c.Cuisines),
		Budget:       c.Budget,
		DietaryFlags: StringList(c.DietaryFlags),
		CategoryIcon: c.CategoryIcon,
		PhotoURL:     c.PhotoURL,
	}
}

// CandidateFromPlace builds a meeting-scoped record from a candidate.
func CandidateFromPlace(meetingID uuid.UUID, p Place) CandidateRecord {
	return CandidateRecord{
		MeetingID:    meetingID,
		PlaceID:      p.ID,
		Name:         p.Name,
		Address:      p.Address,
		Lat:          p.Lat,
		Lng:          p.Lng,
		Category:     p.Category,
		Cuisines:     JSONList(p.Cuisines),
		Budget:       p.Budget,
		DietaryFlags: JSONList(p.DietaryFlags),
		CategoryIcon: p.CategoryIcon,
		PhotoURL:     p.PhotoURL,
	}
}
