package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Suggestion is a manually submitted candidate tied to a meeting. It is a
// trusted override source: the pipeline merges suggestions into the deck
// unconditionally, before any filtering, and never mutates or deletes them.
type Suggestion struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID uuid.UUID `gorm:"type:uuid;not null;index" json:"meeting_id"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`

	PlaceID      string         `gorm:"type:varchar(255);not null" json:"place_id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Address      string         `gorm:"type:varchar(512)" json:"address"`
	Lat          float64        `gorm:"type:decimal(10,8)" json:"lat"`
	Lng          float64        `gorm:"type:decimal(11,8)" json:"lng"`
	Category     string         `gorm:"type:varchar(255)" json:"category"`
	Cuisines     datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"cuisines"`
	Budget       string         `gorm:"type:varchar(20);default:''" json:"budget"`
	DietaryFlags datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"dietary_flags"`
	CategoryIcon string         `gorm:"type:text" json:"category_icon,omitempty"`

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for Suggestion
func (Suggestion) TableName() string {
	return "suggestions"
}

// ToPlace converts the stored suggestion into a pipeline candidate verbatim.
func (s *Suggestion) ToPlace() Place {
	return Place{
		ID:           s.PlaceID,
		Name:         s.Name,
		Address:      s.Address,
		Lat:          s.Lat,
		Lng:          s.Lng,
		Category:     s.Category,
		Cuisines:     StringList(s.Cuisines),
		Budget:       s.Budget,
		DietaryFlags: StringList(s.DietaryFlags),
		CategoryIcon: s.CategoryIcon,
	}
}
