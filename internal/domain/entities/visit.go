package entities

import (
	"time"

	"github.com/google/uuid"
)

// Visit is one member's dining history entry, written when a meeting
// outcome is finalized.
type Visit struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MemberID  uuid.UUID `gorm:"type:uuid;not null;index" json:"member_id"`
	MeetingID uuid.UUID `gorm:"type:uuid;not null;index" json:"meeting_id"`
	PlaceID   string    `gorm:"type:varchar(255);not null" json:"place_id"`
	PlaceName string    `gorm:"type:varchar(255)" json:"place_name"`
	VisitedAt time.Time `gorm:"not null" json:"visited_at"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for Visit
func (Visit) TableName() string {
	return "visits"
}
