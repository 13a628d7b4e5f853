package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Preference is one member's soft preference submission for one meeting:
// a set of cuisines and at most one budget band (empty = no preference).
// Resubmitting overwrites the previous record.
type Preference struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_pref_meeting_member" json:"meeting_id"`
	MemberID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_pref_meeting_member" json:"member_id"`
	Cuisines  datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"cuisines"`
	Budget    string         `gorm:"type:varchar(20);default:''" json:"budget"`
	CreatedAt time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Preference
func (Preference) TableName() string {
	return "preferences"
}

// CuisineList decodes the submitted cuisine set.
func (p *Preference) CuisineList() []string {
	return StringList(p.Cuisines)
}

// MeetingPreferences is the aggregated soft-preference view for one meeting:
// cuisines and budget bands ranked descending by submission frequency.
type MeetingPreferences struct {
	TopCuisines []string `json:"top_cuisines"`
	TopBudgets  []string `json:"top_budgets"`
}
