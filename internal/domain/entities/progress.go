package entities

import (
	"time"

	"github.com/google/uuid"
)

// SwipeProgress is a member's position in a meeting's candidate deck.
// DeckIndex is monotonically non-decreasing within one voting round and
// Finished is sticky once set, so a stale client can never rewind a session.
type SwipeProgress struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_progress_meeting_member" json:"meeting_id"`
	MemberID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_progress_meeting_member" json:"member_id"`
	DeckIndex int       `gorm:"not null;default:0" json:"deck_index"`
	Finished  bool      `gorm:"not null;default:false" json:"finished"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for SwipeProgress
func (SwipeProgress) TableName() string {
	return "swipe_progress"
}

// ProgressSnapshot is the full progress state of a meeting at one instant,
// published to observers on every save. "All finished" is derived from a
// snapshot plus the current roster, never stored.
type ProgressSnapshot struct {
	MeetingID uuid.UUID       `json:"meeting_id"`
	Entries   []SwipeProgress `json:"entries"`
}
