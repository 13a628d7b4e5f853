package entities

import (
	"time"

	"github.com/google/uuid"
)

// Vote is one member's like/dislike on one candidate within a meeting.
// The (meeting, member, place) key makes a later vote replace the earlier
// one; votes are never deleted.
type Vote struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vote_meeting_member_place" json:"meeting_id"`
	MemberID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vote_meeting_member_place" json:"member_id"`
	PlaceID   string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_vote_meeting_member_place" json:"place_id"`
	Liked     bool      `gorm:"not null" json:"liked"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Vote
func (Vote) TableName() string {
	return "votes"
}
