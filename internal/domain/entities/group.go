package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Group is a set of people who eat together.
type Group struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Members   []Member  `gorm:"foreignKey:GroupID" json:"members,omitempty"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Group
func (Group) TableName() string {
	return "groups"
}

// Member is a person inside a group. Dietary restrictions are stored on the
// member and unioned across the group at pipeline run time.
type Member struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	GroupID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"group_id"`
	Name                string         `gorm:"type:varchar(255);not null" json:"name"`
	DietaryRestrictions datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"dietary_restrictions"`
	CreatedAt           time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Member
func (Member) TableName() string {
	return "members"
}

// Restrictions decodes the member's stored dietary restriction list.
func (m *Member) Restrictions() []string {
	return StringList(m.DietaryRestrictions)
}
