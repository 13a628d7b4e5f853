package group

// MemberRequest represents one member at group creation or join time
type MemberRequest struct {
	Name                string   `json:"name" validate:"required,min=1,max=255"`
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
}

// CreateGroupRequest represents the request to create a group
type CreateGroupRequest struct {
	Name    string          `json:"name" validate:"required,min=1,max=255"`
	Members []MemberRequest `json:"members,omitempty" validate:"dive"`
}

// UpdateRestrictionsRequest represents the request to replace a member's
// dietary restrictions
type UpdateRestrictionsRequest struct {
	DietaryRestrictions []string `json:"dietary_restrictions"`
}
