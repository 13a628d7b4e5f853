package decision

// RecordVoteRequest represents one swipe: a member's like/dislike on a
// candidate
type RecordVoteRequest struct {
	MemberID string `json:"member_id" validate:"required,uuid"`
	PlaceID  string `json:"place_id" validate:"required"`
	Liked    bool   `json:"liked"`
}

// SaveProgressRequest represents a member's deck position update
type SaveProgressRequest struct {
	DeckIndex int  `json:"deck_index" validate:"min=0"`
	Finished  bool `json:"finished"`
}
