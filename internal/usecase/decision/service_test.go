package decision

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
	"github.com/tablevote/tablevote-backend/internal/domain/repositories"
	usecaseErrors "github.com/tablevote/tablevote-backend/internal/usecase/errors"
)

type memGroupRepo struct {
	members map[uuid.UUID][]*entities.Member
}

func (r *memGroupRepo) Create(_ context.Context, _ *entities.Group) error { return nil }
func (r *memGroupRepo) FindByID(_ context.Context, _ uuid.UUID) (*entities.Group, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *memGroupRepo) AddMember(_ context.Context, _ *entities.Member) error { return nil }
func (r *memGroupRepo) FindMembers(_ context.Context, groupID uuid.UUID) ([]*entities.Member, error) {
	return r.members[groupID], nil
}
func (r *memGroupRepo) FindMember(_ context.Context, memberID uuid.UUID) (*entities.Member, error) {
	for _, members := range r.members {
		for _, m := range members {
			if m.ID == memberID {
				return m, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *memGroupRepo) UpdateMemberRestrictions(_ context.Context, _ uuid.UUID, _ []string) error {
	return nil
}

type memMeetingRepo struct {
	meetings map[uuid.UUID]*entities.Meeting
	merged   []map[string]interface{}
}

func (r *memMeetingRepo) Create(_ context.Context, _ *entities.Meeting) error { return nil }
func (r *memMeetingRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	m, ok := r.meetings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}
func (r *memMeetingRepo) FindByGroupID(_ context.Context, _ uuid.UUID) ([]*entities.Meeting, error) {
	return nil, nil
}
func (r *memMeetingRepo) MergeFields(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	r.merged = append(r.merged, fields)
	if m, ok := r.meetings[id]; ok {
		if v, ok := fields["consensus_status"].(string); ok {
			m.ConsensusStatus = v
		}
	}
	return nil
}

type memVoteRepo struct {
	votes []*entities.Vote
}

func (r *memVoteRepo) Upsert(_ context.Context, vote *entities.Vote) error {
	for i, v := range r.votes {
		if v.MeetingID == vote.MeetingID && v.MemberID == vote.MemberID && v.PlaceID == vote.PlaceID {
			r.votes[i] = vote
			return nil
		}
	}
	r.votes = append(r.votes, vote)
	return nil
}
func (r *memVoteRepo) FindByMeeting(_ context.Context, meetingID uuid.UUID) ([]*entities.Vote, error) {
	var out []*entities.Vote
	for _, v := range r.votes {
		if v.MeetingID == meetingID {
			out = append(out, v)
		}
	}
	return out, nil
}

type memProgressRepo struct {
	rows []*entities.SwipeProgress
}

func (r *memProgressRepo) Upsert(_ context.Context, p *entities.SwipeProgress) error {
	for _, row := range r.rows {
		if row.MeetingID == p.MeetingID && row.MemberID == p.MemberID {
			if p.DeckIndex > row.DeckIndex {
				row.DeckIndex = p.DeckIndex
			}
			row.Finished = row.Finished || p.Finished
			return nil
		}
	}
	clone := *p
	r.rows = append(r.rows, &clone)
	return nil
}
func (r *memProgressRepo) Find(_ context.Context, meetingID, memberID uuid.UUID) (*entities.SwipeProgress, error) {
	for _, row := range r.rows {
		if row.MeetingID == meetingID && row.MemberID == memberID {
			return row, nil
		}
	}
	return nil, nil
}
func (r *memProgressRepo) FindByMeeting(_ context.Context, meetingID uuid.UUID) ([]entities.SwipeProgress, error) {
	var out []entities.SwipeProgress
	for _, row := range r.rows {
		if row.MeetingID == meetingID {
			out = append(out, *row)
		}
	}
	return out, nil
}

type memFinalizationRepo struct {
	commits []repositories.FinalizationInput
	err     error
}

func (r *memFinalizationRepo) Commit(_ context.Context, input repositories.FinalizationInput) error {
	if r.err != nil {
		return r.err
	}
	r.commits = append(r.commits, input)
	return nil
}

type recordingNotifier struct {
	published []entities.ProgressSnapshot
}

func (n *recordingNotifier) Publish(_ context.Context, snapshot entities.ProgressSnapshot) error {
	n.published = append(n.published, snapshot)
	return nil
}
func (n *recordingNotifier) Subscribe(_ context.Context, _ uuid.UUID) (<-chan entities.ProgressSnapshot, func(), error) {
	ch := make(chan entities.ProgressSnapshot)
	return ch, func() { close(ch) }, nil
}

type decisionFixture struct {
	service     *Service
	groupRepo   *memGroupRepo
	meetingRepo *memMeetingRepo
	voteRepo    *memVoteRepo
	progress    *memProgressRepo
	finalize    *memFinalizationRepo
	notifier    *recordingNotifier
	groupID     uuid.UUID
	meetingID   uuid.UUID
	memberIDs   []uuid.UUID
}

func newDecisionFixture(t *testing.T, memberCount int) *decisionFixture {
	t.Helper()

	groupID := uuid.New()
	meetingID := uuid.New()

	var members []*entities.Member
	var memberIDs []uuid.UUID
	for i := 0; i < memberCount; i++ {
		id := uuid.New()
		members = append(members, &entities.Member{ID: id, GroupID: groupID})
		memberIDs = append(memberIDs, id)
	}

	groupRepo := &memGroupRepo{members: map[uuid.UUID][]*entities.Member{groupID: members}}
	meetingRepo := &memMeetingRepo{meetings: map[uuid.UUID]*entities.Meeting{
		meetingID: {ID: meetingID, GroupID: groupID, Name: "Dinner"},
	}}
	voteRepo := &memVoteRepo{}
	progressRepo := &memProgressRepo{}
	finalizeRepo := &memFinalizationRepo{}
	notifier := &recordingNotifier{}

	svc := NewService(groupRepo, meetingRepo, voteRepo, progressRepo, finalizeRepo, notifier, zap.NewNop())

	return &decisionFixture{
		service:     svc,
		groupRepo:   groupRepo,
		meetingRepo: meetingRepo,
		voteRepo:    voteRepo,
		progress:    progressRepo,
		finalize:    finalizeRepo,
		notifier:    notifier,
		groupID:     groupID,
		meetingID:   meetingID,
		memberIDs:   memberIDs,
	}
}

func vote(meetingID, memberID uuid.UUID, placeID string, liked bool) *entities.Vote {
	return &entities.Vote{MeetingID: meetingID, MemberID: memberID, PlaceID: placeID, Liked: liked}
}

func TestComputeConsensus_EmptyVoteLog(t *testing.T) {
	result := ComputeConsensus(nil, 3)

	if result.Status != entities.ConsensusNone {
		t.Fatalf("expected none, got %s", result.Status)
	}
	if result.PlaceIDs == nil || len(result.PlaceIDs) != 0 {
		t.Fatalf("expected empty non-nil place ids, got %v", result.PlaceIDs)
	}
}

func TestComputeConsensus_Unanimous(t *testing.T) {
	m1, m2 := uuid.New(), uuid.New()
	meetingID := uuid.New()
	votes := []*entities.Vote{
		vote(meetingID, m1, "shared", true),
		vote(meetingID, m2, "shared", true),
		vote(meetingID, m1, "solo", true),
	}

	result := ComputeConsensus(votes, 2)

	if result.Status != entities.ConsensusChosen {
		t.Fatalf("expected chosen, got %s", result.Status)
	}
	if len(result.PlaceIDs) != 1 || result.PlaceIDs[0] != "shared" {
		t.Fatalf("expected [shared], got %v", result.PlaceIDs)
	}
}

func TestComputeConsensus_MultipleUnanimousSorted(t *testing.T) {
	m1, m2 := uuid.New(), uuid.New()
	meetingID := uuid.New()
	votes := []*entities.Vote{
		vote(meetingID, m1, "zeta", true),
		vote(meetingID, m2, "zeta", true),
		vote(meetingID, m1, "alpha", true),
		vote(meetingID, m2, "alpha", true),
	}

	result := ComputeConsensus(votes, 2)

	if result.Status != entities.ConsensusChosen {
		t.Fatalf("expected chosen, got %s", result.Status)
	}
	if len(result.PlaceIDs) != 2 || result.PlaceIDs[0] != "alpha" || result.PlaceIDs[1] != "zeta" {
		t.Fatalf("expected sorted [alpha zeta], got %v", result.PlaceIDs)
	}
}

func TestComputeConsensus_TopTie(t *testing.T) {
	m1, m2, m3 := uuid.New(), uuid.New(), uuid.New()
	meetingID := uuid.New()
	votes := []*entities.Vote{
		vote(meetingID, m1, "b-spot", true),
		vote(meetingID, m2, "b-spot", true),
		vote(meetingID, m3, "b-spot", false),
		vote(meetingID, m1, "a-spot", true),
		vote(meetingID, m2, "a-spot", true),
		vote(meetingID, m1, "loser", false),
	}

	result := ComputeConsensus(votes, 3)

	if result.Status != entities.ConsensusTop {
		t.Fatalf("expected top, got %s", result.Status)
	}
	if len(result.PlaceIDs) != 2 || result.PlaceIDs[0] != "a-spot" || result.PlaceIDs[1] != "b-spot" {
		t.Fatalf("expected sorted tie [a-spot b-spot], got %v", result.PlaceIDs)
	}
}

func TestComputeConsensus_AllDislikes(t *testing.T) {
	m1 := uuid.New()
	meetingID := uuid.New()
	votes := []*entities.Vote{
		vote(meetingID, m1, "x", false),
		vote(meetingID, m1, "y", false),
	}

	// Nothing was liked; every voted candidate ties at zero likes.
	result := ComputeConsensus(votes, 1)

	if result.Status != entities.ConsensusTop {
		t.Fatalf("expected top, got %s", result.Status)
	}
	if len(result.PlaceIDs) != 2 {
		t.Fatalf("expected both candidates, got %v", result.PlaceIDs)
	}
}

func TestComputeConsensus_Deterministic(t *testing.T) {
	m1, m2 := uuid.New(), uuid.New()
	meetingID := uuid.New()
	votes := []*entities.Vote{
		vote(meetingID, m1, "p1", true),
		vote(meetingID, m2, "p2", true),
	}

	first := ComputeConsensus(votes, 2)
	for i := 0; i < 20; i++ {
		again := ComputeConsensus(votes, 2)
		if again.Status != first.Status || len(again.PlaceIDs) != len(first.PlaceIDs) {
			t.Fatalf("non-deterministic result: %v vs %v", first, again)
		}
		for j := range first.PlaceIDs {
			if again.PlaceIDs[j] != first.PlaceIDs[j] {
				t.Fatalf("non-deterministic order: %v vs %v", first.PlaceIDs, again.PlaceIDs)
			}
		}
	}
}

func TestRecordVote_RejectsEmptyPlaceID(t *testing.T) {
	fx := newDecisionFixture(t, 2)

	err := fx.service.RecordVote(context.Background(), fx.groupID, fx.meetingID, fx.memberIDs[0], "", true)
	if !errors.Is(err, usecaseErrors.ErrInvalidPlaceID) {
		t.Fatalf("expected ErrInvalidPlaceID, got %v", err)
	}
}

func TestRecordVote_UnknownMeeting(t *testing.T) {
	fx := newDecisionFixture(t, 2)

	err := fx.service.RecordVote(context.Background(), fx.groupID, uuid.New(), fx.memberIDs[0], "p", true)
	if !errors.Is(err, usecaseErrors.ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound, got %v", err)
	}
}

func TestRecordVote_RejectsOutsiderMember(t *testing.T) {
	fx := newDecisionFixture(t, 2)
	ctx := context.Background()

	err := fx.service.RecordVote(ctx, fx.groupID, fx.meetingID, uuid.New(), "rest1", true)
	if !errors.Is(err, usecaseErrors.ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
	if votes, _ := fx.voteRepo.FindByMeeting(ctx, fx.meetingID); len(votes) != 0 {
		t.Fatalf("outsider vote must not be stored, got %d votes", len(votes))
	}
}

func TestRecordVote_RejectsMemberOfOtherGroup(t *testing.T) {
	fx := newDecisionFixture(t, 2)
	otherGroup := uuid.New()
	stranger := &entities.Member{ID: uuid.New(), GroupID: otherGroup}
	fx.groupRepo.members[otherGroup] = []*entities.Member{stranger}

	err := fx.service.RecordVote(context.Background(), fx.groupID, fx.meetingID, stranger.ID, "rest1", true)
	if !errors.Is(err, usecaseErrors.ErrMemberNotInGroup) {
		t.Fatalf("expected ErrMemberNotInGroup, got %v", err)
	}
}

func TestRecordVote_OutsiderCannotBreakUnanimity(t *testing.T) {
	fx := newDecisionFixture(t, 2)
	ctx := context.Background()

	// Both roster members like the same place; an extra like from outside
	// the roster must not push the count past the roster size.
	for _, memberID := range fx.memberIDs {
		if err := fx.service.RecordVote(ctx, fx.groupID, fx.meetingID, memberID, "rest1", true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := fx.service.RecordVote(ctx, fx.groupID, fx.meetingID, uuid.New(), "rest1", true); err == nil {
		t.Fatal("expected outsider vote to be rejected")
	}

	result, err := fx.service.Consensus(ctx, fx.groupID, fx.meetingID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != entities.ConsensusChosen {
		t.Fatalf("expected chosen, got %s", result.Status)
	}
	if len(result.PlaceIDs) != 1 || result.PlaceIDs[0] != "rest1" {
		t.Fatalf("expected [rest1], got %v", result.PlaceIDs)
	}
}

func TestRecordVote_RepeatVoteReplaces(t *testing.T) {
	fx := newDecisionFixture(t, 1)
	ctx := context.Background()

	if err := fx.service.RecordVote(ctx, fx.groupID, fx.meetingID, fx.memberIDs[0], "p", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fx.service.RecordVote(ctx, fx.groupID, fx.meetingID, fx.memberIDs[0], "p", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	votes, _ := fx.voteRepo.FindByMeeting(ctx, fx.meetingID)
	if len(votes) != 1 {
		t.Fatalf("expected one vote row, got %d", len(votes))
	}
	if votes[0].Liked {
		t.Fatal("expected the later dislike to win")
	}
}

func TestSaveProgress_RejectsNegativeIndex(t *testing.T) {
	fx := newDecisionFixture(t, 1)

	err := fx.service.SaveProgress(context.Background(), fx.groupID, fx.meetingID, fx.memberIDs[0], -1, false)
	if !errors.Is(err, usecaseErrors.ErrInvalidDeckIndex) {
		t.Fatalf("expected ErrInvalidDeckIndex, got %v", err)
	}
}

func TestSaveProgress_RejectsOutsiderMember(t *testing.T) {
	fx := newDecisionFixture(t, 1)

	err := fx.service.SaveProgress(context.Background(), fx.groupID, fx.meetingID, uuid.New(), 2, true)
	if !errors.Is(err, usecaseErrors.ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
	if len(fx.progress.rows) != 0 {
		t.Fatalf("outsider progress must not be stored, got %d rows", len(fx.progress.rows))
	}
}

func TestSaveProgress_PublishesSnapshot(t *testing.T) {
	fx := newDecisionFixture(t, 2)

	if err := fx.service.SaveProgress(context.Background(), fx.groupID, fx.meetingID, fx.memberIDs[0], 3, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fx.notifier.published) != 1 {
		t.Fatalf("expected one published snapshot, got %d", len(fx.notifier.published))
	}
	snapshot := fx.notifier.published[0]
	if snapshot.MeetingID != fx.meetingID || len(snapshot.Entries) != 1 {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}
	if snapshot.Entries[0].DeckIndex != 3 {
		t.Fatalf("expected deck index 3, got %d", snapshot.Entries[0].DeckIndex)
	}
}

func TestSaveProgress_LastFinisherTriggersConsensus(t *testing.T) {
	fx := newDecisionFixture(t, 2)
	ctx := context.Background()

	if err := fx.service.RecordVote(ctx, fx.groupID, fx.meetingID, fx.memberIDs[0], "winner", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fx.service.RecordVote(ctx, fx.groupID, fx.meetingID, fx.memberIDs[1], "winner", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := fx.service.SaveProgress(ctx, fx.groupID, fx.meetingID, fx.memberIDs[0], 5, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fx.meetingRepo.merged) != 0 {
		t.Fatalf("consensus persisted before everyone finished: %v", fx.meetingRepo.merged)
	}

	if err := fx.service.SaveProgress(ctx, fx.groupID, fx.meetingID, fx.memberIDs[1], 5, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fx.meetingRepo.merged) == 0 {
		t.Fatal("expected consensus to be persisted after the last finisher")
	}
	if got := fx.meetingRepo.meetings[fx.meetingID].ConsensusStatus; got != string(entities.ConsensusChosen) {
		t.Fatalf("expected chosen status, got %q", got)
	}
}

func TestLoadProgress_DefaultsWhenAbsent(t *testing.T) {
	fx := newDecisionFixture(t, 1)

	progress, err := fx.service.LoadProgress(context.Background(), fx.groupID, fx.meetingID, fx.memberIDs[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if progress.DeckIndex != 0 || progress.Finished {
		t.Fatalf("expected zero progress, got %+v", progress)
	}
}

func TestLoadProgress_RoundTrip(t *testing.T) {
	fx := newDecisionFixture(t, 1)
	ctx := context.Background()

	if err := fx.service.SaveProgress(ctx, fx.groupID, fx.meetingID, fx.memberIDs[0], 7, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	progress, err := fx.service.LoadProgress(ctx, fx.groupID, fx.meetingID, fx.memberIDs[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if progress.DeckIndex != 7 || progress.Finished {
		t.Fatalf("expected index 7 unfinished, got %+v", progress)
	}
}

func TestLoadProgress_UnknownMeeting(t *testing.T) {
	fx := newDecisionFixture(t, 1)

	_, err := fx.service.LoadProgress(context.Background(), fx.groupID, uuid.New(), fx.memberIDs[0])
	if !errors.Is(err, usecaseErrors.ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound, got %v", err)
	}
}

func TestLoadProgress_MeetingOutsideGroup(t *testing.T) {
	fx := newDecisionFixture(t, 1)

	_, err := fx.service.LoadProgress(context.Background(), uuid.New(), fx.meetingID, fx.memberIDs[0])
	if !errors.Is(err, usecaseErrors.ErrMeetingNotInGroup) {
		t.Fatalf("expected ErrMeetingNotInGroup, got %v", err)
	}
}

func TestAllFinished_MembershipNotCount(t *testing.T) {
	current := uuid.New()
	departed := uuid.New()
	meetingID := uuid.New()

	// One finished entry exists, but it belongs to a member who left;
	// the current roster member has not finished.
	snapshot := entities.ProgressSnapshot{
		MeetingID: meetingID,
		Entries: []entities.SwipeProgress{
			{MeetingID: meetingID, MemberID: departed, Finished: true},
		},
	}
	members := []*entities.Member{{ID: current}}

	if AllFinished(snapshot, members) {
		t.Fatal("a departed member's entry must not satisfy the roster")
	}
}

func TestAllFinished_EmptyRoster(t *testing.T) {
	if AllFinished(entities.ProgressSnapshot{}, nil) {
		t.Fatal("an empty roster must never count as finished")
	}
}

func TestAllFinished_AllDone(t *testing.T) {
	m1, m2 := uuid.New(), uuid.New()
	meetingID := uuid.New()
	snapshot := entities.ProgressSnapshot{
		MeetingID: meetingID,
		Entries: []entities.SwipeProgress{
			{MeetingID: meetingID, MemberID: m1, Finished: true},
			{MeetingID: meetingID, MemberID: m2, Finished: true},
		},
	}
	members := []*entities.Member{{ID: m1}, {ID: m2}}

	if !AllFinished(snapshot, members) {
		t.Fatal("expected all finished")
	}
}

func TestFinalize_CommitsOutcomeForEveryMember(t *testing.T) {
	fx := newDecisionFixture(t, 3)
	before := time.Now().UTC()

	place := entities.Place{ID: "chosen-place", Name: "Chosen Place"}
	if err := fx.service.Finalize(context.Background(), fx.groupID, fx.meetingID, place); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fx.finalize.commits) != 1 {
		t.Fatalf("expected one commit, got %d", len(fx.finalize.commits))
	}
	commit := fx.finalize.commits[0]
	if commit.MeetingID != fx.meetingID || commit.Place.ID != "chosen-place" {
		t.Fatalf("unexpected commit %+v", commit)
	}
	if len(commit.MemberIDs) != 3 {
		t.Fatalf("expected a visit per member, got %d", len(commit.MemberIDs))
	}
	if commit.VisitedAt.Before(before) {
		t.Fatalf("unexpected visit time %v", commit.VisitedAt)
	}
}

func TestFinalize_RejectsEmptyPlaceID(t *testing.T) {
	fx := newDecisionFixture(t, 1)

	err := fx.service.Finalize(context.Background(), fx.groupID, fx.meetingID, entities.Place{Name: "No ID"})
	if !errors.Is(err, usecaseErrors.ErrInvalidPlaceID) {
		t.Fatalf("expected ErrInvalidPlaceID, got %v", err)
	}
}

func TestFinalize_RejectsEmptyGroup(t *testing.T) {
	fx := newDecisionFixture(t, 0)

	err := fx.service.Finalize(context.Background(), fx.groupID, fx.meetingID, entities.Place{ID: "p", Name: "P"})
	if !errors.Is(err, usecaseErrors.ErrEmptyGroup) {
		t.Fatalf("expected ErrEmptyGroup, got %v", err)
	}
}

func TestFinalize_RejectsAlreadyFinalized(t *testing.T) {
	fx := newDecisionFixture(t, 1)
	fx.meetingRepo.meetings[fx.meetingID].EatingConfirmed = true

	err := fx.service.Finalize(context.Background(), fx.groupID, fx.meetingID, entities.Place{ID: "p", Name: "P"})
	if !errors.Is(err, usecaseErrors.ErrMeetingAlreadyFinal) {
		t.Fatalf("expected ErrMeetingAlreadyFinal, got %v", err)
	}
}

func TestFinalize_PropagatesCommitFailure(t *testing.T) {
	fx := newDecisionFixture(t, 1)
	fx.finalize.err = errors.New("tx aborted")

	err := fx.service.Finalize(context.Background(), fx.groupID, fx.meetingID, entities.Place{ID: "p", Name: "P"})
	if err == nil {
		t.Fatal("expected commit failure to surface")
	}
}

func TestEnsureConsensus_Idempotent(t *testing.T) {
	fx := newDecisionFixture(t, 1)
	ctx := context.Background()

	if err := fx.service.RecordVote(ctx, fx.groupID, fx.meetingID, fx.memberIDs[0], "p", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := fx.service.EnsureConsensus(ctx, fx.groupID, fx.meetingID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := fx.service.EnsureConsensus(ctx, fx.groupID, fx.meetingID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Status != second.Status || len(first.PlaceIDs) != len(second.PlaceIDs) {
		t.Fatalf("repeat computation diverged: %v vs %v", first, second)
	}
	if len(fx.meetingRepo.merged) != 2 {
		t.Fatalf("expected two merge writes, got %d", len(fx.meetingRepo.merged))
	}
}
