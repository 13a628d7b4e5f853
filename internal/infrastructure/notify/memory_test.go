package notify

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
)

func TestMemoryNotifier_PublishReachesSubscriber(t *testing.T) {
	n := NewMemoryNotifier()
	meetingID := uuid.New()
	ctx := context.Background()

	ch, cancel, err := n.Subscribe(ctx, meetingID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cancel()

	snapshot := entities.ProgressSnapshot{MeetingID: meetingID}
	if err := n.Publish(ctx, snapshot); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case got := <-ch:
		if got.MeetingID != meetingID {
			t.Fatalf("unexpected snapshot %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
}

func TestMemoryNotifier_OtherMeetingsNotNotified(t *testing.T) {
	n := NewMemoryNotifier()
	ctx := context.Background()

	ch, cancel, err := n.Subscribe(ctx, uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cancel()

	if err := n.Publish(ctx, entities.ProgressSnapshot{MeetingID: uuid.New()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case got := <-ch:
		t.Fatalf("unexpected snapshot %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryNotifier_CancelClosesChannel(t *testing.T) {
	n := NewMemoryNotifier()
	ctx := context.Background()

	ch, cancel, err := n.Subscribe(ctx, uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cancel()

	select {
	case _, open := <-ch:
		if open {
			t.Fatal("expected a closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestMemoryNotifier_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	n := NewMemoryNotifier()
	meetingID := uuid.New()
	ctx := context.Background()

	_, cancel, err := n.Subscribe(ctx, meetingID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cancel()

	// Nobody drains the channel; publishes beyond the buffer must drop,
	// not deadlock.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 32; i++ {
			n.Publish(ctx, entities.ProgressSnapshot{MeetingID: meetingID})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}
