package notify

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
)

// MemoryNotifier implements ProgressNotifier in-process, for development
// and tests.
type MemoryNotifier struct {
	mu   sync.Mutex
	subs map[uuid.UUID]map[int]chan entities.ProgressSnapshot
	next int
}

// NewMemoryNotifier creates an in-process progress notifier
func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{
		subs: make(map[uuid.UUID]map[int]chan entities.ProgressSnapshot),
	}
}

// Publish broadcasts a fresh snapshot for a meeting
func (n *MemoryNotifier) Publish(_ context.Context, snapshot entities.ProgressSnapshot) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs[snapshot.MeetingID] {
		select {
		case ch <- snapshot:
		default:
			// Slow observer; it will catch up on the next snapshot.
		}
	}
	return nil
}

// Subscribe registers interest in a meeting's progress
func (n *MemoryNotifier) Subscribe(_ context.Context, meetingID uuid.UUID) (<-chan entities.ProgressSnapshot, func(), error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs[meetingID] == nil {
		n.subs[meetingID] = make(map[int]chan entities.ProgressSnapshot)
	}

	id := n.next
	n.next++

	ch := make(chan entities.ProgressSnapshot, 8)
	n.subs[meetingID][id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subs[meetingID][id]; ok {
			delete(n.subs[meetingID], id)
			close(sub)
		}
	}
	return ch, cancel, nil
}
