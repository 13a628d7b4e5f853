package notify

import (
	"context"

	"github.com/google/uuid"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
)

// ProgressNotifier fans swipe-progress snapshots out to interested
// observers. Publishers send the full snapshot on every save; observers
// register interest in one meeting and receive a stream of snapshots,
// deriving "all finished" per snapshot rather than keeping incremental
// state.
type ProgressNotifier interface {
	// Publish broadcasts a fresh snapshot for a meeting
	Publish(ctx context.Context, snapshot entities.ProgressSnapshot) error

	// Subscribe registers interest in a meeting's progress. The returned
	// cancel func must be called to release the subscription; the channel
	// closes once cancelled.
	Subscribe(ctx context.Context, meetingID uuid.UUID) (<-chan entities.ProgressSnapshot, func(), error)
}
