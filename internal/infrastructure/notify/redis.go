package notify

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
)

// RedisNotifier implements ProgressNotifier via Redis pub/sub, one channel
// per meeting. Reconciliation across clients goes through the persisted
// progress rows; the pub/sub channel only wakes observers up.
type RedisNotifier struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisNotifier creates a Redis-backed progress notifier
func NewRedisNotifier(client *redis.Client, logger *zap.Logger) *RedisNotifier {
	return &RedisNotifier{client: client, logger: logger}
}

func progressChannel(meetingID uuid.UUID) string {
	return "progress:" + meetingID.String()
}

// Publish broadcasts a fresh snapshot for a meeting
func (n *RedisNotifier) Publish(ctx context.Context, snapshot entities.ProgressSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return n.client.Publish(ctx, progressChannel(snapshot.MeetingID), payload).Err()
}

// Subscribe registers interest in a meeting's progress
func (n *RedisNotifier) Subscribe(ctx context.Context, meetingID uuid.UUID) (<-chan entities.ProgressSnapshot, func(), error) {
	sub := n.client.Subscribe(ctx, progressChannel(meetingID))

	// Force the subscription to be established before returning so a
	// snapshot published right after Subscribe is not lost.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, nil, err
	}

	out := make(chan entities.ProgressSnapshot, 8)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var snapshot entities.ProgressSnapshot
			if err := json.Unmarshal([]byte(msg.Payload), &snapshot); err != nil {
				n.logger.Warn("dropping malformed progress snapshot", zap.Error(err))
				continue
			}
			select {
			case out <- snapshot:
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() {
		sub.Close()
	}
	return out, cancel, nil
}
