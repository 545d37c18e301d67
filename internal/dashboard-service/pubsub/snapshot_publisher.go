package pubsub

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/smart-betting-dashboard/internal/betting/session"
	"github.com/radieske/smart-betting-dashboard/pkg/contracts/events"
)

// Snapshotter fornece o read model atual da sessão
type Snapshotter interface {
	Snapshot() session.View
}

// SnapshotPublisher publica o snapshot completo no canal Redis a cada evento,
// para que o subscriber do WebSocket repasse aos clientes
type SnapshotPublisher struct {
	R       *redis.Client
	Channel string
	Source  Snapshotter
}

func New(r *redis.Client, channel string, src Snapshotter) *SnapshotPublisher {
	return &SnapshotPublisher{R: r, Channel: channel, Source: src}
}

func (p *SnapshotPublisher) Name() string { return "redis-pubsub" }

func (p *SnapshotPublisher) Handle(ctx context.Context, _ events.Envelope) error {
	b, err := json.Marshal(p.Source.Snapshot())
	if err != nil {
		return err
	}
	return p.R.Publish(ctx, p.Channel, b).Err()
}
