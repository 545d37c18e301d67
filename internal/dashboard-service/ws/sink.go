package ws

import (
	"context"

	"github.com/radieske/smart-betting-dashboard/pkg/contracts/events"
)

// Sink empurra o snapshot direto para o Hub; usado quando o Redis está desligado
type Sink struct {
	Hub *Hub
}

func (s Sink) Name() string { return "ws" }

func (s Sink) Handle(_ context.Context, _ events.Envelope) error {
	return s.Hub.BroadcastSnapshot()
}
