package dispatch

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/smart-betting-dashboard/pkg/contracts/events"
)

// Sink recebe os eventos da sessão (Kafka, Redis, Postgres, WebSocket)
type Sink interface {
	Name() string
	Handle(ctx context.Context, e events.Envelope) error
}

// SinkFunc adapta uma função em Sink
type SinkFunc struct {
	SinkName string
	Fn       func(ctx context.Context, e events.Envelope) error
}

func (f SinkFunc) Name() string { return f.SinkName }

func (f SinkFunc) Handle(ctx context.Context, e events.Envelope) error { return f.Fn(ctx, e) }

// Dispatcher consome o outbox da sessão e entrega cada evento a todos os sinks.
// Falha de um sink não impede os demais; callbacks alimentam métricas.
type Dispatcher struct {
	Log     *zap.Logger
	Sinks   []Sink
	Timeout time.Duration // por entrega; zero usa 2s

	OnDelivered func(sink string) // métricas
	OnError     func(sink string) // métricas por sink
}

// Run processa até o contexto ser cancelado ou o outbox ser fechado
func (d *Dispatcher) Run(ctx context.Context, in <-chan events.Envelope) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-in:
			if !ok {
				return nil // sessão encerrada
			}
			d.deliver(ctx, e)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, e events.Envelope) {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	for _, s := range d.Sinks {
		sctx, cancel := context.WithTimeout(ctx, timeout)
		err := s.Handle(sctx, e)
		cancel()

		if err != nil {
			if d.Log != nil {
				d.Log.Warn("sink delivery failed",
					zap.String("sink", s.Name()),
					zap.String("kind", e.Kind),
					zap.Error(err),
				)
			}
			if d.OnError != nil {
				d.OnError(s.Name())
			}
			continue
		}
		if d.OnDelivered != nil {
			d.OnDelivered(s.Name())
		}
	}
}
