package producer

import (
	"context"
	"encoding/json"

	"github.com/radieske/smart-betting-dashboard/internal/shared/kafka"
	"github.com/radieske/smart-betting-dashboard/pkg/contracts/events"
)

// KafkaPublisher publica eventos do ledger e das odds em tópicos separados,
// usando o ID da sessão como chave de partição
type KafkaPublisher struct {
	Writer      kafka.MessageWriter
	LedgerTopic string
	OddsTopic   string
}

func NewKafkaPublisher(w kafka.MessageWriter, ledgerTopic, oddsTopic string) *KafkaPublisher {
	return &KafkaPublisher{Writer: w, LedgerTopic: ledgerTopic, OddsTopic: oddsTopic}
}

func (p *KafkaPublisher) Name() string { return "kafka" }

func (p *KafkaPublisher) Handle(ctx context.Context, e events.Envelope) error {
	switch {
	case e.Ledger != nil:
		return p.publish(ctx, p.LedgerTopic, e.Key(), e.Ledger)
	case e.Odds != nil:
		return p.publish(ctx, p.OddsTopic, e.Key(), e.Odds)
	}
	return nil
}

func (p *KafkaPublisher) publish(ctx context.Context, topic, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return kafka.WriteJSON(ctx, p.Writer, topic, key, b)
}
