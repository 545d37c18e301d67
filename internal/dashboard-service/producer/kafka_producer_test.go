package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/smart-betting-dashboard/pkg/contracts/events"
	"github.com/radieske/smart-betting-dashboard/pkg/contracts/topics"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func TestHandle_RoutesByKind(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisher(w, topics.LedgerEvents, topics.OddsUpdates)
	ctx := context.Background()

	require.NoError(t, p.Handle(ctx, events.NewLedger(events.LedgerEvent{
		SessionID: "sess-1",
		Type:      events.TypeBetPlaced,
		Team:      "Team 1",
		Amount:    decimal.RequireFromString("1000"),
	})))
	require.NoError(t, p.Handle(ctx, events.NewOdds(events.OddsUpdate{SessionID: "sess-1", MatchIndex: 3})))
	require.NoError(t, p.Handle(ctx, events.Envelope{}), "empty envelope is ignored")

	require.Len(t, w.msgs, 2)
	assert.Equal(t, topics.LedgerEvents, w.msgs[0].Topic)
	assert.Equal(t, "sess-1", string(w.msgs[0].Key))
	assert.Equal(t, topics.OddsUpdates, w.msgs[1].Topic)

	var ev events.LedgerEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, events.TypeBetPlaced, ev.Type)
	assert.True(t, decimal.RequireFromString("1000").Equal(ev.Amount))
}

func TestHandle_PropagatesWriterError(t *testing.T) {
	p := NewKafkaPublisher(&fakeWriter{err: errors.New("leader not available")}, "l", "o")
	err := p.Handle(context.Background(), events.NewOdds(events.OddsUpdate{}))
	assert.Error(t, err)
	assert.Equal(t, "kafka", p.Name())
}

func TestHandle_IgnoresNotices(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisher(w, topics.LedgerEvents, topics.OddsUpdates)
	require.NoError(t, p.Handle(context.Background(), events.NewNotice(events.NoticeEvent{SessionID: "sess-1", Dismissed: true})))
	assert.Empty(t, w.msgs)
}
