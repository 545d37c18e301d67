package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureWriter struct{ msgs []kafka.Message }

func (c *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	c.msgs = append(c.msgs, msgs...)
	return nil
}

func TestWriteJSON(t *testing.T) {
	w := &captureWriter{}
	require.NoError(t, WriteJSON(context.Background(), w, "dashboard_ledger_events", "session-1", []byte(`{"a":1}`)))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "dashboard_ledger_events", w.msgs[0].Topic)
	assert.Equal(t, []byte("session-1"), w.msgs[0].Key)
	assert.JSONEq(t, `{"a":1}`, string(w.msgs[0].Value))
	assert.False(t, w.msgs[0].Time.IsZero())
}

func TestNewWriter_NoFixedTopic(t *testing.T) {
	w := NewWriter("a:9092,b:9092")
	defer w.Close()
	assert.Empty(t, w.Topic)
	assert.NotNil(t, w.Addr)
}

func TestPing_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	assert.Error(t, Ping(ctx, "127.0.0.1:1"))
}
