package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/radieske/smart-betting-dashboard/internal/betting/session"
	"github.com/radieske/smart-betting-dashboard/pkg/contracts/events"
)

type stubSource struct{ v session.View }

func (s *stubSource) Snapshot() session.View { return s.v }

type received struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func dial(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) received {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg received
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHub_InitialSnapshotPingAndBroadcast(t *testing.T) {
	src := &stubSource{v: session.View{SessionID: "sess-1", MatchIndex: 0}}
	h := NewHub(zaptest.NewLogger(t), nil, src)

	conn := dial(t, h)

	first := read(t, conn)
	assert.Equal(t, MsgSnapshot, first.Type)
	var v session.View
	require.NoError(t, json.Unmarshal(first.Payload, &v))
	assert.Equal(t, "sess-1", v.SessionID)
	assert.Equal(t, 1, h.Len())

	require.NoError(t, conn.WriteJSON(ClientMsg{Type: MsgPing}))
	assert.Equal(t, MsgPong, read(t, conn).Type)

	src.v.MatchIndex = 3
	require.NoError(t, h.BroadcastSnapshot())
	msg := read(t, conn)
	require.NoError(t, json.Unmarshal(msg.Payload, &v))
	assert.Equal(t, 3, v.MatchIndex)

	require.NoError(t, Sink{Hub: h}.Handle(context.Background(), events.NewNotice(events.NoticeEvent{Dismissed: true})))
	assert.Equal(t, MsgSnapshot, read(t, conn).Type)

	_ = conn.Close()
	assert.Eventually(t, func() bool { return h.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestStartRedisSubscriber_ForwardsSnapshots(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	h := NewHub(zaptest.NewLogger(t), nil, &stubSource{})
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, StartRedisSubscriber(ctx, rdb, "dashboard_snapshots", h, zaptest.NewLogger(t)))

	conn := dial(t, h)
	_ = read(t, conn) // snapshot inicial

	require.NoError(t, rdb.Publish(ctx, "dashboard_snapshots", "not json").Err())
	require.NoError(t, rdb.Publish(ctx, "dashboard_snapshots", `{"sessionId":"sess-9","matchIndex":7}`).Err())

	msg := read(t, conn)
	assert.Equal(t, MsgSnapshot, msg.Type)
	var v session.View
	require.NoError(t, json.Unmarshal(msg.Payload, &v))
	assert.Equal(t, "sess-9", v.SessionID)
	assert.Equal(t, 7, v.MatchIndex)
}

