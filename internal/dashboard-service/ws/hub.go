package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/radieske/smart-betting-dashboard/internal/betting/session"
)

const writeWait = 5 * time.Second

// Snapshotter fornece o read model atual da sessão
type Snapshotter interface {
	Snapshot() session.View
}

// Hub gerencia as conexões WebSocket do dashboard. Todo cliente recebe o
// snapshot completo ao conectar e a cada mudança de estado.
// mu também serializa as escritas: gorilla aceita um único writer por conexão.
type Hub struct {
	upgrader websocket.Upgrader
	log      *zap.Logger
	source   Snapshotter

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}

	OnClients func(n int) // métricas
}

// NewHub cria uma instância de Hub com política customizada de origem (CORS)
func NewHub(log *zap.Logger, allowOrigin func(r *http.Request) bool, src Snapshotter) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		log:      log,
		source:   src,
		clients:  make(map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) { h.HandleWS(w, r) }

// HandleWS gerencia o ciclo de vida de uma conexão WebSocket
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	n := len(h.clients)
	err = h.writeSnapshotLocked(conn)
	h.mu.Unlock()
	h.clientsChanged(n)
	if err != nil {
		h.remove(conn)
		return
	}

	for {
		var msg ClientMsg
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		switch msg.Type {
		case MsgPing:
			h.mu.Lock()
			_ = h.writeLocked(conn, ServerMsg{Type: MsgPong})
			h.mu.Unlock()
		case MsgSnapshot:
			h.mu.Lock()
			_ = h.writeSnapshotLocked(conn)
			h.mu.Unlock()
		}
	}
	h.remove(conn)
}

// Broadcast envia um payload já serializado (snapshot) para todos os clientes.
// Conexões que falham na escrita são descartadas.
func (h *Hub) Broadcast(snapshot json.RawMessage) {
	b, err := json.Marshal(ServerMsg{Type: MsgSnapshot, Payload: snapshot})
	if err != nil {
		return
	}

	h.mu.Lock()
	var dead []*websocket.Conn
	for c := range h.clients {
		_ = c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			dead = append(dead, c)
		}
	}
	for _, c := range dead {
		delete(h.clients, c)
		_ = c.Close()
	}
	n := len(h.clients)
	h.mu.Unlock()

	if len(dead) > 0 {
		h.log.Debug("ws clients dropped", zap.Int("dropped", len(dead)))
		h.clientsChanged(n)
	}
}

// BroadcastSnapshot serializa o snapshot atual da sessão e envia a todos
func (h *Hub) BroadcastSnapshot() error {
	b, err := json.Marshal(h.source.Snapshot())
	if err != nil {
		return err
	}
	h.Broadcast(b)
	return nil
}

// Len retorna o número de clientes conectados
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		h.clientsChanged(n)
	}
}

func (h *Hub) writeSnapshotLocked(conn *websocket.Conn) error {
	return h.writeLocked(conn, ServerMsg{Type: MsgSnapshot, Payload: h.source.Snapshot()})
}

func (h *Hub) writeLocked(conn *websocket.Conn, msg ServerMsg) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

func (h *Hub) clientsChanged(n int) {
	if h.OnClients != nil {
		h.OnClients(n)
	}
}
