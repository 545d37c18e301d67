package ws

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: ping | snapshot
type ClientMsg struct {
	Type string `json:"type"`
}

// ServerMsg é o envelope enviado aos clientes
// Type: snapshot | pong
type ServerMsg struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

const (
	MsgSnapshot = "snapshot"
	MsgPong     = "pong"
	MsgPing     = "ping"
)
