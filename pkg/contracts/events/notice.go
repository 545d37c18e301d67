package events

import "time"

// NoticeEvent sinaliza que a notificação visível mudou sem mutação do ledger
// (comando rejeitado ou expiração). Só os sinks de snapshot reagem a ele.
type NoticeEvent struct {
	SessionID string    `json:"session_id"`
	Kind      string    `json:"kind,omitempty"` // vazio quando Dismissed
	Message   string    `json:"message,omitempty"`
	Dismissed bool      `json:"dismissed"`
	Ts        time.Time `json:"ts"`
}
