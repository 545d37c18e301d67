package events

const (
	KindLedger = "ledger"
	KindOdds   = "odds"
	KindNotice = "notice"
)

// Envelope é o que a sessão coloca no outbox; exatamente um dos payloads vem preenchido
type Envelope struct {
	Kind   string       `json:"kind"`
	Ledger *LedgerEvent `json:"ledger,omitempty"`
	Odds   *OddsUpdate  `json:"odds,omitempty"`
	Notice *NoticeEvent `json:"notice,omitempty"`
}

// Key é usada como chave de partição no Kafka
func (e Envelope) Key() string {
	switch {
	case e.Ledger != nil:
		return e.Ledger.SessionID
	case e.Odds != nil:
		return e.Odds.SessionID
	case e.Notice != nil:
		return e.Notice.SessionID
	}
	return ""
}

func NewLedger(ev LedgerEvent) Envelope { return Envelope{Kind: KindLedger, Ledger: &ev} }

func NewOdds(ev OddsUpdate) Envelope { return Envelope{Kind: KindOdds, Odds: &ev} }

func NewNotice(ev NoticeEvent) Envelope { return Envelope{Kind: KindNotice, Notice: &ev} }
