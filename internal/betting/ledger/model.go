package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bet é uma aposta ativa. A identidade é o par (Team, MatchIndex);
// ID e PlacedAt existem só para o stream de eventos.
type Bet struct {
	ID         string          `json:"id"`
	Team       string          `json:"team"`
	Odds       decimal.Decimal `json:"odds"`
	Amount     decimal.Decimal `json:"amount"`
	MatchIndex int             `json:"matchIndex"`
	PlacedAt   time.Time       `json:"placedAt"`
}

// Key identifica uma aposta dentro do ledger
type Key struct {
	Team       string
	MatchIndex int
}

func (b Bet) Key() Key { return Key{Team: b.Team, MatchIndex: b.MatchIndex} }

// Action descreve o que um Toggle fez com o ledger
type Action string

const (
	ActionPlaced  Action = "BET_PLACED"
	ActionRemoved Action = "BET_REMOVED"
)

// Outcome é o resultado de um Toggle bem sucedido.
// Amount é o valor apostado (placed) ou o valor devolvido (removed).
type Outcome struct {
	Action     Action          `json:"action"`
	Team       string          `json:"team"`
	MatchIndex int             `json:"matchIndex"`
	Amount     decimal.Decimal `json:"amount"`
	Bet        Bet             `json:"bet"`
}

func (o Outcome) Placed() bool  { return o.Action == ActionPlaced }
func (o Outcome) Removed() bool { return o.Action == ActionRemoved }
