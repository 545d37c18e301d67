package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeBetPlaced     = "BET_PLACED"
	TypeBetRemoved    = "BET_REMOVED"
	TypeBudgetChanged = "BUDGET_CHANGED"
)

// LedgerEvent é publicado no tópico "dashboard_ledger_events" após cada mutação
// aceita do ledger ou do orçamento. Amount é o stake (placed) ou o reembolso (removed).
type LedgerEvent struct {
	SessionID       string          `json:"session_id"`
	Type            string          `json:"type"`
	BetID           string          `json:"bet_id,omitempty"`
	Team            string          `json:"team,omitempty"`
	MatchIndex      int             `json:"match_index"`
	Odds            decimal.Decimal `json:"odds"`
	Amount          decimal.Decimal `json:"amount"`
	TotalBudget     decimal.Decimal `json:"total_budget"`
	AvailableBudget decimal.Decimal `json:"available_budget"`
	Ts              time.Time       `json:"ts"`
}
