package dto

import (
	"github.com/shopspring/decimal"

	"github.com/radieske/smart-betting-dashboard/internal/betting/returns"
	"github.com/radieske/smart-betting-dashboard/internal/betting/session"
)

// PlaceBetRequest é o payload de POST /v1/bets. Stake chega como texto
// (o que o usuário digitou) e é validado pelo motor.
type PlaceBetRequest struct {
	Team       string          `json:"team"`
	Odds       decimal.Decimal `json:"odds"`
	MatchIndex *int            `json:"matchIndex"`
	Stake      string          `json:"stake"`
}

type ToggleBetResponse struct {
	Action          string                `json:"action"` // BET_PLACED | BET_REMOVED
	BetID           string                `json:"betId,omitempty"`
	Team            string                `json:"team"`
	MatchIndex      int                   `json:"matchIndex"`
	Amount          decimal.Decimal       `json:"amount"`
	AvailableBudget decimal.Decimal       `json:"availableBudget"`
	Notification    *session.Notification `json:"notification,omitempty"`
}

// SetBudgetRequest é o payload de PUT /v1/budget
type SetBudgetRequest struct {
	Amount string `json:"amount"`
}

type OddsResponse struct {
	MatchIndex    int                `json:"matchIndex"`
	MatchNumber   int                `json:"matchNumber"`
	FeedExhausted bool               `json:"feedExhausted"`
	Odds          []session.OddsCard `json:"odds"`
}

type ReturnsResponse struct {
	TeamReturns        []returns.TeamReturns `json:"teamReturns"`
	CombinedTotalStake decimal.Decimal       `json:"combinedTotalStake"`
}

type AdvanceResponse struct {
	MatchIndex    int  `json:"matchIndex"`
	MatchNumber   int  `json:"matchNumber"`
	FeedExhausted bool `json:"feedExhausted"`
}

// ErrorResponse padroniza erros da API. TotalBudget vem preenchido quando
// um PUT /v1/budget é rejeitado (último valor válido).
type ErrorResponse struct {
	Error       string           `json:"error"`
	Code        string           `json:"code,omitempty"`
	TotalBudget *decimal.Decimal `json:"totalBudget,omitempty"`
}
