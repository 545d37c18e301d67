package session

import (
	"errors"
	"time"

	"github.com/radieske/smart-betting-dashboard/internal/betting/budget"
	"github.com/radieske/smart-betting-dashboard/internal/betting/ledger"
)

// Kind classifica a notificação exibida ao usuário
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindError   Kind = "error"
)

// Notification é a última mensagem visível; some após o TTL configurado
type Notification struct {
	Message   string    `json:"message"`
	Kind      Kind      `json:"kind"`
	ShownAt   time.Time `json:"shownAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Reason e Message traduzem os erros de validação para métricas e para o usuário
const (
	ReasonInvalidStake       = "invalid_stake"
	ReasonInsufficientBudget = "insufficient_budget"
	ReasonInvalidBudget      = "invalid_budget"
	ReasonInvalidSelection   = "invalid_selection"
	ReasonUnknown            = "unknown"
)

func Reason(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInvalidStake):
		return ReasonInvalidStake
	case errors.Is(err, ledger.ErrInsufficientBudget):
		return ReasonInsufficientBudget
	case errors.Is(err, budget.ErrInvalidBudget):
		return ReasonInvalidBudget
	case errors.Is(err, ledger.ErrInvalidSelection):
		return ReasonInvalidSelection
	}
	return ReasonUnknown
}

func Message(err error) string {
	switch Reason(err) {
	case ReasonInvalidStake:
		return "Stake amount must be a valid number greater than zero."
	case ReasonInsufficientBudget:
		return "Insufficient budget to place this bet."
	case ReasonInvalidBudget:
		return "Budget must be a valid number zero or greater."
	case ReasonInvalidSelection:
		return "Selected odds are not available for this match."
	}
	return err.Error()
}
