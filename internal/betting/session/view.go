package session

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/radieske/smart-betting-dashboard/internal/betting/ledger"
	"github.com/radieske/smart-betting-dashboard/internal/betting/returns"
)

// OddsCard é uma seleção da partida corrente com a exposição do usuário nela
type OddsCard struct {
	Team            string          `json:"team"`
	Odds            decimal.Decimal `json:"odds"`
	CurrentStake    decimal.Decimal `json:"currentStake"`
	PotentialReturn decimal.Decimal `json:"potentialReturn"`
	HasBet          bool            `json:"hasBet"`
}

// View é o read model entregue à camada de apresentação
type View struct {
	SessionID          string                `json:"sessionId"`
	MatchIndex         int                   `json:"matchIndex"`
	MatchNumber        int                   `json:"matchNumber"`
	FeedExhausted      bool                  `json:"feedExhausted"`
	CurrentOdds        []OddsCard            `json:"currentOdds"`
	TotalBudget        decimal.Decimal       `json:"totalBudget"`
	AvailableBudget    decimal.Decimal       `json:"availableBudget"`
	CombinedTotalStake decimal.Decimal       `json:"combinedTotalStake"`
	BudgetUsedPercent  decimal.Decimal       `json:"budgetUsedPercent"`
	Overcommitted      bool                  `json:"overcommitted"`
	BettingDisabled    bool                  `json:"bettingDisabled"`
	TeamReturns        []returns.TeamReturns `json:"teamReturns"`
	Bets               []ledger.Bet          `json:"bets"`
	LastNotification   *Notification         `json:"lastNotification"`
	GeneratedAt        time.Time             `json:"generatedAt"`
}
