package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Evento publicado no tópico "dashboard_odds_updates" a cada avanço do feed
type Odds struct {
	Home decimal.Decimal `json:"home"`
	Draw decimal.Decimal `json:"draw"` // zero em mercados de duas vias
	Away decimal.Decimal `json:"away"`
}

type OddsUpdate struct {
	SessionID   string    `json:"session_id"`
	MatchIndex  int       `json:"match_index"`
	MatchNumber int       `json:"match_number"` // MatchIndex + 1, como exibido
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	Market      string    `json:"market"` // "1x2" | "12"
	Odds        Odds      `json:"odds"`
	Exhausted   bool      `json:"exhausted"`
	UpdatedAt   time.Time `json:"updated_at"`
	Source      string    `json:"source"`
}

const (
	MarketThreeWay = "1x2"
	MarketTwoWay   = "12"
)
