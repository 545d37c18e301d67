package topics

const (
	// Ledger (apostas e orçamento)
	LedgerEvents = "dashboard_ledger_events"

	// Odds da partida corrente
	OddsUpdates = "dashboard_odds_updates"
)
