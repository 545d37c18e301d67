package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/radieske/smart-betting-dashboard/pkg/contracts/events"
)

// AuditRepo grava a trilha de auditoria da sessão. Nada é lido de volta:
// cada sessão começa limpa. NUMERIC sem escala guarda os valores exatos do ledger.
type AuditRepo struct {
	DB *sql.DB
}

func NewAuditRepo(db *sql.DB) *AuditRepo { return &AuditRepo{DB: db} }

const schema = `
CREATE TABLE IF NOT EXISTS ledger_events (
	id               BIGSERIAL PRIMARY KEY,
	session_id       TEXT        NOT NULL,
	type             TEXT        NOT NULL,
	bet_id           TEXT,
	team             TEXT,
	match_index      INT         NOT NULL,
	odds             NUMERIC,
	amount           NUMERIC     NOT NULL,
	total_budget     NUMERIC     NOT NULL,
	available_budget NUMERIC     NOT NULL,
	ts               TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS odds_history (
	id          BIGSERIAL PRIMARY KEY,
	session_id  TEXT        NOT NULL,
	match_index INT         NOT NULL,
	market      TEXT        NOT NULL,
	home_odd    NUMERIC,
	draw_odd    NUMERIC,
	away_odd    NUMERIC,
	exhausted   BOOLEAN     NOT NULL DEFAULT FALSE,
	updated_at  TIMESTAMPTZ NOT NULL
);`

// Migrate cria as tabelas se ainda não existirem
func (r *AuditRepo) Migrate(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate audit schema: %w", err)
	}
	return nil
}

func (r *AuditRepo) Name() string { return "postgres" }

func (r *AuditRepo) Handle(ctx context.Context, e events.Envelope) error {
	switch {
	case e.Ledger != nil:
		return r.InsertLedgerEvent(ctx, *e.Ledger)
	case e.Odds != nil:
		return r.InsertOdds(ctx, *e.Odds)
	}
	return nil
}

func (r *AuditRepo) InsertLedgerEvent(ctx context.Context, ev events.LedgerEvent) error {
	const q = `
		INSERT INTO ledger_events
			(session_id, type, bet_id, team, match_index, odds, amount, total_budget, available_budget, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.DB.ExecContext(ctx, q,
		ev.SessionID, ev.Type, nullIfEmpty(ev.BetID), nullIfEmpty(ev.Team), ev.MatchIndex,
		ev.Odds, ev.Amount, ev.TotalBudget, ev.AvailableBudget, ev.Ts,
	)
	return err
}

func (r *AuditRepo) InsertOdds(ctx context.Context, upd events.OddsUpdate) error {
	const q = `
		INSERT INTO odds_history
			(session_id, match_index, market, home_odd, draw_odd, away_odd, exhausted, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	var draw any
	if upd.Market == events.MarketThreeWay {
		draw = upd.Odds.Draw
	}
	_, err := r.DB.ExecContext(ctx, q,
		upd.SessionID, upd.MatchIndex, upd.Market,
		upd.Odds.Home, draw, upd.Odds.Away, upd.Exhausted, upd.UpdatedAt,
	)
	return err
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
