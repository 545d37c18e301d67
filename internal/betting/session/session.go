package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/radieske/smart-betting-dashboard/internal/betting/budget"
	"github.com/radieske/smart-betting-dashboard/internal/betting/clock"
	"github.com/radieske/smart-betting-dashboard/internal/betting/feed"
	"github.com/radieske/smart-betting-dashboard/internal/betting/ledger"
	"github.com/radieske/smart-betting-dashboard/internal/betting/returns"
	"github.com/radieske/smart-betting-dashboard/pkg/contracts/events"
)

const (
	DefaultAdvanceInterval = 10 * time.Second
	DefaultNotificationTTL = 3 * time.Second
	DefaultOutboxSize      = 256
)

// Config parametriza uma sessão. Valores zero assumem os defaults.
type Config struct {
	TotalBudget     decimal.Decimal
	Script          [][]string // nil usa feed.DefaultScript
	AdvanceInterval time.Duration
	NotificationTTL time.Duration
	OutboxSize      int
	Source          string // identifica a origem nos eventos publicados
}

// Hooks são callbacks de métricas; qualquer um pode ser nil
type Hooks struct {
	OnPlaced   func()
	OnRemoved  func()
	OnRejected func(reason string)
	OnAdvanced func(matchIndex int)
	OnBudget   func(st budget.State)
	OnDropped  func()
}

// Session é a instância do motor: ledger, orçamento, feed e timers.
// Todos os comandos, ticks e leituras são serializados por mu.
type Session struct {
	mu sync.Mutex

	id     string
	source string
	log    *zap.Logger
	clock  clock.Clock
	hooks  Hooks

	feed    *feed.Feed
	ledger  *ledger.Ledger
	budget  *budget.Accountant
	returns *returns.Aggregator

	advance *clock.Timer
	dismiss *clock.Timer
	ttl     time.Duration
	notice  *Notification

	outbox    chan events.Envelope
	closed    bool
	closeOnce sync.Once
	exhausted bool
}

// New monta uma sessão pronta para uso. O primeiro snapshot de odds já vai para o outbox.
func New(cfg Config, clk clock.Clock, log *zap.Logger, hooks Hooks) (*Session, error) {
	if clk == nil {
		clk = clock.Real{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Script == nil {
		cfg.Script = feed.DefaultScript
	}
	if cfg.AdvanceInterval <= 0 {
		cfg.AdvanceInterval = DefaultAdvanceInterval
	}
	if cfg.NotificationTTL <= 0 {
		cfg.NotificationTTL = DefaultNotificationTTL
	}
	if cfg.OutboxSize <= 0 {
		cfg.OutboxSize = DefaultOutboxSize
	}

	f, err := feed.New(cfg.Script)
	if err != nil {
		return nil, fmt.Errorf("load odds script: %w", err)
	}
	l := ledger.New(clk.Now)
	acc, err := budget.New(cfg.TotalBudget, l)
	if err != nil {
		return nil, fmt.Errorf("initial budget: %w", err)
	}

	now := clk.Now()
	s := &Session{
		id:      uuid.NewString(),
		source:  cfg.Source,
		log:     log,
		clock:   clk,
		hooks:   hooks,
		feed:    f,
		ledger:  l,
		budget:  acc,
		returns: returns.New(l),
		advance: clock.NewRepeating(now, cfg.AdvanceInterval),
		dismiss: clock.NewOneShot(cfg.NotificationTTL),
		ttl:     cfg.NotificationTTL,
		outbox:  make(chan events.Envelope, cfg.OutboxSize),
	}
	s.log = log.With(zap.String("session_id", s.id))
	s.exhausted = f.Exhausted()
	s.emitOdds(now)
	return s, nil
}

func (s *Session) ID() string { return s.id }

// Events expõe o outbox; é fechado em Close
func (s *Session) Events() <-chan events.Envelope { return s.outbox }

// Result é o desfecho de um toggle com o estado lido sob o mesmo lock
type Result struct {
	ledger.Outcome
	Budget       budget.State
	Notification *Notification
}

// PlaceOrRemoveBet faz o toggle da aposta (team, matchIndex) com o stake digitado.
// Uma aposta nova só entra com (team, odds) oferecidos pelo feed para uma partida
// já aberta. Erros de validação não alteram o estado e viram notificação de erro.
func (s *Session) PlaceOrRemoveBet(team string, odds decimal.Decimal, matchIndex int, stakeText string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()

	amount, err := ledger.ParseStake(stakeText)
	if err != nil {
		return Result{}, s.reject(now, err)
	}
	if _, exists := s.ledger.Get(team, matchIndex); !exists {
		if err := s.offered(team, odds, matchIndex); err != nil {
			return Result{}, s.reject(now, err)
		}
	}
	out, err := s.ledger.Toggle(team, odds, amount, matchIndex, s.budget)
	if err != nil {
		return Result{}, s.reject(now, err)
	}
	s.verify()

	typ := events.TypeBetPlaced
	if out.Placed() {
		s.notify(now, KindSuccess, fmt.Sprintf("Bet placed on %s - ₹%s", out.Team, out.Amount))
		if s.hooks.OnPlaced != nil {
			s.hooks.OnPlaced()
		}
	} else {
		typ = events.TypeBetRemoved
		s.notify(now, KindInfo, fmt.Sprintf("Bet removed for %s - ₹%s returned", out.Team, out.Amount))
		if s.hooks.OnRemoved != nil {
			s.hooks.OnRemoved()
		}
	}
	s.log.Debug("ledger toggled",
		zap.String("action", string(out.Action)),
		zap.String("team", out.Team),
		zap.Int("match_index", out.MatchIndex),
		zap.String("amount", out.Amount.String()),
	)

	st := s.budget.State()
	s.emit(events.NewLedger(events.LedgerEvent{
		SessionID:       s.id,
		Type:            typ,
		BetID:           out.Bet.ID,
		Team:            out.Team,
		MatchIndex:      out.MatchIndex,
		Odds:            out.Bet.Odds,
		Amount:          out.Amount,
		TotalBudget:     st.Total,
		AvailableBudget: st.Available,
		Ts:              now,
	}))
	s.budgetChanged(st)

	n := *s.notice
	return Result{Outcome: out, Budget: st, Notification: &n}, nil
}

// offered confere a seleção contra o feed: partida já aberta e odds iguais às publicadas
func (s *Session) offered(team string, odds decimal.Decimal, matchIndex int) error {
	if matchIndex > s.feed.Cursor() {
		return fmt.Errorf("%w: match %d is not open yet", ledger.ErrInvalidSelection, matchIndex)
	}
	for _, e := range s.feed.Match(matchIndex) {
		if e.Team == team && e.Odds.Equal(odds) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q @ %s not offered for match %d", ledger.ErrInvalidSelection, team, odds, matchIndex)
}

// SetBudget troca o orçamento total. Em erro retorna o estado com o último total válido.
func (s *Session) SetBudget(text string) (budget.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()

	if _, err := s.budget.SetTotalBudget(text); err != nil {
		return s.budget.State(), s.reject(now, err)
	}

	st := s.budget.State()
	s.notify(now, KindSuccess, fmt.Sprintf("Budget set to ₹%s", st.Total))
	if st.Overcommitted {
		s.log.Warn("budget below committed stake",
			zap.String("total", st.Total.String()),
			zap.String("committed", st.Committed.String()),
		)
	}
	s.emit(events.NewLedger(events.LedgerEvent{
		SessionID:       s.id,
		Type:            events.TypeBudgetChanged,
		Amount:          st.Total,
		TotalBudget:     st.Total,
		AvailableBudget: st.Available,
		Ts:              now,
	}))
	s.budgetChanged(st)
	return st, nil
}

// AdvanceMatch avança o feed uma partida (o timer chama o mesmo caminho)
func (s *Session) AdvanceMatch() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceLocked(s.clock.Now())
	return s.feed.Cursor()
}

// Tick processa os timers vencidos até now: avanço de odds e expiração da notificação
func (s *Session) Tick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for n := s.advance.Due(now); n > 0; n-- {
		s.advanceLocked(now)
	}
	if s.dismiss.Due(now) > 0 {
		s.notice = nil
		s.emit(events.NewNotice(events.NoticeEvent{SessionID: s.id, Dismissed: true, Ts: now}))
	}
}

// Run dirige Tick pelo relógio real até o contexto ser cancelado; ao sair fecha a sessão
func (s *Session) Run(ctx context.Context, resolution time.Duration) error {
	ticker := time.NewTicker(resolution)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.Close()
			return ctx.Err()
		case <-ticker.C:
			s.Tick(s.clock.Now())
		}
	}
}

// Close cancela os timers e fecha o outbox. Idempotente.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.advance.Stop()
		s.dismiss.Stop()
		s.closed = true
		close(s.outbox)
	})
}

// Snapshot monta o read model corrente
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	cursor := s.feed.Cursor()
	entries := s.feed.Current()
	cards := make([]OddsCard, 0, len(entries))
	for _, e := range entries {
		stake := s.ledger.TotalStakeFor(e.Team, cursor)
		cards = append(cards, OddsCard{
			Team:            e.Team,
			Odds:            e.Odds,
			CurrentStake:    stake,
			PotentialReturn: s.returns.PotentialReturn(e.Team, e.Odds, cursor),
			HasBet:          stake.IsPositive(),
		})
	}

	st := s.budget.State()
	v := View{
		SessionID:          s.id,
		MatchIndex:         cursor,
		MatchNumber:        cursor + 1,
		FeedExhausted:      s.feed.Exhausted(),
		CurrentOdds:        cards,
		TotalBudget:        st.Total,
		AvailableBudget:    st.Available,
		CombinedTotalStake: s.returns.CombinedTotalStake(),
		BudgetUsedPercent:  st.UsedPercent,
		Overcommitted:      st.Overcommitted,
		BettingDisabled:    !st.Available.IsPositive(),
		TeamReturns:        s.returns.SummaryByTeam(),
		Bets:               s.ledger.Bets(),
		GeneratedAt:        s.clock.Now(),
	}
	if s.notice != nil {
		n := *s.notice
		v.LastNotification = &n
	}
	return v
}

// Budget retorna o estado do orçamento
func (s *Session) Budget() budget.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budget.State()
}

// PotentialReturn é o retorno bruto da chave (team, matchIndex) às odds informadas
func (s *Session) PotentialReturn(team string, odds decimal.Decimal, matchIndex int) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.returns.PotentialReturn(team, odds, matchIndex)
}

func (s *Session) advanceLocked(now time.Time) {
	idx := s.feed.Advance()
	s.emitOdds(now)
	if s.hooks.OnAdvanced != nil {
		s.hooks.OnAdvanced(idx)
	}
	if s.feed.Exhausted() && !s.exhausted {
		s.exhausted = true
		s.log.Info("no more simulated matches", zap.Int("matches", s.feed.Len()))
	}
}

func (s *Session) reject(now time.Time, err error) error {
	reason := Reason(err)
	s.notify(now, KindError, Message(err))
	s.emit(events.NewNotice(events.NoticeEvent{
		SessionID: s.id,
		Kind:      string(KindError),
		Message:   s.notice.Message,
		Ts:        now,
	}))
	if s.hooks.OnRejected != nil {
		s.hooks.OnRejected(reason)
	}
	s.log.Info("command rejected", zap.String("reason", reason), zap.Error(err))
	return err
}

// notify substitui a notificação atual e rearma o timer de expiração
func (s *Session) notify(now time.Time, kind Kind, msg string) {
	s.notice = &Notification{
		Message:   msg,
		Kind:      kind,
		ShownAt:   now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.dismiss.Arm(now)
}

func (s *Session) verify() {
	if err := s.ledger.Verify(); err != nil {
		s.log.Error("ledger invariant violated", zap.Error(err))
	}
}

func (s *Session) budgetChanged(st budget.State) {
	if s.hooks.OnBudget != nil {
		s.hooks.OnBudget(st)
	}
}

func (s *Session) emitOdds(now time.Time) {
	cursor := s.feed.Cursor()
	upd := events.OddsUpdate{
		SessionID:   s.id,
		MatchIndex:  cursor,
		MatchNumber: cursor + 1,
		HomeTeam:    feed.HomeTeam,
		AwayTeam:    feed.AwayTeam,
		UpdatedAt:   now,
		Source:      s.source,
	}
	if rec, ok := s.feed.Record(cursor); ok {
		upd.Market = events.MarketTwoWay
		if rec.HasDraw {
			upd.Market = events.MarketThreeWay
		}
		upd.Odds = events.Odds{Home: rec.Home, Draw: rec.Draw, Away: rec.Away}
	} else {
		upd.Exhausted = true
	}
	s.emit(events.NewOdds(upd))
}

// emit nunca bloqueia: com o outbox cheio o evento é descartado e contado
func (s *Session) emit(env events.Envelope) {
	if s.closed {
		return
	}
	select {
	case s.outbox <- env:
	default:
		if s.hooks.OnDropped != nil {
			s.hooks.OnDropped()
		}
		s.log.Warn("outbox full, event dropped", zap.String("kind", env.Kind))
	}
}
