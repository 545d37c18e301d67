package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidStake       = errors.New("stake amount must be a valid number greater than zero")
	ErrInsufficientBudget = errors.New("insufficient budget to place this bet")
	ErrInvalidSelection   = errors.New("bet needs a team and a non-negative match index")
	ErrInvariant          = errors.New("ledger committed stake out of sync")
)

// Funds informa o saldo disponível no momento da aposta (ver budget.Accountant)
type Funds interface {
	Available() decimal.Decimal
}

// Ledger guarda as apostas ativas em ordem de inserção.
// Não é seguro para uso concorrente; a sessão serializa o acesso.
type Ledger struct {
	bets      []Bet
	committed decimal.Decimal
	now       func() time.Time
	newID     func() string
}

// New cria um ledger vazio. now == nil usa time.Now.
func New(now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{
		committed: decimal.Zero,
		now:       now,
		newID:     uuid.NewString,
	}
}

// ParseStake converte o texto digitado pelo usuário em stake
func ParseStake(text string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidStake, text)
	}
	if !v.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidStake, v)
	}
	return v, nil
}

// Toggle é o único mutador do ledger: remove a aposta existente para
// (team, matchIndex) devolvendo o valor, ou insere uma nova se houver saldo.
// O amount é validado mesmo no caminho de remoção; odds só na inserção.
func (l *Ledger) Toggle(team string, odds, amount decimal.Decimal, matchIndex int, funds Funds) (Outcome, error) {
	if team == "" || matchIndex < 0 {
		return Outcome{}, ErrInvalidSelection
	}
	if !amount.IsPositive() {
		return Outcome{}, fmt.Errorf("%w: %s", ErrInvalidStake, amount)
	}

	if i := l.find(team, matchIndex); i >= 0 {
		removed := l.bets[i]
		l.bets = append(l.bets[:i], l.bets[i+1:]...)
		l.committed = l.committed.Sub(removed.Amount)
		return Outcome{
			Action:     ActionRemoved,
			Team:       removed.Team,
			MatchIndex: removed.MatchIndex,
			Amount:     removed.Amount,
			Bet:        removed,
		}, nil
	}

	if !odds.GreaterThan(decimal.NewFromInt(1)) {
		return Outcome{}, fmt.Errorf("%w: odds %s must be > 1", ErrInvalidSelection, odds)
	}
	if funds != nil {
		if avail := funds.Available(); amount.GreaterThan(avail) {
			return Outcome{}, fmt.Errorf("%w: stake %s, available %s", ErrInsufficientBudget, amount, avail)
		}
	}

	b := Bet{
		ID:         l.newID(),
		Team:       team,
		Odds:       odds,
		Amount:     amount,
		MatchIndex: matchIndex,
		PlacedAt:   l.now(),
	}
	l.bets = append(l.bets, b)
	l.committed = l.committed.Add(amount)
	return Outcome{
		Action:     ActionPlaced,
		Team:       team,
		MatchIndex: matchIndex,
		Amount:     amount,
		Bet:        b,
	}, nil
}

func (l *Ledger) find(team string, matchIndex int) int {
	for i, b := range l.bets {
		if b.Team == team && b.MatchIndex == matchIndex {
			return i
		}
	}
	return -1
}

// Get retorna a aposta ativa para a chave, se existir
func (l *Ledger) Get(team string, matchIndex int) (Bet, bool) {
	if i := l.find(team, matchIndex); i >= 0 {
		return l.bets[i], true
	}
	return Bet{}, false
}

// TotalStakeFor soma os valores apostados na chave exata (0 ou 1 aposta na prática)
func (l *Ledger) TotalStakeFor(team string, matchIndex int) decimal.Decimal {
	total := decimal.Zero
	for _, b := range l.bets {
		if b.Team == team && b.MatchIndex == matchIndex {
			total = total.Add(b.Amount)
		}
	}
	return total
}

// TotalCommitted retorna o total comprometido mantido a cada mutação
func (l *Ledger) TotalCommitted() decimal.Decimal { return l.committed }

// Verify recalcula a soma das apostas e compara com o total mantido
func (l *Ledger) Verify() error {
	sum := decimal.Zero
	for _, b := range l.bets {
		sum = sum.Add(b.Amount)
	}
	if !sum.Equal(l.committed) {
		return fmt.Errorf("%w: sum=%s committed=%s", ErrInvariant, sum, l.committed)
	}
	return nil
}

// Bets retorna uma cópia das apostas em ordem de inserção
func (l *Ledger) Bets() []Bet {
	out := make([]Bet, len(l.bets))
	copy(out, l.bets)
	return out
}

func (l *Ledger) Len() int { return len(l.bets) }
