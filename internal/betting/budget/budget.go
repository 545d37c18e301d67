package budget

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidBudget = errors.New("budget must be a valid number zero or greater")

var hundred = decimal.NewFromInt(100)

// Committed é a visão do ledger que o contador precisa
type Committed interface {
	TotalCommitted() decimal.Decimal
}

// State é o retrato do orçamento num instante
type State struct {
	Total         decimal.Decimal `json:"totalBudget"`
	Committed     decimal.Decimal `json:"committedStake"`
	Available     decimal.Decimal `json:"availableBudget"`
	UsedPercent   decimal.Decimal `json:"budgetUsedPercent"`
	Overcommitted bool            `json:"overcommitted"`
}

// Accountant é a fonte única do orçamento total. O disponível é sempre
// derivado do ledger, nunca guardado.
type Accountant struct {
	total  decimal.Decimal
	ledger Committed
}

// New cria o contador com o orçamento inicial
func New(total decimal.Decimal, ledger Committed) (*Accountant, error) {
	if total.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBudget, total)
	}
	return &Accountant{total: total, ledger: ledger}, nil
}

// ParseBudget converte o texto digitado em orçamento (>= 0)
func ParseBudget(text string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidBudget, text)
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidBudget, v)
	}
	return v, nil
}

// SetTotalBudget aplica um novo orçamento vindo do usuário. Em erro o valor
// anterior é mantido e devolvido para o chamador restaurar o input.
func (a *Accountant) SetTotalBudget(text string) (decimal.Decimal, error) {
	v, err := ParseBudget(text)
	if err != nil {
		return a.total, err
	}
	a.total = v
	return v, nil
}

// SetTotal é a variante tipada de SetTotalBudget
func (a *Accountant) SetTotal(v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("%w: %s", ErrInvalidBudget, v)
	}
	a.total = v
	return nil
}

func (a *Accountant) Total() decimal.Decimal { return a.total }

func (a *Accountant) Committed() decimal.Decimal {
	if a.ledger == nil {
		return decimal.Zero
	}
	return a.ledger.TotalCommitted()
}

// Available pode ficar negativo quando o total é reduzido abaixo do comprometido
func (a *Accountant) Available() decimal.Decimal {
	return a.total.Sub(a.Committed())
}

func (a *Accountant) Overcommitted() bool { return a.Available().IsNegative() }

// UsedPercent retorna committed/total*100; 0 quando o total é zero
func (a *Accountant) UsedPercent() decimal.Decimal {
	if a.total.IsZero() {
		return decimal.Zero
	}
	return a.Committed().Div(a.total).Mul(hundred)
}

func (a *Accountant) State() State {
	committed := a.Committed()
	available := a.total.Sub(committed)
	return State{
		Total:         a.total,
		Committed:     committed,
		Available:     available,
		UsedPercent:   a.UsedPercent(),
		Overcommitted: available.IsNegative(),
	}
}
