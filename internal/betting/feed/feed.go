package feed

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	HomeTeam = "Team 1"
	AwayTeam = "Team 2"
)

var ErrInvalidScript = errors.New("invalid odds script")

var one = decimal.NewFromInt(1)

// DefaultScript é a sequência roteirizada de partidas do dashboard.
// Registros com 3 valores são home/draw/away; com 2, home/away.
var DefaultScript = [][]string{
	{"2.40", "15.00", "1.60"},
	{"3.25", "17.00", "1.35"},
	{"4.75", "19.00", "1.20"},
	{"2.20", "13.00", "1.77"},
	{"2.40", "13.00", "1.60"},
	{"1.35", "15.00", "3.25"},
	{"1.60", "12.00", "2.50"},
	{"3.75", "11.00", "1.35"},
	{"3.10", "9.50", "1.50"},
	{"1.95", "8.00", "2.10"},
	{"2.40", "13.00", "1.60"},
	{"1.35", "15.00", "3.25"},
	{"1.60", "12.00", "2.50"},
	{"3.75", "11.00", "1.35"},
	{"3.10", "9.50", "1.50"},
	{"1.95", "8.00", "2.10"},
	{"10.00", "1.01"},
	{"3.00", "1.30"},
}

// Entry é uma seleção do mercado de duas vias da partida corrente
type Entry struct {
	Team string          `json:"team"`
	Odds decimal.Decimal `json:"odds"`
}

// Record guarda as odds cruas de uma partida. Draw só existe em registros de 3 valores.
type Record struct {
	Home    decimal.Decimal
	Draw    decimal.Decimal
	Away    decimal.Decimal
	HasDraw bool
}

// Feed percorre o roteiro com um cursor monotônico
type Feed struct {
	records []Record
	cursor  int
}

// New valida e converte o roteiro. Cada registro precisa de 2 ou 3 odds > 1.0.
func New(script [][]string) (*Feed, error) {
	records := make([]Record, 0, len(script))
	for i, raw := range script {
		if len(raw) != 2 && len(raw) != 3 {
			return nil, fmt.Errorf("%w: match %d has %d values", ErrInvalidScript, i, len(raw))
		}
		vals := make([]decimal.Decimal, len(raw))
		for j, s := range raw {
			v, err := decimal.NewFromString(strings.TrimSpace(s))
			if err != nil {
				return nil, fmt.Errorf("%w: match %d value %q: %v", ErrInvalidScript, i, s, err)
			}
			if !v.GreaterThan(one) {
				return nil, fmt.Errorf("%w: match %d odds %s must be > 1", ErrInvalidScript, i, v)
			}
			vals[j] = v
		}
		r := Record{Home: vals[0], Away: vals[len(vals)-1], Draw: decimal.Zero}
		if len(vals) == 3 {
			r.Draw = vals[1]
			r.HasDraw = true
		}
		records = append(records, r)
	}
	return &Feed{records: records}, nil
}

// Len é o número de partidas roteirizadas
func (f *Feed) Len() int { return len(f.records) }

// Record retorna as odds cruas da partida index
func (f *Feed) Record(index int) (Record, bool) {
	if index < 0 || index >= len(f.records) {
		return Record{}, false
	}
	return f.records[index], true
}

// Match retorna as duas seleções da partida; vazio quando o roteiro acabou.
// O valor do meio (empate) fica fora da visão de duas vias.
func (f *Feed) Match(index int) []Entry {
	r, ok := f.Record(index)
	if !ok {
		return nil
	}
	return []Entry{
		{Team: HomeTeam, Odds: r.Home},
		{Team: AwayTeam, Odds: r.Away},
	}
}

func (f *Feed) Cursor() int { return f.cursor }

// Advance move o cursor uma partida à frente. Nunca volta nem reinicia,
// mesmo depois do fim do roteiro.
func (f *Feed) Advance() int {
	f.cursor++
	return f.cursor
}

func (f *Feed) Current() []Entry { return f.Match(f.cursor) }

func (f *Feed) Exhausted() bool { return f.cursor >= len(f.records) }
