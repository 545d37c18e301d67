package returns

import (
	"github.com/shopspring/decimal"

	"github.com/radieske/smart-betting-dashboard/internal/betting/ledger"
)

// Source é o conjunto de apostas sobre o qual os retornos são calculados
type Source interface {
	Bets() []ledger.Bet
	TotalStakeFor(team string, matchIndex int) decimal.Decimal
}

// BetReturn detalha uma aposta dentro do resumo do time
type BetReturn struct {
	MatchIndex int             `json:"matchIndex"`
	Odds       decimal.Decimal `json:"odds"`
	Amount     decimal.Decimal `json:"amount"`
	Return     decimal.Decimal `json:"potentialReturn"`
	Profit     decimal.Decimal `json:"profit"`
}

// TeamReturns agrega todas as apostas de um time, em todas as partidas
type TeamReturns struct {
	Team        string          `json:"team"`
	TotalStake  decimal.Decimal `json:"totalStake"`
	TotalReturn decimal.Decimal `json:"totalReturn"`
	TotalProfit decimal.Decimal `json:"totalProfit"`
	Bets        []BetReturn     `json:"bets"`
}

// GrossReturn é o pagamento bruto (stake incluso) se a aposta ganhar
func GrossReturn(amount, odds decimal.Decimal) decimal.Decimal {
	return amount.Mul(odds)
}

// Profit é amount*(odds-1)
func Profit(amount, odds decimal.Decimal) decimal.Decimal {
	return amount.Mul(odds.Sub(decimal.NewFromInt(1)))
}

// Aggregator é puro: tudo é recalculado a partir do Source a cada chamada
type Aggregator struct {
	src Source
}

func New(src Source) *Aggregator { return &Aggregator{src: src} }

func (a *Aggregator) PotentialReturn(team string, odds decimal.Decimal, matchIndex int) decimal.Decimal {
	return GrossReturn(a.src.TotalStakeFor(team, matchIndex), odds)
}

// SummaryByTeam agrupa por time na ordem em que cada time aparece pela primeira vez
func (a *Aggregator) SummaryByTeam() []TeamReturns {
	var out []TeamReturns
	pos := make(map[string]int)
	for _, b := range a.src.Bets() {
		i, ok := pos[b.Team]
		if !ok {
			i = len(out)
			pos[b.Team] = i
			out = append(out, TeamReturns{
				Team:        b.Team,
				TotalStake:  decimal.Zero,
				TotalReturn: decimal.Zero,
				TotalProfit: decimal.Zero,
			})
		}
		br := BetReturn{
			MatchIndex: b.MatchIndex,
			Odds:       b.Odds,
			Amount:     b.Amount,
			Return:     GrossReturn(b.Amount, b.Odds),
			Profit:     Profit(b.Amount, b.Odds),
		}
		tr := &out[i]
		tr.Bets = append(tr.Bets, br)
		tr.TotalStake = tr.TotalStake.Add(br.Amount)
		tr.TotalReturn = tr.TotalReturn.Add(br.Return)
		tr.TotalProfit = tr.TotalProfit.Add(br.Profit)
	}
	return out
}

func (a *Aggregator) CombinedTotalStake() decimal.Decimal {
	total := decimal.Zero
	for _, b := range a.src.Bets() {
		total = total.Add(b.Amount)
	}
	return total
}
