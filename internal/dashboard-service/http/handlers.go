package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/radieske/smart-betting-dashboard/internal/betting/budget"
	"github.com/radieske/smart-betting-dashboard/internal/betting/session"
	"github.com/radieske/smart-betting-dashboard/internal/dashboard-service/dto"
)

// Engine é o subconjunto da sessão usado pela API
type Engine interface {
	Snapshot() session.View
	Budget() budget.State
	PlaceOrRemoveBet(team string, odds decimal.Decimal, matchIndex int, stakeText string) (session.Result, error)
	SetBudget(text string) (budget.State, error)
	AdvanceMatch() int
}

// API expõe os comandos e o read model do dashboard.
// WS é opcional; quando presente responde em /ws.
type API struct {
	Log            *zap.Logger
	Engine         Engine
	WS             http.Handler
	AllowedOrigins []string // vazio libera todas
}

// Router retorna o roteador HTTP com os endpoints REST e CORS
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/v1/dashboard", a.getDashboard)
	r.Get("/v1/odds", a.getOdds)
	r.Get("/v1/bets", a.listBets)
	r.Post("/v1/bets", a.toggleBet)
	r.Get("/v1/returns", a.getReturns)
	r.Get("/v1/budget", a.getBudget)
	r.Put("/v1/budget", a.setBudget)
	r.Post("/v1/feed/advance", a.advance)
	if a.WS != nil {
		r.Handle("/ws", a.WS)
	}

	origins := a.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}

// validationError traduz os erros do motor para 422 com código estável
func validationError(err error) (int, dto.ErrorResponse) {
	reason := session.Reason(err)
	if reason == session.ReasonUnknown {
		return http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()}
	}
	return http.StatusUnprocessableEntity, dto.ErrorResponse{
		Error: session.Message(err),
		Code:  strings.ToUpper(reason),
	}
}

func (a *API) getDashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.Engine.Snapshot())
}

func (a *API) getOdds(w http.ResponseWriter, _ *http.Request) {
	v := a.Engine.Snapshot()
	writeJSON(w, http.StatusOK, dto.OddsResponse{
		MatchIndex:    v.MatchIndex,
		MatchNumber:   v.MatchNumber,
		FeedExhausted: v.FeedExhausted,
		Odds:          v.CurrentOdds,
	})
}

func (a *API) listBets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.Engine.Snapshot().Bets)
}

func (a *API) getReturns(w http.ResponseWriter, _ *http.Request) {
	v := a.Engine.Snapshot()
	writeJSON(w, http.StatusOK, dto.ReturnsResponse{
		TeamReturns:        v.TeamReturns,
		CombinedTotalStake: v.CombinedTotalStake,
	})
}

func (a *API) getBudget(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.Engine.Budget())
}

// toggleBet registra a aposta ou, se já existir para (team, matchIndex), remove
func (a *API) toggleBet(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	if req.MatchIndex == nil {
		badRequest(w, "matchIndex is required")
		return
	}

	res, err := a.Engine.PlaceOrRemoveBet(req.Team, req.Odds, *req.MatchIndex, req.Stake)
	if err != nil {
		status, body := validationError(err)
		writeJSON(w, status, body)
		return
	}

	// estado lido pela sessão sob o mesmo lock do toggle
	writeJSON(w, http.StatusOK, dto.ToggleBetResponse{
		Action:          string(res.Action),
		BetID:           res.Bet.ID,
		Team:            res.Team,
		MatchIndex:      res.MatchIndex,
		Amount:          res.Amount,
		AvailableBudget: res.Budget.Available,
		Notification:    res.Notification,
	})
}

func (a *API) setBudget(w http.ResponseWriter, r *http.Request) {
	var req dto.SetBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json")
		return
	}

	st, err := a.Engine.SetBudget(req.Amount)
	if err != nil {
		status, body := validationError(err)
		if errors.Is(err, budget.ErrInvalidBudget) {
			total := st.Total
			body.TotalBudget = &total
		}
		writeJSON(w, status, body)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (a *API) advance(w http.ResponseWriter, _ *http.Request) {
	a.Engine.AdvanceMatch()
	v := a.Engine.Snapshot()
	if a.Log != nil {
		a.Log.Info("match advanced manually", zap.Int("match_index", v.MatchIndex))
	}
	writeJSON(w, http.StatusOK, dto.AdvanceResponse{
		MatchIndex:    v.MatchIndex,
		MatchNumber:   v.MatchNumber,
		FeedExhausted: v.FeedExhausted,
	})
}
