package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/radieske/smart-betting-dashboard/internal/betting/budget"
	"github.com/radieske/smart-betting-dashboard/internal/betting/session"
)

// Metrics agrupa os coletores do dashboard. Os valores são alimentados pelos
// hooks da sessão e pelos callbacks do dispatcher.
type Metrics struct {
	BetsPlaced      prometheus.Counter
	BetsRemoved     prometheus.Counter
	Rejections      *prometheus.CounterVec // reason
	MatchIndex      prometheus.Gauge
	TotalBudget     prometheus.Gauge
	AvailableBudget prometheus.Gauge
	CommittedStake  prometheus.Gauge
	EventsDropped   prometheus.Counter
	Delivered       *prometheus.CounterVec // sink
	DeliveryErrors  *prometheus.CounterVec // sink
	WSClients       prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BetsPlaced:      prometheus.NewCounter(prometheus.CounterOpts{Name: "dashboard_bets_placed_total", Help: "apostas registradas"}),
		BetsRemoved:     prometheus.NewCounter(prometheus.CounterOpts{Name: "dashboard_bets_removed_total", Help: "apostas removidas (toggle)"}),
		Rejections:      prometheus.NewCounterVec(prometheus.CounterOpts{Name: "dashboard_rejections_total", Help: "comandos rejeitados por motivo"}, []string{"reason"}),
		MatchIndex:      prometheus.NewGauge(prometheus.GaugeOpts{Name: "dashboard_match_index", Help: "posição atual do feed de odds"}),
		TotalBudget:     prometheus.NewGauge(prometheus.GaugeOpts{Name: "dashboard_budget_total", Help: "orçamento total"}),
		AvailableBudget: prometheus.NewGauge(prometheus.GaugeOpts{Name: "dashboard_budget_available", Help: "orçamento disponível"}),
		CommittedStake:  prometheus.NewGauge(prometheus.GaugeOpts{Name: "dashboard_budget_committed", Help: "soma dos stakes abertos"}),
		EventsDropped:   prometheus.NewCounter(prometheus.CounterOpts{Name: "dashboard_events_dropped_total", Help: "eventos descartados com outbox cheio"}),
		Delivered:       prometheus.NewCounterVec(prometheus.CounterOpts{Name: "dashboard_sink_delivered_total", Help: "entregas por sink"}, []string{"sink"}),
		DeliveryErrors:  prometheus.NewCounterVec(prometheus.CounterOpts{Name: "dashboard_sink_errors_total", Help: "falhas de entrega por sink"}, []string{"sink"}),
		WSClients:       prometheus.NewGauge(prometheus.GaugeOpts{Name: "dashboard_ws_clients", Help: "clientes WebSocket conectados"}),
	}
	reg.MustRegister(
		m.BetsPlaced, m.BetsRemoved, m.Rejections, m.MatchIndex,
		m.TotalBudget, m.AvailableBudget, m.CommittedStake,
		m.EventsDropped, m.Delivered, m.DeliveryErrors, m.WSClients,
	)
	return m
}

// SessionHooks liga os contadores aos eventos da sessão
func (m *Metrics) SessionHooks() session.Hooks {
	return session.Hooks{
		OnPlaced:   m.BetsPlaced.Inc,
		OnRemoved:  m.BetsRemoved.Inc,
		OnRejected: func(reason string) { m.Rejections.WithLabelValues(reason).Inc() },
		OnAdvanced: func(idx int) { m.MatchIndex.Set(float64(idx)) },
		OnBudget:   m.ObserveBudget,
		OnDropped:  m.EventsDropped.Inc,
	}
}

func (m *Metrics) ObserveBudget(st budget.State) {
	m.TotalBudget.Set(st.Total.InexactFloat64())
	m.AvailableBudget.Set(st.Available.InexactFloat64())
	m.CommittedStake.Set(st.Committed.InexactFloat64())
}

func (m *Metrics) OnDelivered(sink string) { m.Delivered.WithLabelValues(sink).Inc() }

func (m *Metrics) OnError(sink string) { m.DeliveryErrors.WithLabelValues(sink).Inc() }

func (m *Metrics) OnClients(n int) { m.WSClients.Set(float64(n)) }
