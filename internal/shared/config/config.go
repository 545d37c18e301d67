package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	ctopics "github.com/radieske/smart-betting-dashboard/pkg/contracts/topics"
)

// Config centraliza variáveis de ambiente e parâmetros de execução do dashboard.
// Postgres, Redis e Kafka são opcionais: string vazia desliga a integração.
type Config struct {
	Env         string // "local", "dev", "prod"
	ServiceName string

	// Sessão
	TotalBudget     string // validado por budget.ParseBudget no main
	AdvanceInterval time.Duration
	NotificationTTL time.Duration
	TickResolution  time.Duration
	OutboxSize      int

	PostgresDSN  string
	RedisAddr    string
	KafkaBrokers string // "a:9092,b:9092"

	// Tópicos/canais
	TopicLedgerEvents  string
	TopicOddsUpdates   string
	RedisPubSubChannel string
	OddsCacheTTL       time.Duration

	// Portas
	HTTPPort    string // API REST + /ws
	MetricsPort string // /metrics e /healthz
}

// Load carrega o .env (se existir) e as variáveis de ambiente com defaults
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:         getEnv("ENV", "local"),
		ServiceName: getEnv("SERVICE_NAME", "dashboard-service"),

		TotalBudget:     getEnv("TOTAL_BUDGET", "100000"),
		AdvanceInterval: getDuration("ODDS_ADVANCE_INTERVAL", 10*time.Second),
		NotificationTTL: getDuration("NOTIFICATION_TTL", 3*time.Second),
		TickResolution:  getDuration("TICK_RESOLUTION", 250*time.Millisecond),
		OutboxSize:      getInt("OUTBOX_SIZE", 256),

		PostgresDSN:  getEnv("POSTGRES_DSN", ""),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		KafkaBrokers: getEnv("KAFKA_BROKERS", ""),

		TopicLedgerEvents:  getEnv("KAFKA_TOPIC_LEDGER", ctopics.LedgerEvents),
		TopicOddsUpdates:   getEnv("KAFKA_TOPIC_ODDS", ctopics.OddsUpdates),
		RedisPubSubChannel: getEnv("REDIS_PUBSUB_CHANNEL", "dashboard_snapshots"),
		OddsCacheTTL:       getDuration("ODDS_CACHE_TTL", 60*time.Second),

		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		MetricsPort: getEnv("METRICS_PORT", "9095"),
	}
}

// getEnv retorna o valor da variável de ambiente ou o default
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// getDuration aceita formatos do time.ParseDuration ("10s", "250ms"); inválido cai no default
func getDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
