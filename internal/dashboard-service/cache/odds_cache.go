package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/smart-betting-dashboard/pkg/contracts/events"
)

// OddsCache guarda a última atualização de odds de cada sessão no Redis
type OddsCache struct {
	R   *redis.Client
	TTL time.Duration
}

func New(r *redis.Client, ttl time.Duration) *OddsCache { return &OddsCache{R: r, TTL: ttl} }

func keyCurrent(sessionID string) string { return "odds:current:" + sessionID }

func (c *OddsCache) Name() string { return "redis-cache" }

// Handle só reage a eventos de odds
func (c *OddsCache) Handle(ctx context.Context, e events.Envelope) error {
	if e.Odds == nil {
		return nil
	}
	return c.SetCurrent(ctx, *e.Odds)
}

func (c *OddsCache) SetCurrent(ctx context.Context, upd events.OddsUpdate) error {
	b, err := json.Marshal(upd)
	if err != nil {
		return err
	}
	return c.R.Set(ctx, keyCurrent(upd.SessionID), b, c.TTL).Err()
}

// GetCurrent retorna false quando a chave expirou ou nunca foi escrita
func (c *OddsCache) GetCurrent(ctx context.Context, sessionID string) (events.OddsUpdate, bool, error) {
	var upd events.OddsUpdate
	b, err := c.R.Get(ctx, keyCurrent(sessionID)).Bytes()
	if err == redis.Nil {
		return upd, false, nil
	}
	if err != nil {
		return upd, false, err
	}
	return upd, true, json.Unmarshal(b, &upd)
}
