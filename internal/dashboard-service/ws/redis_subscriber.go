package ws

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StartRedisSubscriber escuta o canal de snapshots no Redis e repassa cada
// mensagem para os clientes conectados via Hub. A inscrição é confirmada antes
// de retornar; a goroutine termina quando ctx é cancelado.
func StartRedisSubscriber(ctx context.Context, r *redis.Client, channel string, hub *Hub, log *zap.Logger) error {
	sub := r.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return err
	}
	ch := sub.Channel()

	go func() {
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close() // encerra a inscrição ao finalizar o contexto
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if !json.Valid([]byte(msg.Payload)) {
					log.Warn("ws subscriber invalid payload", zap.String("channel", channel))
					continue
				}
				hub.Broadcast(json.RawMessage(msg.Payload))
			}
		}
	}()
	return nil
}
