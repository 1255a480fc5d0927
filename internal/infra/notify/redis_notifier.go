package notify

import (
	"context"
	"encoding/json"

	repo "inventario/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const movementChannel = "stock_movements"

// Redis Pub/Subによる履歴追記の通知。
// 配送はbest-effort。Redisが落ちていてもPublish側の呼び出し元を失敗させない判断は
// 呼び出し元（usecase）が持つ。
type RedisMovementNotifier struct {
	client *redis.Client
	logger *logrus.Logger
}

func NewRedisMovementNotifier(client *redis.Client, logger *logrus.Logger) *RedisMovementNotifier {
	return &RedisMovementNotifier{client: client, logger: logger}
}

func (n *RedisMovementNotifier) Publish(ctx context.Context, ev repo.MovementEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return n.client.Publish(ctx, movementChannel, payload).Err()
}

// Subscribeは購読チャネルと解除関数を返す。
// 解除するか購読側のctxが終わるとチャネルはcloseされる。
func (n *RedisMovementNotifier) Subscribe(ctx context.Context) (<-chan repo.MovementEvent, func(), error) {
	sub := n.client.Subscribe(ctx, movementChannel)

	// 購読が確立するまで待つ
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, err
	}

	out := make(chan repo.MovementEvent, 16)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var ev repo.MovementEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				n.logger.WithError(err).Warn("movement event decode failed")
				continue
			}
			select {
			case out <- ev:
			default:
				// 受信側が詰まっているときは落とす。受信側は全件再取得するので欠落は致命ではない
			}
		}
	}()

	unsub := func() { _ = sub.Close() }
	return out, unsub, nil
}
