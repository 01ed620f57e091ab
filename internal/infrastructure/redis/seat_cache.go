package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// SeatCache は座席マップスナップショットのキャッシュを管理する
type SeatCache struct {
	client *redis.Client
}

// NewSeatCache は新しいSeatCacheインスタンスを作成する
func NewSeatCache(client *redis.Client) *SeatCache {
	return &SeatCache{client: client}
}

// GetSeatMap はイベントの座席マップをキャッシュから取得する
func (c *SeatCache) GetSeatMap(ctx context.Context, eventID uint64) (*ticket.SeatMap, error) {
	key := c.seatMapKey(eventID)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}

	var seatMap ticket.SeatMap
	if err := json.Unmarshal(data, &seatMap); err != nil {
		return nil, fmt.Errorf("キャッシュのデコードに失敗: %w", err)
	}
	return &seatMap, nil
}

// SetSeatMap はイベントの座席マップをキャッシュに保存する
func (c *SeatCache) SetSeatMap(ctx context.Context, eventID uint64, seatMap *ticket.SeatMap, ttl time.Duration) error {
	data, err := json.Marshal(seatMap)
	if err != nil {
		return fmt.Errorf("キャッシュのエンコードに失敗: %w", err)
	}

	key := c.seatMapKey(eventID)
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate はイベントの座席マップキャッシュを無効化する
func (c *SeatCache) Invalidate(ctx context.Context, eventID uint64) error {
	key := c.seatMapKey(eventID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *SeatCache) seatMapKey(eventID uint64) string {
	return fmt.Sprintf("seats:map:%d", eventID)
}
