package application

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
	redisinfra "github.com/DELIGHT-LABS/monad-ticket/internal/infrastructure/redis"
	"github.com/DELIGHT-LABS/monad-ticket/internal/ledger"
	"github.com/DELIGHT-LABS/monad-ticket/internal/pkg/logger"
)

const (
	seatMapCacheTTL = 30 * time.Second
)

// EventService はイベント登録と照会を提供する
type EventService struct {
	ledger *ledger.Ledger
	cache  *redisinfra.SeatCache
}

// NewEventService は新しいEventServiceを作成する
// cache はnil可（キャッシュ無効時）
func NewEventService(l *ledger.Ledger, cache *redisinfra.SeatCache) *EventService {
	return &EventService{ledger: l, cache: cache}
}

func (s *EventService) CreateEvent(ctx context.Context, input ledger.CreateEventInput) (*ticket.Event, error) {
	return s.ledger.CreateEvent(ctx, input)
}

func (s *EventService) GetEvent(ctx context.Context, eventID uint64) (*ticket.Event, error) {
	return s.ledger.GetEvent(eventID)
}

func (s *EventService) GetAllEvents(ctx context.Context) ([]*ticket.Event, error) {
	return s.ledger.GetAllEvents(), nil
}

func (s *EventService) GetEventsByIssuer(ctx context.Context, issuer common.Address) ([]*ticket.Event, error) {
	return s.ledger.GetEventsByIssuer(issuer), nil
}

func (s *EventService) GetEventTiers(ctx context.Context, eventID uint64) ([]*ticket.Tier, error) {
	return s.ledger.GetEventTiers(eventID)
}

func (s *EventService) DeactivateEvent(ctx context.Context, eventID uint64, caller common.Address) error {
	return s.ledger.DeactivateEvent(ctx, eventID, caller)
}

// GetSeatMap はイベント全座席の状態を返す
// キャッシュヒット時は台帳を参照しない
func (s *EventService) GetSeatMap(ctx context.Context, eventID uint64) (*ticket.SeatMap, error) {
	if s.cache != nil {
		seatMap, err := s.cache.GetSeatMap(ctx, eventID)
		if err == nil {
			logger.Debug("座席マップのキャッシュヒット", zap.Uint64("event_id", eventID))
			return seatMap, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("キャッシュ取得エラー", zap.Error(err))
		}
	}

	seatMap, err := s.ledger.GetEventAllSeatsWithStatus(eventID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cacheErr := s.cache.SetSeatMap(ctx, eventID, seatMap, seatMapCacheTTL); cacheErr != nil {
			logger.Warn("キャッシュ保存エラー", zap.Error(cacheErr))
		}
	}
	return seatMap, nil
}

func (s *EventService) IsSeatAvailable(ctx context.Context, eventID uint64, seatID string) (bool, error) {
	return s.ledger.IsSeatAvailable(eventID, seatID)
}

func (s *EventService) GetSeatInfo(ctx context.Context, eventID uint64, seatID string) (*ticket.SeatInfo, error) {
	return s.ledger.GetSeatInfo(eventID, seatID)
}

func (s *EventService) GetUserTickets(ctx context.Context, owner common.Address, eventID uint64) ([]string, error) {
	return s.ledger.GetUserTickets(owner, eventID)
}
