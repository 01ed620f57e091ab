package application

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/account"
	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
	redisinfra "github.com/DELIGHT-LABS/monad-ticket/internal/infrastructure/redis"
	"github.com/DELIGHT-LABS/monad-ticket/internal/ledger"
	"github.com/DELIGHT-LABS/monad-ticket/internal/pkg/logger"
	"github.com/DELIGHT-LABS/monad-ticket/internal/pkg/metrics"
)

const (
	purchaseLockTTL        = 10 * time.Second
	purchaseLockMaxRetries = 3
	purchaseLockRetryDelay = 100 * time.Millisecond
)

// ErrSeatBusy は同じ座席への購入が他で処理中の場合に返す
var ErrSeatBusy = errors.New("座席が他のユーザーによって処理中です")

// PurchaseService はチケット購入を提供する
type PurchaseService struct {
	ledger      *ledger.Ledger
	lockManager *redisinfra.LockManager
	cache       *redisinfra.SeatCache
}

// NewPurchaseService は新しいPurchaseServiceを作成する
// lockManager / cache はnil可（Redis無効時）
func NewPurchaseService(l *ledger.Ledger, lm *redisinfra.LockManager, cache *redisinfra.SeatCache) *PurchaseService {
	return &PurchaseService{ledger: l, lockManager: lm, cache: cache}
}

// BuyTicket は座席指定でチケットを購入する
// 支払額は座席価格と完全一致していなければならない
func (s *PurchaseService) BuyTicket(ctx context.Context, eventID uint64, seatID string, buyer common.Address, payment *big.Int) (*ticket.PurchaseReceipt, error) {
	// 台帳本体は単一ライターだが、購入リクエストの殺到時に
	// 同一座席の無駄な残高往復を減らすため座席単位でロックする
	if s.lockManager != nil {
		lockKey := fmt.Sprintf("seat:%d:%s", eventID, seatID)
		start := time.Now()
		lock, err := s.lockManager.AcquireLockWithRetry(ctx, lockKey, purchaseLockTTL, purchaseLockMaxRetries, purchaseLockRetryDelay)
		if err != nil {
			s.observeLock("acquire", "failed", start)
			if errors.Is(err, redisinfra.ErrLockNotAcquired) {
				s.countPurchase("lock_failed")
				return nil, ErrSeatBusy
			}
			return nil, fmt.Errorf("ロック取得に失敗: %w", err)
		}
		s.observeLock("acquire", "success", start)
		defer func() {
			releaseStart := time.Now()
			if relErr := lock.Release(ctx); relErr != nil {
				s.observeLock("release", "failed", releaseStart)
				logger.Warn("ロック解放エラー", zap.Error(relErr))
				return
			}
			s.observeLock("release", "success", releaseStart)
		}()
	}

	receipt, err := s.ledger.BuyTicket(ctx, eventID, seatID, buyer, payment)
	if err != nil {
		s.countPurchase(purchaseFailureStatus(err))
		return nil, err
	}

	s.countPurchase("success")
	if m := metrics.Get(); m != nil {
		m.ObserveSale(new(big.Int).Sub(receipt.Price, receipt.Fee), receipt.Fee)
	}
	s.invalidateSeatMap(ctx, eventID)
	return receipt, nil
}

// invalidateSeatMap は購入成立後に座席マップキャッシュを無効化する
func (s *PurchaseService) invalidateSeatMap(ctx context.Context, eventID uint64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, eventID); err != nil {
		logger.Warn("キャッシュ無効化エラー", zap.Uint64("event_id", eventID), zap.Error(err))
	}
}

func (s *PurchaseService) countPurchase(status string) {
	if m := metrics.Get(); m != nil {
		m.TicketPurchasesTotal.WithLabelValues(status).Inc()
	}
}

func (s *PurchaseService) observeLock(operation, status string, start time.Time) {
	if m := metrics.Get(); m != nil {
		m.PurchaseLockDuration.WithLabelValues(operation, status).Observe(time.Since(start).Seconds())
	}
}

// purchaseFailureStatus は購入失敗をメトリクスのstatusラベルへ分類する
func purchaseFailureStatus(err error) string {
	switch {
	case errors.Is(err, ticket.ErrSeatAlreadySold):
		return "seat_sold"
	case errors.Is(err, ticket.ErrIncorrectPayment):
		return "incorrect_payment"
	case errors.Is(err, account.ErrInsufficientFunds):
		return "insufficient_funds"
	default:
		return "error"
	}
}
