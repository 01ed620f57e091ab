package application

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
	"github.com/DELIGHT-LABS/monad-ticket/internal/ledger"
	"github.com/DELIGHT-LABS/monad-ticket/internal/pkg/metrics"
)

// SettlementService は売上とプラットフォーム手数料の精算を提供する
type SettlementService struct {
	ledger *ledger.Ledger
}

// NewSettlementService は新しいSettlementServiceを作成する
func NewSettlementService(l *ledger.Ledger) *SettlementService {
	return &SettlementService{ledger: l}
}

// WithdrawEventRevenue はイベント純売上を主催者へ引き出す
// 開催日時経過後に主催者本人のみ、イベントごとに1回だけ実行できる
func (s *SettlementService) WithdrawEventRevenue(ctx context.Context, eventID uint64, caller common.Address) (*ticket.WithdrawalRecord, error) {
	record, err := s.ledger.WithdrawEventRevenue(ctx, eventID, caller)
	if err != nil {
		return nil, err
	}
	if m := metrics.Get(); m != nil {
		m.SettlementsTotal.WithLabelValues("event_revenue").Inc()
	}
	return record, nil
}

// WithdrawPlatformFee は累積手数料をコントラクトオーナーへ引き出す
func (s *SettlementService) WithdrawPlatformFee(ctx context.Context, caller common.Address) (*ticket.WithdrawalRecord, error) {
	record, err := s.ledger.WithdrawPlatformFee(ctx, caller)
	if err != nil {
		return nil, err
	}
	if m := metrics.Get(); m != nil {
		m.SettlementsTotal.WithLabelValues("platform_fee").Inc()
	}
	return record, nil
}

// GetWithdrawableRevenue は現時点で引き出し可能な純売上を返す
func (s *SettlementService) GetWithdrawableRevenue(ctx context.Context, eventID uint64) (*big.Int, error) {
	return s.ledger.GetWithdrawableRevenue(eventID)
}

// EventRevenue はイベントの累積純売上を返す（引き出し済みか否かを問わない）
func (s *SettlementService) EventRevenue(ctx context.Context, eventID uint64) (*big.Int, error) {
	return s.ledger.EventRevenue(eventID)
}

// PlatformFeeBalance は未引き出しのプラットフォーム手数料残高を返す
func (s *SettlementService) PlatformFeeBalance(ctx context.Context) *big.Int {
	return s.ledger.PlatformFeeBalance()
}

// ScanWithdrawable は引き出し可能になったイベントの一覧を返す
func (s *SettlementService) ScanWithdrawable(ctx context.Context) []ledger.WithdrawableEvent {
	return s.ledger.ScanWithdrawable()
}
