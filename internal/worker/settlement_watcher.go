package worker

import (
	"context"
	"math/big"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/DELIGHT-LABS/monad-ticket/internal/ledger"
	"github.com/DELIGHT-LABS/monad-ticket/internal/pkg/logger"
	"github.com/DELIGHT-LABS/monad-ticket/internal/pkg/metrics"
)

// WithdrawableScanner は精算待ちイベントを列挙するインターフェース
type WithdrawableScanner interface {
	ScanWithdrawable(ctx context.Context) []ledger.WithdrawableEvent
}

// SettlementWatcher は精算待ちイベントを定期的に検出するワーカー
// 引き出しは主催者の操作なので実行はせず、検出とメトリクス更新のみを行う
type SettlementWatcher struct {
	settlementService WithdrawableScanner
	interval          time.Duration
	stopCh            chan struct{}
	doneCh            chan struct{}
}

// NewSettlementWatcher は新しいウォッチャーを作成
func NewSettlementWatcher(ss WithdrawableScanner, interval time.Duration) *SettlementWatcher {
	return &SettlementWatcher{
		settlementService: ss,
		interval:          interval,
		stopCh:            make(chan struct{}),
		doneCh:            make(chan struct{}),
	}
}

// Start はウォッチャーを開始
func (w *SettlementWatcher) Start(ctx context.Context) {
	logger.Info("精算ウォッチャー開始", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("精算ウォッチャー停止（コンテキストキャンセル）")
			return
		case <-w.stopCh:
			logger.Info("精算ウォッチャー停止（シグナル受信）")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

// Stop はウォッチャーを停止
func (w *SettlementWatcher) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

// scan は精算待ちイベントを検出してログとメトリクスへ反映する
func (w *SettlementWatcher) scan(ctx context.Context) {
	log := logger.Get()
	log.Debug("精算待ちイベントのスキャン開始")

	withdrawables := w.settlementService.ScanWithdrawable(ctx)
	if len(withdrawables) == 0 {
		log.Debug("精算待ちイベントなし")
		return
	}

	m := metrics.Get()
	for _, we := range withdrawables {
		log.Info("精算待ちイベントを検出",
			zap.Uint64("event_id", we.EventID),
			zap.String("name", we.Name),
			zap.String("issuer", we.Issuer.Hex()),
			zap.String("amount_wei", we.Amount.String()),
		)
		if m != nil {
			amountF, _ := new(big.Float).SetInt(we.Amount).Float64()
			m.WithdrawableRevenueWei.WithLabelValues(strconv.FormatUint(we.EventID, 10)).Set(amountF)
		}
	}
}
