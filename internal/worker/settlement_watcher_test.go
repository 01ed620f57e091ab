package worker

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/DELIGHT-LABS/monad-ticket/internal/ledger"
)

// MockWithdrawableScanner はWithdrawableScannerのモック
type MockWithdrawableScanner struct {
	mock.Mock
}

func (m *MockWithdrawableScanner) ScanWithdrawable(ctx context.Context) []ledger.WithdrawableEvent {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]ledger.WithdrawableEvent)
}

func TestNewSettlementWatcher(t *testing.T) {
	mockService := new(MockWithdrawableScanner)
	interval := time.Minute

	watcher := NewSettlementWatcher(mockService, interval)

	assert.NotNil(t, watcher)
	assert.Equal(t, interval, watcher.interval)
	assert.NotNil(t, watcher.stopCh)
	assert.NotNil(t, watcher.doneCh)
}

func TestSettlementWatcher_Scan(t *testing.T) {
	t.Run("精算待ちイベントを検出する", func(t *testing.T) {
		mockService := new(MockWithdrawableScanner)
		mockService.On("ScanWithdrawable", mock.Anything).Return([]ledger.WithdrawableEvent{
			{
				EventID: 1,
				Name:    "BTS Concert",
				Issuer:  common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
				Amount:  big.NewInt(147e16),
			},
		})

		watcher := NewSettlementWatcher(mockService, time.Minute)
		watcher.scan(context.Background())

		mockService.AssertExpectations(t)
	})

	t.Run("精算待ちなしでも正常に動作する", func(t *testing.T) {
		mockService := new(MockWithdrawableScanner)
		mockService.On("ScanWithdrawable", mock.Anything).Return(nil)

		watcher := NewSettlementWatcher(mockService, time.Minute)
		watcher.scan(context.Background())

		mockService.AssertExpectations(t)
	})
}

func TestSettlementWatcher_StartStop(t *testing.T) {
	mockService := new(MockWithdrawableScanner)
	mockService.On("ScanWithdrawable", mock.Anything).Return(nil).Maybe()

	watcher := NewSettlementWatcher(mockService, 10*time.Millisecond)

	go watcher.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	watcher.Stop()

	// Stop後はdoneChが閉じている
	select {
	case <-watcher.doneCh:
	default:
		t.Fatal("doneCh should be closed after Stop")
	}
}
