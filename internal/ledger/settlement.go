package ledger

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
)

// WithdrawEventRevenue は開催日を過ぎたイベントの純売上を発行者へ一括で引き出す
// イベントごとに一度だけ実行でき、部分引き出しはできない
func (l *Ledger) WithdrawEventRevenue(ctx context.Context, eventID uint64, caller common.Address) (*ticket.WithdrawalRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	event, err := l.eventByID(eventID)
	if err != nil {
		return nil, err
	}
	if event.Issuer != caller {
		return nil, ticket.ErrNotEventIssuer
	}
	if !event.HasEnded(l.clock()) {
		return nil, ticket.ErrEventNotEnded
	}
	if l.withdrawn[eventID] {
		return nil, ticket.ErrRevenueAlreadyWithdrawn
	}

	record := &ticket.WithdrawalRecord{
		WithdrawalID: uuid.New().String(),
		EventID:      eventID,
		Recipient:    caller,
		Amount:       new(big.Int).Set(l.eventRevenue[eventID]),
		WithdrawnAt:  l.clock(),
	}

	if l.journal != nil {
		if err := l.journal.AppendWithdrawal(ctx, record); err != nil {
			return nil, fmt.Errorf("ジャーナル追記に失敗しました: %w", err)
		}
	}

	l.withdrawn[eventID] = true
	if err := l.accounts.Credit(caller, record.Amount); err != nil {
		// クレジット失敗時は引き出し済みフラグも戻す（全量ロールバック）
		l.withdrawn[eventID] = false
		return nil, err
	}
	return record, nil
}

// WithdrawPlatformFee は累積プラットフォーム手数料を台帳オーナーへ全額引き出す
func (l *Ledger) WithdrawPlatformFee(ctx context.Context, caller common.Address) (*ticket.WithdrawalRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.owner {
		return nil, ticket.ErrNotContractOwner
	}

	record := &ticket.WithdrawalRecord{
		WithdrawalID: uuid.New().String(),
		EventID:      0, // プラットフォーム手数料はイベントに紐付かない
		Recipient:    caller,
		Amount:       new(big.Int).Set(l.platformFeeBalance),
		WithdrawnAt:  l.clock(),
	}

	if l.journal != nil {
		if err := l.journal.AppendWithdrawal(ctx, record); err != nil {
			return nil, fmt.Errorf("ジャーナル追記に失敗しました: %w", err)
		}
	}

	if err := l.accounts.Credit(caller, record.Amount); err != nil {
		return nil, err
	}
	l.platformFeeBalance.SetInt64(0)
	return record, nil
}

// GetWithdrawableRevenue は現在引き出し可能な純売上を返す
// イベント未終了または引き出し済みの場合は0
func (l *Ledger) GetWithdrawableRevenue(eventID uint64) (*big.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	event, err := l.eventByID(eventID)
	if err != nil {
		return nil, err
	}
	if !event.HasEnded(l.clock()) || l.withdrawn[eventID] {
		return new(big.Int), nil
	}
	return new(big.Int).Set(l.eventRevenue[eventID]), nil
}

// EventRevenue はイベントの累積純売上を返す（引き出し済みかは問わない）
func (l *Ledger) EventRevenue(eventID uint64) (*big.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, err := l.eventByID(eventID); err != nil {
		return nil, err
	}
	return new(big.Int).Set(l.eventRevenue[eventID]), nil
}

// PlatformFeeBalance は未引き出しのプラットフォーム手数料残高を返す
func (l *Ledger) PlatformFeeBalance() *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return new(big.Int).Set(l.platformFeeBalance)
}

// WithdrawableEvent は終了済みかつ未引き出しのイベントの精算待ち情報
type WithdrawableEvent struct {
	EventID uint64
	Name    string
	Issuer  common.Address
	Amount  *big.Int
}

// ScanWithdrawable は終了済み・未引き出しのイベント一覧を返す
// 精算ウォッチャーが定期的に呼び出す
func (l *Ledger) ScanWithdrawable() []WithdrawableEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	now := l.clock()
	var result []WithdrawableEvent
	for _, event := range l.events {
		if !event.HasEnded(now) || l.withdrawn[event.EventID] {
			continue
		}
		if l.eventRevenue[event.EventID].Sign() == 0 {
			continue
		}
		result = append(result, WithdrawableEvent{
			EventID: event.EventID,
			Name:    event.Name,
			Issuer:  event.Issuer,
			Amount:  new(big.Int).Set(l.eventRevenue[event.EventID]),
		})
	}
	return result
}
