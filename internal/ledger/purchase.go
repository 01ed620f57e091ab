package ledger

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
)

// feeDenominator は手数料率の分母（basis points）
const feeDenominator = 10000

// BuyTicket は座席を購入し、事前採番されたチケットトークンを購入者にミントする
// 支払額はティア価格との完全一致が必須（過払いも拒否）
// 前提条件はスペック順に検証され、最初に失敗した条件のエラーを返す
func (l *Ledger) BuyTicket(ctx context.Context, eventID uint64, seatID string, buyer common.Address, payment *big.Int) (*ticket.PurchaseReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	event, err := l.eventByID(eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsActive {
		return nil, ticket.ErrEventNotActive
	}
	ref, ok := l.seatIndex[eventID][seatID]
	if !ok {
		return nil, ticket.ErrSeatNotFound
	}
	if _, minted := l.tokenOwner[ref.tokenID]; minted {
		return nil, ticket.ErrSeatAlreadySold
	}
	tier := l.tiers[ref.tierID]
	if payment == nil || payment.Cmp(tier.Price) != 0 {
		return nil, ticket.ErrIncorrectPayment
	}

	// 手数料は切り捨て除算: fee = payment * feeRateBps / 10000
	fee := new(big.Int).Mul(payment, big.NewInt(l.feeRateBps))
	fee.Div(fee, big.NewInt(feeDenominator))
	net := new(big.Int).Sub(payment, fee)

	receipt := &ticket.PurchaseReceipt{
		ReceiptID:   uuid.New().String(),
		EventID:     eventID,
		TierID:      tier.TierID,
		TokenID:     ref.tokenID,
		Buyer:       buyer,
		SeatID:      seatID,
		Price:       new(big.Int).Set(payment),
		Fee:         fee,
		PurchasedAt: l.clock(),
	}

	// 支払いの引き落とし。ジャーナル追記に失敗した場合は払い戻して巻き戻す
	if err := l.accounts.Debit(buyer, payment); err != nil {
		return nil, err
	}
	if l.journal != nil {
		if err := l.journal.AppendPurchase(ctx, receipt); err != nil {
			_ = l.accounts.Credit(buyer, payment)
			return nil, fmt.Errorf("ジャーナル追記に失敗しました: %w", err)
		}
	}

	// ミントとカウンタ・収益の更新
	l.tokenOwner[ref.tokenID] = buyer
	l.nftBalances[buyer]++
	tier.SoldCount++
	event.SoldTickets++
	l.eventRevenue[eventID].Add(l.eventRevenue[eventID], net)
	l.platformFeeBalance.Add(l.platformFeeBalance, fee)

	if l.notifier != nil {
		l.notifier.TicketPurchased(receipt)
	}
	return receipt, nil
}
