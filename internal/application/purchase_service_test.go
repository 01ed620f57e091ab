package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/account"
	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
)

func TestPurchaseService_BuyTicket(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	eventID := ts.createConcert(t)
	ts.fund(t, testBuyer, "10")

	t.Run("購入が成立する", func(t *testing.T) {
		receipt, err := ts.purchases.BuyTicket(ctx, eventID, "A-01", testBuyer, mon(t, "1.0"))
		require.NoError(t, err)
		assert.Equal(t, "A-01", receipt.SeatID)
		assert.Equal(t, testBuyer, receipt.Buyer)
		assert.Zero(t, mon(t, "0.02").Cmp(receipt.Fee))

		balance := ts.tokens.GetAccount(ctx, testBuyer).Balance
		assert.Zero(t, mon(t, "9").Cmp(balance))
	})

	t.Run("販売済み座席は購入できない", func(t *testing.T) {
		_, err := ts.purchases.BuyTicket(ctx, eventID, "A-01", testBuyer2, mon(t, "1.0"))
		assert.ErrorIs(t, err, ticket.ErrSeatAlreadySold)
	})

	t.Run("支払額の不一致は購入できない", func(t *testing.T) {
		_, err := ts.purchases.BuyTicket(ctx, eventID, "A-02", testBuyer, mon(t, "0.9"))
		assert.ErrorIs(t, err, ticket.ErrIncorrectPayment)
	})

	t.Run("残高不足の場合は座席が空席のまま残る", func(t *testing.T) {
		_, err := ts.purchases.BuyTicket(ctx, eventID, "A-02", testBuyer2, mon(t, "1.0"))
		assert.ErrorIs(t, err, account.ErrInsufficientFunds)

		available, err := ts.events.IsSeatAvailable(ctx, eventID, "A-02")
		require.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("存在しないイベントは購入できない", func(t *testing.T) {
		_, err := ts.purchases.BuyTicket(ctx, 999, "A-01", testBuyer, mon(t, "1.0"))
		assert.ErrorIs(t, err, ticket.ErrEventNotFound)
	})
}

func TestPurchaseFailureStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status string
	}{
		{"販売済み", ticket.ErrSeatAlreadySold, "seat_sold"},
		{"支払額不一致", ticket.ErrIncorrectPayment, "incorrect_payment"},
		{"残高不足", account.ErrInsufficientFunds, "insufficient_funds"},
		{"その他", ticket.ErrEventNotFound, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, purchaseFailureStatus(tt.err))
		})
	}
}
