package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
)

func TestOwnerOf_UnmintedToken(t *testing.T) {
	l, _, clock := newTestLedger(t)
	createSampleEvent(t, l, clock)

	// 座席は割り当て済みだがトークンは未発行
	_, err := l.OwnerOf(1)
	assert.ErrorIs(t, err, ticket.ErrTokenNotMinted)
}

func TestTransferFrom(t *testing.T) {
	l, book, clock := newTestLedger(t)
	createSampleEvent(t, l, clock)
	fund(t, book, buyer1, "10")
	fund(t, book, buyer2, "10")

	ctx := context.Background()
	_, err := l.BuyTicket(ctx, 1, "A-01", buyer1, mon(t, "1.0"))
	require.NoError(t, err)
	_, err = l.BuyTicket(ctx, 1, "B-01", buyer2, mon(t, "0.5"))
	require.NoError(t, err)

	t.Run("所有者が移転できる", func(t *testing.T) {
		record, err := l.TransferFrom(ctx, buyer1, buyer2, 1, buyer1)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), record.EventID)
		assert.Equal(t, "A-01", record.SeatID)

		tokenOwner, err := l.OwnerOf(1)
		require.NoError(t, err)
		assert.Equal(t, buyer2, tokenOwner)
		assert.Equal(t, 0, l.BalanceOf(buyer1))
		assert.Equal(t, 2, l.BalanceOf(buyer2)) // B-01 + A-01
	})

	t.Run("座席クエリは移転後の所有者を返す", func(t *testing.T) {
		seatMap, err := l.GetEventAllSeatsWithStatus(1)
		require.NoError(t, err)
		assert.Equal(t, buyer2, seatMap.Owners[0])
		assert.False(t, seatMap.Availabilities[0])

		// getUserTicketsも現所有者基準
		tickets, err := l.GetUserTickets(buyer2, 1)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"A-01", "B-01"}, tickets)

		tickets, err = l.GetUserTickets(buyer1, 1)
		require.NoError(t, err)
		assert.Empty(t, tickets)
	})

	t.Run("移転はイベントの販売集計に影響しない", func(t *testing.T) {
		event, err := l.GetEvent(1)
		require.NoError(t, err)
		assert.Equal(t, 2, event.SoldTickets)

		revenue, err := l.EventRevenue(1)
		require.NoError(t, err)
		assert.Equal(t, 0, mon(t, "1.47").Cmp(revenue))
	})

	t.Run("非所有者は移転できない", func(t *testing.T) {
		_, err := l.TransferFrom(ctx, buyer2, buyer1, 1, buyer1)
		assert.ErrorIs(t, err, ticket.ErrNotTokenOwner)
	})

	t.Run("fromが現所有者でない場合も拒否", func(t *testing.T) {
		_, err := l.TransferFrom(ctx, buyer1, owner, 1, buyer2)
		assert.ErrorIs(t, err, ticket.ErrNotTokenOwner)
	})

	t.Run("未発行トークンの移転", func(t *testing.T) {
		_, err := l.TransferFrom(ctx, buyer1, buyer2, 999, buyer1)
		assert.ErrorIs(t, err, ticket.ErrTokenNotMinted)
	})
}

func TestSeatQueries(t *testing.T) {
	l, book, clock := newTestLedger(t)
	createSampleEvent(t, l, clock)
	fund(t, book, buyer1, "10")
	fund(t, book, buyer2, "10")

	ctx := context.Background()
	_, err := l.BuyTicket(ctx, 1, "A-01", buyer1, mon(t, "1.0"))
	require.NoError(t, err)
	_, err = l.BuyTicket(ctx, 1, "B-01", buyer2, mon(t, "0.5"))
	require.NoError(t, err)

	t.Run("全座席スナップショット", func(t *testing.T) {
		seatMap, err := l.GetEventAllSeatsWithStatus(1)
		require.NoError(t, err)
		require.Equal(t, 5, seatMap.Len())

		// A-01: buyer1に販売済み
		assert.Equal(t, "A-01", seatMap.SeatIDs[0])
		assert.Equal(t, uint64(1), seatMap.TokenIDs[0])
		assert.Equal(t, buyer1, seatMap.Owners[0])
		assert.False(t, seatMap.Availabilities[0])
		assert.Equal(t, 0, mon(t, "1.0").Cmp(seatMap.Prices[0]))

		// A-02: 未販売（ゼロアドレス）
		assert.Equal(t, "A-02", seatMap.SeatIDs[1])
		assert.True(t, seatMap.Availabilities[1])
		assert.Equal(t, zeroAddress, seatMap.Owners[1])

		// B-01: buyer2に販売済み、Standardティア価格
		assert.Equal(t, "B-01", seatMap.SeatIDs[2])
		assert.Equal(t, buyer2, seatMap.Owners[2])
		assert.Equal(t, 0, mon(t, "0.5").Cmp(seatMap.Prices[2]))
		assert.Equal(t, uint64(2), seatMap.TierIDs[2])
	})

	t.Run("座席の空き状況", func(t *testing.T) {
		for seatID, want := range map[string]bool{
			"A-01": false, "A-02": true, "B-01": false, "B-02": true,
		} {
			available, err := l.IsSeatAvailable(1, seatID)
			require.NoError(t, err)
			assert.Equal(t, want, available, seatID)
		}

		_, err := l.IsSeatAvailable(1, "Z-99")
		assert.ErrorIs(t, err, ticket.ErrSeatNotFound)
	})

	t.Run("座席詳細", func(t *testing.T) {
		info, err := l.GetSeatInfo(1, "A-01")
		require.NoError(t, err)
		assert.Equal(t, "A-01", info.SeatID)
		assert.Equal(t, uint64(1), info.EventID)
		assert.Equal(t, uint64(1), info.TokenID)
		assert.Equal(t, buyer1, info.Owner)
		assert.False(t, info.IsAvailable)
		assert.Equal(t, 0, mon(t, "1.0").Cmp(info.Price))
	})

	t.Run("ユーザー保有チケット", func(t *testing.T) {
		tickets, err := l.GetUserTickets(buyer1, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"A-01"}, tickets)

		tickets, err = l.GetUserTickets(owner, 1)
		require.NoError(t, err)
		assert.Empty(t, tickets)
	})
}
