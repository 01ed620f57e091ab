package application

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DELIGHT-LABS/monad-ticket/internal/ledger"
	"github.com/DELIGHT-LABS/monad-ticket/internal/pkg/money"
)

var (
	testOwner  = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	testIssuer = common.HexToAddress("0x00000000000000000000000000000000000000a2")
	testBuyer  = common.HexToAddress("0x00000000000000000000000000000000000000a3")
	testBuyer2 = common.HexToAddress("0x00000000000000000000000000000000000000a4")
)

// testClock は試験用の可変クロック
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testServices struct {
	events     *EventService
	purchases  *PurchaseService
	settlement *SettlementService
	tokens     *TokenService
	ledger     *ledger.Ledger
	clock      *testClock
}

// newTestServices はRedisなし・ジャーナルなしの構成でサービス一式を組み立てる
func newTestServices(t *testing.T) *testServices {
	t.Helper()
	clock := newTestClock()
	l := ledger.New(ledger.Config{
		Owner:       testOwner,
		FeeRateBps:  200,
		TokenName:   "MonadTicket",
		TokenSymbol: "MTKT",
		Clock:       clock.Now,
	}, nil, nil, nil)
	return &testServices{
		events:     NewEventService(l, nil),
		purchases:  NewPurchaseService(l, nil, nil),
		settlement: NewSettlementService(l),
		tokens:     NewTokenService(l, nil),
		ledger:     l,
		clock:      clock,
	}
}

func mon(t *testing.T, s string) *big.Int {
	t.Helper()
	wei, err := money.ParseMON(s)
	require.NoError(t, err)
	return wei
}

func (ts *testServices) fund(t *testing.T, addr common.Address, amount string) {
	t.Helper()
	_, err := ts.tokens.Deposit(context.Background(), addr, mon(t, amount))
	require.NoError(t, err)
}

func (ts *testServices) createConcert(t *testing.T) uint64 {
	t.Helper()
	event, err := ts.events.CreateEvent(context.Background(), ledger.CreateEventInput{
		Issuer:     testIssuer,
		Name:       "BTS Concert",
		EventDate:  ts.clock.Now().Add(30 * 24 * time.Hour),
		TierNames:  []string{"VIP", "Standard"},
		TierPrices: []*big.Int{mon(t, "1.0"), mon(t, "0.5")},
		TierCounts: []int{2, 3},
		TierSeatIDs: [][]string{
			{"A-01", "A-02"},
			{"B-01", "B-02", "B-03"},
		},
	})
	require.NoError(t, err)
	return event.EventID
}

// TestScenario_FullSaleFlow はチケット販売の完全なフローをテストします
// イベント作成 → 入金 → 購入 → 移転 → 開催後の精算
func TestScenario_FullSaleFlow(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	// 1. イベント作成
	eventID := ts.createConcert(t)
	assert.Equal(t, uint64(1), eventID)

	event, err := ts.events.GetEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, "BTS Concert", event.Name)
	assert.Equal(t, 5, event.TotalTickets)
	assert.True(t, event.IsActive)

	tiers, err := ts.events.GetEventTiers(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, tiers, 2)
	assert.Equal(t, uint64(1), tiers[0].StartTokenID)
	assert.Equal(t, uint64(3), tiers[1].StartTokenID)

	// 2. 購入者へ入金
	ts.fund(t, testBuyer, "10")
	ts.fund(t, testBuyer2, "10")

	// 3. VIP席とStandard席を購入
	receipt1, err := ts.purchases.BuyTicket(ctx, eventID, "A-01", testBuyer, mon(t, "1.0"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), receipt1.TokenID)

	receipt2, err := ts.purchases.BuyTicket(ctx, eventID, "B-01", testBuyer2, mon(t, "0.5"))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), receipt2.TokenID)

	// 4. 所有と座席状態の確認
	tokenOwner, err := ts.tokens.OwnerOf(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, testBuyer, tokenOwner)

	seatMap, err := ts.events.GetSeatMap(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false, true, true}, seatMap.Availabilities)

	myTickets, err := ts.events.GetUserTickets(ctx, testBuyer, eventID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A-01"}, myTickets)

	// 5. チケットを二次移転
	record, err := ts.tokens.Transfer(ctx, testBuyer, testBuyer2, 1, testBuyer)
	require.NoError(t, err)
	assert.Equal(t, "A-01", record.SeatID)
	assert.Equal(t, 0, ts.tokens.BalanceOf(ctx, testBuyer))
	assert.Equal(t, 2, ts.tokens.BalanceOf(ctx, testBuyer2))

	// 6. 開催前は精算できない
	withdrawable, err := ts.settlement.GetWithdrawableRevenue(ctx, eventID)
	require.NoError(t, err)
	assert.Zero(t, withdrawable.Sign())

	// 7. 開催日経過後に主催者が精算する
	ts.clock.Advance(31 * 24 * time.Hour)

	// 売上 1.5 MON の98%
	expectedNet := mon(t, "1.47")
	withdrawable, err = ts.settlement.GetWithdrawableRevenue(ctx, eventID)
	require.NoError(t, err)
	assert.Zero(t, expectedNet.Cmp(withdrawable))

	settled, err := ts.settlement.WithdrawEventRevenue(ctx, eventID, testIssuer)
	require.NoError(t, err)
	assert.Zero(t, expectedNet.Cmp(settled.Amount))

	issuerAccount := ts.tokens.GetAccount(ctx, testIssuer)
	assert.Zero(t, expectedNet.Cmp(issuerAccount.Balance))

	// 8. プラットフォーム手数料の引き出し
	expectedFee := mon(t, "0.03")
	feeRecord, err := ts.settlement.WithdrawPlatformFee(ctx, testOwner)
	require.NoError(t, err)
	assert.Zero(t, expectedFee.Cmp(feeRecord.Amount))
	assert.Zero(t, ts.settlement.PlatformFeeBalance(ctx).Sign())
}

// TestScenario_ConcurrentPurchases は同一座席への同時購入で1人だけが成功することを確認する
func TestScenario_ConcurrentPurchases(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	eventID := ts.createConcert(t)

	buyers := make([]common.Address, 10)
	for i := range buyers {
		buyers[i] = common.BigToAddress(big.NewInt(int64(0x1000 + i)))
		ts.fund(t, buyers[i], "5")
	}

	var wg sync.WaitGroup
	results := make([]error, len(buyers))
	for i, buyer := range buyers {
		wg.Add(1)
		go func(i int, buyer common.Address) {
			defer wg.Done()
			_, results[i] = ts.purchases.BuyTicket(ctx, eventID, "A-01", buyer, mon(t, "1.0"))
		}(i, buyer)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	event, err := ts.events.GetEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 1, event.SoldTickets)
}
