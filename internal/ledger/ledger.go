package ledger

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/account"
	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
)

// Config は台帳の構築パラメータ
type Config struct {
	// Owner はプラットフォーム手数料の引き出し権限を持つアドレス
	Owner common.Address
	// FeeRateBps は販売ごとに控除する手数料率（basis points、200 = 2%）
	FeeRateBps int64
	// TokenName / TokenSymbol はチケットNFTの名称
	TokenName   string
	TokenSymbol string
	// Clock は現在時刻の供給源（nilの場合 time.Now）
	Clock func() time.Time
}

// seatRef は座席ID文字列から確定済みトークンIDへの参照
type seatRef struct {
	tierID  uint64
	tokenID uint64
}

// tokenRef はトークンIDから座席への逆引き
type tokenRef struct {
	eventID uint64
	seatID  string
}

// Ledger はチケット販売台帳を表す
// すべての状態変更は単一のwriteロック下で直列に実行され、
// チェーンのトランザクション直列化モデルを再現する
type Ledger struct {
	mu    sync.RWMutex
	clock func() time.Time

	owner       common.Address
	feeRateBps  int64
	tokenName   string
	tokenSymbol string

	accounts *account.Book
	journal  ticket.Journal  // nilの場合は永続化なし
	notifier ticket.Notifier // nilの場合は通知なし

	// イベント登録簿（eventID = インデックス+1）
	events     []*ticket.Event
	tiers      map[uint64]*ticket.Tier
	eventTiers map[uint64][]uint64 // eventID → 作成順のtierID列

	// 座席索引（eventID → seatID → 参照、作成順も保持）
	seatIndex map[uint64]map[string]seatRef
	seatOrder map[uint64][]string

	// NFT所有状態（seatの販売状態は常にここから導出する）
	tokenOwner  map[uint64]common.Address
	tokenSeat   map[uint64]tokenRef
	nftBalances map[common.Address]int

	// 連番カウンタ（write ロック内でのみ更新）
	nextTierID  uint64
	nextTokenID uint64

	// 収益台帳
	eventRevenue       map[uint64]*big.Int
	withdrawn          map[uint64]bool
	platformFeeBalance *big.Int
}

// New は空のチケット販売台帳を作成する
// book / journal / notifier は nil 可（bookがnilの場合は新規の残高台帳を使う）
func New(cfg Config, book *account.Book, journal ticket.Journal, notifier ticket.Notifier) *Ledger {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	if book == nil {
		book = account.NewBook()
	}
	return &Ledger{
		clock:              clock,
		owner:              cfg.Owner,
		feeRateBps:         cfg.FeeRateBps,
		tokenName:          cfg.TokenName,
		tokenSymbol:        cfg.TokenSymbol,
		accounts:           book,
		journal:            journal,
		notifier:           notifier,
		tiers:              make(map[uint64]*ticket.Tier),
		eventTiers:         make(map[uint64][]uint64),
		seatIndex:          make(map[uint64]map[string]seatRef),
		seatOrder:          make(map[uint64][]string),
		tokenOwner:         make(map[uint64]common.Address),
		tokenSeat:          make(map[uint64]tokenRef),
		nftBalances:        make(map[common.Address]int),
		nextTierID:         1,
		nextTokenID:        1,
		eventRevenue:       make(map[uint64]*big.Int),
		withdrawn:          make(map[uint64]bool),
		platformFeeBalance: new(big.Int),
	}
}

// Accounts は残高台帳を返す
func (l *Ledger) Accounts() *account.Book {
	return l.accounts
}

// CreateEventInput はイベント作成の入力
// ティア4配列は同じ長さのパラレル配列で、順序がそのままティア作成順になる
type CreateEventInput struct {
	Issuer      common.Address
	Name        string
	EventDate   time.Time
	TierNames   []string
	TierPrices  []*big.Int
	TierCounts  []int
	TierSeatIDs [][]string
}

// CreateEvent はイベント・ティア・座席をアトミックに一括作成する
// 作成後の座席追加・削除はできない
func (l *Ledger) CreateEvent(ctx context.Context, input CreateEventInput) (*ticket.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if !input.EventDate.After(now) {
		return nil, ticket.ErrInvalidEventDate
	}

	n := len(input.TierNames)
	if n == 0 || len(input.TierPrices) != n || len(input.TierCounts) != n || len(input.TierSeatIDs) != n {
		return nil, ticket.ErrTierArrayLengthMismatch
	}
	for i := 0; i < n; i++ {
		if input.TierCounts[i] <= 0 || len(input.TierSeatIDs[i]) != input.TierCounts[i] {
			return nil, ticket.ErrSeatCountMismatch
		}
	}

	// 座席IDはティアをまたいでイベント内で一意
	seen := make(map[string]struct{})
	totalTickets := 0
	for i := 0; i < n; i++ {
		for _, seatID := range input.TierSeatIDs[i] {
			if _, dup := seen[seatID]; dup {
				return nil, ticket.ErrDuplicateSeatID
			}
			seen[seatID] = struct{}{}
		}
		totalTickets += input.TierCounts[i]
	}

	// 検証完了後にID列を確定する（カウンタはコミット時まで進めない）
	eventID := uint64(len(l.events)) + 1
	event := &ticket.Event{
		EventID:      eventID,
		Issuer:       input.Issuer,
		Name:         input.Name,
		EventDate:    input.EventDate,
		TierCount:    n,
		TotalTickets: totalTickets,
		SoldTickets:  0,
		IsActive:     true,
		CreatedAt:    now,
	}

	tierID := l.nextTierID
	tokenID := l.nextTokenID
	tiers := make([]*ticket.Tier, 0, n)
	assignments := make([]ticket.SeatAssignment, 0, totalTickets)
	for i := 0; i < n; i++ {
		tier := &ticket.Tier{
			TierID:       tierID,
			EventID:      eventID,
			Name:         input.TierNames[i],
			Price:        new(big.Int).Set(input.TierPrices[i]),
			TotalCount:   input.TierCounts[i],
			StartTokenID: tokenID,
			CreatedAt:    now,
		}
		tiers = append(tiers, tier)
		for _, seatID := range input.TierSeatIDs[i] {
			assignments = append(assignments, ticket.SeatAssignment{
				EventID: eventID,
				TierID:  tier.TierID,
				SeatID:  seatID,
				TokenID: tokenID,
			})
			tokenID++
		}
		tierID++
	}

	// write-ahead: ジャーナル追記に失敗した作成は適用しない
	if l.journal != nil {
		if err := l.journal.AppendEventCreated(ctx, event, tiers, assignments); err != nil {
			return nil, fmt.Errorf("ジャーナル追記に失敗しました: %w", err)
		}
	}

	l.events = append(l.events, event)
	index := make(map[string]seatRef, totalTickets)
	order := make([]string, 0, totalTickets)
	for _, a := range assignments {
		index[a.SeatID] = seatRef{tierID: a.TierID, tokenID: a.TokenID}
		order = append(order, a.SeatID)
		l.tokenSeat[a.TokenID] = tokenRef{eventID: eventID, seatID: a.SeatID}
	}
	l.seatIndex[eventID] = index
	l.seatOrder[eventID] = order
	tierIDs := make([]uint64, 0, n)
	for _, tier := range tiers {
		l.tiers[tier.TierID] = tier
		tierIDs = append(tierIDs, tier.TierID)
	}
	l.eventTiers[eventID] = tierIDs
	l.eventRevenue[eventID] = new(big.Int)
	l.nextTierID = tierID
	l.nextTokenID = tokenID

	if l.notifier != nil {
		l.notifier.EventCreated(copyEvent(event))
	}
	return copyEvent(event), nil
}

// DeactivateEvent はイベントの販売を停止する（発行者のみ、再開不可）
func (l *Ledger) DeactivateEvent(ctx context.Context, eventID uint64, caller common.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	event, err := l.eventByID(eventID)
	if err != nil {
		return err
	}
	if event.Issuer != caller {
		return ticket.ErrNotEventIssuer
	}

	if l.journal != nil {
		if err := l.journal.AppendEventDeactivated(ctx, eventID); err != nil {
			return fmt.Errorf("ジャーナル追記に失敗しました: %w", err)
		}
	}
	event.IsActive = false
	return nil
}

// eventByID はイベントを取得する
// 呼び出し元がロックを保持していること
func (l *Ledger) eventByID(eventID uint64) (*ticket.Event, error) {
	if eventID == 0 || eventID > uint64(len(l.events)) {
		return nil, ticket.ErrEventNotFound
	}
	return l.events[eventID-1], nil
}

func copyEvent(e *ticket.Event) *ticket.Event {
	c := *e
	return &c
}

func copyTier(t *ticket.Tier) *ticket.Tier {
	c := *t
	c.Price = new(big.Int).Set(t.Price)
	return &c
}
