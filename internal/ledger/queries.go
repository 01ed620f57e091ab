package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
)

// GetEventCount は登録済みイベント数を返す
func (l *Ledger) GetEventCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// GetEvent はイベントを取得する
func (l *Ledger) GetEvent(eventID uint64) (*ticket.Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	event, err := l.eventByID(eventID)
	if err != nil {
		return nil, err
	}
	return copyEvent(event), nil
}

// GetAllEvents は全イベントのスナップショットを作成順で返す
func (l *Ledger) GetAllEvents() []*ticket.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	events := make([]*ticket.Event, len(l.events))
	for i, event := range l.events {
		events[i] = copyEvent(event)
	}
	return events
}

// GetEventsByIssuer は指定アドレスが発行したイベントを作成順で返す
// 該当なしの場合は空スライス
func (l *Ledger) GetEventsByIssuer(issuer common.Address) []*ticket.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	events := make([]*ticket.Event, 0)
	for _, event := range l.events {
		if event.Issuer == issuer {
			events = append(events, copyEvent(event))
		}
	}
	return events
}

// GetEventTiers はイベントのティア一覧を作成順で返す
func (l *Ledger) GetEventTiers(eventID uint64) ([]*ticket.Tier, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, err := l.eventByID(eventID); err != nil {
		return nil, err
	}
	tierIDs := l.eventTiers[eventID]
	tiers := make([]*ticket.Tier, len(tierIDs))
	for i, id := range tierIDs {
		tiers[i] = copyTier(l.tiers[id])
	}
	return tiers, nil
}

// GetEventAllSeatsWithStatus は全座席の状態を座席作成順のパラレル配列で返す
// 所有者はトークン所有から導出し、未販売はゼロアドレス
func (l *Ledger) GetEventAllSeatsWithStatus(eventID uint64) (*ticket.SeatMap, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, err := l.eventByID(eventID); err != nil {
		return nil, err
	}

	order := l.seatOrder[eventID]
	m := &ticket.SeatMap{
		SeatIDs:        make([]string, len(order)),
		TokenIDs:       make([]uint64, len(order)),
		Owners:         make([]common.Address, len(order)),
		Availabilities: make([]bool, len(order)),
		Prices:         make([]*big.Int, len(order)),
		TierIDs:        make([]uint64, len(order)),
	}
	for i, seatID := range order {
		ref := l.seatIndex[eventID][seatID]
		owner, minted := l.tokenOwner[ref.tokenID]
		m.SeatIDs[i] = seatID
		m.TokenIDs[i] = ref.tokenID
		m.Owners[i] = owner // 未発行時はゼロ値のまま
		m.Availabilities[i] = !minted
		m.Prices[i] = new(big.Int).Set(l.tiers[ref.tierID].Price)
		m.TierIDs[i] = ref.tierID
	}
	return m, nil
}

// IsSeatAvailable は座席が購入可能かを返す
func (l *Ledger) IsSeatAvailable(eventID uint64, seatID string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ref, err := l.seatRefByID(eventID, seatID)
	if err != nil {
		return false, err
	}
	_, minted := l.tokenOwner[ref.tokenID]
	return !minted, nil
}

// GetSeatInfo は1座席の詳細を返す
func (l *Ledger) GetSeatInfo(eventID uint64, seatID string) (*ticket.SeatInfo, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ref, err := l.seatRefByID(eventID, seatID)
	if err != nil {
		return nil, err
	}
	owner, minted := l.tokenOwner[ref.tokenID]
	return &ticket.SeatInfo{
		SeatID:      seatID,
		EventID:     eventID,
		TierID:      ref.tierID,
		TokenID:     ref.tokenID,
		Owner:       owner,
		IsAvailable: !minted,
		Price:       new(big.Int).Set(l.tiers[ref.tierID].Price),
	}, nil
}

// GetUserTickets は指定アドレスがイベント内で所有する座席IDを座席作成順で返す
// 二次移転後も現在のトークン所有者が基準
func (l *Ledger) GetUserTickets(owner common.Address, eventID uint64) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, err := l.eventByID(eventID); err != nil {
		return nil, err
	}
	seatIDs := make([]string, 0)
	for _, seatID := range l.seatOrder[eventID] {
		ref := l.seatIndex[eventID][seatID]
		if tokenOwner, minted := l.tokenOwner[ref.tokenID]; minted && tokenOwner == owner {
			seatIDs = append(seatIDs, seatID)
		}
	}
	return seatIDs, nil
}

// seatRefByID は座席参照を取得する
// 呼び出し元がロックを保持していること
func (l *Ledger) seatRefByID(eventID uint64, seatID string) (seatRef, error) {
	if _, err := l.eventByID(eventID); err != nil {
		return seatRef{}, err
	}
	ref, ok := l.seatIndex[eventID][seatID]
	if !ok {
		return seatRef{}, ticket.ErrSeatNotFound
	}
	return ref, nil
}
