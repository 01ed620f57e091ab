package ticket

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Event はイベントエンティティを表す
// SoldTickets と IsActive 以外は作成後に変更されない
type Event struct {
	EventID      uint64
	Issuer       common.Address
	Name         string
	EventDate    time.Time
	TierCount    int
	TotalTickets int
	SoldTickets  int
	IsActive     bool
	CreatedAt    time.Time
}

// HasEnded は開催日時を過ぎたかを返す
func (e *Event) HasEnded(now time.Time) bool {
	return !now.Before(e.EventDate)
}

// IsSoldOut は全席販売済みかを返す
func (e *Event) IsSoldOut() bool {
	return e.SoldTickets >= e.TotalTickets
}

// Tier はイベント内の価格帯を表す
// TierID は全イベントを通して連番で払い出される
type Tier struct {
	TierID       uint64
	EventID      uint64
	Name         string
	Price        *big.Int
	TotalCount   int
	SoldCount    int
	StartTokenID uint64
	CreatedAt    time.Time
}

// SeatInfo は1座席の現在状態を表す
// Owner はトークン所有者から都度導出され、未販売時はゼロアドレス
type SeatInfo struct {
	SeatID      string
	EventID     uint64
	TierID      uint64
	TokenID     uint64
	Owner       common.Address
	IsAvailable bool
	Price       *big.Int
}

// SeatMap はイベント全座席の状態スナップショット
// 各スライスは座席作成順で揃ったパラレル配列
type SeatMap struct {
	SeatIDs        []string         `json:"seat_ids"`
	TokenIDs       []uint64         `json:"token_ids"`
	Owners         []common.Address `json:"owners"`
	Availabilities []bool           `json:"availabilities"`
	Prices         []*big.Int       `json:"prices"`
	TierIDs        []uint64         `json:"tier_ids"`
}

// Len は座席数を返す
func (m *SeatMap) Len() int {
	return len(m.SeatIDs)
}

// SeatAssignment は作成時に確定する座席とトークンIDの対応
type SeatAssignment struct {
	EventID uint64
	TierID  uint64
	SeatID  string
	TokenID uint64
}

// PurchaseReceipt は購入成立の記録
type PurchaseReceipt struct {
	ReceiptID   string
	EventID     uint64
	TierID      uint64
	TokenID     uint64
	Buyer       common.Address
	SeatID      string
	Price       *big.Int
	Fee         *big.Int
	PurchasedAt time.Time
}

// WithdrawalRecord は売上引き出しの記録
// EventID が0の場合はプラットフォーム手数料の引き出し
type WithdrawalRecord struct {
	WithdrawalID string
	EventID      uint64
	Recipient    common.Address
	Amount       *big.Int
	WithdrawnAt  time.Time
}

// TransferRecord はチケットトークンの二次移転の記録
type TransferRecord struct {
	TokenID       uint64
	EventID       uint64
	SeatID        string
	From          common.Address
	To            common.Address
	TransferredAt time.Time
}
