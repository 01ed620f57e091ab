package handler

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/DELIGHT-LABS/monad-ticket/internal/application"
	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
	"github.com/DELIGHT-LABS/monad-ticket/internal/ledger"
)

// EventServiceInterface はイベントサービスのインターフェース
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, input ledger.CreateEventInput) (*ticket.Event, error)
	GetEvent(ctx context.Context, eventID uint64) (*ticket.Event, error)
	GetAllEvents(ctx context.Context) ([]*ticket.Event, error)
	GetEventsByIssuer(ctx context.Context, issuer common.Address) ([]*ticket.Event, error)
	GetEventTiers(ctx context.Context, eventID uint64) ([]*ticket.Tier, error)
	DeactivateEvent(ctx context.Context, eventID uint64, caller common.Address) error
	GetSeatMap(ctx context.Context, eventID uint64) (*ticket.SeatMap, error)
	IsSeatAvailable(ctx context.Context, eventID uint64, seatID string) (bool, error)
	GetSeatInfo(ctx context.Context, eventID uint64, seatID string) (*ticket.SeatInfo, error)
	GetUserTickets(ctx context.Context, owner common.Address, eventID uint64) ([]string, error)
}

// PurchaseServiceInterface は購入サービスのインターフェース
type PurchaseServiceInterface interface {
	BuyTicket(ctx context.Context, eventID uint64, seatID string, buyer common.Address, payment *big.Int) (*ticket.PurchaseReceipt, error)
}

// SettlementServiceInterface は精算サービスのインターフェース
type SettlementServiceInterface interface {
	WithdrawEventRevenue(ctx context.Context, eventID uint64, caller common.Address) (*ticket.WithdrawalRecord, error)
	WithdrawPlatformFee(ctx context.Context, caller common.Address) (*ticket.WithdrawalRecord, error)
	GetWithdrawableRevenue(ctx context.Context, eventID uint64) (*big.Int, error)
	EventRevenue(ctx context.Context, eventID uint64) (*big.Int, error)
	PlatformFeeBalance(ctx context.Context) *big.Int
}

// TokenServiceInterface はチケットNFTと口座のインターフェース
type TokenServiceInterface interface {
	Name(ctx context.Context) string
	Symbol(ctx context.Context) string
	OwnerOf(ctx context.Context, tokenID uint64) (common.Address, error)
	BalanceOf(ctx context.Context, addr common.Address) int
	Transfer(ctx context.Context, from, to common.Address, tokenID uint64, caller common.Address) (*ticket.TransferRecord, error)
	GetAccount(ctx context.Context, addr common.Address) *application.AccountSummary
	Deposit(ctx context.Context, addr common.Address, amount *big.Int) (*big.Int, error)
}
