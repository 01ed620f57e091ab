package application

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
	redisinfra "github.com/DELIGHT-LABS/monad-ticket/internal/infrastructure/redis"
	"github.com/DELIGHT-LABS/monad-ticket/internal/ledger"
	"github.com/DELIGHT-LABS/monad-ticket/internal/pkg/logger"
)

// TokenService はチケットNFTの照会・移転と残高口座の操作を提供する
type TokenService struct {
	ledger *ledger.Ledger
	cache  *redisinfra.SeatCache
}

// NewTokenService は新しいTokenServiceを作成する
// cache はnil可（キャッシュ無効時）
func NewTokenService(l *ledger.Ledger, cache *redisinfra.SeatCache) *TokenService {
	return &TokenService{ledger: l, cache: cache}
}

func (s *TokenService) Name(ctx context.Context) string {
	return s.ledger.Name()
}

func (s *TokenService) Symbol(ctx context.Context) string {
	return s.ledger.Symbol()
}

func (s *TokenService) OwnerOf(ctx context.Context, tokenID uint64) (common.Address, error) {
	return s.ledger.OwnerOf(tokenID)
}

func (s *TokenService) BalanceOf(ctx context.Context, addr common.Address) int {
	return s.ledger.BalanceOf(addr)
}

// Transfer はチケットトークンを移転する
// 呼び出し元がトークン所有者本人でなければならない
func (s *TokenService) Transfer(ctx context.Context, from, to common.Address, tokenID uint64, caller common.Address) (*ticket.TransferRecord, error) {
	record, err := s.ledger.TransferFrom(ctx, from, to, tokenID, caller)
	if err != nil {
		return nil, err
	}

	// 座席所有者が変わるため該当イベントの座席マップキャッシュを破棄する
	if s.cache != nil {
		if cacheErr := s.cache.Invalidate(ctx, record.EventID); cacheErr != nil {
			logger.Warn("キャッシュ無効化エラー", zap.Uint64("event_id", record.EventID), zap.Error(cacheErr))
		}
	}
	return record, nil
}

// AccountSummary はアドレスの資金残高とチケット保有数をまとめて返す
type AccountSummary struct {
	Address     common.Address
	Balance     *big.Int
	TicketCount int
}

func (s *TokenService) GetAccount(ctx context.Context, addr common.Address) *AccountSummary {
	return &AccountSummary{
		Address:     addr,
		Balance:     s.ledger.Accounts().BalanceOf(addr),
		TicketCount: s.ledger.BalanceOf(addr),
	}
}

// Deposit はアドレスへ資金を入金する
// オンチェーンの残高に相当する口座への入金口で、購入の原資になる
func (s *TokenService) Deposit(ctx context.Context, addr common.Address, amount *big.Int) (*big.Int, error) {
	if err := s.ledger.Accounts().Deposit(addr, amount); err != nil {
		return nil, err
	}
	return s.ledger.Accounts().BalanceOf(addr), nil
}
