package ledger

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
)

// Name はチケットNFTコレクション名を返す
func (l *Ledger) Name() string {
	return l.tokenName
}

// Symbol はチケットNFTシンボルを返す
func (l *Ledger) Symbol() string {
	return l.tokenSymbol
}

// OwnerOf はトークンの現在の所有者を返す
// 未発行のトークンIDに対しては ErrTokenNotMinted
func (l *Ledger) OwnerOf(tokenID uint64) (common.Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	owner, ok := l.tokenOwner[tokenID]
	if !ok {
		return common.Address{}, ticket.ErrTokenNotMinted
	}
	return owner, nil
}

// BalanceOf はアドレスが保有するチケットトークン数を返す
func (l *Ledger) BalanceOf(addr common.Address) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.nftBalances[addr]
}

// TransferFrom はチケットトークンを from から to へ移転する
// 呼び出し元は現在の所有者でなければならない
// 座席の所有はトークン所有から導出されるため、移転以外の副作用はない
func (l *Ledger) TransferFrom(ctx context.Context, from, to common.Address, tokenID uint64, caller common.Address) (*ticket.TransferRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	owner, minted := l.tokenOwner[tokenID]
	if !minted {
		return nil, ticket.ErrTokenNotMinted
	}
	if owner != from || caller != owner {
		return nil, ticket.ErrNotTokenOwner
	}

	ref := l.tokenSeat[tokenID]
	record := &ticket.TransferRecord{
		TokenID:       tokenID,
		EventID:       ref.eventID,
		SeatID:        ref.seatID,
		From:          from,
		To:            to,
		TransferredAt: l.clock(),
	}

	if l.journal != nil {
		if err := l.journal.AppendTransfer(ctx, record); err != nil {
			return nil, fmt.Errorf("ジャーナル追記に失敗しました: %w", err)
		}
	}

	l.tokenOwner[tokenID] = to
	l.nftBalances[from]--
	l.nftBalances[to]++
	return record, nil
}
