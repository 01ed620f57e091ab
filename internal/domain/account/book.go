package account

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Book はアドレスごとの残高台帳を表す
// チェーン上のネイティブ残高に相当し、購入時の支払い元と精算時の振込先になる
type Book struct {
	mu       sync.RWMutex
	balances map[common.Address]*big.Int
}

// NewBook は空の残高台帳を作成する
func NewBook() *Book {
	return &Book{balances: make(map[common.Address]*big.Int)}
}

// Deposit は残高を追加する（テスト・シード用のfaucet）
func (b *Book) Deposit(addr common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.credit(addr, amount)
	return nil
}

// Debit は残高から引き落とす
// 残高不足の場合は状態を変更せずに ErrInsufficientFunds を返す
func (b *Book) Debit(addr common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	balance, ok := b.balances[addr]
	if !ok || balance.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	balance.Sub(balance, amount)
	return nil
}

// Credit は残高に加算する
func (b *Book) Credit(addr common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.credit(addr, amount)
	return nil
}

// BalanceOf は残高のコピーを返す
func (b *Book) BalanceOf(addr common.Address) *big.Int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if balance, ok := b.balances[addr]; ok {
		return new(big.Int).Set(balance)
	}
	return new(big.Int)
}

// TotalSupply は全アドレスの残高合計を返す
func (b *Book) TotalSupply() *big.Int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	total := new(big.Int)
	for _, balance := range b.balances {
		total.Add(total, balance)
	}
	return total
}

// 呼び出し元がロックを保持していること
func (b *Book) credit(addr common.Address, amount *big.Int) {
	if balance, ok := b.balances[addr]; ok {
		balance.Add(balance, amount)
		return
	}
	b.balances[addr] = new(big.Int).Set(amount)
}
