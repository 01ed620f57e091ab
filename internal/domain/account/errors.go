package account

import "errors"

// Account ドメインのエラー定義
var (
	ErrInsufficientFunds = errors.New("残高が不足しています")
	ErrInvalidAmount     = errors.New("金額は正の値である必要があります")
)
