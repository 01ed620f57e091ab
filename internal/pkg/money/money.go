package money

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// 1 MON = 10^18 wei
var weiPerMON = decimal.New(1, 18)

var (
	ErrInvalidAmount  = errors.New("金額の形式が不正です")
	ErrNegativeAmount = errors.New("金額は0以上である必要があります")
	ErrSubWeiAmount   = errors.New("wei未満の端数は指定できません")
)

// ParseMON は "1.5" のようなMON建て10進文字列をwei建てbig.Intに変換する
func ParseMON(s string) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, ErrInvalidAmount
	}
	if d.IsNegative() {
		return nil, ErrNegativeAmount
	}
	wei := d.Mul(weiPerMON)
	// 10^18倍してもなお小数が残る場合はwei未満の端数
	if !wei.Equal(wei.Truncate(0)) {
		return nil, ErrSubWeiAmount
	}
	return wei.BigInt(), nil
}

// FormatWei はwei建てbig.IntをMON建て10進文字列に変換する
func FormatWei(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, 0).Div(weiPerMON).String()
}
