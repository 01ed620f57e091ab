package ticket

import "errors"

// 台帳操作のエラー定義
// すべて呼び出し全体を巻き戻す名前付きエラーとして呼び出し側に返る
var (
	// 入力検証エラー
	ErrInvalidEventDate        = errors.New("開催日時は未来である必要があります")
	ErrTierArrayLengthMismatch = errors.New("ティア配列の長さが一致しません")
	ErrSeatCountMismatch       = errors.New("座席ID数がティア定員と一致しません")
	ErrDuplicateSeatID         = errors.New("座席IDがイベント内で重複しています")

	// 未検出エラー
	ErrEventNotFound  = errors.New("イベントが見つかりません")
	ErrSeatNotFound   = errors.New("座席が存在しません")
	ErrTokenNotMinted = errors.New("トークンは発行されていません")

	// 状態競合エラー
	ErrEventNotActive          = errors.New("イベントは販売中ではありません")
	ErrSeatAlreadySold         = errors.New("座席は既に販売済みです")
	ErrRevenueAlreadyWithdrawn = errors.New("売上は既に引き出されています")
	ErrEventNotEnded           = errors.New("イベントはまだ終了していません")

	// 認可エラー
	ErrNotEventIssuer   = errors.New("イベント発行者ではありません")
	ErrNotContractOwner = errors.New("台帳オーナーではありません")
	ErrNotTokenOwner    = errors.New("トークン所有者ではありません")

	// 支払いエラー（過不足どちらも拒否）
	ErrIncorrectPayment = errors.New("支払額がチケット価格と一致しません")
)
