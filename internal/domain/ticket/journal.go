package ticket

import "context"

// Journal は確定済み台帳変更の永続化インターフェース
// 台帳はインメモリ状態を書き換える前にジャーナルへ追記し（write-ahead）、
// 追記に失敗した変更は適用されない
type Journal interface {
	// AppendEventCreated はイベント・ティア・座席割り当ての一括作成を記録する
	AppendEventCreated(ctx context.Context, event *Event, tiers []*Tier, seats []SeatAssignment) error

	// AppendPurchase はチケット購入を記録する
	AppendPurchase(ctx context.Context, receipt *PurchaseReceipt) error

	// AppendEventDeactivated はイベントの販売停止を記録する
	AppendEventDeactivated(ctx context.Context, eventID uint64) error

	// AppendWithdrawal は売上またはプラットフォーム手数料の引き出しを記録する
	AppendWithdrawal(ctx context.Context, record *WithdrawalRecord) error

	// AppendTransfer はチケットトークンの二次移転を記録する
	AppendTransfer(ctx context.Context, record *TransferRecord) error
}

// Notifier は確定済み変更の通知フック
// コントラクトのEventCreated / TicketPurchasedイベントに相当する
type Notifier interface {
	EventCreated(event *Event)
	TicketPurchased(receipt *PurchaseReceipt)
}
