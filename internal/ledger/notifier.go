package ledger

import (
	"go.uber.org/zap"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
	"github.com/DELIGHT-LABS/monad-ticket/internal/pkg/logger"
)

// LogNotifier は確定済み変更を構造化ログとして出力するNotifier
// コントラクトのイベント発行に相当する
type LogNotifier struct{}

// NewLogNotifier はLogNotifierを作成する
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) EventCreated(event *ticket.Event) {
	logger.Info("EventCreated",
		zap.Uint64("event_id", event.EventID),
		zap.String("issuer", event.Issuer.Hex()),
		zap.String("name", event.Name),
		zap.Time("event_date", event.EventDate),
		zap.Int("total_tickets", event.TotalTickets),
	)
}

func (n *LogNotifier) TicketPurchased(receipt *ticket.PurchaseReceipt) {
	logger.Info("TicketPurchased",
		zap.Uint64("event_id", receipt.EventID),
		zap.Uint64("token_id", receipt.TokenID),
		zap.String("buyer", receipt.Buyer.Hex()),
		zap.String("seat_id", receipt.SeatID),
		zap.String("price_wei", receipt.Price.String()),
	)
}

var _ ticket.Notifier = (*LogNotifier)(nil)
