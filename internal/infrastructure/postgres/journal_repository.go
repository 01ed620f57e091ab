package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
)

// JournalRepository は台帳の確定済み変更をPostgreSQLへ追記する
// 追記専用のwrite-aheadジャーナルであり、読み取りは監査目的に限る
type JournalRepository struct {
	db *sqlx.DB
}

// NewJournalRepository は新しいJournalRepositoryを作成する
func NewJournalRepository(db *sqlx.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// AppendEventCreated はイベント・ティア・座席割り当てを1トランザクションで記録する
func (r *JournalRepository) AppendEventCreated(ctx context.Context, event *ticket.Event, tiers []*ticket.Tier, seats []ticket.SeatAssignment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO ledger_events (event_id, issuer, name, event_date, tier_count, total_tickets, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := tx.ExecContext(ctx, query,
		event.EventID, event.Issuer.Hex(), event.Name, event.EventDate,
		event.TierCount, event.TotalTickets, event.CreatedAt,
	); err != nil {
		return fmt.Errorf("イベント記録に失敗: %w", err)
	}

	for _, tier := range tiers {
		query := `INSERT INTO ledger_tiers (tier_id, event_id, name, price_wei, total_count, start_token_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		if _, err := tx.ExecContext(ctx, query,
			tier.TierID, tier.EventID, tier.Name, tier.Price.String(),
			tier.TotalCount, tier.StartTokenID, tier.CreatedAt,
		); err != nil {
			return fmt.Errorf("ティア記録に失敗: %w", err)
		}
	}

	if err := r.insertSeats(ctx, tx, seats); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションコミットに失敗: %w", err)
	}
	return nil
}

// insertSeats は座席割り当てをバッチ単位のマルチバリューINSERTで記録する
func (r *JournalRepository) insertSeats(ctx context.Context, tx *sqlx.Tx, seats []ticket.SeatAssignment) error {
	const batchSize = 1000
	for i := 0; i < len(seats); i += batchSize {
		end := i + batchSize
		if end > len(seats) {
			end = len(seats)
		}
		batch := seats[i:end]

		query := `INSERT INTO ledger_seats (event_id, tier_id, seat_id, token_id) VALUES `
		args := make([]interface{}, 0, len(batch)*4)
		placeholders := make([]string, 0, len(batch))

		for j, s := range batch {
			base := j * 4
			placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d)",
				base+1, base+2, base+3, base+4))
			args = append(args, s.EventID, s.TierID, s.SeatID, s.TokenID)
		}

		query += strings.Join(placeholders, ", ")
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("座席割り当て記録に失敗: %w", err)
		}
	}
	return nil
}

// AppendPurchase はチケット購入を記録する
func (r *JournalRepository) AppendPurchase(ctx context.Context, receipt *ticket.PurchaseReceipt) error {
	query := `INSERT INTO ledger_purchases (receipt_id, event_id, tier_id, token_id, buyer, seat_id, price_wei, fee_wei, purchased_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := r.db.ExecContext(ctx, query,
		receipt.ReceiptID, receipt.EventID, receipt.TierID, receipt.TokenID,
		receipt.Buyer.Hex(), receipt.SeatID, receipt.Price.String(), receipt.Fee.String(),
		receipt.PurchasedAt,
	); err != nil {
		return fmt.Errorf("購入記録に失敗: %w", err)
	}
	return nil
}

// AppendEventDeactivated はイベントの販売停止を記録する
func (r *JournalRepository) AppendEventDeactivated(ctx context.Context, eventID uint64) error {
	query := `UPDATE ledger_events SET deactivated_at = NOW() WHERE event_id = $1`
	if _, err := r.db.ExecContext(ctx, query, eventID); err != nil {
		return fmt.Errorf("販売停止記録に失敗: %w", err)
	}
	return nil
}

// AppendWithdrawal は売上またはプラットフォーム手数料の引き出しを記録する
func (r *JournalRepository) AppendWithdrawal(ctx context.Context, record *ticket.WithdrawalRecord) error {
	query := `INSERT INTO ledger_withdrawals (withdrawal_id, event_id, recipient, amount_wei, withdrawn_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query,
		record.WithdrawalID, record.EventID, record.Recipient.Hex(),
		record.Amount.String(), record.WithdrawnAt,
	); err != nil {
		return fmt.Errorf("引き出し記録に失敗: %w", err)
	}
	return nil
}

// AppendTransfer はチケットトークンの二次移転を記録する
func (r *JournalRepository) AppendTransfer(ctx context.Context, record *ticket.TransferRecord) error {
	query := `INSERT INTO ledger_transfers (token_id, event_id, seat_id, from_address, to_address, transferred_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query,
		record.TokenID, record.EventID, record.SeatID,
		record.From.Hex(), record.To.Hex(), record.TransferredAt,
	); err != nil {
		return fmt.Errorf("移転記録に失敗: %w", err)
	}
	return nil
}

var _ ticket.Journal = (*JournalRepository)(nil)
