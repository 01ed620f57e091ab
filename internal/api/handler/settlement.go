package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
	"github.com/DELIGHT-LABS/monad-ticket/internal/pkg/money"
)

type SettlementHandler struct {
	settlementService SettlementServiceInterface
}

func NewSettlementHandler(settlementService SettlementServiceInterface) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

type SettlementRequest struct {
	Caller string `json:"caller" validate:"required" example:"0x70997970C51812dc3A010C7d01b50e0d17dc79C8"`
}

type WithdrawalResponse struct {
	WithdrawalID string `json:"withdrawal_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	EventID      uint64 `json:"event_id" example:"1"`
	Recipient    string `json:"recipient" example:"0x70997970C51812dc3A010C7d01b50e0d17dc79C8"`
	AmountMON    string `json:"amount_mon" example:"1.47"`
	WithdrawnAt  string `json:"withdrawn_at" example:"2026-11-01T10:00:00+09:00"`
}

func toWithdrawalResponse(r *ticket.WithdrawalRecord) *WithdrawalResponse {
	return &WithdrawalResponse{
		WithdrawalID: r.WithdrawalID,
		EventID:      r.EventID,
		Recipient:    r.Recipient.Hex(),
		AmountMON:    money.FormatWei(r.Amount),
		WithdrawnAt:  r.WithdrawnAt.Format(time.RFC3339),
	}
}

// RevenueResponse はイベント売上の現況
type RevenueResponse struct {
	EventID         uint64 `json:"event_id" example:"1"`
	RevenueMON      string `json:"revenue_mon" example:"1.47"`
	WithdrawableMON string `json:"withdrawable_mon" example:"0"`
}

// GetRevenue はイベントの累積純売上と引き出し可能額を返す
func (h *SettlementHandler) GetRevenue(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	revenue, err := h.settlementService.EventRevenue(ctx, eventID)
	if err != nil {
		return respondDomainError(c, err)
	}
	withdrawable, err := h.settlementService.GetWithdrawableRevenue(ctx, eventID)
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(http.StatusOK, &RevenueResponse{
		EventID:         eventID,
		RevenueMON:      money.FormatWei(revenue),
		WithdrawableMON: money.FormatWei(withdrawable),
	})
}

// WithdrawRevenue はイベント純売上を主催者へ引き出す
// 開催日時経過後に1回だけ実行できる
func (h *SettlementHandler) WithdrawRevenue(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return err
	}

	var req SettlementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "リクエストの形式が不正です"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	caller, err := parseAddress(req.Caller)
	if err != nil {
		return err
	}

	record, err := h.settlementService.WithdrawEventRevenue(c.Request().Context(), eventID, caller)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toWithdrawalResponse(record))
}

// PlatformFeeResponse はプラットフォーム手数料残高
type PlatformFeeResponse struct {
	BalanceMON string `json:"balance_mon" example:"0.03"`
}

// GetPlatformFee は未引き出しの手数料残高を返す
func (h *SettlementHandler) GetPlatformFee(c echo.Context) error {
	balance := h.settlementService.PlatformFeeBalance(c.Request().Context())
	return c.JSON(http.StatusOK, &PlatformFeeResponse{BalanceMON: money.FormatWei(balance)})
}

// WithdrawPlatformFee は累積手数料をコントラクトオーナーへ引き出す
func (h *SettlementHandler) WithdrawPlatformFee(c echo.Context) error {
	var req SettlementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "リクエストの形式が不正です"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	caller, err := parseAddress(req.Caller)
	if err != nil {
		return err
	}

	record, err := h.settlementService.WithdrawPlatformFee(c.Request().Context(), caller)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toWithdrawalResponse(record))
}
