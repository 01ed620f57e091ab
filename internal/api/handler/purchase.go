package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
	"github.com/DELIGHT-LABS/monad-ticket/internal/pkg/money"
)

type PurchaseHandler struct {
	purchaseService PurchaseServiceInterface
}

func NewPurchaseHandler(purchaseService PurchaseServiceInterface) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

type PurchaseRequest struct {
	Buyer      string `json:"buyer" validate:"required" example:"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"`
	SeatID     string `json:"seat_id" validate:"required" example:"A-01"`
	PaymentMON string `json:"payment_mon" validate:"required" example:"1.0"`
}

type PurchaseResponse struct {
	ReceiptID   string `json:"receipt_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	EventID     uint64 `json:"event_id" example:"1"`
	TierID      uint64 `json:"tier_id" example:"1"`
	TokenID     uint64 `json:"token_id" example:"1"`
	Buyer       string `json:"buyer" example:"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"`
	SeatID      string `json:"seat_id" example:"A-01"`
	PriceMON    string `json:"price_mon" example:"1"`
	FeeMON      string `json:"fee_mon" example:"0.02"`
	PurchasedAt string `json:"purchased_at" example:"2026-08-01T10:00:00+09:00"`
}

func toPurchaseResponse(r *ticket.PurchaseReceipt) *PurchaseResponse {
	return &PurchaseResponse{
		ReceiptID:   r.ReceiptID,
		EventID:     r.EventID,
		TierID:      r.TierID,
		TokenID:     r.TokenID,
		Buyer:       r.Buyer.Hex(),
		SeatID:      r.SeatID,
		PriceMON:    money.FormatWei(r.Price),
		FeeMON:      money.FormatWei(r.Fee),
		PurchasedAt: r.PurchasedAt.Format(time.RFC3339),
	}
}

// Buy は座席指定でチケットを購入する
// 支払額は座席価格と完全一致していなければならない
func (h *PurchaseHandler) Buy(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return err
	}

	var req PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "リクエストの形式が不正です"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	buyer, err := parseAddress(req.Buyer)
	if err != nil {
		return err
	}
	payment, err := money.ParseMON(req.PaymentMON)
	if err != nil {
		return respondDomainError(c, err)
	}

	receipt, err := h.purchaseService.BuyTicket(c.Request().Context(), eventID, req.SeatID, buyer, payment)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toPurchaseResponse(receipt))
}
