package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DELIGHT-LABS/monad-ticket/internal/pkg/money"
)

type TokenHandler struct {
	tokenService TokenServiceInterface
}

func NewTokenHandler(tokenService TokenServiceInterface) *TokenHandler {
	return &TokenHandler{tokenService: tokenService}
}

// TokenMetaResponse はチケットNFTコレクションのメタ情報
type TokenMetaResponse struct {
	Name   string `json:"name" example:"MonadTicket"`
	Symbol string `json:"symbol" example:"MTKT"`
}

// GetMeta はコレクションの名称とシンボルを返す
func (h *TokenHandler) GetMeta(c echo.Context) error {
	ctx := c.Request().Context()
	return c.JSON(http.StatusOK, &TokenMetaResponse{
		Name:   h.tokenService.Name(ctx),
		Symbol: h.tokenService.Symbol(ctx),
	})
}

// TokenOwnerResponse はトークンの現在の所有者
type TokenOwnerResponse struct {
	TokenID uint64 `json:"token_id" example:"1"`
	Owner   string `json:"owner" example:"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"`
}

// GetOwner は発行済みトークンの所有者を返す
func (h *TokenHandler) GetOwner(c echo.Context) error {
	tokenID, err := parseTokenID(c)
	if err != nil {
		return err
	}
	owner, err := h.tokenService.OwnerOf(c.Request().Context(), tokenID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, &TokenOwnerResponse{TokenID: tokenID, Owner: owner.Hex()})
}

type TransferRequest struct {
	From   string `json:"from" validate:"required" example:"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"`
	To     string `json:"to" validate:"required" example:"0x90F79bf6EB2c4f870365E785982E1f101E93b906"`
	Caller string `json:"caller" validate:"required" example:"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"`
}

type TransferResponse struct {
	TokenID       uint64 `json:"token_id" example:"1"`
	EventID       uint64 `json:"event_id" example:"1"`
	SeatID        string `json:"seat_id" example:"A-01"`
	From          string `json:"from" example:"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"`
	To            string `json:"to" example:"0x90F79bf6EB2c4f870365E785982E1f101E93b906"`
	TransferredAt string `json:"transferred_at" example:"2026-08-01T10:00:00+09:00"`
}

// Transfer はチケットトークンを移転する
// 呼び出し元が所有者本人でなければならない
func (h *TokenHandler) Transfer(c echo.Context) error {
	tokenID, err := parseTokenID(c)
	if err != nil {
		return err
	}

	var req TransferRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "リクエストの形式が不正です"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	from, err := parseAddress(req.From)
	if err != nil {
		return err
	}
	to, err := parseAddress(req.To)
	if err != nil {
		return err
	}
	caller, err := parseAddress(req.Caller)
	if err != nil {
		return err
	}

	record, err := h.tokenService.Transfer(c.Request().Context(), from, to, tokenID, caller)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, &TransferResponse{
		TokenID:       record.TokenID,
		EventID:       record.EventID,
		SeatID:        record.SeatID,
		From:          record.From.Hex(),
		To:            record.To.Hex(),
		TransferredAt: record.TransferredAt.Format(time.RFC3339),
	})
}

// AccountResponse はアドレスの資金残高とチケット保有数
type AccountResponse struct {
	Address     string `json:"address" example:"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"`
	BalanceMON  string `json:"balance_mon" example:"10"`
	TicketCount int    `json:"ticket_count" example:"2"`
}

// GetAccount はアドレスの口座情報を返す
func (h *TokenHandler) GetAccount(c echo.Context) error {
	addr, err := parseAddress(c.Param("address"))
	if err != nil {
		return err
	}
	summary := h.tokenService.GetAccount(c.Request().Context(), addr)
	return c.JSON(http.StatusOK, &AccountResponse{
		Address:     summary.Address.Hex(),
		BalanceMON:  money.FormatWei(summary.Balance),
		TicketCount: summary.TicketCount,
	})
}

type DepositRequest struct {
	AmountMON string `json:"amount_mon" validate:"required" example:"10"`
}

type DepositResponse struct {
	Address    string `json:"address" example:"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"`
	BalanceMON string `json:"balance_mon" example:"10"`
}

// Deposit はアドレスへ購入原資を入金する
func (h *TokenHandler) Deposit(c echo.Context) error {
	addr, err := parseAddress(c.Param("address"))
	if err != nil {
		return err
	}

	var req DepositRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "リクエストの形式が不正です"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	amount, err := money.ParseMON(req.AmountMON)
	if err != nil {
		return respondDomainError(c, err)
	}

	balance, err := h.tokenService.Deposit(c.Request().Context(), addr, amount)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, &DepositResponse{
		Address:    addr.Hex(),
		BalanceMON: money.FormatWei(balance),
	})
}
