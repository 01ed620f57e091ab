package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/DELIGHT-LABS/monad-ticket/internal/application"
	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/account"
	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
	"github.com/DELIGHT-LABS/monad-ticket/internal/pkg/logger"
	"github.com/DELIGHT-LABS/monad-ticket/internal/pkg/money"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// domainErrorMapping は台帳エラーとHTTPステータス・安定コードの対応
var domainErrorMapping = []struct {
	err    error
	status int
	code   string
}{
	{ticket.ErrEventNotFound, http.StatusNotFound, "EVENT_NOT_FOUND"},
	{ticket.ErrSeatNotFound, http.StatusNotFound, "SEAT_NOT_FOUND"},
	{ticket.ErrTokenNotMinted, http.StatusNotFound, "TOKEN_NOT_MINTED"},
	{ticket.ErrSeatAlreadySold, http.StatusConflict, "SEAT_ALREADY_SOLD"},
	{ticket.ErrEventNotActive, http.StatusConflict, "EVENT_NOT_ACTIVE"},
	{ticket.ErrRevenueAlreadyWithdrawn, http.StatusConflict, "REVENUE_ALREADY_WITHDRAWN"},
	{ticket.ErrEventNotEnded, http.StatusConflict, "EVENT_NOT_ENDED"},
	{application.ErrSeatBusy, http.StatusConflict, "SEAT_BUSY"},
	{ticket.ErrNotEventIssuer, http.StatusForbidden, "NOT_EVENT_ISSUER"},
	{ticket.ErrNotContractOwner, http.StatusForbidden, "NOT_CONTRACT_OWNER"},
	{ticket.ErrNotTokenOwner, http.StatusForbidden, "NOT_TOKEN_OWNER"},
	{ticket.ErrIncorrectPayment, http.StatusBadRequest, "INCORRECT_PAYMENT"},
	{ticket.ErrInvalidEventDate, http.StatusBadRequest, "INVALID_EVENT_DATE"},
	{ticket.ErrTierArrayLengthMismatch, http.StatusBadRequest, "TIER_ARRAY_LENGTH_MISMATCH"},
	{ticket.ErrSeatCountMismatch, http.StatusBadRequest, "SEAT_COUNT_MISMATCH"},
	{ticket.ErrDuplicateSeatID, http.StatusBadRequest, "DUPLICATE_SEAT_ID"},
	{money.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
	{money.ErrNegativeAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
	{money.ErrSubWeiAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
	{account.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
	{account.ErrInsufficientFunds, http.StatusPaymentRequired, "INSUFFICIENT_FUNDS"},
}

// DomainErrorResponse は台帳エラーをHTTPステータスとレスポンスへ変換する
func DomainErrorResponse(err error) (int, ErrorResponse) {
	for _, m := range domainErrorMapping {
		if errors.Is(err, m.err) {
			return m.status, ErrorResponse{Error: m.err.Error(), Code: m.code}
		}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: "内部サーバーエラー", Code: "INTERNAL"}
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		code    = http.StatusInternalServerError
		message = "内部サーバーエラー"
	)

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	// エラーログを出力（5xx エラーの場合）
	if code >= 500 {
		logger.Error("サーバーエラー",
			zap.Int("status", code),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	if err := c.JSON(code, ErrorResponse{Error: message}); err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
