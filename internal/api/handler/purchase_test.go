package handler

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/account"
	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
)

// MockPurchaseService はPurchaseServiceInterfaceのモック
type MockPurchaseService struct {
	mock.Mock
}

func (m *MockPurchaseService) BuyTicket(ctx context.Context, eventID uint64, seatID string, buyer common.Address, payment *big.Int) (*ticket.PurchaseReceipt, error) {
	args := m.Called(ctx, eventID, seatID, buyer, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.PurchaseReceipt), args.Error(1)
}

var testBuyerHex = "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"

func newPurchaseContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/1/purchase", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	return c, rec
}

func TestPurchaseHandler_Buy(t *testing.T) {
	e := NewTestEcho()

	t.Run("購入が成立する", func(t *testing.T) {
		mockService := new(MockPurchaseService)
		receipt := &ticket.PurchaseReceipt{
			ReceiptID:   "550e8400-e29b-41d4-a716-446655440000",
			EventID:     1,
			TierID:      1,
			TokenID:     1,
			Buyer:       common.HexToAddress(testBuyerHex),
			SeatID:      "A-01",
			Price:       big.NewInt(1e18),
			Fee:         big.NewInt(2e16),
			PurchasedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		}
		mockService.On("BuyTicket", mock.Anything, uint64(1), "A-01", common.HexToAddress(testBuyerHex), big.NewInt(1e18)).
			Return(receipt, nil)
		handler := NewPurchaseHandler(mockService)

		c, rec := newPurchaseContext(e, `{"buyer": "`+testBuyerHex+`", "seat_id": "A-01", "payment_mon": "1.0"}`)

		err := handler.Buy(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp PurchaseResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, uint64(1), resp.TokenID)
		assert.Equal(t, "1", resp.PriceMON)
		assert.Equal(t, "0.02", resp.FeeMON)

		mockService.AssertExpectations(t)
	})

	t.Run("販売済み座席は409", func(t *testing.T) {
		mockService := new(MockPurchaseService)
		mockService.On("BuyTicket", mock.Anything, uint64(1), "A-01", mock.Anything, mock.Anything).
			Return(nil, ticket.ErrSeatAlreadySold)
		handler := NewPurchaseHandler(mockService)

		c, rec := newPurchaseContext(e, `{"buyer": "`+testBuyerHex+`", "seat_id": "A-01", "payment_mon": "1.0"}`)

		err := handler.Buy(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "SEAT_ALREADY_SOLD")
	})

	t.Run("支払額の不一致は400", func(t *testing.T) {
		mockService := new(MockPurchaseService)
		mockService.On("BuyTicket", mock.Anything, uint64(1), "A-01", mock.Anything, mock.Anything).
			Return(nil, ticket.ErrIncorrectPayment)
		handler := NewPurchaseHandler(mockService)

		c, rec := newPurchaseContext(e, `{"buyer": "`+testBuyerHex+`", "seat_id": "A-01", "payment_mon": "0.5"}`)

		err := handler.Buy(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "INCORRECT_PAYMENT")
	})

	t.Run("残高不足は402", func(t *testing.T) {
		mockService := new(MockPurchaseService)
		mockService.On("BuyTicket", mock.Anything, uint64(1), "A-01", mock.Anything, mock.Anything).
			Return(nil, account.ErrInsufficientFunds)
		handler := NewPurchaseHandler(mockService)

		c, rec := newPurchaseContext(e, `{"buyer": "`+testBuyerHex+`", "seat_id": "A-01", "payment_mon": "1.0"}`)

		err := handler.Buy(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		assert.Contains(t, rec.Body.String(), "INSUFFICIENT_FUNDS")
	})

	t.Run("不正なアドレスは400", func(t *testing.T) {
		mockService := new(MockPurchaseService)
		handler := NewPurchaseHandler(mockService)

		c, _ := newPurchaseContext(e, `{"buyer": "not-an-address", "seat_id": "A-01", "payment_mon": "1.0"}`)

		err := handler.Buy(c)
		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("必須項目の欠落はバリデーションエラー", func(t *testing.T) {
		mockService := new(MockPurchaseService)
		handler := NewPurchaseHandler(mockService)

		c, _ := newPurchaseContext(e, `{"buyer": "`+testBuyerHex+`"}`)

		err := handler.Buy(c)
		require.Error(t, err)
	})
}
