package handler

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
)

func TestSeatHandler_GetSeatMap(t *testing.T) {
	e := NewTestEcho()

	t.Run("座席マップを取得できる", func(t *testing.T) {
		mockService := new(MockEventService)
		seatMap := &ticket.SeatMap{
			SeatIDs:        []string{"A-01", "A-02"},
			TokenIDs:       []uint64{1, 2},
			Owners:         []common.Address{common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"), {}},
			Availabilities: []bool{false, true},
			Prices:         []*big.Int{big.NewInt(1e18), big.NewInt(1e18)},
			TierIDs:        []uint64{1, 1},
		}
		mockService.On("GetSeatMap", mock.Anything, uint64(1)).Return(seatMap, nil)
		handler := NewSeatHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/events/1/seats", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("1")

		err := handler.GetSeatMap(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp SeatMapResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []string{"A-01", "A-02"}, resp.SeatIDs)
		assert.Equal(t, []bool{false, true}, resp.Availabilities)
		// 未販売座席はゼロアドレス
		assert.Equal(t, "0x0000000000000000000000000000000000000000", resp.Owners[1])
		assert.Equal(t, []string{"1", "1"}, resp.PricesMON)
	})

	t.Run("存在しないイベントは404", func(t *testing.T) {
		mockService := new(MockEventService)
		mockService.On("GetSeatMap", mock.Anything, uint64(999)).Return(nil, ticket.ErrEventNotFound)
		handler := NewSeatHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/events/999/seats", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("999")

		err := handler.GetSeatMap(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSeatHandler_GetSeatInfo(t *testing.T) {
	e := NewTestEcho()

	t.Run("座席詳細を取得できる", func(t *testing.T) {
		mockService := new(MockEventService)
		info := &ticket.SeatInfo{
			SeatID:      "B-01",
			EventID:     1,
			TierID:      2,
			TokenID:     3,
			IsAvailable: true,
			Price:       big.NewInt(5e17),
		}
		mockService.On("GetSeatInfo", mock.Anything, uint64(1), "B-01").Return(info, nil)
		handler := NewSeatHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/events/1/seats/B-01", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id", "seatId")
		c.SetParamValues("1", "B-01")

		err := handler.GetSeatInfo(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp SeatInfoResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, uint64(3), resp.TokenID)
		assert.Equal(t, "0.5", resp.PriceMON)
	})

	t.Run("存在しない座席は404", func(t *testing.T) {
		mockService := new(MockEventService)
		mockService.On("GetSeatInfo", mock.Anything, uint64(1), "Z-99").Return(nil, ticket.ErrSeatNotFound)
		handler := NewSeatHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/events/1/seats/Z-99", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id", "seatId")
		c.SetParamValues("1", "Z-99")

		err := handler.GetSeatInfo(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "SEAT_NOT_FOUND")
	})
}

func TestSeatHandler_GetUserTickets(t *testing.T) {
	e := NewTestEcho()
	ownerHex := "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"

	t.Run("保有座席を取得できる", func(t *testing.T) {
		mockService := new(MockEventService)
		mockService.On("GetUserTickets", mock.Anything, common.HexToAddress(ownerHex), uint64(1)).
			Return([]string{"A-01"}, nil)
		handler := NewSeatHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/events/1/tickets?owner="+ownerHex, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("1")

		err := handler.GetUserTickets(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp UserTicketsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []string{"A-01"}, resp.SeatIDs)
	})

	t.Run("ownerクエリーが不正な場合は400", func(t *testing.T) {
		mockService := new(MockEventService)
		handler := NewSeatHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/events/1/tickets?owner=xyz", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("1")

		err := handler.GetUserTickets(c)
		require.Error(t, err)
	})
}
