package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
	"github.com/DELIGHT-LABS/monad-ticket/internal/pkg/money"
)

type SeatHandler struct {
	eventService EventServiceInterface
}

func NewSeatHandler(eventService EventServiceInterface) *SeatHandler {
	return &SeatHandler{eventService: eventService}
}

// SeatMapResponse はイベント全座席の状態
// 各配列は座席作成順で揃ったパラレル配列
type SeatMapResponse struct {
	SeatIDs        []string `json:"seat_ids"`
	TokenIDs       []uint64 `json:"token_ids"`
	Owners         []string `json:"owners"`
	Availabilities []bool   `json:"availabilities"`
	PricesMON      []string `json:"prices_mon"`
	TierIDs        []uint64 `json:"tier_ids"`
}

type SeatInfoResponse struct {
	SeatID      string `json:"seat_id" example:"A-01"`
	EventID     uint64 `json:"event_id" example:"1"`
	TierID      uint64 `json:"tier_id" example:"1"`
	TokenID     uint64 `json:"token_id" example:"1"`
	Owner       string `json:"owner" example:"0x0000000000000000000000000000000000000000"`
	IsAvailable bool   `json:"is_available" example:"true"`
	PriceMON    string `json:"price_mon" example:"1"`
}

func toSeatMapResponse(m *ticket.SeatMap) *SeatMapResponse {
	res := &SeatMapResponse{
		SeatIDs:        m.SeatIDs,
		TokenIDs:       m.TokenIDs,
		Owners:         make([]string, len(m.Owners)),
		Availabilities: m.Availabilities,
		PricesMON:      make([]string, len(m.Prices)),
		TierIDs:        m.TierIDs,
	}
	for i := range m.Owners {
		res.Owners[i] = m.Owners[i].Hex()
		res.PricesMON[i] = money.FormatWei(m.Prices[i])
	}
	return res
}

// GetSeatMap はイベント全座席の状態を返す
func (h *SeatHandler) GetSeatMap(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return err
	}
	seatMap, err := h.eventService.GetSeatMap(c.Request().Context(), eventID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toSeatMapResponse(seatMap))
}

// GetSeatInfo は1座席の詳細を返す
func (h *SeatHandler) GetSeatInfo(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return err
	}
	seatID := c.Param("seatId")

	info, err := h.eventService.GetSeatInfo(c.Request().Context(), eventID, seatID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, &SeatInfoResponse{
		SeatID:      info.SeatID,
		EventID:     info.EventID,
		TierID:      info.TierID,
		TokenID:     info.TokenID,
		Owner:       info.Owner.Hex(),
		IsAvailable: info.IsAvailable,
		PriceMON:    money.FormatWei(info.Price),
	})
}

// UserTicketsResponse はアドレスがイベント内で保有する座席の一覧
type UserTicketsResponse struct {
	Owner   string   `json:"owner" example:"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"`
	EventID uint64   `json:"event_id" example:"1"`
	SeatIDs []string `json:"seat_ids"`
}

// GetUserTickets は指定アドレスが保有する座席IDを返す
func (h *SeatHandler) GetUserTickets(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return err
	}
	owner, err := parseAddress(c.QueryParam("owner"))
	if err != nil {
		return err
	}

	seatIDs, err := h.eventService.GetUserTickets(c.Request().Context(), owner, eventID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, &UserTicketsResponse{
		Owner:   owner.Hex(),
		EventID: eventID,
		SeatIDs: seatIDs,
	})
}
