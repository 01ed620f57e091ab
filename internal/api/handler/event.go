package handler

import (
	"math/big"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
	"github.com/DELIGHT-LABS/monad-ticket/internal/ledger"
	"github.com/DELIGHT-LABS/monad-ticket/internal/pkg/money"
)

type EventHandler struct {
	eventService EventServiceInterface
}

func NewEventHandler(eventService EventServiceInterface) *EventHandler {
	return &EventHandler{eventService: eventService}
}

type TierRequest struct {
	Name        string   `json:"name" validate:"required" example:"VIP"`
	PriceMON    string   `json:"price_mon" validate:"required" example:"1.0"`
	TicketCount int      `json:"ticket_count" validate:"required,gt=0" example:"2"`
	SeatIDs     []string `json:"seat_ids" validate:"required,min=1" example:"A-01,A-02"`
}

type CreateEventRequest struct {
	Issuer    string        `json:"issuer" validate:"required" example:"0x70997970C51812dc3A010C7d01b50e0d17dc79C8"`
	Name      string        `json:"name" validate:"required" example:"BTS Concert"`
	EventDate string        `json:"event_date" validate:"required" example:"2026-10-01T19:00:00+09:00"`
	Tiers     []TierRequest `json:"tiers" validate:"required,min=1,dive"`
}

type EventResponse struct {
	EventID      uint64 `json:"event_id" example:"1"`
	Issuer       string `json:"issuer" example:"0x70997970C51812dc3A010C7d01b50e0d17dc79C8"`
	Name         string `json:"name" example:"BTS Concert"`
	EventDate    string `json:"event_date" example:"2026-10-01T19:00:00+09:00"`
	TierCount    int    `json:"tier_count" example:"2"`
	TotalTickets int    `json:"total_tickets" example:"5"`
	SoldTickets  int    `json:"sold_tickets" example:"0"`
	IsActive     bool   `json:"is_active" example:"true"`
	CreatedAt    string `json:"created_at" example:"2026-08-01T10:00:00+09:00"`
}

type TierResponse struct {
	TierID       uint64 `json:"tier_id" example:"1"`
	EventID      uint64 `json:"event_id" example:"1"`
	Name         string `json:"name" example:"VIP"`
	PriceMON     string `json:"price_mon" example:"1"`
	TotalCount   int    `json:"total_count" example:"2"`
	SoldCount    int    `json:"sold_count" example:"0"`
	StartTokenID uint64 `json:"start_token_id" example:"1"`
}

func toEventResponse(e *ticket.Event) *EventResponse {
	return &EventResponse{
		EventID:      e.EventID,
		Issuer:       e.Issuer.Hex(),
		Name:         e.Name,
		EventDate:    e.EventDate.Format(time.RFC3339),
		TierCount:    e.TierCount,
		TotalTickets: e.TotalTickets,
		SoldTickets:  e.SoldTickets,
		IsActive:     e.IsActive,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
}

func toTierResponse(t *ticket.Tier) *TierResponse {
	return &TierResponse{
		TierID:       t.TierID,
		EventID:      t.EventID,
		Name:         t.Name,
		PriceMON:     money.FormatWei(t.Price),
		TotalCount:   t.TotalCount,
		SoldCount:    t.SoldCount,
		StartTokenID: t.StartTokenID,
	}
}

// Create はティアと座席一覧つきでイベントを登録する
func (h *EventHandler) Create(c echo.Context) error {
	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "リクエストの形式が不正です"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	issuer, err := parseAddress(req.Issuer)
	if err != nil {
		return err
	}
	eventDate, err := time.Parse(time.RFC3339, req.EventDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "開催日時の形式が不正です"})
	}

	input := ledger.CreateEventInput{
		Issuer:      issuer,
		Name:        req.Name,
		EventDate:   eventDate,
		TierNames:   make([]string, len(req.Tiers)),
		TierPrices:  make([]*big.Int, len(req.Tiers)),
		TierCounts:  make([]int, len(req.Tiers)),
		TierSeatIDs: make([][]string, len(req.Tiers)),
	}
	for i, tier := range req.Tiers {
		price, err := money.ParseMON(tier.PriceMON)
		if err != nil {
			return respondDomainError(c, err)
		}
		input.TierNames[i] = tier.Name
		input.TierPrices[i] = price
		input.TierCounts[i] = tier.TicketCount
		input.TierSeatIDs[i] = tier.SeatIDs
	}

	e, err := h.eventService.CreateEvent(c.Request().Context(), input)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toEventResponse(e))
}

// List はイベント一覧を返す
// issuer クエリーで主催者の絞り込みができる
func (h *EventHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		events []*ticket.Event
		err    error
	)
	if issuerParam := c.QueryParam("issuer"); issuerParam != "" {
		issuer, addrErr := parseAddress(issuerParam)
		if addrErr != nil {
			return addrErr
		}
		events, err = h.eventService.GetEventsByIssuer(ctx, issuer)
	} else {
		events, err = h.eventService.GetAllEvents(ctx)
	}
	if err != nil {
		return respondDomainError(c, err)
	}

	responses := make([]*EventResponse, len(events))
	for i, e := range events {
		responses[i] = toEventResponse(e)
	}
	return c.JSON(http.StatusOK, responses)
}

// GetByID は指定IDのイベントを返す
func (h *EventHandler) GetByID(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return err
	}
	e, err := h.eventService.GetEvent(c.Request().Context(), eventID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toEventResponse(e))
}

// GetTiers はイベントのティア一覧を返す
func (h *EventHandler) GetTiers(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return err
	}
	tiers, err := h.eventService.GetEventTiers(c.Request().Context(), eventID)
	if err != nil {
		return respondDomainError(c, err)
	}

	responses := make([]*TierResponse, len(tiers))
	for i, t := range tiers {
		responses[i] = toTierResponse(t)
	}
	return c.JSON(http.StatusOK, responses)
}

type DeactivateEventRequest struct {
	Caller string `json:"caller" validate:"required" example:"0x70997970C51812dc3A010C7d01b50e0d17dc79C8"`
}

// Deactivate はイベントの販売を停止する
// 主催者本人のみが実行できる
func (h *EventHandler) Deactivate(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return err
	}

	var req DeactivateEventRequest
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

	if err := h.eventService.DeactivateEvent(c.Request().Context(), eventID, caller); err != nil {
		return respondDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
