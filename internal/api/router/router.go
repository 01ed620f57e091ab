package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DELIGHT-LABS/monad-ticket/internal/api/handler"
	"github.com/DELIGHT-LABS/monad-ticket/internal/api/middleware"
)

// Handlers はルーティングに必要なハンドラー一式
type Handlers struct {
	Health     *handler.HealthHandler
	Event      *handler.EventHandler
	Seat       *handler.SeatHandler
	Purchase   *handler.PurchaseHandler
	Settlement *handler.SettlementHandler
	Token      *handler.TokenHandler
}

// RegisterRoutes はAPIルートを登録する
func RegisterRoutes(e *echo.Echo, h *Handlers) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), middleware.MetricsBasicAuth())

	v1 := e.Group("/api/v1")
	v1.GET("/health", h.Health.Check)

	v1.POST("/events", h.Event.Create)
	v1.GET("/events", h.Event.List)
	v1.GET("/events/:id", h.Event.GetByID)
	v1.GET("/events/:id/tiers", h.Event.GetTiers)
	v1.POST("/events/:id/deactivate", h.Event.Deactivate)

	v1.GET("/events/:id/seats", h.Seat.GetSeatMap)
	v1.GET("/events/:id/seats/:seatId", h.Seat.GetSeatInfo)
	v1.GET("/events/:id/tickets", h.Seat.GetUserTickets)

	v1.POST("/events/:id/purchase", h.Purchase.Buy)

	v1.GET("/events/:id/settlement", h.Settlement.GetRevenue)
	v1.POST("/events/:id/settlement", h.Settlement.WithdrawRevenue)
	v1.GET("/platform/settlement", h.Settlement.GetPlatformFee)
	v1.POST("/platform/settlement", h.Settlement.WithdrawPlatformFee)

	v1.GET("/token", h.Token.GetMeta)
	v1.GET("/tokens/:id/owner", h.Token.GetOwner)
	v1.POST("/tokens/:id/transfer", h.Token.Transfer)
	v1.GET("/accounts/:address", h.Token.GetAccount)
	v1.POST("/accounts/:address/deposit", h.Token.Deposit)
}
