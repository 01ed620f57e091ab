package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/DELIGHT-LABS/monad-ticket/internal/api/handler"
	"github.com/DELIGHT-LABS/monad-ticket/internal/pkg/logger"
)

// seedIssuer はサンプルイベントの主催者アドレス
const seedIssuer = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"

// seatRange は "VIP-A001" 形式の連番座席IDを生成する
func seatRange(prefix string, count int) []string {
	seats := make([]string, count)
	for i := 0; i < count; i++ {
		seats[i] = fmt.Sprintf("%s%03d", prefix, i+1)
	}
	return seats
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(time.RFC3339)
}

// sampleEvents はデモ用のサンプルイベント一覧を組み立てる
func sampleEvents() []handler.CreateEventRequest {
	return []handler.CreateEventRequest{
		{
			Issuer:    seedIssuer,
			Name:      "BTS World Tour - Seoul",
			EventDate: futureDate(30),
			Tiers: []handler.TierRequest{
				{Name: "VIP", PriceMON: "1.5", TicketCount: 30, SeatIDs: seatRange("VIP-A", 30)},
				{Name: "Standard", PriceMON: "0.8", TicketCount: 70, SeatIDs: seatRange("STD-B", 70)},
				{Name: "Economy", PriceMON: "0.3", TicketCount: 100, SeatIDs: seatRange("ECO-C", 100)},
			},
		},
		{
			Issuer:    seedIssuer,
			Name:      "IU Love Poem Concert",
			EventDate: futureDate(45),
			Tiers: []handler.TierRequest{
				{Name: "Premium", PriceMON: "1.2", TicketCount: 60, SeatIDs: seatRange("PRE-A", 60)},
				{Name: "General", PriceMON: "0.6", TicketCount: 120, SeatIDs: seatRange("GEN-B", 120)},
			},
		},
		{
			Issuer:    seedIssuer,
			Name:      "Monad Rock Festival 2025",
			EventDate: futureDate(60),
			Tiers: []handler.TierRequest{
				{Name: "Diamond", PriceMON: "2.0", TicketCount: 30, SeatIDs: seatRange("DIA-A", 30)},
				{Name: "Gold", PriceMON: "1.0", TicketCount: 50, SeatIDs: seatRange("GLD-B", 50)},
				{Name: "Silver", PriceMON: "0.5", TicketCount: 70, SeatIDs: seatRange("SLV-C", 70)},
				{Name: "Bronze", PriceMON: "0.2", TicketCount: 70, SeatIDs: seatRange("BRZ-D", 70)},
			},
		},
		{
			Issuer:    seedIssuer,
			Name:      "Monad Jazz Night",
			EventDate: futureDate(20),
			Tiers: []handler.TierRequest{
				{Name: "Front Row", PriceMON: "0.9", TicketCount: 50, SeatIDs: seatRange("FR-A", 50)},
				{Name: "Regular", PriceMON: "0.4", TicketCount: 100, SeatIDs: seatRange("REG-B", 100)},
			},
		},
		{
			Issuer:    seedIssuer,
			Name:      "Monad Developer Conference 2025",
			EventDate: futureDate(90),
			Tiers: []handler.TierRequest{
				{Name: "All Access", PriceMON: "0.5", TicketCount: 200, SeatIDs: seatRange("CONF-", 200)},
			},
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "APIサーバーのベースURL")
	flag.Parse()

	logger.Set(logger.NewLogger(os.Getenv("APP_ENV")))
	defer logger.Sync()

	client := &http.Client{Timeout: 30 * time.Second}

	for _, event := range sampleEvents() {
		body, err := json.Marshal(event)
		if err != nil {
			logger.Fatal("リクエストのエンコードに失敗", zap.Error(err))
		}

		resp, err := client.Post(*baseURL+"/api/v1/events", "application/json", bytes.NewReader(body))
		if err != nil {
			logger.Fatal("イベント作成リクエストに失敗", zap.String("name", event.Name), zap.Error(err))
		}

		var created handler.EventResponse
		if resp.StatusCode == http.StatusCreated {
			if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
				resp.Body.Close()
				logger.Fatal("レスポンスのデコードに失敗", zap.Error(err))
			}
			logger.Info("サンプルイベントを作成",
				zap.Uint64("event_id", created.EventID),
				zap.String("name", created.Name),
				zap.Int("total_tickets", created.TotalTickets),
			)
		} else {
			logger.Error("イベント作成に失敗",
				zap.String("name", event.Name),
				zap.Int("status", resp.StatusCode),
			)
		}
		resp.Body.Close()
	}
}
