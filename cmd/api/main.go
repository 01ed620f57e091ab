package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/DELIGHT-LABS/monad-ticket/internal/api"
	"github.com/DELIGHT-LABS/monad-ticket/internal/api/handler"
	custommiddleware "github.com/DELIGHT-LABS/monad-ticket/internal/api/middleware"
	"github.com/DELIGHT-LABS/monad-ticket/internal/api/router"
	"github.com/DELIGHT-LABS/monad-ticket/internal/application"
	"github.com/DELIGHT-LABS/monad-ticket/internal/config"
	"github.com/DELIGHT-LABS/monad-ticket/internal/domain/ticket"
	"github.com/DELIGHT-LABS/monad-ticket/internal/infrastructure/postgres"
	redisinfra "github.com/DELIGHT-LABS/monad-ticket/internal/infrastructure/redis"
	"github.com/DELIGHT-LABS/monad-ticket/internal/ledger"
	"github.com/DELIGHT-LABS/monad-ticket/internal/pkg/logger"
	"github.com/DELIGHT-LABS/monad-ticket/internal/pkg/metrics"
	"github.com/DELIGHT-LABS/monad-ticket/internal/worker"
)

func main() {
	cfg := config.Load()

	// ロガー初期化
	logger.Set(logger.NewLogger(os.Getenv("APP_ENV")))
	defer logger.Sync()

	// メトリクス初期化
	m := metrics.Init()

	// ジャーナル（DB設定がある場合のみ永続化）
	var journal ticket.Journal
	if cfg.Database.Enabled() {
		db, err := postgres.NewConnection(&cfg.Database)
		if err != nil {
			logger.Fatal("データベース接続エラー", zap.Error(err))
		}
		defer db.Close()

		migrationsPath := os.Getenv("MIGRATIONS_PATH")
		if migrationsPath == "" {
			migrationsPath = "migrations"
		}
		if err := postgres.RunMigrations(db.DB, migrationsPath); err != nil {
			logger.Fatal("マイグレーションエラー", zap.Error(err))
		}

		journal = postgres.NewJournalRepository(db)
		logger.Info("ジャーナル永続化を有効化", zap.String("host", cfg.Database.Host))
	} else {
		logger.Warn("DB_HOST未設定のためインメモリのみで動作します")
	}

	// Redis（座席キャッシュと購入ロック）
	var (
		seatCache   *redisinfra.SeatCache
		lockManager *redisinfra.LockManager
	)
	if cfg.Redis.Enabled() {
		redisClient := redisinfra.NewClient(&cfg.Redis)
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisinfra.Ping(ctx, redisClient); err != nil {
			cancel()
			logger.Fatal("Redis接続エラー", zap.Error(err))
		}
		cancel()

		seatCache = redisinfra.NewSeatCache(redisClient)
		lockManager = redisinfra.NewLockManager(redisClient)
		logger.Info("Redis連携を有効化", zap.String("addr", cfg.Redis.Addr()))
	}

	// 台帳本体
	l := ledger.New(ledger.Config{
		Owner:       cfg.Ledger.OwnerAddress,
		FeeRateBps:  cfg.Ledger.FeeRateBps,
		TokenName:   cfg.Ledger.TokenName,
		TokenSymbol: cfg.Ledger.TokenSymbol,
		Clock:       time.Now,
	}, nil, journal, ledger.NewLogNotifier())

	// アプリケーションサービス
	eventService := application.NewEventService(l, seatCache)
	purchaseService := application.NewPurchaseService(l, lockManager, seatCache)
	settlementService := application.NewSettlementService(l)
	tokenService := application.NewTokenService(l, seatCache)

	// Echoサーバー
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	custommiddleware.SetupMiddleware(e)
	e.Use(custommiddleware.PrometheusMiddleware(m))

	router.RegisterRoutes(e, &router.Handlers{
		Health:     handler.NewHealthHandler(),
		Event:      handler.NewEventHandler(eventService),
		Seat:       handler.NewSeatHandler(eventService),
		Purchase:   handler.NewPurchaseHandler(purchaseService),
		Settlement: handler.NewSettlementHandler(settlementService),
		Token:      handler.NewTokenHandler(tokenService),
	})

	// 精算ウォッチャー
	watcherCtx, watcherCancel := context.WithCancel(context.Background())
	watcher := worker.NewSettlementWatcher(settlementService, cfg.Worker.SettlementWatchInterval)
	go watcher.Start(watcherCtx)

	// サーバー起動
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()
	logger.Info("サーバー起動", zap.String("port", cfg.Server.Port))

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています")

	watcherCancel()
	watcher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
