package config

import (
	"os"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Config はアプリケーション設定を表す
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Ledger   LedgerConfig
	Worker   WorkerConfig
}

// ServerConfig はサーバー設定
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig はジャーナル永続化用PostgreSQLの設定
// DB_HOST が未設定の場合、台帳はインメモリのみで動作する
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig はRedis設定
// REDIS_HOST が未設定の場合、座席キャッシュと購入ロックは無効になる
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// LedgerConfig はチケット販売台帳の設定
type LedgerConfig struct {
	// FeeRateBps はプラットフォーム手数料率（basis points、200 = 2%）
	FeeRateBps int64
	// TokenName / TokenSymbol はチケットNFTの名称
	TokenName   string
	TokenSymbol string
	// OwnerAddress はプラットフォーム手数料の引き出し権限を持つアドレス
	OwnerAddress common.Address
}

// WorkerConfig は精算ウォッチャーの設定
type WorkerConfig struct {
	SettlementWatchInterval time.Duration
}

// Load は環境変数から設定を読み込む
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "monad_ticket"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Ledger: LedgerConfig{
			FeeRateBps:   getInt64Env("LEDGER_FEE_BPS", 200),
			TokenName:    getEnv("LEDGER_TOKEN_NAME", "MonadTicket"),
			TokenSymbol:  getEnv("LEDGER_TOKEN_SYMBOL", "MTKT"),
			OwnerAddress: common.HexToAddress(getEnv("LEDGER_OWNER_ADDRESS", "")),
		},
		Worker: WorkerConfig{
			SettlementWatchInterval: getDurationEnv("SETTLEMENT_WATCH_INTERVAL", time.Minute),
		},
	}
}

// DSN はPostgreSQL接続文字列を返す
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

// Enabled はジャーナル永続化が有効かを返す
func (c *DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// Addr はRedis接続アドレスを返す
func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// Enabled はRedis連携が有効かを返す
func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
