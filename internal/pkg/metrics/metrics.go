package metrics

import (
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics はアプリケーションのメトリクスを管理する
type Metrics struct {
	// HTTPリクエストの総数（method, path, status_code）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPリクエストのレイテンシ（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// チケット購入試行の総数（status: success, seat_sold, incorrect_payment, lock_failed, error）
	TicketPurchasesTotal *prometheus.CounterVec

	// 販売による累積売上（wei換算、fee/netで分割）
	SaleProceedsWei *prometheus.CounterVec

	// 購入ロックの操作時間（operation: acquire/release, status: success/failed）
	PurchaseLockDuration *prometheus.HistogramVec

	// イベントごとの引き出し可能売上（wei換算）
	WithdrawableRevenueWei *prometheus.GaugeVec

	// 精算実行の総数（kind: event_revenue, platform_fee）
	SettlementsTotal *prometheus.CounterVec
}

// New は新しいMetricsインスタンスを作成し、デフォルトレジストリに登録する
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry は指定したレジストリにメトリクスを登録する
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		TicketPurchasesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ticket_purchases_total",
				Help: "Total number of ticket purchase attempts",
			},
			[]string{"status"},
		),
		SaleProceedsWei: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sale_proceeds_wei_total",
				Help: "Cumulative sale proceeds in wei, split into net revenue and platform fee",
			},
			[]string{"kind"},
		),
		PurchaseLockDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "purchase_lock_duration_seconds",
				Help:    "Time spent on purchase lock operations",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation", "status"},
		),
		WithdrawableRevenueWei: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "withdrawable_revenue_wei",
				Help: "Withdrawable net revenue per ended event in wei",
			},
			[]string{"event_id"},
		),
		SettlementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settlements_total",
				Help: "Total number of executed settlements",
			},
			[]string{"kind"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.TicketPurchasesTotal,
		m.SaleProceedsWei,
		m.PurchaseLockDuration,
		m.WithdrawableRevenueWei,
		m.SettlementsTotal,
	)

	return m
}

// ObserveSale は購入成功時の売上内訳を記録する
// wei額はfloat64に丸められるがメトリクス用途では十分な精度
func (m *Metrics) ObserveSale(net, fee *big.Int) {
	netF, _ := new(big.Float).SetInt(net).Float64()
	feeF, _ := new(big.Float).SetInt(fee).Float64()
	m.SaleProceedsWei.WithLabelValues("net_revenue").Add(netF)
	m.SaleProceedsWei.WithLabelValues("platform_fee").Add(feeF)
}

// デフォルトのメトリクスインスタンス
var defaultMetrics *Metrics

// Init はデフォルトのメトリクスインスタンスを初期化する
func Init() *Metrics {
	defaultMetrics = New()
	return defaultMetrics
}

// Get はデフォルトのメトリクスインスタンスを返す
func Get() *Metrics {
	return defaultMetrics
}
