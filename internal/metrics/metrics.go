// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PurchasesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_purchases_total",
		Help: "Number of settled purchases",
	})

	PurchaseVolume = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_purchase_volume_units",
		Help: "Total token units moved through settled purchases",
	})

	FeesCollected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_fees_collected_units",
		Help: "Total token units collected as platform fees",
	})

	WithdrawalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_withdrawals_total",
		Help: "Number of completed withdrawals by kind",
	}, []string{"kind"})

	FailedSettlements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_failed_settlements_total",
		Help: "Number of rejected purchase attempts by reason",
	}, []string{"reason"})
)
