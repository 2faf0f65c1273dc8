package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors live on the default registry so the management /metrics
// endpoint picks them up alongside the HTTP middleware metrics.
var (
	walletOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "seiwallet",
		Name:      "wallet_operations_total",
		Help:      "Wallet tool operations by name and outcome.",
	}, []string{"operation", "outcome"})

	transactionsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "seiwallet",
		Name:      "transactions_submitted_total",
		Help:      "Broadcast transactions by network and outcome.",
	}, []string{"network", "outcome"})
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// IncWalletOperation counts one wallet tool invocation.
func IncWalletOperation(operation string, err error) {
	walletOperations.WithLabelValues(operation, outcome(err)).Inc()
}

// IncTransactionSubmitted counts one transfer attempt.
func IncTransactionSubmitted(network string, err error) {
	transactionsSubmitted.WithLabelValues(network, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
