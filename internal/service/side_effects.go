package service

import (
	pkglogger "github.com/angple/arena-backend/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var sideEffectFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "side_effect_failures_total",
		Help: "Secondary writes that failed after the primary write succeeded",
	},
	[]string{"op"},
)

// bestEffort runs a secondary write. Failures are logged and counted, never returned.
func bestEffort(op string, fn func() error) {
	if err := fn(); err != nil {
		sideEffectFailures.WithLabelValues(op).Inc()
		pkglogger.GetLogger().Warn().Err(err).Str("op", op).Msg("side effect failed")
	}
}
