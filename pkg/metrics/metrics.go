package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DocumentOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "inkpad", Name: "document_ops_total", Help: "Number of completed document operations by type."},
		[]string{"op"},
	)
	BackupsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "inkpad", Name: "backups_created_total", Help: "Number of backup snapshots written."},
	)
	BackupsPruned = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "inkpad", Name: "backups_pruned_total", Help: "Number of stale backups removed by rotation."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "inkpad", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "inkpad", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(DocumentOps)
	reg.MustRegister(BackupsCreated)
	reg.MustRegister(BackupsPruned)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
