package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_jirani_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_jirani_active_connections",
			Help: "Number of active connections",
		},
	)

	// CacheHits tracks cache hits/misses
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_jirani_cache_hits_total",
			Help: "Number of cache lookups by operation and result",
		},
		[]string{"operation", "result"},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_jirani_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)

	// FormSubmissions tracks sign-in/sign-up submissions by outcome
	FormSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_jirani_form_submissions_total",
			Help: "Number of account form submissions by form and outcome",
		},
		[]string{"form", "outcome"},
	)

	// ProviderSignIns tracks social sign-ins by provider and status
	ProviderSignIns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_jirani_provider_sign_ins_total",
			Help: "Number of social provider sign-ins",
		},
		[]string{"provider", "status"},
	)

	// ProfileCompletion observes the completion percentage after each profile update
	ProfileCompletion = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "app_jirani_profile_completion_percent",
			Help:    "Profile completion percentage observed after profile updates",
			Buckets: []float64{0, 15, 29, 43, 58, 72, 86, 100},
		},
	)

	// ProfileUpdates tracks quick-add and edit operations on profiles
	ProfileUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_jirani_profile_updates_total",
			Help: "Number of profile field updates",
		},
		[]string{"field", "status"},
	)
)
