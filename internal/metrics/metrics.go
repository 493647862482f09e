package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
)

const (
	OutcomeSent   = "sent"
	OutcomeFailed = "failed"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uninotify_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	DispatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "uninotify_dispatch_duration_seconds",
			Help:    "Duration of each deadline reminder run in seconds.",
			Buckets: []float64{1, 5, 15, 60, 300},
		},
	)
	UpcomingDeadlinesGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "uninotify_upcoming_deadlines",
			Help: "Universities matched by the last deadline reminder run.",
		},
	)
	NotificationsRecordedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uninotify_notifications_recorded_total",
			Help: "Total number of stored notifications.",
		},
		[]string{"type"},
	)
	EmailsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uninotify_emails_total",
			Help: "Total number of email send attempts.",
		},
		[]string{"template", "outcome"},
	)
	SyncDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "uninotify_sync_duration_seconds",
			Help:    "Duration of each university catalog sync in seconds.",
			Buckets: []float64{1, 5, 15, 60, 300},
		},
	)
)

func init() {
	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(DispatchDuration)
	prometheus.MustRegister(UpcomingDeadlinesGauge)
	prometheus.MustRegister(NotificationsRecordedCounter)
	prometheus.MustRegister(EmailsCounter)
	prometheus.MustRegister(SyncDuration)
}

func StartMetricsServer(address string) *http.Server {

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: address, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("metrics server failed: %v", err)
		}
	}()
	log.Infof("metrics server listening on %s", address)
	return server
}
