package logger

import (
	"github.com/maxaizer/uninotify/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// errorCounterHook counts error level entries by their error type. Entries without one
// are counted as "unknown", failures of the loki pusher itself as "loki".
type errorCounterHook struct {
	counter *prometheus.CounterVec
}

func (h *errorCounterHook) Fire(entry *log.Entry) error {
	h.counter.WithLabelValues(errorTypeOf(entry)).Inc()
	return nil
}

func errorTypeOf(entry *log.Entry) string {
	if errorType, ok := entry.Data[ErrorTypeField].(string); ok && errorType != "" {
		return errorType
	}
	if entry.Data["source"] == lokiSource {
		return lokiSource
	}
	return "unknown"
}

func (h *errorCounterHook) Levels() []log.Level {
	return []log.Level{
		log.ErrorLevel,
		log.FatalLevel,
		log.PanicLevel,
	}
}

func addErrorCounterHook() {
	log.AddHook(&errorCounterHook{counter: metrics.ErrorsCounter})
	log.Debug("counting logged errors by type")
}
