package observability

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	composeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kproto",
			Subsystem: "codec",
			Name:      "compose_total",
			Help:      "Messages composed, by kind and result.",
		},
		[]string{"kind", "success"},
	)
	extractTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kproto",
			Subsystem: "codec",
			Name:      "extract_total",
			Help:      "Payload extractions, by type and result.",
		},
		[]string{"type", "success"},
	)
	decodeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kproto",
			Subsystem: "codec",
			Name:      "decode_total",
			Help:      "Typed message decodes, by type and result.",
		},
		[]string{"type", "success"},
	)
	frameBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kproto",
			Subsystem: "codec",
			Name:      "message_bytes",
			Help:      "Total frame bytes per decoded message.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		},
		[]string{"type"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(composeTotal, extractTotal, decodeTotal, frameBytes)
	})
}

func RecordCompose(kind string, success bool) {
	RegisterMetrics()
	composeTotal.WithLabelValues(kind, strconv.FormatBool(success)).Inc()
}

func RecordExtract(typeName string, success bool) {
	RegisterMetrics()
	extractTotal.WithLabelValues(typeName, strconv.FormatBool(success)).Inc()
}

func RecordDecode(typeName string, success bool, size int) {
	RegisterMetrics()
	decodeTotal.WithLabelValues(typeName, strconv.FormatBool(success)).Inc()
	if success {
		frameBytes.WithLabelValues(typeName).Observe(float64(size))
	}
}
