package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fanfanvithon/ProPymeTransparente/internal/application/ports"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
)

var _ ports.OperationRecorder = (*Recorder)(nil)

// Resultados posibles de una operación (etiqueta "result").
const (
	ResultOK                = "ok"
	ResultInsufficientStock = "insufficient_stock"
	ResultNotFound          = "not_found"
	ResultInvalid           = "invalid"
	ResultError             = "error"
)

// Recorder publica contadores e histogramas de las operaciones del ledger.
type Recorder struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRecorder registra las métricas en reg (usar prometheus.NewRegistry() en tests).
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "operations_total",
			Help:      "Operaciones del ledger por resultado.",
		}, []string{"operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ledger",
			Name:      "operation_duration_seconds",
			Help:      "Duración de las operaciones del ledger.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	for _, c := range []prometheus.Collector{r.total, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ObserveOperation clasifica err y registra la observación.
func (r *Recorder) ObserveOperation(operation string, started time.Time, err error) {
	r.total.WithLabelValues(operation, Classify(err)).Inc()
	r.duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// Classify traduce un error de dominio a la etiqueta de resultado.
func Classify(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, domain.ErrInsufficientStock):
		return ResultInsufficientStock
	case errors.Is(err, domain.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return ResultInvalid
	default:
		return ResultError
	}
}
