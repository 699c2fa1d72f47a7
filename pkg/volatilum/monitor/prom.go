package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/volatilum/volatilum-go/pkg/volatilum/types"
)

// ResultOK is the result label of a successful observation. Failed observations are labelled
// with their error kind code, or ResultUntyped if a port broke the error contract.
const (
	ResultOK      = "ok"
	ResultUntyped = "untyped"
)

var (
	promObservations = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: "volatilum_observations_total", Help: "Slot-consistent account observations by intent and result"},
		[]string{"intent", "result"},
	)
	promObservedSlot = promauto.NewGaugeVec(
		prometheus.GaugeOpts{Name: "volatilum_observed_slot", Help: "Slot of the last successful observation"},
		[]string{"intent"},
	)
)

// RecordObservation records the outcome of one observation made for intent.
func RecordObservation(intent string, slot types.Slot, err error) {
	promObservations.WithLabelValues(intent, ResultLabel(err)).Inc()
	if err == nil {
		promObservedSlot.WithLabelValues(intent).Set(float64(slot))
	}
}

func ResultLabel(err error) string {
	if err == nil {
		return ResultOK
	}
	if kind, ok := types.KindOf(err); ok {
		return kind.String()
	}
	return ResultUntyped
}
