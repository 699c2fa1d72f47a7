package monitor

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/volatilum/volatilum-go/pkg/volatilum/types"
)

func TestResultLabel(t *testing.T) {
	assert.Equal(t, ResultOK, ResultLabel(nil))
	assert.Equal(t, "MISSING_ACCOUNT", ResultLabel(types.NewError(types.MissingAccount, "gone")))
	assert.Equal(t, ResultUntyped, ResultLabel(errors.New("plain")))
}

func TestRecordObservation(t *testing.T) {
	intent := t.Name()

	RecordObservation(intent, 42, nil)
	assert.Equal(t, float64(1), testutil.ToFloat64(promObservations.With(prometheus.Labels{"intent": intent, "result": ResultOK})))
	assert.Equal(t, float64(42), testutil.ToFloat64(promObservedSlot.WithLabelValues(intent)))

	// failures do not move the slot gauge
	RecordObservation(intent, 7, types.NewError(types.SlotInconsistency, "split"))
	assert.Equal(t, float64(1), testutil.ToFloat64(promObservations.WithLabelValues(intent, "RPC_SLOT_INCONSISTENCY")))
	assert.Equal(t, float64(42), testutil.ToFloat64(promObservedSlot.WithLabelValues(intent)))
}
