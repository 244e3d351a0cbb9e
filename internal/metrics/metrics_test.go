package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCacheHit(t *testing.T) {
	register()
	before := testutil.ToFloat64(cacheHitsTotal)

	RecordCacheHit()
	RecordCacheHit()

	assert.Equal(t, before+2, testutil.ToFloat64(cacheHitsTotal))
}

func TestFetchTimerRecordsOutcome(t *testing.T) {
	register()
	before := testutil.ToFloat64(fetchTotal.WithLabelValues(string(OutcomeCorruption)))

	timer := StartFetch()
	timer.Done(OutcomeCorruption)

	assert.Equal(t, before+1, testutil.ToFloat64(fetchTotal.WithLabelValues(string(OutcomeCorruption))))
}

func TestFetchTimerDoneIsSingleUse(t *testing.T) {
	register()
	before := testutil.ToFloat64(fetchTotal.WithLabelValues(string(OutcomeSuccess)))

	timer := StartFetch()
	timer.Done(OutcomeSuccess)
	timer.Done(OutcomeSuccess)
	timer.Done(OutcomeBackendError)

	assert.Equal(t, before+1, testutil.ToFloat64(fetchTotal.WithLabelValues(string(OutcomeSuccess))))
}
