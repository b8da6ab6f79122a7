package measure_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-seqlength/pkg/pipeline/measure"
)

func TestDefaultMetricAverages(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	mt := msr.AddMetric("classify")

	assert.Zero(t, mt.AVGDuration())

	mt.AddDuration(2 * time.Millisecond)
	mt.AddDuration(4 * time.Millisecond)
	mt.AddTransportDuration("read records", 10*time.Millisecond)
	mt.AddTransportDuration("read records", 20*time.Millisecond)

	assert.Equal(t, int64(2), mt.Count())
	assert.Equal(t, 3*time.Millisecond, mt.AVGDuration())

	avg := mt.AVGTransportDuration()
	require.Contains(t, avg, "read records")
	assert.Equal(t, 15*time.Millisecond, avg["read records"].Elapsed)

	// averaging twice must not alter the accumulated values
	avg = mt.AVGTransportDuration()
	assert.Equal(t, 15*time.Millisecond, avg["read records"].Elapsed)
	assert.Equal(t, 30*time.Millisecond, mt.AllTransports()["read records"].Elapsed)
}

func TestDefaultMeasureAddMetricKeepsExisting(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	first := msr.AddMetric("write above")
	first.AddDuration(time.Second)

	again := msr.AddMetric("write above")
	assert.Equal(t, int64(1), again.Count())
	assert.Same(t, first, msr.GetMetric("write above"))
	assert.Len(t, msr.AllMetrics(), 1)
}

func TestDefaultMetricTotalDuration(t *testing.T) {
	t.Parallel()

	mt := measure.NewDefaultMeasure().AddMetric("sink")
	mt.SetTotalDuration(time.Minute)
	assert.Equal(t, time.Minute, mt.GetTotalDuration())
}
