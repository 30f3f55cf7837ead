package waio_test

import (
	"testing"
	"time"

	"github.com/fwojciec/waio"
	"github.com/stretchr/testify/assert"
)

func TestComparison_Speedup(t *testing.T) {
	t.Parallel()

	t.Run("divides heuristic by structured time", func(t *testing.T) {
		t.Parallel()

		c := &waio.Comparison{}
		c.Heuristic.Metrics.CognitiveTime = 100 * time.Millisecond
		c.Structured.Metrics.CognitiveTime = 25 * time.Millisecond

		assert.InDelta(t, 4.0, c.Speedup(), 1e-9)
		assert.InDelta(t, 75.0, c.GainPercent(), 1e-9)
	})

	t.Run("zero structured time yields zero speedup", func(t *testing.T) {
		t.Parallel()

		c := &waio.Comparison{}
		c.Heuristic.Metrics.CognitiveTime = 100 * time.Millisecond

		assert.Equal(t, 0.0, c.Speedup())
	})

	t.Run("zero heuristic time yields zero gain", func(t *testing.T) {
		t.Parallel()

		c := &waio.Comparison{}
		c.Structured.Metrics.CognitiveTime = 10 * time.Millisecond

		assert.Equal(t, 0.0, c.GainPercent())
	})

	t.Run("slower structured run gives negative gain", func(t *testing.T) {
		t.Parallel()

		c := &waio.Comparison{}
		c.Heuristic.Metrics.CognitiveTime = 10 * time.Millisecond
		c.Structured.Metrics.CognitiveTime = 20 * time.Millisecond

		assert.InDelta(t, -100.0, c.GainPercent(), 1e-9)
	})
}

func TestMetrics_Total(t *testing.T) {
	t.Parallel()

	m := waio.Metrics{
		NetworkTime:   10 * time.Millisecond,
		ParseTime:     2 * time.Millisecond,
		CognitiveTime: 3 * time.Millisecond,
	}
	assert.Equal(t, 15*time.Millisecond, m.Total())
}

func TestNewReport(t *testing.T) {
	t.Parallel()

	result := waio.NewExtractionResult()
	result.MarkersDetected = true
	result.Set(waio.FieldTitle, "T", waio.ProvenanceStructured)

	c := &waio.Comparison{URL: "https://example.com", Bot: waio.BotGPTBot, Mode: waio.ModeTheory}
	c.Heuristic.Metrics.CognitiveTime = 40 * time.Millisecond
	c.Structured.Metrics = waio.Metrics{NetworkTime: time.Second, CognitiveTime: 10 * time.Millisecond}
	c.Structured.Result = result

	r := waio.NewReport(c)
	assert.Equal(t, "https://example.com", r.URL)
	assert.Equal(t, time.Second, r.NetworkTime)
	assert.InDelta(t, 4.0, r.Speedup, 1e-9)
	assert.InDelta(t, 75.0, r.GainPercent, 1e-9)
	assert.InDelta(t, 100.0/3, r.IntegrityScore, 1e-9)
	assert.True(t, r.MarkersDetected)
	assert.NoError(t, r.Validate())
}
