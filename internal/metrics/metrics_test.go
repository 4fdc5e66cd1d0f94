package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()
	m.Triggered("compass")
	m.Triggered("compass")
	m.Cancelled("compass")
	m.Finished("compass", "north")
	m.FellBack()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Triggers.WithLabelValues("compass")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Cancels.WithLabelValues("compass")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Results.WithLabelValues("compass", "north")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fallbacks))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Triggered("coin")
		m.Cancelled("coin")
		m.Finished("coin", "head")
		m.FellBack()
		require.NoError(t, m.WriteFile("ignored"))
	})
}

func TestWriteFile(t *testing.T) {
	m := New()
	m.Finished("yesno", "yes")

	path := filepath.Join(t.TempDir(), "randomizer.prom")
	require.NoError(t, m.WriteFile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `randomizer_results_total{preset="yesno",result="yes"} 1`)
}
