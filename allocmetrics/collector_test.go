package allocmetrics

import (
	"strings"
	"testing"

	"github.com/forestrie/go-pagedarray/pagedarray"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollectorReportsBudget(t *testing.T) {
	// one uint32 indexed int32 costs three pointer slots and a single element
	one := pagedarray.Footprint[uint32, int32](1)
	require.Equal(t, uint64(28), one)

	b := pagedarray.NewBudget(one)
	a := pagedarray.New[uint32, int32](pagedarray.WithAllocator(b))
	require.NoError(t, a.Resize(1))

	// any growth beyond one element exceeds the limit
	err := a.Resize(2)
	require.ErrorIs(t, err, pagedarray.ErrAllocation)

	c := NewCollector("pagedarray", nil, b)
	expected := `
# HELP pagedarray_budget_bytes_in_use Bytes of node storage currently reserved.
# TYPE pagedarray_budget_bytes_in_use gauge
pagedarray_budget_bytes_in_use 28
# HELP pagedarray_budget_bytes_limit Reservation limit in bytes, 0 when unbounded.
# TYPE pagedarray_budget_bytes_limit gauge
pagedarray_budget_bytes_limit 28
# HELP pagedarray_budget_bytes_peak Highest number of bytes reserved at once.
# TYPE pagedarray_budget_bytes_peak gauge
pagedarray_budget_bytes_peak 28
# HELP pagedarray_budget_refused_total Reservations refused because they would exceed the limit.
# TYPE pagedarray_budget_refused_total counter
pagedarray_budget_refused_total 1
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected)))

	a.Free()
	require.Equal(t, 0.0, gaugeValue(t, c, "pagedarray_budget_bytes_in_use"))
	require.Equal(t, 28.0, gaugeValue(t, c, "pagedarray_budget_bytes_peak"))
}

func TestCollectorRegisters(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(NewCollector("pagedarray", prometheus.Labels{"array": "a"}, pagedarray.NewBudget(0))))
	require.Equal(t, 4, testutil.CollectAndCount(NewCollector("x", nil, pagedarray.NewBudget(0))))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 4)
}

func gaugeValue(t *testing.T, c prometheus.Collector, name string) float64 {
	t.Helper()
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(c))
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not collected", name)
	return 0
}
