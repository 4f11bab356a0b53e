package pagedarraytesting

import (
	"time"

	"github.com/forestrie/go-pagedarray/pagedarray"
)

const (
	// Large arrays are dominated by cache misses for both layouts, which
	// hides the cost of the tree walk.
	DefaultTimingLen    = 32 * 1024
	DefaultTimingWrites = 20_000_000
)

type TimingConfig struct {
	Len    int
	Writes int
}

type Timing struct {
	Name    string
	Elapsed time.Duration
}

// TimeWrites measures Writes single element writes to a paged array and to
// a flat slice of the same length, first at random indices then
// sequentially with wrap around. Both random variants draw their indices
// from rng inside the timed loop, so its cost is common to the two layouts.
func TimeWrites[L pagedarray.Length](rng Rand, cfg TimingConfig, arr *pagedarray.Array[L, int32]) ([]Timing, error) {
	if cfg.Len == 0 {
		cfg.Len = DefaultTimingLen
	}
	if cfg.Writes == 0 {
		cfg.Writes = DefaultTimingWrites
	}
	if err := arr.Resize(L(cfg.Len)); err != nil {
		return nil, err
	}
	arr.Zero(0, arr.Len())
	flat := make([]int32, cfg.Len)

	timed := func(name string, f func()) Timing {
		start := time.Now()
		f()
		return Timing{Name: name, Elapsed: time.Since(start)}
	}

	return []Timing{
		timed("paged random", func() {
			for i := 0; i < cfg.Writes; i++ {
				arr.Set(L(rng.Intn(cfg.Len)), int32(i))
			}
		}),
		timed("flat random", func() {
			for i := 0; i < cfg.Writes; i++ {
				flat[rng.Intn(cfg.Len)] = int32(i)
			}
		}),
		timed("paged sequential", func() {
			j := 0
			for i := 0; i < cfg.Writes; i++ {
				arr.Set(L(j), int32(i))
				if j++; j >= cfg.Len {
					j = 0
				}
			}
		}),
		timed("flat sequential", func() {
			j := 0
			for i := 0; i < cfg.Writes; i++ {
				flat[j] = int32(i)
				if j++; j >= cfg.Len {
					j = 0
				}
			}
		}),
	}, nil
}
