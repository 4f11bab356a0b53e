package pagedarraytesting

import (
	"errors"
	"fmt"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-pagedarray/pagedarray"
)

var ErrMismatch = errors.New("paged array differs from reference")

const (
	DefaultSoakOps         = 40000
	DefaultSoakMaxLenBits  = 20
	DefaultSoakResizeOneIn = 2000
	DefaultSoakCopyMax     = 300
)

type SoakConfig struct {
	Ops int
	// Resizes pick a length in [1, 2^k] for a random k < MaxLenBits.
	MaxLenBits int
	// On average one step in ResizeOneIn verifies everything and resizes.
	ResizeOneIn int
	// Longest run moved by a single CopyIn or CopyOut. Runs longer than a
	// leaf exercise the leaf boundary chunking.
	CopyMax int
}

type SoakResult struct {
	Ops      int
	Resizes  int
	Writes   int
	CopyIns  int
	CopyOuts int
	FinalLen uint64
}

func (c *SoakConfig) defaults() {
	if c.Ops == 0 {
		c.Ops = DefaultSoakOps
	}
	if c.MaxLenBits == 0 {
		c.MaxLenBits = DefaultSoakMaxLenBits
	}
	if c.ResizeOneIn == 0 {
		c.ResizeOneIn = DefaultSoakResizeOneIn
	}
	if c.CopyMax == 0 {
		c.CopyMax = DefaultSoakCopyMax
	}
}

// Soak applies a random sequence of resizes, writes and bulk copies to arr
// and to a Reference, reading back from arr after every step. The sequence
// is fully determined by the state of rng.
//
// A difference between the two returns an error wrapping ErrMismatch. A
// refused resize returns the allocator error.
func Soak[L pagedarray.Length](
	log logger.Logger, rng Rand, cfg SoakConfig, arr *pagedarray.Array[L, int32],
) (SoakResult, error) {
	cfg.defaults()

	var res SoakResult
	var ref Reference[int32]
	ref.Resize(int(arr.Len()))
	arr.Zero(0, arr.Len())

	verify := func(k int) error {
		got, want := arr.Get(L(k)), ref.Get(k)
		if got != want {
			return fmt.Errorf("%w: index %d: got %d, want %d", ErrMismatch, k, got, want)
		}
		return nil
	}
	verifyAll := func() error {
		for k := 0; k < ref.Len(); k++ {
			if err := verify(k); err != nil {
				return err
			}
		}
		return nil
	}

	buf := make([]int32, cfg.CopyMax)

	for i := 0; i < cfg.Ops; i++ {
		if i == 0 || rng.Intn(cfg.ResizeOneIn) == 0 {
			if err := verifyAll(); err != nil {
				return res, err
			}
			oldLen := ref.Len()
			newLen := rng.Intn(1<<rng.Intn(cfg.MaxLenBits)) + 1
			if err := arr.Resize(L(newLen)); err != nil {
				return res, err
			}
			ref.Resize(newLen)
			if newLen > oldLen {
				arr.Zero(L(oldLen), L(newLen-oldLen))
			}
			res.Resizes++
			log.Debugf("soak step %d: resized %d -> %d", i, oldLen, newLen)
		}
		if int(arr.Len()) != ref.Len() {
			return res, fmt.Errorf("%w: length %d, want %d", ErrMismatch, arr.Len(), ref.Len())
		}

		j := rng.Intn(ref.Len())
		if rng.Intn(10) != 0 {
			arr.Set(L(j), int32(i))
			ref.Set(j, int32(i))
			res.Writes++
		} else {
			run := buf[:min(cfg.CopyMax, ref.Len()-j)]
			if rng.Intn(2) != 0 {
				arr.CopyOut(run, L(j))
				for k, v := range run {
					if want := ref.Get(j + k); v != want {
						return res, fmt.Errorf(
							"%w: copy out at %d: index %d: got %d, want %d", ErrMismatch, j, j+k, v, want)
					}
				}
				res.CopyOuts++
			} else {
				for k := range run {
					run[k] = int32(i + k)
				}
				arr.CopyIn(L(j), run)
				ref.CopyIn(j, run)
				res.CopyIns++
			}
		}

		if err := verify(rng.Intn(ref.Len())); err != nil {
			return res, err
		}
		res.Ops++
	}

	if err := verifyAll(); err != nil {
		return res, err
	}
	res.FinalLen = uint64(arr.Len())
	log.Infof("soak: %d ops, %d resizes, %d writes, %d copy in, %d copy out, final length %d",
		res.Ops, res.Resizes, res.Writes, res.CopyIns, res.CopyOuts, res.FinalLen)
	return res, nil
}

// Rand is the subset of *math/rand.Rand used by the drivers.
type Rand interface {
	Intn(n int) int
}
