package pagedarraytesting

import (
	"math/rand"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-pagedarray/pagedarray"
)

type TestContext struct {
	Log    logger.Logger
	Rand   *rand.Rand
	Budget *pagedarray.Budget
	T      *testing.T
}

type TestConfig struct {
	// The RNG is seeded from Seed. Fix it to reproduce a failing run.
	Seed            int64
	TestLabelPrefix string
	LogLevel        string // defaults to INFO
	// MaxBytes bounds the node storage of arrays made by NewArray, 0 is
	// unbounded.
	MaxBytes uint64
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	level := cfg.LogLevel
	if level == "" {
		level = "INFO"
	}
	logger.New(level)
	t.Cleanup(logger.OnExit)

	return TestContext{
		Log:    logger.Sugar.WithServiceName(cfg.TestLabelPrefix),
		Rand:   rand.New(rand.NewSource(cfg.Seed)),
		Budget: pagedarray.NewBudget(cfg.MaxBytes),
		T:      t,
	}
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

// NewArray returns an empty array accounted against the context budget and
// logging to the context logger.
func NewArray[L pagedarray.Length, T any](c *TestContext) *pagedarray.Array[L, T] {
	return pagedarray.New[L, T](
		pagedarray.WithAllocator(c.Budget), pagedarray.WithLogger(c.Log))
}
