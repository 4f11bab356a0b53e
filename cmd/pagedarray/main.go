package main

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strings"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-pagedarray/allocmetrics"
	"github.com/forestrie/go-pagedarray/pagedarray"
	"github.com/forestrie/go-pagedarray/pagedarraytesting"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "PAGEDARRAY"

var errBadWidth = errors.New("index width must be 32 or 64")

type Options struct {
	LogLevel       string
	Seed           int64
	Width          int
	MaxBytes       uint64
	MetricsAddress string

	Soak   pagedarraytesting.SoakConfig
	Timing pagedarraytesting.TimingConfig
}

func newRootCmd() *cobra.Command {
	var opts Options

	root := &cobra.Command{
		Use:           "pagedarray",
		Short:         "Exercise paged arrays against flat arrays",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			v := viper.New()
			v.SetEnvPrefix(envPrefix)
			v.AutomaticEnv()
			bindFlags(cmd, v)
			logger.New(opts.LogLevel)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logger.OnExit()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.LogLevel, "log-level", "INFO", "log level: DEBUG, INFO, WARN, ERROR")
	pf.Int64Var(&opts.Seed, "seed", 1, "random seed, re-use to reproduce a run")
	pf.IntVar(&opts.Width, "width", 32, "index width in bits, 32 or 64")
	pf.Uint64Var(&opts.MaxBytes, "max-bytes", 0, "node storage limit in bytes (default: unbounded)")
	pf.StringVar(&opts.MetricsAddress, "metrics-address", "", "serve prometheus metrics on this address while running (default: disabled)")

	soak := &cobra.Command{
		Use:   "soak",
		Short: "Apply random resizes, writes and copies, verifying against a flat array",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, soakInt32[uint32], soakInt32[uint64])
		},
	}
	soak.Flags().IntVar(&opts.Soak.Ops, "ops", pagedarraytesting.DefaultSoakOps, "number of steps")
	soak.Flags().IntVar(&opts.Soak.MaxLenBits, "max-len-bits", pagedarraytesting.DefaultSoakMaxLenBits, "resize lengths are at most 2^max-len-bits")
	soak.Flags().IntVar(&opts.Soak.ResizeOneIn, "resize-one-in", pagedarraytesting.DefaultSoakResizeOneIn, "resize on average once in this many steps")
	soak.Flags().IntVar(&opts.Soak.CopyMax, "copy-max", pagedarraytesting.DefaultSoakCopyMax, "longest bulk copy")

	timing := &cobra.Command{
		Use:   "timing",
		Short: "Time random and sequential writes to a paged array and a flat slice",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, timeInt32[uint32], timeInt32[uint64])
		},
	}
	timing.Flags().IntVar(&opts.Timing.Len, "len", pagedarraytesting.DefaultTimingLen, "array length")
	timing.Flags().IntVar(&opts.Timing.Writes, "writes", pagedarraytesting.DefaultTimingWrites, "writes per measurement")

	root.AddCommand(soak, timing)
	return root
}

// bindFlags applies PAGEDARRAY_* environment values to flags not set on the
// command line. PAGEDARRAY_MAX_LEN_BITS sets --max-len-bits.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	visit := func(f *pflag.Flag) {
		envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		_ = v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix))
		if !f.Changed && v.IsSet(f.Name) {
			_ = f.Value.Set(fmt.Sprintf("%v", v.Get(f.Name)))
		}
	}
	cmd.Flags().VisitAll(visit)
	cmd.InheritedFlags().VisitAll(visit)
}

type runner[L pagedarray.Length] func(log logger.Logger, rng *rand.Rand, opts Options, arr *pagedarray.Array[L, int32]) error

func run(cmd *cobra.Command, opts Options, run32 runner[uint32], run64 runner[uint64]) error {
	log := logger.Sugar.WithServiceName(fmt.Sprintf("pagedarray-%s", cmd.Name()))
	runID := uuid.NewString()
	log.Infof("run %s: seed %d, width %d, max bytes %d", runID, opts.Seed, opts.Width, opts.MaxBytes)

	budget := pagedarray.NewBudget(opts.MaxBytes)
	if opts.MetricsAddress != "" {
		serveMetrics(log, opts.MetricsAddress, budget, runID)
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	arrOpts := []pagedarray.Option{pagedarray.WithAllocator(budget), pagedarray.WithLogger(log)}

	var err error
	switch opts.Width {
	case 32:
		err = run32(log, rng, opts, pagedarray.New[uint32, int32](arrOpts...))
	case 64:
		err = run64(log, rng, opts, pagedarray.New[uint64, int32](arrOpts...))
	default:
		err = fmt.Errorf("%w: %d", errBadWidth, opts.Width)
	}
	if err != nil {
		log.Infof("run %s failed: %v", runID, err)
		return err
	}
	log.Infof("run %s: peak node storage %d bytes, %d refused reservations", runID, budget.Peak(), budget.Failures())
	return nil
}

func soakInt32[L pagedarray.Length](log logger.Logger, rng *rand.Rand, opts Options, arr *pagedarray.Array[L, int32]) error {
	_, err := pagedarraytesting.Soak(log, rng, opts.Soak, arr)
	arr.Free()
	return err
}

func timeInt32[L pagedarray.Length](log logger.Logger, rng *rand.Rand, opts Options, arr *pagedarray.Array[L, int32]) error {
	timings, err := pagedarraytesting.TimeWrites(rng, opts.Timing, arr)
	if err != nil {
		return err
	}
	for _, t := range timings {
		log.Infof("%-16s %v", t.Name, t.Elapsed)
	}
	arr.Free()
	return nil
}

func serveMetrics(log logger.Logger, address string, budget *pagedarray.Budget, runID string) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(allocmetrics.NewCollector("pagedarray", prometheus.Labels{"run": runID}, budget))
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		log.Infof("serving metrics on %s", address)
		if err := http.ListenAndServe(address, mux); err != nil {
			log.Infof("metrics listener stopped: %v", err)
		}
	}()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
