//go:build linux

// Command instrbench wires a bundled candidate catalog into the executor,
// statistics aggregator, and dashboard renderer.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/haldoris/instrbench/dashboard"
	"github.com/haldoris/instrbench/exec"
	"github.com/haldoris/instrbench/internal/armasm"
	"github.com/haldoris/instrbench/internal/benchid"
	"github.com/haldoris/instrbench/internal/obs"
	"github.com/haldoris/instrbench/queue"
	"github.com/haldoris/instrbench/stat"
	"github.com/haldoris/instrbench/trampoline"
	"github.com/haldoris/instrbench/workloads"
)

type runOpts struct {
	coreOnly     bool
	renderPeriod time.Duration
}

func main() {
	var o runOpts

	root := &cobra.Command{
		Use:   "instrbench",
		Short: "Run the bundled ARM64 micro-benchmark catalog",
		Long: `instrbench executes a catalog of candidate ARM64 instruction
sequences in a tight measurement loop, calibrates the repeat count against
an empty control-group baseline, and renders calibrated per-snippet cycle
statistics to the terminal until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o)
		},
	}

	root.Flags().BoolVar(&o.coreOnly, "core", false, "run only the small core candidate subset")
	root.Flags().DurationVar(&o.renderPeriod, "render-period", time.Second, "minimum time between dashboard renders")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	root.SetContext(ctx)

	if err := root.Execute(); err != nil {
		obs.L().Error().Err(err).Msg("instrbench exited with an error")
		os.Exit(1)
	}
}

func run(ctx context.Context, o runOpts) error {
	machineCode := queue.New[benchid.Snippet]()
	cancels := queue.New[benchid.Id]()
	samples := queue.New[stat.Sample]()

	controlCode := armasm.BuildProgram(armasm.EncodeRET())
	machineCode.Push(benchid.Snippet{Id: benchid.Control, Bytes: controlCode})

	catalog := workloads.Catalog()
	if o.coreOnly {
		catalog = workloads.Core()
	}
	for _, w := range catalog {
		id := benchid.Alloc()
		obs.L().Info().Str("name", w.Name).Uint64("id", uint64(id)).Msg("registering candidate")
		machineCode.Push(benchid.Snippet{Id: id, Bytes: w.Code})
	}

	executor := exec.New(trampoline.Native{}, machineCode, cancels, samples)
	defer executor.Close()

	go executor.Run(ctx)

	agg := stat.NewAggregator()
	board := dashboard.New(os.Stdout, dashboard.WithMinInterval(o.renderPeriod))

	for {
		select {
		case <-ctx.Done():
			obs.L().Info().Msg("shutting down")
			return nil
		default:
		}

		batch := samples.PopAll()
		for _, s := range batch {
			agg.Ingest(s)
		}
		if len(batch) > 0 {
			board.Render(agg)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(50 * time.Millisecond):
		}
	}
}
