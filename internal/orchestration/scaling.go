package orchestration

import (
	"context"
	"fmt"
	"time"

	"github.com/pffbench/pff/internal/algorithm"
	"github.com/pffbench/pff/internal/errdefs"
	"github.com/pffbench/pff/internal/models"
	"github.com/pffbench/pff/internal/numtheory"
	"golang.org/x/sync/errgroup"
)

// ScalingAnalysis runs one benchmark per entry of sizes, in the given order.
//
// Cancelling ctx stops the sweep between sizes: the size in progress always
// finishes, and the sizes completed so far are returned with Cancelled set
// together with an error wrapping ctx.Err().
func (r *Runner) ScalingAnalysis(ctx context.Context, alg algorithm.Factorizer, sizes []int, trials int, cfg algorithm.Config) (*models.ScalingResult, error) {
	if len(sizes) == 0 {
		return nil, errdefs.InvalidInput("at least one size is required")
	}
	for _, size := range sizes {
		if err := r.checkRun(size, alg, trials, cfg); err != nil {
			return nil, err
		}
	}

	r.runMu.Lock()
	defer r.runMu.Unlock()

	result := &models.ScalingResult{
		AlgorithmName: alg.Info().Name,
		Sizes:         append([]int(nil), sizes...),
		Results:       make([]*models.BenchmarkResult, 0, len(sizes)),
		Timestamp:     time.Now(),
	}

	for i, size := range sizes {
		if err := ctx.Err(); err != nil {
			result.Cancelled = true
			r.log().Info().Int("completed", i).Int("requested", len(sizes)).Msg("scaling analysis cancelled")
			r.notifyProgress(ProgressEvent{
				EventType: EventSweepStopped,
				Algorithm: result.AlgorithmName,
				Details:   map[string]any{"completed_sizes": i, "requested_sizes": len(sizes)},
			})
			return result, fmt.Errorf("scaling analysis stopped after %d of %d sizes: %w", i, len(sizes), err)
		}

		r.notifyProgress(ProgressEvent{EventType: EventSizeStart, Algorithm: result.AlgorithmName, SizeBits: size, TotalTrials: trials})

		br, err := r.runBenchmark(context.WithoutCancel(ctx), size, alg, trials, cfg)
		if err != nil {
			return result, fmt.Errorf("size %d: %w", size, err)
		}
		result.Results = append(result.Results, br)

		r.notifyProgress(ProgressEvent{EventType: EventSizeComplete, Algorithm: result.AlgorithmName, SizeBits: size, TotalTrials: trials})
	}
	return result, nil
}

// Contender is one algorithm of a comparison. New is called once, inside
// the run's own goroutine, so instances are never shared between runs.
type Contender struct {
	Name string
	New  func() (algorithm.Factorizer, error)
}

// CompareAlgorithms benchmarks every contender at the same size. Runs
// proceed concurrently, each with its own algorithm instance and input
// generator; with a fixed seed every contender sees the same inputs.
// Results are in contender order.
func (r *Runner) CompareAlgorithms(ctx context.Context, contenders []Contender, sizeBits, trials int, cfg algorithm.Config) ([]*models.BenchmarkResult, error) {
	if len(contenders) == 0 {
		return nil, errdefs.InvalidInput("at least one algorithm is required")
	}
	for _, c := range contenders {
		if c.New == nil {
			return nil, errdefs.InvalidInput("contender %q has no constructor", c.Name)
		}
	}

	results := make([]*models.BenchmarkResult, len(contenders))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, r.parallel))

	for i, c := range contenders {
		i, c := i, c
		g.Go(func() error {
			alg, err := c.New()
			if err != nil {
				return fmt.Errorf("creating %s: %w", c.Name, err)
			}
			child := r.child()
			br, err := child.RunBenchmark(gctx, sizeBits, alg, trials, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", c.Name, err)
			}
			results[i] = br
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// child returns a Runner sharing r's configuration and listeners but with its
// own generator.
func (r *Runner) child() *Runner {
	r.progressMu.Lock()
	listeners := append([]ProgressListener(nil), r.listeners...)
	r.progressMu.Unlock()

	return &Runner{
		gen:       numtheory.NewGenerator(r.seed),
		seed:      r.seed,
		inputKind: r.inputKind,
		metrics:   r.metrics,
		logger:    r.logger,
		parallel:  1,
		listeners: listeners,
	}
}

// DefaultQuickSamples is the trial count QuickEstimate uses when samples is 0.
const DefaultQuickSamples = 10

// QuickEstimate measures the classical algorithm on a small sample and
// returns its PFF figure.
func (r *Runner) QuickEstimate(ctx context.Context, sizeBits, samples int) (models.PFFEstimate, error) {
	if samples == 0 {
		samples = DefaultQuickSamples
	}
	alg, err := algorithm.NewClassical(algorithm.Config{})
	if err != nil {
		return models.PFFEstimate{}, err
	}
	br, err := r.RunBenchmark(ctx, sizeBits, alg, samples, algorithm.Config{})
	if err != nil {
		return models.PFFEstimate{}, err
	}
	return br.Estimate(), nil
}

var defaultRunner = NewRunner()

// RunBenchmark runs a benchmark on the package default Runner.
func RunBenchmark(ctx context.Context, sizeBits int, alg algorithm.Factorizer, trials int, cfg algorithm.Config) (*models.BenchmarkResult, error) {
	return defaultRunner.RunBenchmark(ctx, sizeBits, alg, trials, cfg)
}

// ScalingAnalysis runs a sweep on the package default Runner.
func ScalingAnalysis(ctx context.Context, alg algorithm.Factorizer, sizes []int, trials int, cfg algorithm.Config) (*models.ScalingResult, error) {
	return defaultRunner.ScalingAnalysis(ctx, alg, sizes, trials, cfg)
}

// QuickEstimate runs a quick classical estimate on the package default Runner.
func QuickEstimate(ctx context.Context, sizeBits, samples int) (models.PFFEstimate, error) {
	return defaultRunner.QuickEstimate(ctx, sizeBits, samples)
}
