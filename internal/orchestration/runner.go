// Package orchestration runs factorization benchmarks: it generates inputs,
// times each factorization, verifies the answer and aggregates the trials
// into results.
package orchestration

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"runtime"
	"sync"
	"time"

	"github.com/pffbench/pff/internal/algorithm"
	"github.com/pffbench/pff/internal/errdefs"
	"github.com/pffbench/pff/internal/logging"
	"github.com/pffbench/pff/internal/metrics"
	"github.com/pffbench/pff/internal/models"
	"github.com/pffbench/pff/internal/numtheory"
	"github.com/rs/zerolog"
)

// Runner executes benchmark runs. Trials of one run are strictly
// sequential, and a Runner executes one run at a time; CompareAlgorithms
// is the only place runs overlap, each on its own child Runner.
type Runner struct {
	runMu     sync.Mutex
	gen       *numtheory.Generator
	seed      int64
	inputKind models.InputKind
	metrics   *metrics.BenchMetrics
	logger    *zerolog.Logger
	parallel  int

	// Progress tracking
	progressMu sync.Mutex
	listeners  []ProgressListener
}

// ProgressListener receives progress updates. Listeners registered on a
// Runner used by CompareAlgorithms are called from several goroutines.
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

// EventType constants
const (
	EventRunStart      EventType = "run_start"
	EventRunComplete   EventType = "run_complete"
	EventTrialStart    EventType = "trial_start"
	EventTrialComplete EventType = "trial_complete"
	EventPhase         EventType = "phase"
	EventSizeStart     EventType = "size_start"
	EventSizeComplete  EventType = "size_complete"
	EventSweepStopped  EventType = "sweep_stopped"
)

// Phase is the state of a run.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseGenerating  Phase = "generating"
	PhaseExecuting   Phase = "executing"
	PhaseVerifying   Phase = "verifying"
	PhaseRecording   Phase = "recording"
	PhaseAggregating Phase = "aggregating"
	PhaseDone        Phase = "done"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType   EventType
	Phase       Phase
	Algorithm   string
	SizeBits    int
	Trial       int
	TotalTrials int
	Succeeded   bool
	Elapsed     time.Duration
	ErrorKind   string
	Details     map[string]any
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithSeed makes input generation reproducible. A negative seed draws a
// fresh one.
func WithSeed(seed int64) RunnerOption {
	return func(r *Runner) {
		r.seed = seed
		r.gen = numtheory.NewGenerator(seed)
	}
}

// WithInputKind selects semiprime (default) or arbitrary composite inputs.
func WithInputKind(kind models.InputKind) RunnerOption {
	return func(r *Runner) {
		r.inputKind = kind
	}
}

// WithLogger overrides the global logger.
func WithLogger(l zerolog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = &l
	}
}

// WithMetrics records every trial and run into m.
func WithMetrics(m *metrics.BenchMetrics) RunnerOption {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithParallelism caps how many runs CompareAlgorithms executes at once.
func WithParallelism(n int) RunnerOption {
	return func(r *Runner) {
		r.parallel = n
	}
}

// NewRunner creates a Runner. Without options it generates semiprimes from
// a non-deterministic seed.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		seed:      -1,
		inputKind: models.InputSemiprime,
		parallel:  runtime.NumCPU(),
		listeners: []ProgressListener{},
	}
	for _, o := range opts {
		o(r)
	}
	if r.gen == nil {
		r.gen = numtheory.NewGenerator(r.seed)
	}
	return r
}

// OnProgress registers a progress listener
func (r *Runner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *Runner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	listeners := make([]ProgressListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.progressMu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

func (r *Runner) log() *zerolog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return logging.L()
}

// RunBenchmark runs trials factorizations of fresh sizeBits-bit inputs
// through alg and aggregates them. Failed trials are recorded, never
// returned as errors; the error return is for bad arguments and for ctx
// being cancelled, in which case the trial in progress is dropped and the
// trials completed so far are returned alongside the error.
func (r *Runner) RunBenchmark(ctx context.Context, sizeBits int, alg algorithm.Factorizer, trials int, cfg algorithm.Config) (*models.BenchmarkResult, error) {
	if err := r.checkRun(sizeBits, alg, trials, cfg); err != nil {
		return nil, err
	}

	r.runMu.Lock()
	defer r.runMu.Unlock()
	return r.runBenchmark(ctx, sizeBits, alg, trials, cfg)
}

func (r *Runner) checkRun(sizeBits int, alg algorithm.Factorizer, trials int, cfg algorithm.Config) error {
	if alg == nil {
		return errdefs.InvalidInput("algorithm is nil")
	}
	if !r.inputKind.Valid() {
		return errdefs.InvalidInput("unknown input kind %q", r.inputKind)
	}
	if minBits := r.inputKind.MinBits(); sizeBits < minBits {
		return errdefs.InvalidInput("%s size must be >= %d bits, got %d", r.inputKind, minBits, sizeBits)
	}
	if trials < 1 {
		return errdefs.InvalidInput("trials must be >= 1, got %d", trials)
	}
	return cfg.Validate()
}

// run is the per-run state threaded through the trial loop.
type run struct {
	name     string
	sizeBits int
	trials   int
	phase    Phase
	log      zerolog.Logger
}

func (r *Runner) enter(st *run, p Phase) {
	st.phase = p
	st.log.Debug().Str("phase", string(p)).Msg("phase")
	r.notifyProgress(ProgressEvent{EventType: EventPhase, Phase: p, Algorithm: st.name, SizeBits: st.sizeBits})
}

func (r *Runner) runBenchmark(ctx context.Context, sizeBits int, alg algorithm.Factorizer, trials int, cfg algorithm.Config) (*models.BenchmarkResult, error) {
	info := alg.Info()
	cfg = cfg.WithDefaults()
	st := &run{
		name:     info.Name,
		sizeBits: sizeBits,
		trials:   trials,
		phase:    PhaseIdle,
		log:      r.log().With().Str("algorithm", info.Name).Int("size_bits", sizeBits).Logger(),
	}
	start := time.Now()

	r.notifyProgress(ProgressEvent{
		EventType:   EventRunStart,
		Phase:       PhaseIdle,
		Algorithm:   info.Name,
		SizeBits:    sizeBits,
		TotalTrials: trials,
	})

	outcomes := make([]models.TrialOutcome, 0, trials)
	var stopErr error
	for i := 1; i <= trials; i++ {
		if err := ctx.Err(); err != nil {
			stopErr = fmt.Errorf("run stopped after %d of %d trials: %w", len(outcomes), trials, err)
			break
		}

		outcome, err := r.runTrial(ctx, st, i, alg, cfg)
		if errors.Is(err, errTrialInterrupted) {
			stopErr = fmt.Errorf("run stopped during trial %d of %d: %w", i, trials, ctx.Err())
			break
		}
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcome)
	}

	if len(outcomes) == 0 {
		return nil, stopErr
	}

	r.enter(st, PhaseAggregating)
	result, err := models.NewBenchmarkResult(models.ResultMeta{
		SizeBits:      sizeBits,
		AlgorithmInfo: info,
		Backend:       cfg.Backend,
		InputKind:     r.inputKind,
		Timestamp:     start,
		Seed:          r.seed,
	}, outcomes)
	if err != nil {
		return nil, err
	}
	if r.metrics != nil {
		r.metrics.ObserveRun(info.Name, sizeBits, result.SuccessRate, result.PFF)
	}

	r.enter(st, PhaseDone)
	ev := st.log.Info().
		Int("trials", result.TrialCount).
		Int("successful", result.SuccessfulCount).
		Dur("wall", time.Since(start))
	if result.PFF != nil {
		ev = ev.Float64("pff", *result.PFF)
	}
	ev.Msg("benchmark complete")

	r.notifyProgress(ProgressEvent{
		EventType:   EventRunComplete,
		Phase:       PhaseDone,
		Algorithm:   info.Name,
		SizeBits:    sizeBits,
		TotalTrials: trials,
		Elapsed:     time.Since(start),
		Details: map[string]any{
			"success_rate": result.SuccessRate,
			"successful":   result.SuccessfulCount,
		},
	})
	return result, stopErr
}

// errTrialInterrupted reports a trial cut short by cancellation of the run.
// Such a trial is discarded rather than recorded.
var errTrialInterrupted = errors.New("trial interrupted")

// runTrial generates one input, factors it and records the outcome. Only a
// generator failure or an interrupted trial is returned as an error.
func (r *Runner) runTrial(ctx context.Context, st *run, trial int, alg algorithm.Factorizer, cfg algorithm.Config) (models.TrialOutcome, error) {
	r.enter(st, PhaseGenerating)
	n, err := r.generate(st.sizeBits)
	if err != nil {
		return models.TrialOutcome{}, fmt.Errorf("generating %d-bit input: %w", st.sizeBits, err)
	}

	r.notifyProgress(ProgressEvent{
		EventType:   EventTrialStart,
		Phase:       PhaseGenerating,
		Algorithm:   st.name,
		SizeBits:    st.sizeBits,
		Trial:       trial,
		TotalTrials: st.trials,
	})

	r.enter(st, PhaseExecuting)
	start := time.Now()
	factors, err := invoke(ctx, alg, n, cfg.Timeout())
	elapsed := time.Since(start)

	if err != nil && ctx.Err() != nil {
		st.log.Debug().Int("trial", trial).Err(err).Msg("trial interrupted")
		return models.TrialOutcome{}, errTrialInterrupted
	}

	if err == nil {
		r.enter(st, PhaseVerifying)
		if !algorithm.VerifyFactors(n, factors) {
			err = errdefs.VerificationFailure("%v does not multiply to %s", factors, n)
		}
	}

	r.enter(st, PhaseRecording)
	outcome := models.TrialOutcome{
		Trial:     trial,
		Input:     n,
		Elapsed:   elapsed,
		Succeeded: err == nil,
	}
	if err == nil {
		outcome.Factors = factors
	} else {
		outcome.Error = err.Error()
		outcome.ErrorKind = errdefs.Kind(err)
		st.log.Debug().Int("trial", trial).Str("input", n.String()).Err(err).Msg("trial failed")
	}

	if r.metrics != nil {
		r.metrics.ObserveTrial(st.name, st.sizeBits, elapsed, outcome.ErrorKind)
	}
	r.notifyProgress(ProgressEvent{
		EventType:   EventTrialComplete,
		Phase:       PhaseRecording,
		Algorithm:   st.name,
		SizeBits:    st.sizeBits,
		Trial:       trial,
		TotalTrials: st.trials,
		Succeeded:   outcome.Succeeded,
		Elapsed:     elapsed,
		ErrorKind:   outcome.ErrorKind,
	})
	return outcome, nil
}

func (r *Runner) generate(bits int) (*big.Int, error) {
	if r.inputKind == models.InputComposite {
		return r.gen.GenerateComposite(bits)
	}
	n, _, _, err := r.gen.GenerateSemiprime(bits)
	return n, err
}

type factorResult struct {
	factors []*big.Int
	err     error
}

// invoke calls alg.Factor. With a positive timeout the call runs on its own
// goroutine and is abandoned at the deadline; its late result lands in a
// buffered channel nobody reads.
func invoke(ctx context.Context, alg algorithm.Factorizer, n *big.Int, timeout time.Duration) ([]*big.Int, error) {
	if timeout <= 0 {
		return safeFactor(ctx, alg, n)
	}

	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan factorResult, 1)
	go func() {
		factors, err := safeFactor(tctx, alg, n)
		done <- factorResult{factors: factors, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil && errors.Is(res.err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", errdefs.ErrDeadlineExceeded, timeout)
		}
		return res.factors, res.err
	case <-tctx.Done():
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", errdefs.ErrDeadlineExceeded, timeout)
	}
}

// safeFactor converts a panicking algorithm into an error.
func safeFactor(ctx context.Context, alg algorithm.Factorizer, n *big.Int) (factors []*big.Int, err error) {
	defer func() {
		if p := recover(); p != nil {
			factors, err = nil, fmt.Errorf("%w: %v", errdefs.ErrPanic, p)
		}
	}()
	return alg.Factor(ctx, n)
}
