package orchestration

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/pffbench/pff/internal/algorithm"
	"github.com/pffbench/pff/internal/algorithm/algorithmmock"
	"github.com/pffbench/pff/internal/errdefs"
	"github.com/pffbench/pff/internal/metrics"
	"github.com/pffbench/pff/internal/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var stubInfo = algorithm.Info{Name: "stub", Kind: algorithm.KindClassical}

func newTestRunner(opts ...RunnerOption) *Runner {
	return NewRunner(append([]RunnerOption{WithSeed(1), WithLogger(zerolog.Nop())}, opts...)...)
}

func newStub(t *testing.T) *algorithmmock.MockFactorizer {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := algorithmmock.NewMockFactorizer(ctrl)
	m.EXPECT().Info().Return(stubInfo).AnyTimes()
	return m
}

func realFactors(t *testing.T) func(ctx context.Context, n *big.Int) ([]*big.Int, error) {
	t.Helper()
	classical, err := algorithm.NewClassical(algorithm.Config{})
	require.NoError(t, err)
	return classical.Factor
}

func TestRunBenchmarkSuccessRateBookkeeping(t *testing.T) {
	for _, trials := range []int{1, 10, 100} {
		t.Run(fmt.Sprintf("%d trials", trials), func(t *testing.T) {
			stub := newStub(t)
			factor := realFactors(t)

			calls := 0
			stub.EXPECT().Factor(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, n *big.Int) ([]*big.Int, error) {
					calls++
					if calls%3 == 0 {
						return nil, errdefs.FactorizationTimeout("injected")
					}
					return factor(ctx, n)
				}).Times(trials)

			result, err := newTestRunner().RunBenchmark(context.Background(), 16, stub, trials, algorithm.Config{})
			require.NoError(t, err)

			wantOK := trials - trials/3
			assert.Equal(t, trials, result.TrialCount)
			assert.Len(t, result.Trials, trials)
			assert.Equal(t, wantOK, result.SuccessfulCount)
			assert.InDelta(t, float64(wantOK)/float64(trials), result.SuccessRate, 1e-12)

			for i, trial := range result.Trials {
				assert.Equal(t, i+1, trial.Trial, "trials must be in execution order")
				if trial.Succeeded {
					assert.True(t, algorithm.VerifyFactors(trial.Input, trial.Factors))
					assert.Empty(t, trial.ErrorKind)
				} else {
					assert.Empty(t, trial.Factors)
					assert.Equal(t, errdefs.KindFactorizationTimeout, trial.ErrorKind)
				}
			}
		})
	}
}

func TestRunBenchmarkZeroSuccesses(t *testing.T) {
	stub := newStub(t)
	stub.EXPECT().Factor(gomock.Any(), gomock.Any()).
		Return(nil, errdefs.FactorizationTimeout("always")).Times(5)

	result, err := newTestRunner().RunBenchmark(context.Background(), 32, stub, 5, algorithm.Config{})
	require.NoError(t, err)

	assert.Len(t, result.Trials, 5)
	assert.Equal(t, 5, result.TrialCount)
	assert.Zero(t, result.SuccessRate)
	assert.Nil(t, result.PFF)
	assert.Nil(t, result.MeanTime)
	assert.Nil(t, result.StdDev)
	for _, trial := range result.Trials {
		assert.False(t, trial.Succeeded)
		assert.Equal(t, errdefs.KindFactorizationTimeout, trial.ErrorKind)
	}
}

func TestRunBenchmarkVerifiesFactors(t *testing.T) {
	stub := newStub(t)
	stub.EXPECT().Factor(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, n *big.Int) ([]*big.Int, error) {
			// off by one in the last factor
			return []*big.Int{big.NewInt(1), new(big.Int).Add(n, big.NewInt(1))}, nil
		}).Times(3)

	result, err := newTestRunner().RunBenchmark(context.Background(), 20, stub, 3, algorithm.Config{})
	require.NoError(t, err)

	assert.Zero(t, result.SuccessfulCount)
	for _, trial := range result.Trials {
		assert.Equal(t, errdefs.KindVerificationFailure, trial.ErrorKind)
		assert.Empty(t, trial.Factors)
	}
}

func TestRunBenchmarkRecoversPanics(t *testing.T) {
	stub := newStub(t)
	factor := realFactors(t)
	gomock.InOrder(
		stub.EXPECT().Factor(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, n *big.Int) ([]*big.Int, error) {
			panic("index out of range")
		}),
		stub.EXPECT().Factor(gomock.Any(), gomock.Any()).DoAndReturn(factor),
	)

	result, err := newTestRunner().RunBenchmark(context.Background(), 16, stub, 2, algorithm.Config{})
	require.NoError(t, err)

	require.Len(t, result.Trials, 2)
	assert.Equal(t, errdefs.KindPanic, result.Trials[0].ErrorKind)
	assert.Contains(t, result.Trials[0].Error, "index out of range")
	assert.True(t, result.Trials[1].Succeeded)
}

func TestRunBenchmarkAbandonsSlowTrials(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	stub := newStub(t)
	factor := realFactors(t)
	gomock.InOrder(
		// ignores ctx entirely; only the harness deadline can move on
		stub.EXPECT().Factor(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, n *big.Int) ([]*big.Int, error) {
			<-release
			return factor(context.Background(), n)
		}),
		stub.EXPECT().Factor(gomock.Any(), gomock.Any()).DoAndReturn(factor),
	)

	start := time.Now()
	result, err := newTestRunner().RunBenchmark(context.Background(), 16, stub, 2, algorithm.Config{TimeoutSeconds: 0.05})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)

	require.Len(t, result.Trials, 2)
	assert.False(t, result.Trials[0].Succeeded)
	assert.Equal(t, errdefs.KindDeadlineExceeded, result.Trials[0].ErrorKind)
	assert.GreaterOrEqual(t, result.Trials[0].Elapsed, 50*time.Millisecond)
	assert.True(t, result.Trials[1].Succeeded)
	assert.Equal(t, 1, result.SuccessfulCount)
}

func TestRunBenchmarkCooperativeDeadline(t *testing.T) {
	stub := newStub(t)
	stub.EXPECT().Factor(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, n *big.Int) ([]*big.Int, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	result, err := newTestRunner().RunBenchmark(context.Background(), 16, stub, 1, algorithm.Config{TimeoutSeconds: 0.01})
	require.NoError(t, err)
	assert.Equal(t, errdefs.KindDeadlineExceeded, result.Trials[0].ErrorKind)
}

func TestRunBenchmarkPreconditions(t *testing.T) {
	stub := newStub(t)
	ctx := context.Background()
	r := newTestRunner()

	tests := []struct {
		name    string
		size    int
		alg     algorithm.Factorizer
		trials  int
		cfg     algorithm.Config
		wantErr error
	}{
		{"size too small", 3, stub, 1, algorithm.Config{}, errdefs.ErrInvalidInput},
		{"negative size", -8, stub, 1, algorithm.Config{}, errdefs.ErrInvalidInput},
		{"zero trials", 16, stub, 0, algorithm.Config{}, errdefs.ErrInvalidInput},
		{"nil algorithm", 16, nil, 1, algorithm.Config{}, errdefs.ErrInvalidInput},
		{"bad config", 16, stub, 1, algorithm.Config{Shots: -1}, errdefs.ErrConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := r.RunBenchmark(ctx, tt.size, tt.alg, tt.trials, tt.cfg)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
		})
	}
}

func TestRunBenchmarkCompositeInputs(t *testing.T) {
	classical, err := algorithm.NewClassical(algorithm.Config{})
	require.NoError(t, err)

	r := newTestRunner(WithInputKind(models.InputComposite))
	result, err := r.RunBenchmark(context.Background(), 3, classical, 5, algorithm.Config{})
	require.NoError(t, err)

	assert.Equal(t, models.InputComposite, result.InputKind)
	assert.Equal(t, 5, result.SuccessfulCount)
	for _, trial := range result.Trials {
		assert.Equal(t, 3, trial.Input.BitLen())
	}
}

func TestRunBenchmarkSeedIsReproducible(t *testing.T) {
	classical, err := algorithm.NewClassical(algorithm.Config{})
	require.NoError(t, err)

	a, err := NewRunner(WithSeed(42), WithLogger(zerolog.Nop())).RunBenchmark(context.Background(), 40, classical, 4, algorithm.Config{})
	require.NoError(t, err)
	b, err := NewRunner(WithSeed(42), WithLogger(zerolog.Nop())).RunBenchmark(context.Background(), 40, classical, 4, algorithm.Config{})
	require.NoError(t, err)

	for i := range a.Trials {
		assert.Equal(t, a.Trials[i].Input.String(), b.Trials[i].Input.String())
	}
}

func TestRunBenchmarkStopsBetweenTrialsOnCancel(t *testing.T) {
	classical, err := algorithm.NewClassical(algorithm.Config{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := newTestRunner()
	r.OnProgress(func(ev ProgressEvent) {
		if ev.EventType == EventTrialComplete && ev.Trial == 2 {
			cancel()
		}
	})

	result, err := r.RunBenchmark(ctx, 24, classical, 10, algorithm.Config{})
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Equal(t, 2, result.TrialCount)
	assert.Equal(t, 2, result.SuccessfulCount)
}

func TestRunBenchmarkDropsTrialInterruptedByCancel(t *testing.T) {
	for _, timeout := range []float64{0, 30} {
		t.Run(fmt.Sprintf("timeout %vs", timeout), func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			stub := newStub(t)
			factor := realFactors(t)
			gomock.InOrder(
				stub.EXPECT().Factor(gomock.Any(), gomock.Any()).DoAndReturn(factor).Times(2),
				stub.EXPECT().Factor(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, n *big.Int) ([]*big.Int, error) {
					cancel()
					<-ctx.Done()
					return nil, ctx.Err()
				}),
			)

			m := metrics.New()
			result, err := newTestRunner(WithMetrics(m)).RunBenchmark(ctx, 16, stub, 5, algorithm.Config{TimeoutSeconds: timeout})
			require.ErrorIs(t, err, context.Canceled)
			require.NotNil(t, result)

			assert.Equal(t, 2, result.TrialCount)
			assert.Equal(t, 2, result.SuccessfulCount)
			assert.Equal(t, 1.0, result.SuccessRate)
			assert.Empty(t, result.Failed())
			assert.Equal(t, 0.0, testutil.ToFloat64(m.TrialsTotal.WithLabelValues("stub", "16", errdefs.KindError)))
		})
	}
}

func TestRunBenchmarkCancelDuringFirstTrial(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stub := newStub(t)
	stub.EXPECT().Factor(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, n *big.Int) ([]*big.Int, error) {
		cancel()
		<-ctx.Done()
		return nil, fmt.Errorf("rho interrupted: %w", ctx.Err())
	})

	result, err := newTestRunner().RunBenchmark(ctx, 16, stub, 3, algorithm.Config{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestRunBenchmarkProgressEvents(t *testing.T) {
	classical, err := algorithm.NewClassical(algorithm.Config{})
	require.NoError(t, err)

	var mu sync.Mutex
	var events []ProgressEvent
	r := newTestRunner()
	r.OnProgress(func(ev ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	})

	_, err = r.RunBenchmark(context.Background(), 16, classical, 3, algorithm.Config{})
	require.NoError(t, err)

	require.NotEmpty(t, events)
	assert.Equal(t, EventRunStart, events[0].EventType)
	assert.Equal(t, EventRunComplete, events[len(events)-1].EventType)
	assert.Equal(t, PhaseDone, events[len(events)-1].Phase)

	var phases []Phase
	completed := 0
	for _, ev := range events {
		switch ev.EventType {
		case EventPhase:
			phases = append(phases, ev.Phase)
		case EventTrialComplete:
			completed++
			assert.True(t, ev.Succeeded)
			assert.Equal(t, completed, ev.Trial)
		}
	}
	assert.Equal(t, 3, completed)

	perTrial := []Phase{PhaseGenerating, PhaseExecuting, PhaseVerifying, PhaseRecording}
	var want []Phase
	for i := 0; i < 3; i++ {
		want = append(want, perTrial...)
	}
	want = append(want, PhaseAggregating, PhaseDone)
	assert.Equal(t, want, phases)
}

func TestRunBenchmarkRecordsMetrics(t *testing.T) {
	stub := newStub(t)
	factor := realFactors(t)
	gomock.InOrder(
		stub.EXPECT().Factor(gomock.Any(), gomock.Any()).DoAndReturn(factor).Times(2),
		stub.EXPECT().Factor(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom")),
	)

	m := metrics.New()
	result, err := newTestRunner(WithMetrics(m)).RunBenchmark(context.Background(), 16, stub, 3, algorithm.Config{})
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TrialsTotal.WithLabelValues("stub", "16", metrics.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TrialsTotal.WithLabelValues("stub", "16", errdefs.KindError)))
	assert.InDelta(t, *result.PFF, testutil.ToFloat64(m.PFF.WithLabelValues("stub", "16")), 1e-6)
}

func TestPackageLevelRunBenchmark(t *testing.T) {
	classical, err := algorithm.NewClassical(algorithm.Config{})
	require.NoError(t, err)

	result, err := RunBenchmark(context.Background(), 20, classical, 3, algorithm.Config{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.SuccessfulCount)
	assert.Equal(t, "classical", result.AlgorithmName)
	assert.Equal(t, algorithm.DefaultBackend, result.Backend)
	require.NotNil(t, result.PFF)
}
