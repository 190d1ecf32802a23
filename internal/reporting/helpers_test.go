package reporting

import (
	"math/big"
	"testing"
	"time"

	"github.com/pffbench/pff/internal/algorithm"
	"github.com/pffbench/pff/internal/errdefs"
	"github.com/pffbench/pff/internal/models"
	"github.com/stretchr/testify/require"
)

func ok(trial int, n, p, q int64, elapsed time.Duration) models.TrialOutcome {
	return models.TrialOutcome{
		Trial:     trial,
		Input:     big.NewInt(n),
		Elapsed:   elapsed,
		Succeeded: true,
		Factors:   []*big.Int{big.NewInt(p), big.NewInt(q)},
	}
}

func failed(trial int, n int64, kind, msg string) models.TrialOutcome {
	return models.TrialOutcome{
		Trial:     trial,
		Input:     big.NewInt(n),
		Elapsed:   50 * time.Millisecond,
		Error:     msg,
		ErrorKind: kind,
	}
}

// newTestResult is a 16-bit run with two successes, a timeout and a bad answer.
func newTestResult(t *testing.T) *models.BenchmarkResult {
	t.Helper()
	r, err := models.NewBenchmarkResult(models.ResultMeta{
		SizeBits:      16,
		AlgorithmInfo: algorithm.Info{Name: "classical", Kind: algorithm.KindClassical},
		Backend:       "cpu",
		Timestamp:     time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		Seed:          1,
	}, []models.TrialOutcome{
		ok(1, 39203, 197, 199, 100*time.Millisecond),
		failed(2, 44461, errdefs.KindFactorizationTimeout, "factorization timeout: gave up"),
		ok(3, 35263, 179, 197, 300*time.Millisecond),
		failed(4, 52961, errdefs.KindVerificationFailure, "verification failure: 7 × 11 != 52961"),
	})
	require.NoError(t, err)
	return r
}

func newNamedResult(t *testing.T, name string, elapsed ...time.Duration) *models.BenchmarkResult {
	t.Helper()
	trials := make([]models.TrialOutcome, len(elapsed))
	for i, d := range elapsed {
		trials[i] = ok(i+1, 15, 3, 5, d)
	}
	r, err := models.NewBenchmarkResult(models.ResultMeta{
		SizeBits:      24,
		AlgorithmInfo: algorithm.Info{Name: name, Kind: algorithm.KindClassical},
		Seed:          1,
	}, trials)
	require.NoError(t, err)
	return r
}
