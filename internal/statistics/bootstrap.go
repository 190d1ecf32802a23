package statistics

import (
	"math"
	"math/rand"
	"sort"
)

// ConfidenceInterval holds the result of a bootstrap confidence interval computation.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Mean            float64 `json:"mean"`
	ConfidenceLevel float64 `json:"confidence_level"`
	NumBootstraps   int     `json:"num_bootstraps"`
}

// DefaultBootstrapIterations is the number of bootstrap resamples.
const DefaultBootstrapIterations = 10000

// BootstrapCI computes a bootstrap confidence interval for the mean of the
// given samples using the percentile method. confidenceLevel should be in
// (0, 1), e.g. 0.95. Returns a degenerate interval when fewer than 2 data
// points exist.
func BootstrapCI(samples []float64, confidenceLevel float64) ConfidenceInterval {
	return BootstrapCIWithSeed(samples, confidenceLevel, -1)
}

// BootstrapCIWithSeed is like BootstrapCI but accepts a seed for reproducibility.
// A negative seed uses a non-deterministic source.
func BootstrapCIWithSeed(samples []float64, confidenceLevel float64, seed int64) ConfidenceInterval {
	n := len(samples)
	m := Mean(samples)
	if n < 2 {
		return ConfidenceInterval{
			Lower:           m,
			Upper:           m,
			Mean:            m,
			ConfidenceLevel: confidenceLevel,
			NumBootstraps:   0,
		}
	}

	rng := newRand(seed)
	iters := DefaultBootstrapIterations

	// Bootstrap: resample with replacement, compute mean of each resample
	bootMeans := make([]float64, iters)
	sample := make([]float64, n)
	for i := 0; i < iters; i++ {
		for j := 0; j < n; j++ {
			sample[j] = samples[rng.Intn(n)]
		}
		bootMeans[i] = Mean(sample)
	}

	lo, hi := percentiles(bootMeans, confidenceLevel)
	return ConfidenceInterval{
		Lower:           lo,
		Upper:           hi,
		Mean:            m,
		ConfidenceLevel: confidenceLevel,
		NumBootstraps:   iters,
	}
}

// BootstrapDiffCIWithSeed computes a bootstrap confidence interval for
// mean(a) - mean(b), resampling each group independently. Both groups need
// at least 2 data points; otherwise the interval is degenerate at the
// observed difference.
func BootstrapDiffCIWithSeed(a, b []float64, confidenceLevel float64, seed int64) ConfidenceInterval {
	diff := Mean(a) - Mean(b)
	if len(a) < 2 || len(b) < 2 {
		return ConfidenceInterval{
			Lower:           diff,
			Upper:           diff,
			Mean:            diff,
			ConfidenceLevel: confidenceLevel,
		}
	}

	rng := newRand(seed)
	iters := DefaultBootstrapIterations

	diffs := make([]float64, iters)
	sa := make([]float64, len(a))
	sb := make([]float64, len(b))
	for i := 0; i < iters; i++ {
		for j := range sa {
			sa[j] = a[rng.Intn(len(a))]
		}
		for j := range sb {
			sb[j] = b[rng.Intn(len(b))]
		}
		diffs[i] = Mean(sa) - Mean(sb)
	}

	lo, hi := percentiles(diffs, confidenceLevel)
	return ConfidenceInterval{
		Lower:           lo,
		Upper:           hi,
		Mean:            diff,
		ConfidenceLevel: confidenceLevel,
		NumBootstraps:   iters,
	}
}

// IsSignificant returns true if the confidence interval does not contain zero,
// indicating statistical significance at the given confidence level.
func IsSignificant(ci ConfidenceInterval) bool {
	return ci.Lower > 0 || ci.Upper < 0
}

func newRand(seed int64) *rand.Rand {
	if seed < 0 {
		seed = rand.Int63()
	}
	return rand.New(rand.NewSource(seed))
}

// percentiles sorts values in place and returns the two-sided bounds for
// the confidence level.
func percentiles(values []float64, confidenceLevel float64) (float64, float64) {
	sort.Float64s(values)

	iters := len(values)
	alpha := 1.0 - confidenceLevel
	loIdx := int(math.Floor(alpha / 2.0 * float64(iters)))
	hiIdx := int(math.Floor((1.0 - alpha/2.0) * float64(iters)))
	if hiIdx >= iters {
		hiIdx = iters - 1
	}
	return values[loIdx], values[hiIdx]
}
