package models

import (
	"encoding/json"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/pffbench/pff/internal/algorithm"
	"github.com/pffbench/pff/internal/errdefs"
	"github.com/pffbench/pff/internal/statistics"
)

// InputKind selects what the harness generates for each trial.
type InputKind string

const (
	InputSemiprime InputKind = "semiprime"
	InputComposite InputKind = "composite"
)

// Valid reports whether k is a known input kind.
func (k InputKind) Valid() bool {
	return k == InputSemiprime || k == InputComposite
}

// MinBits is the smallest size the generator for k accepts.
func (k InputKind) MinBits() int {
	if k == InputComposite {
		return 3
	}
	return 4
}

// TrialOutcome is the record of a single factorization attempt.
type TrialOutcome struct {
	Trial     int           `json:"trial"`
	Input     *big.Int      `json:"input"`
	Elapsed   time.Duration `json:"-"`
	Succeeded bool          `json:"succeeded"`
	Factors   []*big.Int    `json:"factors"`
	Error     string        `json:"error,omitempty"`
	ErrorKind string        `json:"error_kind,omitempty"`
}

// MarshalJSON writes Elapsed as float seconds and Factors as [] when empty.
func (t TrialOutcome) MarshalJSON() ([]byte, error) {
	type alias TrialOutcome
	factors := t.Factors
	if factors == nil {
		factors = []*big.Int{}
	}
	return json.Marshal(struct {
		alias
		Elapsed float64    `json:"elapsed"`
		Factors []*big.Int `json:"factors"`
	}{
		alias:   alias(t),
		Elapsed: t.Elapsed.Seconds(),
		Factors: factors,
	})
}

// UnmarshalJSON reads the form written by MarshalJSON.
func (t *TrialOutcome) UnmarshalJSON(data []byte) error {
	type alias TrialOutcome
	var v struct {
		*alias
		Elapsed float64 `json:"elapsed"`
	}
	v.alias = (*alias)(t)
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	t.Elapsed = time.Duration(v.Elapsed * float64(time.Second))
	return nil
}

// BenchmarkResult aggregates every trial of one run at one input size.
// Timing fields are seconds over successful trials only and are nil when no
// trial succeeded.
type BenchmarkResult struct {
	RunID           uuid.UUID      `json:"run_id"`
	SizeBits        int            `json:"size_bits"`
	AlgorithmName   string         `json:"algorithm_name"`
	Backend         string         `json:"backend"`
	Timestamp       time.Time      `json:"timestamp"`
	InputKind       InputKind      `json:"input_kind"`
	Trials          []TrialOutcome `json:"trials"`
	TrialCount      int            `json:"trial_count"`
	SuccessfulCount int            `json:"successful_count"`
	SuccessRate     float64        `json:"success_rate"`
	MeanTime        *float64       `json:"mean_time,omitempty"`
	MedianTime      *float64       `json:"median_time,omitempty"`
	MinTime         *float64       `json:"min_time,omitempty"`
	MaxTime         *float64       `json:"max_time,omitempty"`
	StdDev          *float64       `json:"std_dev,omitempty"`
	PFF             *float64       `json:"pff,omitempty"`
	AlgorithmInfo   algorithm.Info `json:"algorithm_info"`

	// Bootstrap confidence interval of the mean successful time (2+ successes)
	MeanTimeCI95 *statistics.ConfidenceInterval `json:"mean_time_ci95,omitempty"`
}

// ResultMeta is what the harness knows about a run besides its trials.
type ResultMeta struct {
	SizeBits      int
	AlgorithmInfo algorithm.Info
	Backend       string
	InputKind     InputKind
	Timestamp     time.Time
	// Seed for the bootstrap resampling; negative is non-deterministic.
	Seed int64
}

// NewBenchmarkResult derives every statistic from trials. trials must be
// non-empty and in execution order.
func NewBenchmarkResult(meta ResultMeta, trials []TrialOutcome) (*BenchmarkResult, error) {
	if len(trials) == 0 {
		return nil, errdefs.InvalidInput("a benchmark result needs at least one trial")
	}
	if meta.InputKind == "" {
		meta.InputKind = InputSemiprime
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}

	r := &BenchmarkResult{
		RunID:         uuid.New(),
		SizeBits:      meta.SizeBits,
		AlgorithmName: meta.AlgorithmInfo.Name,
		Backend:       meta.Backend,
		Timestamp:     meta.Timestamp,
		InputKind:     meta.InputKind,
		Trials:        trials,
		TrialCount:    len(trials),
		AlgorithmInfo: meta.AlgorithmInfo,
	}

	var times []float64
	for _, t := range trials {
		if t.Succeeded {
			times = append(times, t.Elapsed.Seconds())
		}
	}
	r.SuccessfulCount = len(times)
	r.SuccessRate = float64(len(times)) / float64(len(trials))

	if len(times) == 0 {
		return r, nil
	}

	mean := statistics.Mean(times)
	median := statistics.Median(times)
	lo, hi := statistics.MinMax(times)
	std := statistics.SampleStdDev(times)
	r.MeanTime, r.MedianTime, r.MinTime, r.MaxTime, r.StdDev = &mean, &median, &lo, &hi, &std

	if len(times) >= 2 {
		ci := statistics.BootstrapCIWithSeed(times, 0.95, meta.Seed)
		r.MeanTimeCI95 = &ci
	}

	// A clock too coarse to see the work leaves mean at 0; PFF stays absent.
	if pff, err := CalculatePFF(mean); err == nil {
		r.PFF = &pff
	}
	return r, nil
}

// Failed returns the trials that did not succeed.
func (r *BenchmarkResult) Failed() []TrialOutcome {
	var out []TrialOutcome
	for _, t := range r.Trials {
		if !t.Succeeded {
			out = append(out, t)
		}
	}
	return out
}

// Estimate reduces the result to its PFF figure.
func (r *BenchmarkResult) Estimate() PFFEstimate {
	return PFFEstimate{
		SizeBits:    r.SizeBits,
		TimePerRun:  r.MeanTime,
		PFF:         r.PFF,
		SuccessRate: r.SuccessRate,
	}
}

// ToJSON renders the result as indented JSON.
func (r *BenchmarkResult) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// SeriesPoint is one size of a scaling series. Value is nil when the size
// had no successful trial.
type SeriesPoint struct {
	SizeBits int      `json:"size_bits"`
	Value    *float64 `json:"value,omitempty"`
}

// ScalingResult holds one BenchmarkResult per completed size, in the order
// the sizes were requested.
type ScalingResult struct {
	AlgorithmName string             `json:"algorithm_name"`
	Sizes         []int              `json:"sizes"`
	Results       []*BenchmarkResult `json:"results"`
	Cancelled     bool               `json:"cancelled,omitempty"`
	Timestamp     time.Time          `json:"timestamp"`
}

// PFFSeries returns the PFF of each completed size.
func (s *ScalingResult) PFFSeries() []SeriesPoint {
	return s.series(func(r *BenchmarkResult) *float64 { return r.PFF })
}

// TimingSeries returns the mean successful time of each completed size.
func (s *ScalingResult) TimingSeries() []SeriesPoint {
	return s.series(func(r *BenchmarkResult) *float64 { return r.MeanTime })
}

func (s *ScalingResult) series(value func(*BenchmarkResult) *float64) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(s.Results))
	for _, r := range s.Results {
		points = append(points, SeriesPoint{SizeBits: r.SizeBits, Value: value(r)})
	}
	return points
}

// ToJSON renders the result as indented JSON.
func (s *ScalingResult) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
