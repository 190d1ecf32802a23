package statistics

import (
	"math"
	"testing"
)

func TestBootstrapCI_EmptySamples(t *testing.T) {
	ci := BootstrapCI(nil, 0.95)
	if ci.Mean != 0.0 || ci.Lower != 0.0 || ci.Upper != 0.0 {
		t.Errorf("expected zero CI for empty input, got %+v", ci)
	}
	if ci.NumBootstraps != 0 {
		t.Errorf("expected 0 bootstraps for empty input, got %d", ci.NumBootstraps)
	}
}

func TestBootstrapCI_SingleValue(t *testing.T) {
	ci := BootstrapCI([]float64{0.75}, 0.95)
	if ci.Mean != 0.75 || ci.Lower != 0.75 || ci.Upper != 0.75 {
		t.Errorf("expected degenerate CI for single value, got %+v", ci)
	}
}

func TestBootstrapCI_IdenticalValues(t *testing.T) {
	ci := BootstrapCIWithSeed([]float64{0.5, 0.5, 0.5, 0.5}, 0.95, 42)
	if math.Abs(ci.Lower-0.5) > 1e-9 || math.Abs(ci.Upper-0.5) > 1e-9 {
		t.Errorf("expected CI [0.5, 0.5] for identical values, got [%f, %f]", ci.Lower, ci.Upper)
	}
}

func TestBootstrapCI_KnownDistribution(t *testing.T) {
	// 10 trial times (seconds) with known mean 0.55
	samples := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	ci := BootstrapCIWithSeed(samples, 0.95, 42)

	if ci.Mean < 0.54 || ci.Mean > 0.56 {
		t.Errorf("expected mean ~0.55, got %f", ci.Mean)
	}
	if ci.Lower >= ci.Mean {
		t.Errorf("lower bound %f should be < mean %f", ci.Lower, ci.Mean)
	}
	if ci.Upper <= ci.Mean {
		t.Errorf("upper bound %f should be > mean %f", ci.Upper, ci.Mean)
	}
	if ci.Lower < 0 || ci.Upper > 1.0 {
		t.Errorf("CI should stay within the sample range, got [%f, %f]", ci.Lower, ci.Upper)
	}
	if ci.NumBootstraps != DefaultBootstrapIterations {
		t.Errorf("expected %d bootstraps, got %d", DefaultBootstrapIterations, ci.NumBootstraps)
	}
	if ci.ConfidenceLevel != 0.95 {
		t.Errorf("expected confidence level 0.95, got %f", ci.ConfidenceLevel)
	}
}

func TestBootstrapCI_CIContainsMean(t *testing.T) {
	samples := []float64{0.3, 0.5, 0.7, 0.4, 0.6}
	ci := BootstrapCIWithSeed(samples, 0.95, 123)

	if ci.Lower > ci.Mean || ci.Upper < ci.Mean {
		t.Errorf("CI [%f, %f] should contain mean %f", ci.Lower, ci.Upper, ci.Mean)
	}
}

func TestBootstrapCI_NarrowerAtHigherN(t *testing.T) {
	small := []float64{0.3, 0.5, 0.7}
	large := []float64{0.3, 0.4, 0.5, 0.6, 0.7, 0.3, 0.4, 0.5, 0.6, 0.7,
		0.3, 0.4, 0.5, 0.6, 0.7, 0.3, 0.4, 0.5, 0.6, 0.7}

	ciSmall := BootstrapCIWithSeed(small, 0.95, 42)
	ciLarge := BootstrapCIWithSeed(large, 0.95, 42)

	widthSmall := ciSmall.Upper - ciSmall.Lower
	widthLarge := ciLarge.Upper - ciLarge.Lower

	if widthLarge >= widthSmall {
		t.Errorf("larger sample should yield narrower CI: small=%f, large=%f", widthSmall, widthLarge)
	}
}

func TestIsSignificant(t *testing.T) {
	tests := []struct {
		name string
		ci   ConfidenceInterval
		want bool
	}{
		{"both positive", ConfidenceInterval{Lower: 0.1, Upper: 0.5}, true},
		{"both negative", ConfidenceInterval{Lower: -0.5, Upper: -0.1}, true},
		{"crosses zero", ConfidenceInterval{Lower: -0.1, Upper: 0.3}, false},
		{"lower at zero", ConfidenceInterval{Lower: 0.0, Upper: 0.5}, false},
		{"upper at zero", ConfidenceInterval{Lower: -0.3, Upper: 0.0}, false},
		{"both zero", ConfidenceInterval{Lower: 0.0, Upper: 0.0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsSignificant(tt.ci)
			if got != tt.want {
				t.Errorf("IsSignificant(%+v) = %v, want %v", tt.ci, got, tt.want)
			}
		})
	}
}

func TestBootstrapCI_Deterministic(t *testing.T) {
	samples := []float64{0.2, 0.4, 0.6, 0.8}
	ci1 := BootstrapCIWithSeed(samples, 0.95, 99)
	ci2 := BootstrapCIWithSeed(samples, 0.95, 99)

	if ci1.Lower != ci2.Lower || ci1.Upper != ci2.Upper {
		t.Errorf("same seed should produce identical CIs: %+v vs %+v", ci1, ci2)
	}
}

func TestBootstrapCI_DifferentConfidenceLevels(t *testing.T) {
	samples := []float64{0.1, 0.3, 0.5, 0.7, 0.9, 0.2, 0.4, 0.6, 0.8, 1.0}
	ci90 := BootstrapCIWithSeed(samples, 0.90, 42)
	ci99 := BootstrapCIWithSeed(samples, 0.99, 42)

	width90 := ci90.Upper - ci90.Lower
	width99 := ci99.Upper - ci99.Lower

	if width99 <= width90 {
		t.Errorf("99%% CI should be wider than 90%%: 90%%=%f, 99%%=%f", width90, width99)
	}
}

func TestBootstrapDiffCI_SeparatedGroups(t *testing.T) {
	fast := []float64{0.010, 0.012, 0.011, 0.009, 0.010, 0.011}
	slow := []float64{0.100, 0.120, 0.110, 0.090, 0.105, 0.115}

	ci := BootstrapDiffCIWithSeed(slow, fast, 0.95, 7)
	if !IsSignificant(ci) {
		t.Errorf("expected a significant difference, got [%f, %f]", ci.Lower, ci.Upper)
	}
	if math.Abs(ci.Mean-(Mean(slow)-Mean(fast))) > 1e-12 {
		t.Errorf("expected observed difference as mean, got %f", ci.Mean)
	}
	if ci.Lower <= 0 {
		t.Errorf("slow - fast should be positive, got lower bound %f", ci.Lower)
	}
}

func TestBootstrapDiffCI_OverlappingGroups(t *testing.T) {
	a := []float64{0.1, 0.5, 0.9, 0.3, 0.7}
	b := []float64{0.2, 0.6, 0.8, 0.4, 0.5}

	ci := BootstrapDiffCIWithSeed(a, b, 0.95, 7)
	if IsSignificant(ci) {
		t.Errorf("overlapping groups should not differ significantly, got [%f, %f]", ci.Lower, ci.Upper)
	}
}

func TestBootstrapDiffCI_TooFewSamples(t *testing.T) {
	ci := BootstrapDiffCIWithSeed([]float64{1.0}, []float64{0.25, 0.75}, 0.95, 1)
	if ci.NumBootstraps != 0 || ci.Lower != 0.5 || ci.Upper != 0.5 {
		t.Errorf("expected degenerate interval at 0.5, got %+v", ci)
	}
}

// Rho run times are heavy-tailed: most inputs split in about a millisecond,
// an unlucky one takes far longer.
func rhoTimings() []float64 {
	samples := make([]float64, 0, 20)
	for i := 0; i < 19; i++ {
		samples = append(samples, 0.0009+float64(i%3)*0.0001)
	}
	return append(samples, 0.050)
}

func TestBootstrapCI_SkewedTrialTimes(t *testing.T) {
	samples := rhoTimings()
	ci := BootstrapCIWithSeed(samples, 0.95, 7)

	lo, hi := MinMax(samples)
	if math.Abs(ci.Mean-Mean(samples)) > 1e-12 {
		t.Errorf("expected CI mean to be the sample mean %f, got %f", Mean(samples), ci.Mean)
	}
	if ci.Lower < lo || ci.Upper > hi {
		t.Errorf("CI [%f, %f] escapes the observed range [%f, %f]", ci.Lower, ci.Upper, lo, hi)
	}
	if !(ci.Lower < ci.Mean && ci.Mean < ci.Upper) {
		t.Fatalf("expected Lower < Mean < Upper, got %+v", ci)
	}
	// the single slow trial stretches the upper side only
	if below, above := ci.Mean-ci.Lower, ci.Upper-ci.Mean; above <= below {
		t.Errorf("expected a right-skewed interval, got %f below and %f above the mean", below, above)
	}
	if ci.Lower > Median(samples)*2 {
		t.Errorf("expected the lower bound near the typical trial time %f, got %f", Median(samples), ci.Lower)
	}
}

func TestBootstrapDiffCI_SkewedTrialTimes(t *testing.T) {
	fast := rhoTimings()
	slow := make([]float64, len(fast))
	for i, v := range fast {
		slow[i] = v*10 + 0.01
	}

	ci := BootstrapDiffCIWithSeed(slow, fast, 0.95, 7)
	if !IsSignificant(ci) {
		t.Fatalf("expected a significant difference, got %+v", ci)
	}
	if ci.Lower <= 0 {
		t.Errorf("expected the slower algorithm's excess time to be positive, got lower bound %f", ci.Lower)
	}

	same := BootstrapDiffCIWithSeed(fast, rhoTimings(), 0.95, 7)
	if IsSignificant(same) {
		t.Errorf("expected identical timings to show no difference, got %+v", same)
	}
}
