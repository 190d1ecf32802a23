// Package reporting renders benchmark results as text, JUnit XML, Markdown
// and HTML.
package reporting

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/pffbench/pff/internal/models"
	"github.com/pffbench/pff/internal/statistics"
)

// InterpretSuccessRate returns a human-readable explanation of a success rate (0–1).
func InterpretSuccessRate(rate float64) string {
	pct := rate * 100
	switch {
	case pct >= 100:
		return fmt.Sprintf("Every trial factored (%.0f%%)", pct)
	case pct >= 80:
		return fmt.Sprintf("Most trials factored (%.0f%%)", pct)
	case pct > 0:
		return fmt.Sprintf("Some trials factored (%.0f%%)", pct)
	default:
		return "No trial factored (0%)"
	}
}

// InterpretSpread describes the run-to-run variation of the successful times
// by their coefficient of variation.
func InterpretSpread(r *models.BenchmarkResult) string {
	if r.MeanTime == nil || r.StdDev == nil || *r.MeanTime == 0 || r.SuccessfulCount < 2 {
		return "Not enough successful trials to judge variation."
	}
	cv := *r.StdDev / *r.MeanTime
	switch {
	case cv < 0.1:
		return fmt.Sprintf("Timings are stable (CV %.0f%%).", cv*100)
	case cv < 0.5:
		return fmt.Sprintf("Timings vary moderately (CV %.0f%%).", cv*100)
	default:
		return fmt.Sprintf("Timings vary widely (CV %.0f%%); consider more trials.", cv*100)
	}
}

// FormatSummaryReport produces a plain-language report for one result.
func FormatSummaryReport(r *models.BenchmarkResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== %s, %d-bit %ss ===\n\n", r.AlgorithmName, r.SizeBits, r.InputKind)
	fmt.Fprintf(&b, "Trials:        %d succeeded out of %d\n", r.SuccessfulCount, r.TrialCount)
	fmt.Fprintf(&b, "Success:       %s\n", InterpretSuccessRate(r.SuccessRate))

	if r.MeanTime != nil {
		fmt.Fprintf(&b, "Mean time:     %s\n", formatSeconds(*r.MeanTime))
		fmt.Fprintf(&b, "Median time:   %s\n", formatSeconds(*r.MedianTime))
		fmt.Fprintf(&b, "Range:         %s .. %s\n", formatSeconds(*r.MinTime), formatSeconds(*r.MaxTime))
		if r.MeanTimeCI95 != nil {
			fmt.Fprintf(&b, "95%% CI:        [%s, %s]\n", formatSeconds(r.MeanTimeCI95.Lower), formatSeconds(r.MeanTimeCI95.Upper))
		}
		fmt.Fprintf(&b, "Variation:     %s\n", InterpretSpread(r))
	}
	fmt.Fprintf(&b, "%s\n", r.Estimate())

	if failed := r.Failed(); len(failed) > 0 {
		b.WriteString("\nFailed trials:\n")
		for _, t := range failed {
			fmt.Fprintf(&b, "  ✗ #%d n=%s: %s\n", t.Trial, t.Input, t.Error)
		}
	}
	return b.String()
}

// FormatScalingTable lays out one row per completed size.
func FormatScalingTable(s *models.ScalingResult) string {
	header := []string{"Bits", "Success", "Mean", "Median", "PFF"}
	rows := make([][]string, 0, len(s.Results))
	for _, r := range s.Results {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.SizeBits),
			fmt.Sprintf("%d/%d", r.SuccessfulCount, r.TrialCount),
			optSeconds(r.MeanTime),
			optSeconds(r.MedianTime),
			optPFF(r.PFF),
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "PFF scaling for %s\n\n", s.AlgorithmName)
	writeTable(&b, header, rows)
	if s.Cancelled {
		fmt.Fprintf(&b, "\nStopped after %d of %d sizes.\n", len(s.Results), len(s.Sizes))
	}
	return b.String()
}

// FormatComparison tabulates results at the same size and tests each one's
// mean time against the first result with a bootstrap interval.
func FormatComparison(results []*models.BenchmarkResult, seed int64) string {
	if len(results) == 0 {
		return ""
	}
	base := results[0]
	header := []string{"Algorithm", "Success", "Mean", "PFF", "vs " + base.AlgorithmName}
	rows := make([][]string, 0, len(results))
	for i, r := range results {
		verdict := "baseline"
		if i > 0 {
			verdict = compareTimes(r, base, seed)
		}
		rows = append(rows, []string{
			r.AlgorithmName,
			fmt.Sprintf("%d/%d", r.SuccessfulCount, r.TrialCount),
			optSeconds(r.MeanTime),
			optPFF(r.PFF),
			verdict,
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Comparison at %d bits\n\n", base.SizeBits)
	writeTable(&b, header, rows)
	return b.String()
}

func compareTimes(r, base *models.BenchmarkResult, seed int64) string {
	a, b := successTimes(r), successTimes(base)
	if len(a) == 0 || len(b) == 0 {
		return "n/a"
	}
	ci := statistics.BootstrapDiffCIWithSeed(a, b, 0.95, seed)
	if !statistics.IsSignificant(ci) {
		return "no significant difference"
	}
	if ci.Mean < 0 {
		return fmt.Sprintf("faster by %s", formatSeconds(-ci.Mean))
	}
	return fmt.Sprintf("slower by %s", formatSeconds(ci.Mean))
}

func successTimes(r *models.BenchmarkResult) []float64 {
	var out []float64
	for _, t := range r.Trials {
		if t.Succeeded {
			out = append(out, t.Elapsed.Seconds())
		}
	}
	return out
}

func writeTable(b *strings.Builder, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(cells)-1 {
				b.WriteString(cell)
				continue
			}
			b.WriteString(padRight(cell, widths[i]))
		}
		b.WriteString("\n")
	}

	writeRow(header)
	sep := make([]string, len(header))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func formatSeconds(s float64) string {
	switch {
	case s < 1e-3:
		return fmt.Sprintf("%.1fµs", s*1e6)
	case s < 1:
		return fmt.Sprintf("%.2fms", s*1e3)
	default:
		return fmt.Sprintf("%.3fs", s)
	}
}

func optSeconds(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatSeconds(*v)
}

func optPFF(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return models.FormatPFF(*v)
}
