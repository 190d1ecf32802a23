package reporting

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pffbench/pff/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// RenderMarkdown writes a scaling result as a Markdown report with one
// table row per completed size.
func RenderMarkdown(s *models.ScalingResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# PFF report: %s\n\n", s.AlgorithmName)
	fmt.Fprintf(&b, "Generated %s. PFF is %s seconds divided by the mean successful factorization time.\n\n",
		s.Timestamp.UTC().Format("2006-01-02 15:04:05 MST"), models.FormatPFF(models.SecondsPerYear))

	b.WriteString("| Bits | Trials | Success rate | Mean | 95% CI | PFF |\n")
	b.WriteString("|-----:|-------:|-------------:|-----:|:------:|----:|\n")
	for _, r := range s.Results {
		ci := "-"
		if r.MeanTimeCI95 != nil {
			ci = fmt.Sprintf("%s .. %s", formatSeconds(r.MeanTimeCI95.Lower), formatSeconds(r.MeanTimeCI95.Upper))
		}
		fmt.Fprintf(&b, "| %d | %d | %.0f%% | %s | %s | %s |\n",
			r.SizeBits, r.TrialCount, r.SuccessRate*100, optSeconds(r.MeanTime), ci, optPFF(r.PFF))
	}

	if s.Cancelled {
		fmt.Fprintf(&b, "\n> Sweep stopped after %d of %d sizes.\n", len(s.Results), len(s.Sizes))
	}

	var failures []string
	for _, r := range s.Results {
		for _, t := range r.Failed() {
			failures = append(failures, fmt.Sprintf("- %d-bit trial %d (`%s`): %s", r.SizeBits, t.Trial, t.ErrorKind, t.Error))
		}
	}
	if len(failures) > 0 {
		b.WriteString("\n## Failed trials\n\n")
		b.WriteString(strings.Join(failures, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// RenderHTML converts Markdown produced by RenderMarkdown to an HTML fragment.
func RenderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}
