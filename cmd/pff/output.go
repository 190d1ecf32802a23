package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pffbench/pff/internal/metrics"
	"github.com/pffbench/pff/internal/models"
	"github.com/pffbench/pff/internal/reporting"
)

// writeOutput writes data to path, zstd-compressed when path ends in .zst.
func writeOutput(path string, data []byte) error {
	if !strings.HasSuffix(path, ".zst") {
		return os.WriteFile(path, data, 0o644)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = f.Close()
		return err
	}
	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return fmt.Errorf("compressing %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("compressing %s: %w", path, err)
	}
	return f.Close()
}

// readOutput reads a file written by writeOutput.
func readOutput(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	if !strings.HasSuffix(path, ".zst") {
		return io.ReadAll(f)
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

// writeReport writes a Markdown report, or HTML when path ends in .html.
func writeReport(path string, s *models.ScalingResult) error {
	content := reporting.RenderMarkdown(s)
	if strings.HasSuffix(path, ".html") {
		var err error
		if content, err = reporting.RenderHTML(content); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// saveArtifacts writes every output the flags ask for.
func saveArtifacts(w io.Writer, f *runFlags, name string, jsonData []byte, results []*models.BenchmarkResult, scaling *models.ScalingResult, m *metrics.BenchMetrics) error {
	if f.output != "" {
		if err := writeOutput(f.output, jsonData); err != nil {
			return fmt.Errorf("failed to save output: %w", err)
		}
		fmt.Fprintf(w, "Results saved to: %s\n", f.output)
	}
	if f.junit != "" {
		if err := reporting.WriteJUnitXML(name, results, f.junit); err != nil {
			return fmt.Errorf("failed to write JUnit report: %w", err)
		}
		fmt.Fprintf(w, "JUnit report saved to: %s\n", f.junit)
	}
	if f.report != "" && scaling != nil {
		if err := writeReport(f.report, scaling); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(w, "Report saved to: %s\n", f.report)
	}
	if f.metricsOut != "" && m != nil {
		if err := m.WriteTextfile(f.metricsOut); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		fmt.Fprintf(w, "Metrics saved to: %s\n", f.metricsOut)
	}
	return nil
}

// trialFailure returns a TrialFailureError when any trial failed.
func trialFailure(results []*models.BenchmarkResult) error {
	failed, total := 0, 0
	for _, r := range results {
		failed += r.TrialCount - r.SuccessfulCount
		total += r.TrialCount
	}
	if failed == 0 {
		return nil
	}
	return &TrialFailureError{
		Message: fmt.Sprintf("benchmark completed with %d of %d trial(s) failed", failed, total),
	}
}
