package models

import (
	"math"

	"github.com/pffbench/pff/internal/errdefs"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SecondsPerYear is the PFF numerator: 365 days of 86,400 seconds.
const SecondsPerYear = 31_536_000

// CalculatePFF returns the number of factorizations that fit in a year at
// meanSeconds per factorization.
func CalculatePFF(meanSeconds float64) (float64, error) {
	if math.IsNaN(meanSeconds) || meanSeconds <= 0 {
		return 0, errdefs.InvalidInput("mean time must be > 0 seconds, got %v", meanSeconds)
	}
	return SecondsPerYear / meanSeconds, nil
}

// PFFEstimate is a PFF figure for one input size without the per-trial detail.
type PFFEstimate struct {
	SizeBits    int      `json:"size_bits"`
	TimePerRun  *float64 `json:"time_per_run,omitempty"`
	PFF         *float64 `json:"pff,omitempty"`
	SuccessRate float64  `json:"success_rate"`
}

var printer = message.NewPrinter(language.English)

// FormatPFF renders a PFF value with thousands separators and no decimals.
func FormatPFF(pff float64) string {
	return printer.Sprintf("%.0f", pff)
}

func (e PFFEstimate) String() string {
	if e.PFF == nil || e.TimePerRun == nil {
		return printer.Sprintf("PFF(%d-bit) = n/a (no successful trials)", e.SizeBits)
	}
	return printer.Sprintf("PFF(%d-bit) = %s (Ts = %.6fs)", e.SizeBits, FormatPFF(*e.PFF), *e.TimePerRun)
}
