package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"

	"github.com/pffbench/pff/internal/algorithm"
	"github.com/pffbench/pff/internal/errdefs"
	"github.com/pffbench/pff/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr,omitempty"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one benchmark run at one size.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one trial.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
}

// JUnitFailure is a trial whose factors did not check out.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitError is a trial that produced no factors.
type JUnitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit turns each result into a suite with one case per trial.
func ConvertToJUnit(name string, results []*models.BenchmarkResult) *JUnitTestSuites {
	out := &JUnitTestSuites{Name: name}
	for _, r := range results {
		suite := convertResult(r)
		out.Tests += suite.Tests
		out.Failures += suite.Failures
		out.Errors += suite.Errors
		out.Time += suite.Time
		out.TestSuites = append(out.TestSuites, suite)
	}
	return out
}

func convertResult(r *models.BenchmarkResult) JUnitTestSuite {
	suite := JUnitTestSuite{
		Name:      fmt.Sprintf("%s/%d-bit", r.AlgorithmName, r.SizeBits),
		Tests:     r.TrialCount,
		Timestamp: r.Timestamp.Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "run_id", Value: r.RunID.String()},
			{Name: "backend", Value: r.Backend},
			{Name: "input_kind", Value: string(r.InputKind)},
			{Name: "success_rate", Value: fmt.Sprintf("%.4f", r.SuccessRate)},
		},
	}
	if r.PFF != nil {
		suite.Properties = append(suite.Properties, JUnitProperty{Name: "pff", Value: fmt.Sprintf("%.0f", *r.PFF)})
	}

	classname := fmt.Sprintf("%s.%dbit", r.AlgorithmName, r.SizeBits)
	for _, t := range r.Trials {
		tc := JUnitTestCase{
			Name:      fmt.Sprintf("trial-%d", t.Trial),
			Classname: classname,
			Time:      t.Elapsed.Seconds(),
		}
		suite.Time += tc.Time

		if !t.Succeeded {
			body := fmt.Sprintf("n = %s\nfactors = %s", t.Input, algorithm.FormatFactors(t.Factors))
			if t.ErrorKind == errdefs.KindVerificationFailure {
				tc.Failure = &JUnitFailure{Message: t.Error, Type: t.ErrorKind, Body: body}
				suite.Failures++
			} else {
				tc.Error = &JUnitError{Message: t.Error, Type: t.ErrorKind, Body: body}
				suite.Errors++
			}
		}
		suite.TestCases = append(suite.TestCases, tc)
	}
	return suite
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(name string, results []*models.BenchmarkResult, path string) error {
	suites := ConvertToJUnit(name, results)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	return os.WriteFile(path, output, 0644)
}
