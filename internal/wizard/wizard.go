// Package wizard asks for the fields of a run file interactively.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"github.com/pffbench/pff/internal/algorithm"
	"github.com/pffbench/pff/internal/config"
	"github.com/pffbench/pff/internal/models"
	"golang.org/x/term"
)

// Answers holds the raw text collected by the form.
type Answers struct {
	Name      string
	Algorithm string
	Sizes     string
	Trials    string
	Inputs    string
	Seed      string
	Timeout   string
}

const runYAMLTemplate = `# yaml-language-server: $schema=https://github.com/pffbench/pff/schemas/run.schema.json
name: {{ .Name }}
algorithm: {{ .Algorithm }}
sizes: [{{ join .Sizes }}]
trials: {{ .Trials }}
inputs: {{ .Inputs }}
{{- if .Seed }}
seed: {{ deref .Seed }}
{{- end }}
{{- if gt .Config.TimeoutSeconds 0.0 }}
config:
  timeout_seconds: {{ .Config.TimeoutSeconds }}
{{- end }}
`

// RunWizard runs an interactive huh form and returns the run spec it describes.
func RunWizard(in io.Reader, out io.Writer, initialName string) (*config.RunSpec, error) {
	a := Answers{
		Name:      initialName,
		Algorithm: algorithm.NameClassical,
		Sizes:     "16, 20, 24",
		Trials:    "10",
		Inputs:    string(models.InputSemiprime),
	}

	algOptions := make([]huh.Option[string], 0)
	for _, name := range algorithm.Names() {
		algOptions = append(algOptions, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Run name").
				Placeholder("classical-sweep").
				Value(&a.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("run name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Algorithm").
				Options(algOptions...).
				Value(&a.Algorithm),
			huh.NewSelect[string]().
				Title("Inputs").
				Options(
					huh.NewOption("semiprime", string(models.InputSemiprime)),
					huh.NewOption("composite", string(models.InputComposite)),
				).
				Value(&a.Inputs),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Sizes").
				Description("Comma-separated input sizes in bits").
				Value(&a.Sizes).
				Validate(func(s string) error {
					_, err := parseSizes(s)
					return err
				}),
			huh.NewInput().
				Title("Trials per size").
				Value(&a.Trials).
				Validate(func(s string) error {
					_, err := parsePositive(s, "trials")
					return err
				}),
			huh.NewInput().
				Title("Seed").
				Description("Leave empty for fresh inputs on every run").
				Value(&a.Seed),
			huh.NewInput().
				Title("Timeout per factorization").
				Description("Seconds; leave empty for none").
				Value(&a.Timeout),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}
	return BuildRunSpec(a)
}

// BuildRunSpec parses and validates the form answers.
func BuildRunSpec(a Answers) (*config.RunSpec, error) {
	spec := &config.RunSpec{
		Name:      strings.TrimSpace(a.Name),
		Algorithm: strings.TrimSpace(a.Algorithm),
		Inputs:    models.InputKind(strings.TrimSpace(a.Inputs)),
	}
	if spec.Inputs == "" {
		spec.Inputs = models.InputSemiprime
	}

	var err error
	if spec.Sizes, err = parseSizes(a.Sizes); err != nil {
		return nil, err
	}
	if spec.Trials, err = parsePositive(a.Trials, "trials"); err != nil {
		return nil, err
	}
	if s := strings.TrimSpace(a.Seed); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("seed must be an integer: %q", s)
		}
		spec.Seed = &seed
	}
	if s := strings.TrimSpace(a.Timeout); s != "" {
		timeout, err := strconv.ParseFloat(s, 64)
		if err != nil || timeout <= 0 {
			return nil, fmt.Errorf("timeout must be a positive number of seconds: %q", s)
		}
		spec.Config.TimeoutSeconds = timeout
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// GenerateRunYAML renders a run.yaml for spec.
func GenerateRunYAML(spec *config.RunSpec) (string, error) {
	funcs := template.FuncMap{
		"join": func(sizes []int) string {
			parts := make([]string, len(sizes))
			for i, s := range sizes {
				parts[i] = strconv.Itoa(s)
			}
			return strings.Join(parts, ", ")
		},
		"deref": func(p *int64) int64 { return *p },
	}
	tmpl, err := template.New("runyaml").Funcs(funcs).Parse(runYAMLTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

func parseSizes(s string) ([]int, error) {
	parts := splitAndTrim(s)
	if len(parts) == 0 {
		return nil, fmt.Errorf("at least one size is required")
	}
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := parsePositive(p, "size")
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

func parsePositive(s, what string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer: %q", what, s)
	}
	return n, nil
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
