// Package algorithm defines the factorization algorithm abstraction and the
// built-in strategies.
//
// Every strategy is wrapped by Algorithm, which validates the input before
// the strategy runs and verifies its answer afterwards, so no strategy can
// report a wrong factorization as a success.
package algorithm

//go:generate go tool mockgen -destination=algorithmmock/mock_factorizer.go -package=algorithmmock github.com/pffbench/pff/internal/algorithm Factorizer

import (
	"context"
	"math/big"
	"slices"
	"strings"

	"github.com/pffbench/pff/internal/errdefs"
	"github.com/pffbench/pff/internal/numtheory"
)

type Kind string

const (
	KindClassical Kind = "classical"
	KindQuantum   Kind = "quantum"
)

// Info describes an algorithm for reports.
type Info struct {
	Name  string         `json:"name"`
	Kind  Kind           `json:"kind"`
	Extra map[string]any `json:"extra,omitempty"`
}

// Factorizer is what the benchmark harness drives.
type Factorizer interface {
	// Factor returns the prime factorization of n in ascending order, with
	// repeated primes listed once per multiplicity.
	Factor(ctx context.Context, n *big.Int) ([]*big.Int, error)

	// Info describes the algorithm.
	Info() Info
}

// Strategy is the algorithm-specific half of a Factorizer. Strategies only
// see inputs that already passed ValidateInput and are known composite.
type Strategy interface {
	Factor(ctx context.Context, n *big.Int) ([]*big.Int, error)
	Info() Info
}

// Algorithm wraps a Strategy with input validation and result verification.
type Algorithm struct {
	cfg      Config
	strategy Strategy
}

var _ Factorizer = (*Algorithm)(nil)

// Wrap validates cfg and returns an Algorithm around s.
func Wrap(cfg Config, s Strategy) (*Algorithm, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errdefs.Configuration("strategy is nil")
	}
	return &Algorithm{cfg: cfg.WithDefaults(), strategy: s}, nil
}

// Config returns the configuration the algorithm was built with.
func (a *Algorithm) Config() Config {
	return a.cfg
}

// Info describes the wrapped strategy.
func (a *Algorithm) Info() Info {
	return a.strategy.Info()
}

// Factor validates n, runs the strategy and verifies its answer.
func (a *Algorithm) Factor(ctx context.Context, n *big.Int) ([]*big.Int, error) {
	if err := ValidateInput(n); err != nil {
		return nil, err
	}
	if numtheory.IsPrime(n) {
		return nil, errdefs.InvalidInput("%s is prime", n)
	}

	factors, err := a.strategy.Factor(ctx, n)
	if err != nil {
		return nil, err
	}
	if !VerifyFactors(n, factors) {
		return nil, errdefs.VerificationFailure("%s returned %v for %s", a.strategy.Info().Name, factors, n)
	}

	slices.SortFunc(factors, func(x, y *big.Int) int { return x.Cmp(y) })
	return factors, nil
}

// ValidateInput rejects n < 4; smaller values have no non-trivial
// factorization to benchmark.
func ValidateInput(n *big.Int) error {
	if n == nil || n.Cmp(big.NewInt(4)) < 0 {
		return errdefs.InvalidInput("n must be >= 4, got %v", n)
	}
	return nil
}

// VerifyFactors reports whether factors is non-empty, every element is
// greater than 1, and their product is n.
func VerifyFactors(n *big.Int, factors []*big.Int) bool {
	if n == nil || len(factors) == 0 {
		return false
	}
	product := big.NewInt(1)
	for _, f := range factors {
		if f == nil || f.Cmp(big.NewInt(1)) <= 0 {
			return false
		}
		product.Mul(product, f)
	}
	return product.Cmp(n) == 0
}

// FormatFactors renders factors as "p1 × p2 × ...", or "-" when empty.
func FormatFactors(factors []*big.Int) string {
	if len(factors) == 0 {
		return "-"
	}
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = f.String()
	}
	return strings.Join(parts, " × ")
}
