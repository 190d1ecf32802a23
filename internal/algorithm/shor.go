package algorithm

import (
	"context"
	"math/big"

	"github.com/pffbench/pff/internal/errdefs"
	"github.com/pffbench/pff/internal/numtheory"
)

const (
	// DefaultShorAttempts is how many random bases Shor tries per split.
	DefaultShorAttempts = 10

	ShorVersion = "1.0"
)

// ShorParams are the Shor-specific settings read from Config.Params, on top
// of whatever the period backend reads.
type ShorParams struct {
	// Seed fixes the base selection; nil draws a fresh seed per call.
	Seed *int64 `mapstructure:"seed"`
}

// shor runs the classical reduction of Shor's algorithm around a
// PeriodFinder.
type shor struct {
	backend  string
	shots    int
	attempts int
	seed     *int64
	finder   PeriodFinder
}

// NewShor builds the Shor variant using the period backend named by
// cfg.Backend.
func NewShor(cfg Config) (*Algorithm, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()
	finder, err := newPeriodFinder(cfg.Backend, cfg.Params)
	if err != nil {
		return nil, err
	}
	return NewShorWithPeriodFinder(cfg, finder)
}

// NewShorWithPeriodFinder builds the Shor variant around an explicit
// period finder, such as a simulator.
func NewShorWithPeriodFinder(cfg Config, finder PeriodFinder) (*Algorithm, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if finder == nil {
		return nil, errdefs.Configuration("period finder is nil")
	}
	var p ShorParams
	if err := decodeParams(cfg.Params, &p); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()
	return Wrap(cfg, &shor{
		backend:  cfg.Backend,
		shots:    cfg.Shots,
		attempts: cfg.iterations(DefaultShorAttempts),
		seed:     p.Seed,
		finder:   finder,
	})
}

func (s *shor) Info() Info {
	return Info{
		Name: "shor",
		Kind: KindQuantum,
		Extra: map[string]any{
			"version":        ShorVersion,
			"method":         "period_finding",
			"backend":        s.backend,
			"shots":          s.shots,
			"max_iterations": s.attempts,
		},
	}
}

func (s *shor) Factor(ctx context.Context, n *big.Int) ([]*big.Int, error) {
	seed := int64(-1)
	if s.seed != nil {
		seed = *s.seed
	}
	gen := numtheory.NewGenerator(seed)
	return s.split(ctx, gen, n)
}

func (s *shor) split(ctx context.Context, gen *numtheory.Generator, n *big.Int) ([]*big.Int, error) {
	if numtheory.IsPrime(n) {
		return []*big.Int{n}, nil
	}
	if n.Bit(0) == 0 {
		rest, err := s.split(ctx, gen, new(big.Int).Rsh(n, 1))
		if err != nil {
			return nil, err
		}
		return append([]*big.Int{big.NewInt(2)}, rest...), nil
	}
	if base, exp, ok := numtheory.PerfectPower(n); ok {
		sub, err := s.split(ctx, gen, base)
		if err != nil {
			return nil, err
		}
		out := make([]*big.Int, 0, len(sub)*exp)
		for i := 0; i < exp; i++ {
			out = append(out, sub...)
		}
		return out, nil
	}

	d, err := s.findFactor(ctx, gen, n)
	if err != nil {
		return nil, err
	}
	left, err := s.split(ctx, gen, d)
	if err != nil {
		return nil, err
	}
	right, err := s.split(ctx, gen, new(big.Int).Quo(n, d))
	if err != nil {
		return nil, err
	}
	return append(left, right...), nil
}

// findFactor returns a non-trivial divisor of the odd composite n that is
// not a perfect power.
func (s *shor) findFactor(ctx context.Context, gen *numtheory.Generator, n *big.Int) (*big.Int, error) {
	one := big.NewInt(1)
	two := big.NewInt(2)
	nMinus1 := new(big.Int).Sub(n, one)
	g := new(big.Int)

	for attempt := 0; attempt < s.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		a := gen.RandomRange(two, nMinus1)
		if g.GCD(nil, nil, a, n).Cmp(one) > 0 {
			return new(big.Int).Set(g), nil
		}

		r, err := s.finder.FindPeriod(ctx, a, n)
		if err != nil {
			return nil, err
		}
		if r == nil || r.Bit(0) == 1 {
			continue
		}

		x := new(big.Int).Exp(a, new(big.Int).Rsh(r, 1), n)
		if x.Cmp(nMinus1) == 0 {
			continue
		}
		for _, cand := range []*big.Int{new(big.Int).Sub(x, one), new(big.Int).Add(x, one)} {
			g.GCD(nil, nil, cand, n)
			if g.Cmp(one) > 0 && g.Cmp(n) < 0 {
				return new(big.Int).Set(g), nil
			}
		}
	}
	return nil, errdefs.FactorizationTimeout("no factor of %s after %d period-finding attempts", n, s.attempts)
}
