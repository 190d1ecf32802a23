package algorithm

import (
	"context"
	"math/big"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pffbench/pff/internal/errdefs"
	"github.com/pffbench/pff/internal/numtheory"
)

const (
	// DefaultTrialDivisionBound is the largest prime tried by division
	// before switching to Pollard's rho.
	DefaultTrialDivisionBound = 10_000
	// DefaultBatchSize is the number of rho steps between gcd checks.
	DefaultBatchSize = 128
	// DefaultRhoRetries is how many polynomial constants are tried before
	// giving up on a cofactor.
	DefaultRhoRetries = 16
	// DefaultMaxIterations bounds rho steps per polynomial constant.
	DefaultMaxIterations = 1 << 20

	ClassicalVersion = "1.0"
)

// ClassicalParams are the strategy-specific settings read from Config.Params.
type ClassicalParams struct {
	TrialDivisionBound int `mapstructure:"trial_division_bound" validate:"omitempty,gt=0"`
	BatchSize          int `mapstructure:"batch_size" validate:"omitempty,gt=0"`
	RhoRetries         int `mapstructure:"rho_retries" validate:"omitempty,gt=0"`
}

func decodeParams(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return errdefs.Configuration("params: %v", err)
	}
	if err := configValidate.Struct(out); err != nil {
		return errdefs.Configuration("params: %v", err)
	}
	return nil
}

// classical is trial division followed by Brent's variant of Pollard's rho.
type classical struct {
	backend       string
	maxIterations int
	params        ClassicalParams
}

// NewClassical builds the classical factorization algorithm.
func NewClassical(cfg Config) (*Algorithm, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var p ClassicalParams
	if err := decodeParams(cfg.Params, &p); err != nil {
		return nil, err
	}
	if p.TrialDivisionBound == 0 {
		p.TrialDivisionBound = DefaultTrialDivisionBound
	}
	if p.BatchSize == 0 {
		p.BatchSize = DefaultBatchSize
	}
	if p.RhoRetries == 0 {
		p.RhoRetries = DefaultRhoRetries
	}

	cfg = cfg.WithDefaults()
	return Wrap(cfg, &classical{
		backend:       cfg.Backend,
		maxIterations: cfg.iterations(DefaultMaxIterations),
		params:        p,
	})
}

func (c *classical) Info() Info {
	return Info{
		Name: "classical",
		Kind: KindClassical,
		Extra: map[string]any{
			"version":              ClassicalVersion,
			"method":               "trial_division+brent_rho",
			"backend":              c.backend,
			"trial_division_bound": c.params.TrialDivisionBound,
			"batch_size":           c.params.BatchSize,
			"rho_retries":          c.params.RhoRetries,
			"max_iterations":       c.maxIterations,
		},
	}
}

func (c *classical) Factor(ctx context.Context, n *big.Int) ([]*big.Int, error) {
	factors, rest := c.trialDivide(n)
	if rest.Cmp(big.NewInt(1)) == 0 {
		return factors, nil
	}
	more, err := c.split(ctx, rest)
	if err != nil {
		return nil, err
	}
	return append(factors, more...), nil
}

// trialDivide strips every prime up to the configured bound from n. When the
// next prime squared exceeds what is left, the remainder is itself prime and
// is moved into the factor list.
func (c *classical) trialDivide(n *big.Int) ([]*big.Int, *big.Int) {
	var factors []*big.Int
	r := new(big.Int).Set(n)
	q, m, bp := new(big.Int), new(big.Int), new(big.Int)

	for _, p := range numtheory.PrimesUpTo(uint64(c.params.TrialDivisionBound)) {
		bp.SetUint64(p)
		if m.Mul(bp, bp).Cmp(r) > 0 {
			if r.Cmp(big.NewInt(1)) > 0 {
				factors = append(factors, new(big.Int).Set(r))
				r.SetInt64(1)
			}
			break
		}
		for {
			q.QuoRem(r, bp, m)
			if m.Sign() != 0 {
				break
			}
			factors = append(factors, new(big.Int).SetUint64(p))
			r.Set(q)
		}
	}
	return factors, r
}

// split fully factors r > 1.
func (c *classical) split(ctx context.Context, r *big.Int) ([]*big.Int, error) {
	if numtheory.IsPrime(r) {
		return []*big.Int{r}, nil
	}
	if r.Bit(0) == 0 {
		rest, err := c.split(ctx, new(big.Int).Rsh(r, 1))
		if err != nil {
			return nil, err
		}
		return append([]*big.Int{big.NewInt(2)}, rest...), nil
	}
	if base, exp, ok := numtheory.PerfectPower(r); ok {
		sub, err := c.split(ctx, base)
		if err != nil {
			return nil, err
		}
		out := make([]*big.Int, 0, len(sub)*exp)
		for i := 0; i < exp; i++ {
			out = append(out, sub...)
		}
		return out, nil
	}

	d, err := c.findDivisor(ctx, r)
	if err != nil {
		return nil, err
	}
	left, err := c.split(ctx, d)
	if err != nil {
		return nil, err
	}
	right, err := c.split(ctx, new(big.Int).Quo(r, d))
	if err != nil {
		return nil, err
	}
	return append(left, right...), nil
}

func (c *classical) findDivisor(ctx context.Context, r *big.Int) (*big.Int, error) {
	for _, k := range rhoConstants(r, c.params.RhoRetries) {
		d, err := brentRho(ctx, r, k, c.params.BatchSize, c.maxIterations)
		if err != nil {
			return nil, err
		}
		if d != nil {
			return d, nil
		}
	}
	return nil, errdefs.FactorizationTimeout("no divisor of %s after %d polynomials", r, c.params.RhoRetries)
}
