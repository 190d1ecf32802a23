package algorithm

import (
	"context"
	"math/big"
	"sort"

	"github.com/pffbench/pff/internal/errdefs"
)

// PeriodFinder finds the multiplicative order of a modulo n: the smallest
// r > 0 with a^r ≡ 1 (mod n). It is the part of Shor's algorithm that a
// quantum backend or circuit simulator supplies. A nil period with a nil
// error means the backend could not determine one this attempt.
type PeriodFinder interface {
	FindPeriod(ctx context.Context, a, n *big.Int) (*big.Int, error)
}

// PeriodFinderFunc adapts a function to PeriodFinder.
type PeriodFinderFunc func(ctx context.Context, a, n *big.Int) (*big.Int, error)

func (f PeriodFinderFunc) FindPeriod(ctx context.Context, a, n *big.Int) (*big.Int, error) {
	return f(ctx, a, n)
}

// BackendClassicalPeriod computes the order exactly by repeated
// multiplication.
const BackendClassicalPeriod = "classical-period"

// DefaultMaxPeriod bounds the exact order search.
const DefaultMaxPeriod = 1 << 22

type backendFactory func(params map[string]any) (PeriodFinder, error)

var backends = map[string]backendFactory{
	BackendClassicalPeriod: newClassicalPeriodFinder,
	DefaultBackend:         newClassicalPeriodFinder,
}

// Backends lists the period-finding backends NewShor accepts.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newPeriodFinder(backend string, params map[string]any) (PeriodFinder, error) {
	factory, ok := backends[backend]
	if !ok {
		return nil, errdefs.Configuration("'%s' is not a valid period-finding backend", backend)
	}
	return factory(params)
}

type classicalPeriodFinder struct {
	maxPeriod int
}

func newClassicalPeriodFinder(params map[string]any) (PeriodFinder, error) {
	var v struct {
		MaxPeriod int `mapstructure:"max_period" validate:"omitempty,gt=0"`
	}
	if err := decodeParams(params, &v); err != nil {
		return nil, err
	}
	if v.MaxPeriod == 0 {
		v.MaxPeriod = DefaultMaxPeriod
	}
	return &classicalPeriodFinder{maxPeriod: v.MaxPeriod}, nil
}

func (f *classicalPeriodFinder) FindPeriod(ctx context.Context, a, n *big.Int) (*big.Int, error) {
	one := big.NewInt(1)
	base := new(big.Int).Mod(a, n)
	x := new(big.Int).Set(base)
	for r := 1; r <= f.maxPeriod; r++ {
		if x.Cmp(one) == 0 {
			return big.NewInt(int64(r)), nil
		}
		if r%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		x.Mul(x, base).Mod(x, n)
	}
	return nil, nil
}
