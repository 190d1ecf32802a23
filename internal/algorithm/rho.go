package algorithm

import (
	"context"
	"math/big"
)

// rhoStart is x0 for every polynomial.
var rhoStart = big.NewInt(2)

// brentRho searches for a non-trivial divisor of the odd composite n with
// Brent's cycle detection on f(x) = x² + c mod n. Differences are multiplied
// together and the gcd is taken once per batch; when a batch overshoots to n
// the batch is replayed one step at a time.
//
// It returns nil when the polynomial degenerates or maxIter evaluations of f
// are spent. The only error is ctx's, checked once per batch.
func brentRho(ctx context.Context, n, c *big.Int, batch, maxIter int) (*big.Int, error) {
	var (
		one  = big.NewInt(1)
		x    = new(big.Int)
		y    = new(big.Int).Set(rhoStart)
		ys   = new(big.Int)
		q    = big.NewInt(1)
		g    = big.NewInt(1)
		diff = new(big.Int)
	)

	iter := 0
	f := func(v *big.Int) {
		v.Mul(v, v)
		v.Add(v, c)
		v.Mod(v, n)
		iter++
	}

	for r := 1; g.Cmp(one) == 0; r *= 2 {
		x.Set(y)
		for i := 0; i < r; i++ {
			if i%batch == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				if iter >= maxIter {
					return nil, nil
				}
			}
			f(y)
		}
		for k := 0; k < r && g.Cmp(one) == 0; k += batch {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if iter >= maxIter {
				return nil, nil
			}

			ys.Set(y)
			steps := min(batch, r-k)
			for i := 0; i < steps; i++ {
				f(y)
				diff.Sub(x, y)
				q.Mul(q, diff.Abs(diff))
				q.Mod(q, n)
			}
			g.GCD(nil, nil, q, n)
		}
	}

	if g.Cmp(n) == 0 {
		// The batch product collapsed to 0 mod n; replay it step by step.
		g.SetInt64(1)
		for i := 0; i <= batch && g.Cmp(one) == 0; i++ {
			f(ys)
			diff.Sub(x, ys)
			g.GCD(nil, nil, diff.Abs(diff), n)
		}
	}

	if g.Cmp(one) == 0 || g.Cmp(n) == 0 {
		return nil, nil
	}
	return g, nil
}

// rhoConstants yields the polynomial constants 1, 2, 3, ... skipping values
// congruent to 0 or -2 mod n, which make f degenerate.
func rhoConstants(n *big.Int, count int) []*big.Int {
	out := make([]*big.Int, 0, count)
	m := new(big.Int)
	for c := int64(1); len(out) < count; c++ {
		bc := big.NewInt(c)
		if m.Mod(bc, n).Sign() == 0 {
			continue
		}
		if m.Mod(m.Add(bc, big.NewInt(2)), n).Sign() == 0 {
			continue
		}
		out = append(out, bc)
	}
	return out
}
