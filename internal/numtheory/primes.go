// Package numtheory provides the integer primitives the benchmark is built
// on: primality testing, random primes, semiprime and composite generation.
//
// All arithmetic uses math/big so inputs are unbounded.
package numtheory

import (
	"math/big"
	"slices"
	"sort"

	"github.com/pffbench/pff/internal/errdefs"
)

const (
	// SmallPrimeLimit bounds the precomputed prime table.
	SmallPrimeLimit = 1 << 16

	// DeterministicThreshold is SmallPrimeLimit squared. Below it primality
	// is decided exactly by trial division against the table.
	DeterministicThreshold = uint64(SmallPrimeLimit) * uint64(SmallPrimeLimit)

	// MillerRabinRounds is the number of witnesses tried above
	// DeterministicThreshold. The witnesses are the first primes, which
	// makes the test exact below 3.3e24 and bounds the false-positive
	// probability by 4^-MillerRabinRounds above it.
	MillerRabinRounds = 20
)

var (
	smallPrimes = sieve(SmallPrimeLimit)

	bigOne  = big.NewInt(1)
	bigTwo  = big.NewInt(2)
	bigFour = big.NewInt(4)

	deterministicThreshold = new(big.Int).SetUint64(DeterministicThreshold)
)

func sieve(limit int) []uint64 {
	composite := make([]bool, limit+1)
	primes := make([]uint64, 0, limit/10)
	for i := 2; i <= limit; i++ {
		if composite[i] {
			continue
		}
		primes = append(primes, uint64(i))
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}
	return primes
}

// SmallPrimes returns a copy of the precomputed prime table, ascending.
func SmallPrimes() []uint64 {
	out := make([]uint64, len(smallPrimes))
	copy(out, smallPrimes)
	return out
}

// IsProbablyPrime reports whether n is prime. The answer is exact below
// DeterministicThreshold and probabilistic above it.
func IsProbablyPrime(n *big.Int) (bool, error) {
	if n == nil || n.Cmp(bigTwo) < 0 {
		return false, errdefs.InvalidInput("primality is defined for n >= 2, got %v", n)
	}
	return IsPrime(n), nil
}

// IsPrime is IsProbablyPrime without argument checking; values below 2
// are reported as not prime.
func IsPrime(n *big.Int) bool {
	if n.Cmp(bigTwo) < 0 {
		return false
	}
	if n.Cmp(deterministicThreshold) < 0 {
		return isPrimeSmall(n.Uint64())
	}

	// Cheap rejection by the table before the expensive witnesses.
	mod := new(big.Int)
	for _, p := range smallPrimes[:256] {
		if mod.Mod(n, mod.SetUint64(p)).Sign() == 0 {
			return false
		}
	}
	return millerRabin(n, MillerRabinRounds)
}

func isPrimeSmall(n uint64) bool {
	for _, p := range smallPrimes {
		if p*p > n {
			return true
		}
		if n%p == 0 {
			return n == p
		}
	}
	return true
}

// millerRabin runs the strong probable-prime test for the first rounds
// primes as bases. n must be odd and larger than every base.
func millerRabin(n *big.Int, rounds int) bool {
	nMinus1 := new(big.Int).Sub(n, bigOne)
	d := new(big.Int).Set(nMinus1)
	s := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}

	a := new(big.Int)
	x := new(big.Int)
witness:
	for _, p := range smallPrimes[:rounds] {
		a.SetUint64(p)
		x.Exp(a, d, n)
		if x.Cmp(bigOne) == 0 || x.Cmp(nMinus1) == 0 {
			continue
		}
		for r := 1; r < s; r++ {
			x.Mul(x, x).Mod(x, n)
			if x.Cmp(nMinus1) == 0 {
				continue witness
			}
			if x.Cmp(bigOne) == 0 {
				return false
			}
		}
		return false
	}
	return true
}

// PerfectPower reports whether n = base^exp for some exp >= 2, returning
// the smallest such exponent. Values below 4 are never perfect powers.
func PerfectPower(n *big.Int) (base *big.Int, exp int, ok bool) {
	if n == nil || n.Cmp(bigFour) < 0 {
		return nil, 0, false
	}
	maxExp := n.BitLen()
	pow := new(big.Int)
	for k := 2; k <= maxExp; k++ {
		root := IntRoot(n, k)
		if root.Cmp(bigOne) <= 0 {
			break
		}
		if pow.Exp(root, big.NewInt(int64(k)), nil).Cmp(n) == 0 {
			return root, k, true
		}
	}
	return nil, 0, false
}

// IntRoot returns floor(n^(1/k)) for n >= 0 and k >= 1.
func IntRoot(n *big.Int, k int) *big.Int {
	if k == 1 || n.Sign() == 0 {
		return new(big.Int).Set(n)
	}
	if k == 2 {
		return new(big.Int).Sqrt(n)
	}

	bk := big.NewInt(int64(k))
	bk1 := big.NewInt(int64(k - 1))

	// Start above the root; Newton's iteration then decreases monotonically.
	x := new(big.Int).Lsh(bigOne, uint((n.BitLen()+k-1)/k))
	y := new(big.Int)
	t := new(big.Int)
	for {
		// y = ((k-1)*x + n / x^(k-1)) / k
		t.Exp(x, bk1, nil)
		t.Quo(n, t)
		y.Mul(x, bk1)
		y.Add(y, t)
		y.Quo(y, bk)
		if y.Cmp(x) >= 0 {
			return x
		}
		x.Set(y)
	}
}

// PrimesUpTo returns the tabulated primes not exceeding bound, ascending.
// Bounds above SmallPrimeLimit return the whole table.
func PrimesUpTo(bound uint64) []uint64 {
	i := sort.Search(len(smallPrimes), func(i int) bool { return smallPrimes[i] > bound })
	return slices.Clone(smallPrimes[:i])
}
