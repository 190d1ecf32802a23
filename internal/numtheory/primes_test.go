package numtheory

import (
	"math/big"
	"testing"

	"github.com/pffbench/pff/internal/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bi(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad literal " + s)
	}
	return n
}

func TestIsProbablyPrime(t *testing.T) {
	tests := []struct {
		n    string
		want bool
	}{
		{"2", true},
		{"3", true},
		{"4", false},
		{"97", true},
		{"561", false}, // Carmichael
		{"65537", true},
		{"4294967291", true},  // largest prime below 2^32
		{"4294967297", false}, // F5 = 641 * 6700417
		{"1000000007", true},
		{"2305843009213693951", true}, // M61
		{"3825123056546413051", false},
		{"170141183460469231731687303715884105727", true}, // M127
		{"318665857834031151167461", false},               // strong pseudoprime to the first 12 prime bases
	}
	for _, tt := range tests {
		t.Run(tt.n, func(t *testing.T) {
			got, err := IsProbablyPrime(bi(tt.n))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsProbablyPrimeRejectsSmall(t *testing.T) {
	for _, n := range []int64{-5, 0, 1} {
		_, err := IsProbablyPrime(big.NewInt(n))
		require.ErrorIs(t, err, errdefs.ErrInvalidInput)
	}
	_, err := IsProbablyPrime(nil)
	require.ErrorIs(t, err, errdefs.ErrInvalidInput)
}

func TestIsPrimeAgreesWithStdlibAcrossThreshold(t *testing.T) {
	start := new(big.Int).SetUint64(DeterministicThreshold - 200)
	n := new(big.Int)
	for i := int64(0); i < 400; i++ {
		n.Add(start, big.NewInt(i))
		assert.Equal(t, n.ProbablyPrime(20), IsPrime(n), "n=%s", n)
	}
}

func TestSmallPrimes(t *testing.T) {
	primes := SmallPrimes()
	require.Equal(t, uint64(2), primes[0])
	assert.Equal(t, uint64(65521), primes[len(primes)-1])
	assert.Len(t, primes, 6542)

	primes[0] = 99
	assert.Equal(t, uint64(2), SmallPrimes()[0], "table must not be mutable through the copy")
}

func TestPerfectPower(t *testing.T) {
	tests := []struct {
		n        string
		wantBase string
		wantExp  int
		wantOK   bool
	}{
		{"4", "2", 2, true},
		{"1024", "32", 2, true},
		{"27", "3", 3, true},
		{"3125", "5", 5, true},
		{"15", "", 0, false},
		{"3", "", 0, false},
		{"1000000014000000049", "1000000007", 2, true},
		{"1000000021000000147000000343", "1000000007", 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.n, func(t *testing.T) {
			base, exp, ok := PerfectPower(bi(tt.n))
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantBase, base.String())
			assert.Equal(t, tt.wantExp, exp)
		})
	}
}

func TestIntRoot(t *testing.T) {
	assert.Equal(t, "10", IntRoot(big.NewInt(1000), 3).String())
	assert.Equal(t, "9", IntRoot(big.NewInt(999), 3).String())
	assert.Equal(t, "4", IntRoot(big.NewInt(1<<20), 10).String())
	assert.Equal(t, "0", IntRoot(big.NewInt(0), 4).String())
}

func TestPrimesUpTo(t *testing.T) {
	assert.Equal(t, []uint64{2, 3, 5, 7}, PrimesUpTo(10))
	assert.Equal(t, []uint64{2, 3, 5, 7, 11}, PrimesUpTo(11))
	assert.Empty(t, PrimesUpTo(1))
	assert.Len(t, PrimesUpTo(10_000), 1229)
	assert.Len(t, PrimesUpTo(1<<40), 6542)
}
