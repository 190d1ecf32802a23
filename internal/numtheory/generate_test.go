package numtheory

import (
	"math/big"
	"testing"

	"github.com/pffbench/pff/internal/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomPrime(t *testing.T) {
	g := NewGenerator(1)
	for _, bits := range []int{2, 3, 8, 17, 32, 64, 128} {
		p, err := g.RandomPrime(bits)
		require.NoError(t, err)
		assert.Equal(t, bits, p.BitLen())
		assert.True(t, p.ProbablyPrime(20), "%s should be prime", p)
	}

	_, err := g.RandomPrime(1)
	require.ErrorIs(t, err, errdefs.ErrInvalidInput)
}

func TestGenerateSemiprimeShape(t *testing.T) {
	g := NewGenerator(42)
	for bits := 4; bits <= 96; bits++ {
		n, p, q, err := g.GenerateSemiprime(bits)
		require.NoError(t, err, "bits=%d", bits)

		assert.Equal(t, 0, new(big.Int).Mul(p, q).Cmp(n), "bits=%d", bits)
		assert.True(t, p.ProbablyPrime(20))
		assert.True(t, q.ProbablyPrime(20))
		assert.Equal(t, (bits+1)/2, p.BitLen())
		assert.Equal(t, bits/2, q.BitLen())
		// product is never renormalized: bits or bits-1
		assert.Contains(t, []int{bits - 1, bits}, n.BitLen(), "bits=%d n=%s", bits, n)
		assert.True(t, VerifySemiprime(n, p, q))
	}
}

func TestGenerateSemiprimeFourBitsAcceptsSquare(t *testing.T) {
	n, p, q, err := NewGenerator(7).GenerateSemiprime(4)
	require.NoError(t, err)
	assert.Equal(t, "9", n.String())
	assert.Equal(t, "3", p.String())
	assert.Equal(t, "3", q.String())
}

func TestGenerateSemiprimeDistinctFactors(t *testing.T) {
	g := NewGenerator(3)
	for i := 0; i < 50; i++ {
		_, p, q, err := g.GenerateSemiprime(20)
		require.NoError(t, err)
		assert.NotEqual(t, 0, p.Cmp(q))
	}
}

func TestGenerateSemiprimeRejectsSmallSizes(t *testing.T) {
	for _, bits := range []int{-1, 0, 1, 2, 3} {
		_, _, _, err := NewGenerator(1).GenerateSemiprime(bits)
		require.ErrorIs(t, err, errdefs.ErrInvalidInput, "bits=%d", bits)
	}
}

func TestGenerateComposite(t *testing.T) {
	g := NewGenerator(9)
	for bits := 3; bits <= 64; bits++ {
		n, err := g.GenerateComposite(bits)
		require.NoError(t, err)
		assert.Equal(t, bits, n.BitLen())
		assert.False(t, n.ProbablyPrime(20), "%s should be composite", n)
	}

	_, err := g.GenerateComposite(2)
	require.ErrorIs(t, err, errdefs.ErrInvalidInput)
}

func TestGeneratorDeterministicForSeed(t *testing.T) {
	a, b := NewGenerator(1234), NewGenerator(1234)
	for i := 0; i < 10; i++ {
		na, _, _, err := a.GenerateSemiprime(40)
		require.NoError(t, err)
		nb, _, _, err := b.GenerateSemiprime(40)
		require.NoError(t, err)
		assert.Equal(t, na.String(), nb.String())
	}
}

func TestRandomRange(t *testing.T) {
	g := NewGenerator(5)
	lo, hi := big.NewInt(2), big.NewInt(6)
	seen := map[int64]bool{}
	for i := 0; i < 200; i++ {
		v := g.RandomRange(lo, hi)
		require.True(t, v.Cmp(lo) >= 0 && v.Cmp(hi) <= 0)
		seen[v.Int64()] = true
	}
	assert.Len(t, seen, 5)
}

func TestPackageLevelGenerator(t *testing.T) {
	Seed(99)
	n1, _, _, err := GenerateSemiprime(32)
	require.NoError(t, err)
	Seed(99)
	n2, _, _, err := GenerateSemiprime(32)
	require.NoError(t, err)
	assert.Equal(t, n1.String(), n2.String())

	p, err := RandomPrime(16)
	require.NoError(t, err)
	assert.Equal(t, 16, p.BitLen())

	c, err := GenerateComposite(16)
	require.NoError(t, err)
	assert.False(t, c.ProbablyPrime(20))
}

func TestVerifySemiprime(t *testing.T) {
	assert.True(t, VerifySemiprime(big.NewInt(15), big.NewInt(3), big.NewInt(5)))
	assert.False(t, VerifySemiprime(big.NewInt(16), big.NewInt(4), big.NewInt(4)))
	assert.False(t, VerifySemiprime(big.NewInt(15), big.NewInt(3), big.NewInt(7)))
	assert.False(t, VerifySemiprime(nil, big.NewInt(3), big.NewInt(5)))
}
