package numtheory

import (
	"math/big"
	"math/rand"
	"sync"

	"github.com/pffbench/pff/internal/errdefs"
)

// MaxEqualPrimeRedraws bounds how often GenerateSemiprime redraws q when it
// equals p. Some sizes admit a single prime per half (4 bits gives 3*3),
// so after this many redraws the square is accepted.
const MaxEqualPrimeRedraws = 64

// Generator draws random test inputs from a seeded source. Two generators
// built with the same non-negative seed produce the same sequence.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator seeded with seed.
// A negative seed uses a non-deterministic source.
func NewGenerator(seed int64) *Generator {
	if seed < 0 {
		seed = rand.Int63()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// RandomBits returns a uniformly random integer with exactly bits bits.
func (g *Generator) RandomBits(bits int) *big.Int {
	n := new(big.Int).Lsh(bigOne, uint(bits-1))
	if bits > 1 {
		n.Add(n, new(big.Int).Rand(g.rng, n))
	}
	return n
}

// RandomRange returns a uniformly random integer in [lo, hi].
func (g *Generator) RandomRange(lo, hi *big.Int) *big.Int {
	span := new(big.Int).Sub(hi, lo)
	span.Add(span, bigOne)
	r := new(big.Int).Rand(g.rng, span)
	return r.Add(r, lo)
}

// RandomPrime returns a prime with exactly bits bits.
func (g *Generator) RandomPrime(bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, errdefs.InvalidInput("prime size must be >= 2 bits, got %d", bits)
	}
	for {
		n := g.RandomBits(bits)
		n.SetBit(n, 0, 1)
		if IsPrime(n) {
			return n, nil
		}
	}
}

// GenerateSemiprime returns n = p*q with p of ceil(bits/2) bits and q of
// floor(bits/2) bits. The product has either bits or bits-1 bits; it is not
// renormalized to exactly bits.
func (g *Generator) GenerateSemiprime(bits int) (n, p, q *big.Int, err error) {
	if bits < 4 {
		return nil, nil, nil, errdefs.InvalidInput("semiprime size must be >= 4 bits, got %d", bits)
	}
	pBits := (bits + 1) / 2
	qBits := bits / 2

	if p, err = g.RandomPrime(pBits); err != nil {
		return nil, nil, nil, err
	}
	for i := 0; ; i++ {
		if q, err = g.RandomPrime(qBits); err != nil {
			return nil, nil, nil, err
		}
		if p.Cmp(q) != 0 || i >= MaxEqualPrimeRedraws {
			break
		}
	}
	return new(big.Int).Mul(p, q), p, q, nil
}

// GenerateComposite returns a random composite with exactly bits bits.
func (g *Generator) GenerateComposite(bits int) (*big.Int, error) {
	if bits < 3 {
		return nil, errdefs.InvalidInput("composite size must be >= 3 bits, got %d", bits)
	}
	for {
		n := g.RandomBits(bits)
		if n.Cmp(bigFour) >= 0 && !IsPrime(n) {
			return n, nil
		}
	}
}

var (
	defaultMu  sync.Mutex
	defaultGen = NewGenerator(-1)
)

// Seed reseeds the package-level generator.
func Seed(seed int64) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultGen = NewGenerator(seed)
}

// RandomPrime draws from the package-level generator.
func RandomPrime(bits int) (*big.Int, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultGen.RandomPrime(bits)
}

// GenerateSemiprime draws from the package-level generator.
func GenerateSemiprime(bits int) (n, p, q *big.Int, err error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultGen.GenerateSemiprime(bits)
}

// GenerateComposite draws from the package-level generator.
func GenerateComposite(bits int) (*big.Int, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultGen.GenerateComposite(bits)
}

// VerifySemiprime reports whether n = p*q with both p and q prime.
func VerifySemiprime(n, p, q *big.Int) bool {
	if n == nil || p == nil || q == nil {
		return false
	}
	if !IsPrime(p) || !IsPrime(q) {
		return false
	}
	return new(big.Int).Mul(p, q).Cmp(n) == 0
}
