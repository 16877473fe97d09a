package testutil

import (
	"fmt"
	"math/rand"
	"sync"
)

// RNG encapsulates a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Perm returns a random permutation of [0,n) as ranks.
func (r *RNG) Perm(n int) []int32 {
	r.mu.Lock()
	p := r.rand.Perm(n)
	r.mu.Unlock()

	out := make([]int32, n)
	for i, v := range p {
		out[i] = int32(v) //nolint:gosec
	}
	return out
}

// RankingFixture returns a database of features x identifiers where every
// feature ranks all identifiers (each row is a permutation).
// Features are named "feature<i>" and identifiers "gene<i>".
func (r *RNG) RankingFixture(index string, features, identifiers int) Fixture {
	fx := Fixture{
		Index:    index,
		Features: Names("feature", features),
		Columns:  Names("gene", identifiers),
		Ranks:    make([][]int32, identifiers),
	}
	for c := range fx.Ranks {
		fx.Ranks[c] = make([]int32, features)
	}
	for row := 0; row < features; row++ {
		for c, rank := range r.Perm(identifiers) {
			fx.Ranks[c][row] = rank
		}
	}
	return fx
}

// ScoreFixture returns a database of features x identifiers with uniform scores in [0,1).
func (r *RNG) ScoreFixture(index string, features, identifiers int) Fixture {
	fx := Fixture{
		Index:    index,
		Features: Names("feature", features),
		Columns:  Names("gene", identifiers),
		Scores:   make([][]float32, identifiers),
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for c := range fx.Scores {
		fx.Scores[c] = make([]float32, features)
		for row := range fx.Scores[c] {
			fx.Scores[c][row] = r.rand.Float32()
		}
	}
	return fx
}

// Names returns prefix0 .. prefix<n-1>.
func Names(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return out
}
