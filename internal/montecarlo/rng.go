// Package montecarlo implements the sampler back-end of spec.md §4.5: the
// rejection generator, the importance-weighted constrained generator, and
// the MCMC swap chain, dispatched in parallel across workers with a seeded,
// reproducible generator per worker (spec.md §5, §9).
package montecarlo

import (
	"crypto/sha256"
	"encoding/binary"
)

// hashRng is a deterministic, reproducible stream of pseudo-random values
// built from sha256(seed ‖ counter), the same construction as the teacher's
// DeterministicRng/DeterministicDeck (hash-chain RNG), adapted to emit
// uint64/float64 draws instead of scalars.
type hashRng struct {
	seed    []byte
	counter uint64
}

// newHashRng derives a worker-local stream from a master seed and a worker
// index, so N samples split across workers remain reproducible as a whole
// (spec.md §5: "seeded generator per worker derived from a master seed").
func newHashRng(masterSeed uint64, worker int) *hashRng {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint64(buf[:8], masterSeed)
	binary.LittleEndian.PutUint64(buf[8:], uint64(worker))
	sum := sha256.Sum256(buf)
	return &hashRng{seed: sum[:]}
}

func (r *hashRng) nextUint64() uint64 {
	buf := make([]byte, len(r.seed)+8)
	copy(buf, r.seed)
	binary.LittleEndian.PutUint64(buf[len(r.seed):], r.counter)
	r.counter++
	h := sha256.Sum256(buf)
	return binary.LittleEndian.Uint64(h[:8])
}

// intn returns a uniform value in [0,n). Panics if n <= 0.
func (r *hashRng) intn(n int) int {
	if n <= 0 {
		panic("montecarlo: intn requires n > 0")
	}
	return int(r.nextUint64() % uint64(n))
}

// float64 returns a uniform value in [0,1).
func (r *hashRng) float64() float64 {
	const mantissaBits = 53
	return float64(r.nextUint64()>>(64-mantissaBits)) / float64(uint64(1)<<mantissaBits)
}
