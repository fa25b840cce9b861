package trainer

import (
	"hash/fnv"
	"math/rand"
)

// newRand seeds a math/rand.Rand from an arbitrary string the way the
// reference trainer's rnd.set_seed(string) does: hash the string to a
// 64-bit integer and use that as the PRNG seed. An empty seed still
// produces a deterministic (if unremarkable) stream, since fnv.New64a's
// hash of the empty string is a fixed constant.
func newRand(seed string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(seed))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}
