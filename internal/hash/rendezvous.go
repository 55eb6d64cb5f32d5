// Package hash provides xxh3-based rendezvous (highest random weight) scoring.
package hash

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// Rendezvous scores (person, round, job) triples.
//
// For a fixed person and round every job gets a pseudo-random but stable
// score; picking the highest scoring eligible job yields a deterministic
// choice that spreads people evenly across jobs.
type Rendezvous struct {
	seed uint64
}

// NewRendezvous creates a scorer.
//
// Parameters:
//   - seed: Seed for the hash function (0 means unseeded xxh3)
//
// Returns:
//   - *Rendezvous: Initialized scorer
func NewRendezvous(seed uint64) *Rendezvous {
	return &Rendezvous{seed: seed}
}

// PersonKey folds a person id and round into a single hash, used as the seed
// for per-job scores.
func (r *Rendezvous) PersonKey(personID int, round int) uint64 {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[:8], uint64(personID)) //nolint:gosec
	binary.LittleEndian.PutUint64(b[8:], uint64(round))    //nolint:gosec

	if r.seed != 0 {
		return xxh3.HashSeed(b[:], r.seed)
	}

	return xxh3.Hash(b[:])
}

// Score returns the weight of job for the person identified by key.
func (r *Rendezvous) Score(key uint64, job string) uint64 {
	return xxh3.HashStringSeed(job, key)
}
