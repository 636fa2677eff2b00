package mining

import (
	"context"
	"math"

	"github.com/kaspanet/sha3miner/domain/consensus/model/externalapi"
	"github.com/kaspanet/sha3miner/domain/consensus/utils/pow"
	"github.com/pkg/errors"
)

// ErrSearchExhausted is returned when the iteration budget or the nonce
// space runs out before the target difficulty is reached.
var ErrSearchExhausted = errors.New("nonce search exhausted")

// contextCheckInterval is the number of hashes tried between two checks of
// the search context. Must be a power of two.
const contextCheckInterval = 1 << 12

// difficultyWithHash evaluates a header. Replaced in tests to force hashes
// that are practically unreachable, such as a zero scalar.
var difficultyWithHash = pow.DifficultyWithHash

// Mine searches for the smallest nonce with which header reaches
// targetDifficulty. The search starts at nonce 0 and mutates nothing but
// header.Nonce, which holds the winning nonce on success.
//
// maxIterations bounds the number of nonces tried; zero means the search
// is bounded only by the nonce space. The nonce never wraps around.
func Mine(header *externalapi.BlockHeader, targetDifficulty uint64, maxIterations uint64) (uint64, error) {
	return MineWithContext(context.Background(), header, targetDifficulty, maxIterations, nil)
}

// MineWithContext is Mine, but also stops with the context's error once ctx
// is done. Every hash tried is added to counter, which may be nil.
func MineWithContext(ctx context.Context, header *externalapi.BlockHeader, targetDifficulty uint64,
	maxIterations uint64, counter *HashCounter) (uint64, error) {

	log.Debugf("Searching for a nonce reaching difficulty %d (budget: %d)", targetDifficulty, maxIterations)

	header.Nonce = 0
	for tried := uint64(1); ; tried++ {
		if tried&(contextCheckInterval-1) == 0 {
			if err := ctx.Err(); err != nil {
				return 0, errors.Wrapf(err, "search stopped at nonce %d", header.Nonce)
			}
		}

		difficulty, hash := difficultyWithHash(header)
		counter.Increment()
		if difficulty >= targetDifficulty {
			if pow.IsZeroScalar(hash) {
				log.Warnf("Nonce %d produced a zero hash scalar, clamped to difficulty %d",
					header.Nonce, pow.MaxDifficulty)
			}
			log.Infof("Found nonce %d after %d tries: hash %s, difficulty %d",
				header.Nonce, tried, hash, difficulty)
			return header.Nonce, nil
		}

		if maxIterations != 0 && tried >= maxIterations {
			return 0, errors.Wrapf(ErrSearchExhausted, "iteration budget of %d used up at nonce %d",
				maxIterations, header.Nonce)
		}
		if header.Nonce == math.MaxUint64 {
			return 0, errors.Wrapf(ErrSearchExhausted, "went over all the nonce space")
		}
		header.Nonce++
	}
}
