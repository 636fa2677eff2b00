package pow

import (
	"math"

	"github.com/kaspanet/sha3miner/domain/consensus/model/externalapi"
	"github.com/kaspanet/sha3miner/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/sha3miner/util/binaryserializer"
	"github.com/pkg/errors"
)

// MaxDifficulty is the numerator of every difficulty calculation, and the
// difficulty assigned to a hash whose scalar is zero.
const MaxDifficulty uint64 = math.MaxUint64

// Difficulty returns the difficulty achieved by the header in its current state
func Difficulty(header *externalapi.BlockHeader) uint64 {
	difficulty, _ := DifficultyWithHash(header)
	return difficulty
}

// DifficultyWithHash returns the difficulty achieved by the header together
// with the header hash it was derived from
func DifficultyWithHash(header *externalapi.BlockHeader) (uint64, *externalapi.DomainHash) {
	hash := consensushashing.HeaderHash(header)
	return DifficultyFromHash(hash), hash
}

// DifficultyFromHash returns MaxDifficulty divided by the hash scalar
func DifficultyFromHash(hash *externalapi.DomainHash) uint64 {
	return DifficultyFromScalar(HashScalar(hash))
}

// DifficultyFromScalar returns MaxDifficulty / scalar. A zero scalar cannot
// be divided by and is the best hash possible, so it is clamped to
// MaxDifficulty.
func DifficultyFromScalar(scalar uint64) uint64 {
	if scalar == 0 {
		return MaxDifficulty
	}
	return MaxDifficulty / scalar
}

// HashScalar returns the first 8 bytes of the hash read as a little-endian uint64
func HashScalar(hash *externalapi.DomainHash) uint64 {
	hashArray := hash.ByteArray()
	scalar, err := binaryserializer.DecodeUint64LE(hashArray[:8])
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. a hash is always longer than 8 bytes"))
	}
	return scalar
}

// IsZeroScalar returns whether the hash scalar is zero, the case in which
// the difficulty is clamped rather than computed
func IsZeroScalar(hash *externalapi.DomainHash) bool {
	return HashScalar(hash) == 0
}

// CheckProofOfWork returns whether the header, with its current nonce, reaches
// the given target difficulty
func CheckProofOfWork(header *externalapi.BlockHeader, targetDifficulty uint64) bool {
	return Difficulty(header) >= targetDifficulty
}

// CheckProofOfWorkByTarget checks the header against the target difficulty
// recorded in its own proof-of-work record
func CheckProofOfWorkByTarget(header *externalapi.BlockHeader) bool {
	return CheckProofOfWork(header, header.Pow.TargetDifficulty)
}
