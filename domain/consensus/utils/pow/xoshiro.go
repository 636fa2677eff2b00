package pow

import (
	"math/bits"

	"github.com/kaspanet/sha3miner/domain/consensus/model/externalapi"
	"github.com/kaspanet/sha3miner/util/binaryserializer"
)

// NonceGenerator yields a deterministic stream of pseudo-random nonces
// using xoshiro256++.
type NonceGenerator struct {
	s0 uint64
	s1 uint64
	s2 uint64
	s3 uint64
}

// NewNonceGenerator seeds a NonceGenerator from the given hash. An all-zero
// state never leaves zero, so a zero seed is replaced with a fixed one.
func NewNonceGenerator(seed *externalapi.DomainHash) *NonceGenerator {
	hashArray := seed.ByteArray()
	words := [4]uint64{}
	for i := range words {
		// The error path is unreachable: every slice holds exactly 8 bytes.
		words[i], _ = binaryserializer.DecodeUint64LE(hashArray[i*8 : (i+1)*8])
	}
	if words == [4]uint64{} {
		words = [4]uint64{1, 2, 3, 4}
	}
	return &NonceGenerator{s0: words[0], s1: words[1], s2: words[2], s3: words[3]}
}

// Uint64 returns the next value of the stream.
func (x *NonceGenerator) Uint64() uint64 {
	res := bits.RotateLeft64(x.s0+x.s3, 23) + x.s0
	t := x.s1 << 17
	x.s2 ^= x.s0
	x.s3 ^= x.s1
	x.s1 ^= x.s2
	x.s0 ^= x.s3

	x.s2 ^= t
	x.s3 = bits.RotateLeft64(x.s3, 45)
	return res
}
