package pow

import (
	"testing"

	"github.com/kaspanet/sha3miner/domain/consensus/model/externalapi"
)

// Test vectors are from here: https://github.com/rust-random/rngs/blob/17aa826cc38d3e8408c9489ac859fa9397acd479/rand_xoshiro/src/xoshiro256plusplus.rs#L121
func TestNonceGenerator_Uint64(t *testing.T) {
	state := NonceGenerator{1, 2, 3, 4}
	expected := []uint64{41943041, 58720359, 3588806011781223, 3591011842654386,
		9228616714210784205, 9973669472204895162, 14011001112246962877,
		12406186145184390807, 15849039046786891736, 10450023813501588000}
	for _, ex := range expected {
		val := state.Uint64()
		if val != ex {
			t.Errorf("expected: %d, found: %d", ex, val)
		}
	}
}

func TestNewNonceGenerator(t *testing.T) {
	var seedBytes [externalapi.DomainHashSize]byte
	seedBytes[0], seedBytes[8], seedBytes[16], seedBytes[24] = 1, 2, 3, 4
	seeded := NewNonceGenerator(externalapi.NewDomainHashFromByteArray(&seedBytes))
	if *seeded != (NonceGenerator{1, 2, 3, 4}) {
		t.Fatalf("NewNonceGenerator: got state %v", *seeded)
	}

	zero := NewNonceGenerator(&externalapi.DomainHash{})
	if zero.Uint64() == 0 && zero.Uint64() == 0 {
		t.Errorf("a zero seed produced a zero stream")
	}
}
