package mining

import (
	"context"
	"testing"
	"time"

	"github.com/kaspanet/sha3miner/domain/consensus/model/externalapi"
	"github.com/kaspanet/sha3miner/domain/consensus/utils/pow"
	"github.com/pkg/errors"
)

func hashWithFirstByte(b byte) externalapi.DomainHash {
	var hashBytes [externalapi.DomainHashSize]byte
	hashBytes[0] = b
	return *externalapi.NewDomainHashFromByteArray(&hashBytes)
}

func testHeader() *externalapi.BlockHeader {
	return &externalapi.BlockHeader{
		Nonce:             10,
		Version:           2,
		Height:            3,
		PrevHash:          hashWithFirstByte(4),
		Timestamp:         5,
		OutputMR:          hashWithFirstByte(6),
		RangeProofMR:      hashWithFirstByte(7),
		KernelMR:          hashWithFirstByte(8),
		TotalKernelOffset: hashWithFirstByte(9),
		Pow: externalapi.ProofOfWork{
			PowAlgo:                     1,
			AccumulatedMoneroDifficulty: 2,
			AccumulatedBlakeDifficulty:  3,
			PowData:                     []byte{4},
			TargetDifficulty:            5,
		},
	}
}

func TestMineTrivialTarget(t *testing.T) {
	header := testHeader()
	nonce, err := Mine(header, 1, 0)
	if err != nil {
		t.Fatalf("Mine: %s", err)
	}
	if nonce != 0 || header.Nonce != 0 {
		t.Errorf("got nonce %d (header nonce %d), want 0", nonce, header.Nonce)
	}
}

func TestMineReturnsSmallestNonce(t *testing.T) {
	for _, targetDifficulty := range []uint64{5, 16, 100} {
		header := testHeader()
		nonce, err := Mine(header, targetDifficulty, 100000)
		if err != nil {
			t.Fatalf("Mine(%d): %s", targetDifficulty, err)
		}
		if header.Nonce != nonce {
			t.Errorf("Mine(%d) returned %d but left header nonce %d", targetDifficulty, nonce, header.Nonce)
		}
		if !pow.CheckProofOfWork(header, targetDifficulty) {
			t.Errorf("Mine(%d): nonce %d does not reach the target", targetDifficulty, nonce)
		}

		check := testHeader()
		for smaller := uint64(0); smaller < nonce; smaller++ {
			check.Nonce = smaller
			if pow.CheckProofOfWork(check, targetDifficulty) {
				t.Errorf("Mine(%d) returned %d although %d reaches the target", targetDifficulty, nonce, smaller)
				break
			}
		}

		// Only the nonce changes.
		expected := testHeader()
		expected.Nonce = nonce
		if !header.Equal(expected) {
			t.Errorf("Mine(%d) changed header fields other than the nonce", targetDifficulty)
		}
	}
}

func TestMineExhausted(t *testing.T) {
	counter := &HashCounter{}
	_, err := MineWithContext(context.Background(), testHeader(), pow.MaxDifficulty, 1000, counter)
	if !errors.Is(err, ErrSearchExhausted) {
		t.Fatalf("MineWithContext: got error %v, want %v", err, ErrSearchExhausted)
	}
	if counter.Load() != 1000 {
		t.Errorf("got %d hashes counted, want 1000", counter.Load())
	}
}

func TestMineContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := MineWithContext(ctx, testHeader(), pow.MaxDifficulty, 0, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("MineWithContext: got error %v, want %v", err, context.Canceled)
	}
}

func TestHashCounter(t *testing.T) {
	var nilCounter *HashCounter
	nilCounter.Increment()
	if nilCounter.Load() != 0 {
		t.Errorf("a nil counter should always be 0")
	}

	counter := &HashCounter{}
	for i := 0; i < 3; i++ {
		counter.Increment()
	}
	if counter.take() != 3 {
		t.Errorf("take: want 3")
	}
	if counter.Load() != 0 {
		t.Errorf("take did not reset the counter")
	}
}

// zeroScalarAt returns a difficulty function under which only the given
// nonce hashes to a zero scalar, and every other nonce misses any target.
func zeroScalarAt(winningNonce uint64) func(*externalapi.BlockHeader) (uint64, *externalapi.DomainHash) {
	return func(header *externalapi.BlockHeader) (uint64, *externalapi.DomainHash) {
		var hashBytes [externalapi.DomainHashSize]byte
		if header.Nonce != winningNonce {
			for i := 0; i < 8; i++ {
				hashBytes[i] = 0xff
			}
		}
		hash := externalapi.NewDomainHashFromByteArray(&hashBytes)
		return pow.DifficultyFromHash(hash), hash
	}
}

func TestMineAcceptsZeroScalar(t *testing.T) {
	originalDifficultyWithHash := difficultyWithHash
	defer func() { difficultyWithHash = originalDifficultyWithHash }()
	difficultyWithHash = zeroScalarAt(7)

	header := testHeader()
	nonce, err := Mine(header, pow.MaxDifficulty, 1000)
	if err != nil {
		t.Fatalf("Mine: %s", err)
	}
	if nonce != 7 || header.Nonce != 7 {
		t.Errorf("got nonce %d (header nonce %d), want 7", nonce, header.Nonce)
	}
	difficulty, hash := difficultyWithHash(header)
	if !pow.IsZeroScalar(hash) || difficulty != pow.MaxDifficulty {
		t.Errorf("nonce %d: got hash %s with difficulty %d, want a zero scalar clamped to %d",
			nonce, hash, difficulty, pow.MaxDifficulty)
	}

	// Without the zero scalar nothing reaches the maximal difficulty.
	difficultyWithHash = zeroScalarAt(5000)
	_, err = Mine(testHeader(), pow.MaxDifficulty, 1000)
	if !errors.Is(err, ErrSearchExhausted) {
		t.Errorf("Mine: got error %v, want %v", err, ErrSearchExhausted)
	}
}

func TestLogHashRateInvalidInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	counter := &HashCounter{}
	counter.Increment()

	// A panic inside the logging goroutine would end the whole process.
	LogHashRate(ctx, counter, 0)
	LogHashRate(ctx, counter, -time.Second)
	time.Sleep(10 * time.Millisecond)

	if counter.Load() != 1 {
		t.Errorf("a disabled hash rate log sampled the counter")
	}
}
