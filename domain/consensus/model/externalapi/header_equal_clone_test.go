package externalapi

import (
	"reflect"
	"testing"
)

func hashWithFirstByte(b byte) DomainHash {
	var hashBytes [DomainHashSize]byte
	hashBytes[0] = b
	return *NewDomainHashFromByteArray(&hashBytes)
}

func initTestBaseHeader() *BlockHeader {
	return &BlockHeader{
		Nonce:             10,
		Version:           2,
		Height:            3,
		PrevHash:          hashWithFirstByte(4),
		Timestamp:         5,
		OutputMR:          hashWithFirstByte(6),
		RangeProofMR:      hashWithFirstByte(7),
		KernelMR:          hashWithFirstByte(8),
		TotalKernelOffset: hashWithFirstByte(9),
		Pow: ProofOfWork{
			PowAlgo:                     1,
			AccumulatedMoneroDifficulty: 2,
			AccumulatedBlakeDifficulty:  3,
			PowData:                     []byte{4},
			TargetDifficulty:            5,
		},
	}
}

func TestBlockHeader_Equal(t *testing.T) {
	type headerToCompare struct {
		name           string
		mutate         func(header *BlockHeader)
		expectedResult bool
	}
	tests := []headerToCompare{
		{"identical", func(*BlockHeader) {}, true},
		{"nonce", func(h *BlockHeader) { h.Nonce++ }, false},
		{"version", func(h *BlockHeader) { h.Version++ }, false},
		{"height", func(h *BlockHeader) { h.Height++ }, false},
		{"prev hash", func(h *BlockHeader) { h.PrevHash = hashWithFirstByte(40) }, false},
		{"timestamp", func(h *BlockHeader) { h.Timestamp++ }, false},
		{"output mr", func(h *BlockHeader) { h.OutputMR = hashWithFirstByte(60) }, false},
		{"range proof mr", func(h *BlockHeader) { h.RangeProofMR = hashWithFirstByte(70) }, false},
		{"kernel mr", func(h *BlockHeader) { h.KernelMR = hashWithFirstByte(80) }, false},
		{"total kernel offset", func(h *BlockHeader) { h.TotalKernelOffset = hashWithFirstByte(90) }, false},
		{"pow algo", func(h *BlockHeader) { h.Pow.PowAlgo++ }, false},
		{"monero difficulty", func(h *BlockHeader) { h.Pow.AccumulatedMoneroDifficulty++ }, false},
		{"blake difficulty", func(h *BlockHeader) { h.Pow.AccumulatedBlakeDifficulty++ }, false},
		{"pow data", func(h *BlockHeader) { h.Pow.PowData = []byte{4, 4} }, false},
		{"pow target", func(h *BlockHeader) { h.Pow.TargetDifficulty++ }, false},
	}

	base := initTestBaseHeader()
	for _, test := range tests {
		other := initTestBaseHeader()
		test.mutate(other)
		if result := base.Equal(other); result != test.expectedResult {
			t.Errorf("%s: Equal returned %t, want %t", test.name, result, test.expectedResult)
		}
	}

	var nilHeader *BlockHeader
	if !nilHeader.Equal(nil) {
		t.Errorf("nil headers should be equal")
	}
	if base.Equal(nil) {
		t.Errorf("a header should not equal nil")
	}
}

func TestBlockHeader_Clone(t *testing.T) {
	header := initTestBaseHeader()
	clone := header.Clone()
	if !header.Equal(clone) {
		t.Fatalf("clone is not equal to the original")
	}
	if !reflect.DeepEqual(header, clone) {
		t.Fatalf("clone is not deeply equal to the original")
	}

	clone.Nonce++
	clone.Pow.PowData[0]++
	if header.Nonce != 10 || header.Pow.PowData[0] != 4 {
		t.Errorf("mutating the clone changed the original header")
	}
}

func TestNewDomainHashFromString(t *testing.T) {
	hashString := "0400000000000000000000000000000000000000000000000000000000000000"
	hash, err := NewDomainHashFromString(hashString)
	if err != nil {
		t.Fatalf("NewDomainHashFromString: %s", err)
	}
	expected := hashWithFirstByte(4)
	if !hash.Equal(&expected) {
		t.Errorf("got %s, want %s", hash, expected)
	}
	if hash.String() != hashString {
		t.Errorf("String: got %s, want %s", hash, hashString)
	}

	if _, err := NewDomainHashFromString("04"); err == nil {
		t.Errorf("expected an error for a short hash string")
	}
	if _, err := NewDomainHashFromByteSlice(make([]byte, DomainHashSize+1)); err == nil {
		t.Errorf("expected an error for a long byte slice")
	}
}
