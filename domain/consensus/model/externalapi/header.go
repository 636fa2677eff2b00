package externalapi

import "bytes"

// ProofOfWork is the proof-of-work record embedded in every BlockHeader
type ProofOfWork struct {
	PowAlgo                     uint64
	AccumulatedMoneroDifficulty uint64
	AccumulatedBlakeDifficulty  uint64
	PowData                     []byte
	TargetDifficulty            uint64
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = ProofOfWork{0, 0, 0, []byte{}, 0}

// Clone returns a clone of ProofOfWork
func (pow *ProofOfWork) Clone() ProofOfWork {
	var powData []byte
	if pow.PowData != nil {
		powData = make([]byte, len(pow.PowData))
		copy(powData, pow.PowData)
	}
	return ProofOfWork{
		PowAlgo:                     pow.PowAlgo,
		AccumulatedMoneroDifficulty: pow.AccumulatedMoneroDifficulty,
		AccumulatedBlakeDifficulty:  pow.AccumulatedBlakeDifficulty,
		PowData:                     powData,
		TargetDifficulty:            pow.TargetDifficulty,
	}
}

// Equal returns whether pow equals to other
func (pow *ProofOfWork) Equal(other *ProofOfWork) bool {
	if pow == nil || other == nil {
		return pow == other
	}

	return pow.PowAlgo == other.PowAlgo &&
		pow.AccumulatedMoneroDifficulty == other.AccumulatedMoneroDifficulty &&
		pow.AccumulatedBlakeDifficulty == other.AccumulatedBlakeDifficulty &&
		bytes.Equal(pow.PowData, other.PowData) &&
		pow.TargetDifficulty == other.TargetDifficulty
}

// BlockHeader represents a block header being mined. Nonce is the only
// field that changes during a mining attempt.
type BlockHeader struct {
	Nonce             uint64
	Version           uint32
	Height            uint64
	PrevHash          DomainHash
	Timestamp         uint64
	OutputMR          DomainHash
	RangeProofMR      DomainHash
	KernelMR          DomainHash
	TotalKernelOffset DomainHash
	Pow               ProofOfWork
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = BlockHeader{0, 0, 0, DomainHash{}, 0, DomainHash{}, DomainHash{}, DomainHash{}, DomainHash{}, ProofOfWork{}}

// Clone returns a deep copy of the header
func (header *BlockHeader) Clone() *BlockHeader {
	return &BlockHeader{
		Nonce:             header.Nonce,
		Version:           header.Version,
		Height:            header.Height,
		PrevHash:          header.PrevHash,
		Timestamp:         header.Timestamp,
		OutputMR:          header.OutputMR,
		RangeProofMR:      header.RangeProofMR,
		KernelMR:          header.KernelMR,
		TotalKernelOffset: header.TotalKernelOffset,
		Pow:               header.Pow.Clone(),
	}
}

// Equal returns whether header equals to other
func (header *BlockHeader) Equal(other *BlockHeader) bool {
	if header == nil || other == nil {
		return header == other
	}

	return header.Nonce == other.Nonce &&
		header.Version == other.Version &&
		header.Height == other.Height &&
		header.PrevHash.Equal(&other.PrevHash) &&
		header.Timestamp == other.Timestamp &&
		header.OutputMR.Equal(&other.OutputMR) &&
		header.RangeProofMR.Equal(&other.RangeProofMR) &&
		header.KernelMR.Equal(&other.KernelMR) &&
		header.TotalKernelOffset.Equal(&other.TotalKernelOffset) &&
		header.Pow.Equal(&other.Pow)
}
