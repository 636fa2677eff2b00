package consensushashing

import (
	"io"

	"github.com/kaspanet/sha3miner/domain/consensus/model/externalapi"
	"github.com/kaspanet/sha3miner/domain/consensus/utils/hashes"
	"github.com/kaspanet/sha3miner/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// HeaderHash returns the SHA3-256 hash of the canonical serialization of
// the given header.
func HeaderHash(header *externalapi.BlockHeader) *externalapi.DomainHash {
	writer := hashes.NewHeaderHashWriter()
	err := SerializeHeader(writer, header)
	if err != nil {
		// It seems like this could only happen if the writer returned an error.
		// and this writer should never return an error (no allocations or possible failures)
		// the only non-writer error path here is unknown types in `WriteElement`
		panic(errors.Wrap(err, "this should never happen. Hash digest should never return an error"))
	}

	return writer.Finalize()
}

// SerializeHeader writes the canonical serialization of header to w.
// Integers are little-endian, hashes and the pow data are written raw:
//
//	VERSION || HEIGHT || PREV_HASH || TIMESTAMP || OUTPUT_MR || RANGE_PROOF_MR ||
//	KERNEL_MR || TOTAL_KERNEL_OFFSET || NONCE || POW
func SerializeHeader(w io.Writer, header *externalapi.BlockHeader) error {
	err := serialization.WriteElements(w, header.Version, header.Height, &header.PrevHash, header.Timestamp,
		&header.OutputMR, &header.RangeProofMR, &header.KernelMR, &header.TotalKernelOffset, header.Nonce)
	if err != nil {
		return err
	}
	return serializeProofOfWork(w, &header.Pow)
}

// serializeProofOfWork writes every field of pow in declaration order.
func serializeProofOfWork(w io.Writer, pow *externalapi.ProofOfWork) error {
	return serialization.WriteElements(w, pow.PowAlgo, pow.AccumulatedMoneroDifficulty,
		pow.AccumulatedBlakeDifficulty, pow.PowData, pow.TargetDifficulty)
}
