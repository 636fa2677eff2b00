package binaryserializer

import (
	"io"

	"github.com/pkg/errors"
)

// ErrShortBuffer is returned when fewer bytes are available than the
// requested integer width.
var ErrShortBuffer = errors.New("not enough bytes to decode")

// EncodeUint32LE returns the 4-byte little-endian representation of x.
func EncodeUint32LE(x uint32) [4]byte {
	var buf [4]byte
	for i := range buf {
		buf[i] = byte(x >> (8 * i))
	}
	return buf
}

// EncodeUint64LE returns the 8-byte little-endian representation of x.
func EncodeUint64LE(x uint64) [8]byte {
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(x >> (8 * i))
	}
	return buf
}

// DecodeUint64LE reads a little-endian uint64 from the first 8 bytes of b.
// Any bytes past the eighth are ignored, so a digest can be passed as is.
func DecodeUint64LE(b []byte) (uint64, error) {
	if len(b) < 8 {
		return 0, errors.Wrapf(ErrShortBuffer, "want 8 bytes, got %d", len(b))
	}
	var x uint64
	for i := 0; i < 8; i++ {
		x |= uint64(b[i]) << (8 * i)
	}
	return x, nil
}

// PutUint8 writes the provided uint8 to the given writer.
func PutUint8(w io.Writer, val uint8) error {
	_, err := w.Write([]byte{val})
	return errors.WithStack(err)
}

// PutUint32 writes the 4-byte little-endian representation of val to the
// given writer.
func PutUint32(w io.Writer, val uint32) error {
	buf := EncodeUint32LE(val)
	_, err := w.Write(buf[:])
	return errors.WithStack(err)
}

// PutUint64 writes the 8-byte little-endian representation of val to the
// given writer.
func PutUint64(w io.Writer, val uint64) error {
	buf := EncodeUint64LE(val)
	_, err := w.Write(buf[:])
	return errors.WithStack(err)
}
