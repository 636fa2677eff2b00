package hashes

import (
	"testing"
)

// Test vectors are the FIPS 202 SHA3-256 examples.
func TestHeaderHashWriter(t *testing.T) {
	tests := []struct {
		data     string
		expected string
	}{
		{"", "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
		{"abc", "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
	}
	for _, test := range tests {
		writer := NewHeaderHashWriter()
		writer.InfallibleWrite([]byte(test.data))
		hash := writer.Finalize()
		if hash.String() != test.expected {
			t.Errorf("hash of %q: got %s, want %s", test.data, hash, test.expected)
		}
	}
}

func TestHashWriterIncremental(t *testing.T) {
	writer := NewHeaderHashWriter()
	writer.InfallibleWrite([]byte("a"))
	writer.InfallibleWrite([]byte("bc"))
	incremental := writer.Finalize()

	oneShot := NewHeaderHashWriter()
	oneShot.InfallibleWrite([]byte("abc"))
	if !incremental.Equal(oneShot.Finalize()) {
		t.Errorf("incremental hash %s differs from one-shot hash", incremental)
	}
}
