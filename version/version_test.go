package version

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		build    string
		expected string
	}{
		{"", "1.2.3"},
		{"dev-1", "1.2.3-dev-1"},
		{"has space", "1.2.3"},
		{"semi;colon", "1.2.3"},
		{"-", "1.2.3--"},
	}
	for _, test := range tests {
		if got := format(1, 2, 3, test.build); got != test.expected {
			t.Errorf("format with build %q: got %q, want %q", test.build, got, test.expected)
		}
	}
}

func TestVersion(t *testing.T) {
	if got := Version(); got != "0.1.0" {
		t.Errorf("Version: got %s, want 0.1.0", got)
	}
}
