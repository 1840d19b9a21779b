package testutil

import "testing"

// BitErrors returns the number of positions where a and b differ, counting
// any length difference as errors.
func BitErrors(a, b []byte) int {
	n := min(len(a), len(b))
	errs := max(len(a), len(b)) - n
	for i := range n {
		if a[i] != b[i] {
			errs++
		}
	}
	return errs
}

// RequireBitsEqual fails t if got and want differ, reporting the first
// mismatch and the total error count.
func RequireBitsEqual(t testing.TB, got, want []byte) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("bit %d: got %d, want %d (%d errors total)", i, got[i], want[i], BitErrors(got, want))
		}
	}
}
