package pattern

import (
	"reflect"
	"testing"
)

func TestCandidates_AllWildcard(t *testing.T) {
	words := []string{"CAT", "CAR", "DOG"}
	idx := New(words)

	got := idx.Candidates("...")
	want := idx.Words(3)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates(all-wildcard) = %v, want %v", got, want)
	}
}

func TestCandidates_FiltersByPosition(t *testing.T) {
	idx := New([]string{"CAT", "CAR", "COT", "DOG"})

	got := idx.Candidates("C.T")
	want := []string{"CAT", "COT"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates(C.T) = %v, want %v", got, want)
	}
}

func TestCandidates_UnknownLength(t *testing.T) {
	idx := New([]string{"CAT"})
	if got := idx.Candidates("....."); got != nil {
		t.Errorf("Candidates(unknown length) = %v, want nil", got)
	}
}

func TestCandidates_NoMatch(t *testing.T) {
	idx := New([]string{"CAT", "DOG"})
	if got := idx.Candidates("Z.."); len(got) != 0 {
		t.Errorf("Candidates(no match) = %v, want empty", got)
	}
}

func TestCandidates_DeterministicOrderMatchesInputOrder(t *testing.T) {
	// ascending word-index order means results preserve the relative
	// order words were supplied in, for a given length.
	idx := New([]string{"ARE", "ATE", "AXE", "APE"})

	got := idx.Candidates("A.E")
	want := []string{"ARE", "ATE", "AXE", "APE"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates(A.E) = %v, want %v", got, want)
	}

	// repeated query hits the memoization cache and must return the
	// same slice contents.
	again := idx.Candidates("A.E")
	if !reflect.DeepEqual(got, again) {
		t.Errorf("cached Candidates(A.E) changed: got %v, want %v", again, got)
	}
}

func TestCandidates_MultipleLengthsIsolated(t *testing.T) {
	idx := New([]string{"CAT", "CARS"})
	if got := len(idx.Candidates("...")); got != 1 {
		t.Errorf("length-3 Candidates = %d words, want 1", got)
	}
	if got := len(idx.Candidates("....")); got != 1 {
		t.Errorf("length-4 Candidates = %d words, want 1", got)
	}
}
