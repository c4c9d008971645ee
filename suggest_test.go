package main

import "testing"

func TestMissingWords(t *testing.T) {
	words := []string{"ALPHA", "BETA", "GAMMA"}
	found := []Match{{Word: "BETA", Row: 1, Col: 1, Direction: "horizontal_right"}}

	missing := missingWords(words, found)
	if len(missing) != 2 || missing[0] != "ALPHA" || missing[1] != "GAMMA" {
		t.Fatalf("unexpected missing list: %+v", missing)
	}

	if got := missingWords(words, nil); len(got) != 3 {
		t.Fatalf("with no matches every word is missing, got %+v", got)
	}
}

func TestNearMissesSuggestsCloseLine(t *testing.T) {
	// The grid spells WISDON; the puzzle asks for WISDOM.
	cells := gridFromRows("W I S D O N")

	near := NearMisses(cells, []string{"WISDOM"})
	got := near["WISDOM"]
	if len(got) == 0 {
		t.Fatal("expected a suggestion for WISDOM")
	}
	if got[0] != "WISDON" {
		t.Fatalf("expected WISDON suggested, got %+v", got)
	}
}

func TestNearMissesNoCandidate(t *testing.T) {
	cells := gridFromRows(
		"A B",
		"C D",
	)

	// No line of the right length exists at all.
	near := NearMisses(cells, []string{"XYZQW"})
	if got := near["XYZQW"]; len(got) != 0 {
		t.Fatalf("expected no suggestions, got %+v", got)
	}
}

func TestNearMissesSkipsCaseOnlyTwin(t *testing.T) {
	// The word is in the grid in the wrong case: the searcher misses it
	// and the suggester must not report the word as its own near miss.
	cells := gridFromRows("w i s d o m")

	near := NearMisses(cells, []string{"WISDOM"})
	if got := near["WISDOM"]; len(got) != 0 {
		t.Fatalf("case-only twin should not be suggested, got %+v", got)
	}
}

func TestNearMissesEmptyInputs(t *testing.T) {
	if got := NearMisses(nil, []string{"WORD"}); len(got) != 0 {
		t.Fatalf("empty grid should yield nothing, got %+v", got)
	}
	if got := NearMisses(gridFromRows("A B"), nil); len(got) != 0 {
		t.Fatalf("no missing words should yield nothing, got %+v", got)
	}
}
