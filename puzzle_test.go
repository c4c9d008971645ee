package main

import "testing"

func TestNewPuzzleNormalizes(t *testing.T) {
	p, err := NewPuzzle(
		[][]string{{"w", "i"}, {"s", "e"}},
		[]string{" wise ", "WISE", "is"},
		"sagesse",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Rows != 2 || p.Cols != 2 {
		t.Fatalf("expected 2x2, got %dx%d", p.Rows, p.Cols)
	}
	if p.Cells[0][0] != "W" {
		t.Fatalf("cells should be uppercased, got %q", p.Cells[0][0])
	}
	if len(p.Words) != 2 || p.Words[0] != "WISE" || p.Words[1] != "IS" {
		t.Fatalf("words should be deduplicated in order, got %+v", p.Words)
	}
	if p.Theme != "sagesse" {
		t.Fatalf("unexpected theme: %q", p.Theme)
	}
}

func TestNewPuzzleRejectsBadInput(t *testing.T) {
	if _, err := NewPuzzle(nil, []string{"A"}, ""); err == nil {
		t.Fatal("expected error for empty grid")
	}
	if _, err := NewPuzzle([][]string{{"A", "B"}, {"C"}}, []string{"AB"}, ""); err == nil {
		t.Fatal("expected error for ragged grid")
	}
	if _, err := NewPuzzle([][]string{{"AB"}}, []string{"AB"}, ""); err == nil {
		t.Fatal("expected error for multi-letter cell")
	}
	if _, err := NewPuzzle([][]string{{"A"}}, nil, ""); err == nil {
		t.Fatal("expected error for empty word list")
	}
}

func TestPuzzleHasWord(t *testing.T) {
	p, err := NewPuzzle([][]string{{"A", "B"}}, []string{"AB"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !p.HasWord("AB") {
		t.Fatal("expected HasWord to find AB")
	}
	if p.HasWord("BA") {
		t.Fatal("BA is not part of the puzzle")
	}
}

func TestPuzzleSolve(t *testing.T) {
	p, err := NewPuzzle(
		[][]string{
			{"W", "I", "S", "D", "O", "M"},
			{"B", "C", "I", "A", "K", "D"},
			{"S", "H", "A", "I", "M", "E"},
		},
		[]string{"WISDOM", "SAM", "ABSENT"},
		"",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := p.Solve()
	if len(found) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(found), found)
	}
	if found[0].Word != "WISDOM" || found[0].Row != 1 || found[0].Col != 1 || found[0].Direction != "horizontal_right" {
		t.Fatalf("unexpected first match: %+v", found[0])
	}
	if found[1].Word != "SAM" || found[1].Row != 1 || found[1].Col != 3 || found[1].Direction != "diagonal_down_right" {
		t.Fatalf("unexpected second match: %+v", found[1])
	}
}
