package main

import (
	"strings"
	"testing"
)

func gridFromRows(rows ...string) [][]string {
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = strings.Fields(row)
	}
	return cells
}

func TestFindsWordHorizontalRight(t *testing.T) {
	cells := gridFromRows(
		"W I S D O M",
		"B C I A K D",
		"S H A I M E",
	)

	found := Search(cells, []string{"WISDOM"})
	if len(found) != 1 {
		t.Fatalf("expected 1 match, got %d", len(found))
	}

	m := found[0]
	if m.Word != "WISDOM" || m.Row != 1 || m.Col != 1 || m.Direction != "horizontal_right" {
		t.Fatalf("unexpected match: %+v", m)
	}
}

func TestAllEightDirections(t *testing.T) {
	// Plant CAT from the center of a 5x5 filler grid, once per direction.
	for _, d := range directions {
		cells := make([][]string, 5)
		for i := range cells {
			cells[i] = []string{"Q", "Q", "Q", "Q", "Q"}
		}
		for i, letter := range []string{"C", "A", "T"} {
			cells[2+i*d.DR][2+i*d.DC] = letter
		}

		found := Search(cells, []string{"CAT"})
		if len(found) != 1 {
			t.Fatalf("%s: expected 1 match, got %d", d.Name, len(found))
		}
		m := found[0]
		if m.Row != 3 || m.Col != 3 || m.Direction != d.Name {
			t.Fatalf("%s: unexpected match: %+v", d.Name, m)
		}
	}
}

func TestSingleLetterTieBreak(t *testing.T) {
	cells := gridFromRows(
		"A B",
		"C D",
	)

	// A single letter matches in every direction; the first table entry
	// must win.
	found := Search(cells, []string{"A"})
	if len(found) != 1 {
		t.Fatalf("expected 1 match, got %d", len(found))
	}
	m := found[0]
	if m.Row != 1 || m.Col != 1 || m.Direction != "horizontal_right" {
		t.Fatalf("expected (1,1,horizontal_right), got %+v", m)
	}
}

func TestFirstMatchWins(t *testing.T) {
	// AA reads from every cell of an all-A grid; the scan must settle on
	// the top-left cell and the first direction.
	cells := gridFromRows(
		"A A",
		"A A",
	)

	found := Search(cells, []string{"AA"})
	if len(found) != 1 {
		t.Fatalf("expected 1 match, got %d", len(found))
	}
	m := found[0]
	if m.Row != 1 || m.Col != 1 || m.Direction != "horizontal_right" {
		t.Fatalf("expected (1,1,horizontal_right), got %+v", m)
	}

	// Two occurrences at different cells: row-major order decides.
	cells = gridFromRows(
		"X O K",
		"O K X",
		"K X X",
	)

	found = Search(cells, []string{"OK"})
	if len(found) != 1 {
		t.Fatalf("expected 1 match, got %d", len(found))
	}
	m = found[0]
	if m.Row != 1 || m.Col != 2 || m.Direction != "horizontal_right" {
		t.Fatalf("row-major scan should stop at (1,2), got %+v", m)
	}
}

func TestResultOrderFollowsWordList(t *testing.T) {
	cells := gridFromRows(
		"S A M X",
		"U X X X",
		"N X X X",
	)

	found := Search(cells, []string{"SUN", "MISSING", "SAM"})
	if len(found) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(found))
	}
	if found[0].Word != "SUN" || found[1].Word != "SAM" {
		t.Fatalf("results should keep word-list order, got %+v", found)
	}
}

func TestAbsentWordOmitted(t *testing.T) {
	cells := gridFromRows(
		"A B",
		"C D",
	)

	found := Search(cells, []string{"HELLO"})
	if len(found) != 0 {
		t.Fatalf("expected no matches, got %+v", found)
	}
}

func TestWordLongerThanGrid(t *testing.T) {
	cells := gridFromRows(
		"A B",
		"C D",
	)

	// Longer than any straight line in the grid: skipped, never an error.
	found := Search(cells, []string{"ABCDEFGH"})
	if len(found) != 0 {
		t.Fatalf("expected no matches, got %+v", found)
	}
}

func TestEmptyGrid(t *testing.T) {
	found := Search(nil, []string{"ANY"})
	if len(found) != 0 {
		t.Fatalf("expected no matches on empty grid, got %+v", found)
	}
}

func TestMatchIsCaseSensitive(t *testing.T) {
	cells := gridFromRows("w i s d o m")

	found := Search(cells, []string{"WISDOM"})
	if len(found) != 0 {
		t.Fatalf("lowercase cells should not match an uppercase word, got %+v", found)
	}
}

func TestMatcherStopsAtEdges(t *testing.T) {
	cells := gridFromRows(
		"A A A",
		"A A A",
		"A A A",
	)

	// From the top-left corner only three directions stay on the grid.
	ok := map[string]bool{
		"horizontal_right":    true,
		"vertical_down":       true,
		"diagonal_down_right": true,
	}
	for _, d := range directions {
		if got := matchAt(cells, "AAA", 0, 0, d); got != ok[d.Name] {
			t.Fatalf("direction %s from corner: expected %v, got %v", d.Name, ok[d.Name], got)
		}
	}
}

func TestDirectionOrder(t *testing.T) {
	want := []Direction{
		{0, 1, "horizontal_right"},
		{0, -1, "horizontal_left"},
		{1, 0, "vertical_down"},
		{-1, 0, "vertical_up"},
		{1, 1, "diagonal_down_right"},
		{1, -1, "diagonal_down_left"},
		{-1, 1, "diagonal_up_right"},
		{-1, -1, "diagonal_up_left"},
	}

	if len(directions) != len(want) {
		t.Fatalf("expected %d directions, got %d", len(want), len(directions))
	}
	for i, d := range directions {
		if d != want[i] {
			t.Fatalf("direction %d: expected %+v, got %+v", i, want[i], d)
		}
	}
}

func TestDirectionByName(t *testing.T) {
	d, ok := directionByName("vertical_up")
	if !ok || d.DR != -1 || d.DC != 0 {
		t.Fatalf("unexpected direction: %+v (ok=%v)", d, ok)
	}

	if _, ok := directionByName("sideways"); ok {
		t.Fatal("expected lookup to fail for an unknown name")
	}
}
