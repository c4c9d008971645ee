package main

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Puzzle is a word-search grid together with the words hidden in it.
type Puzzle struct {
	ID        string     `json:"id"`
	Rows      int        `json:"rows"`
	Cols      int        `json:"cols"`
	Cells     [][]string `json:"cells"`
	Words     []string   `json:"words"`
	Theme     string     `json:"theme,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewPuzzle validates raw cells and words and normalizes them into a
// Puzzle: the grid must be rectangular, at least 1x1, every cell a single
// character; cells and words are uppercased, blank and duplicate words
// dropped, word order kept.
func NewPuzzle(cells [][]string, words []string, theme string) (*Puzzle, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, fmt.Errorf("empty grid")
	}

	cols := len(cells[0])
	norm := make([][]string, len(cells))
	for i, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i+1, len(row), cols)
		}
		norm[i] = make([]string, cols)
		for j, cell := range row {
			cell = strings.ToUpper(strings.TrimSpace(cell))
			if utf8.RuneCountInString(cell) != 1 {
				return nil, fmt.Errorf("cell (%d,%d): %q is not a single character", i+1, j+1, cell)
			}
			norm[i][j] = cell
		}
	}

	seen := make(map[string]bool)
	var kept []string
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no words to search")
	}

	return &Puzzle{
		Rows:  len(norm),
		Cols:  cols,
		Cells: norm,
		Words: kept,
		Theme: theme,
	}, nil
}

// HasWord reports whether word belongs to the puzzle's word list.
func (p *Puzzle) HasWord(word string) bool {
	for _, w := range p.Words {
		if w == word {
			return true
		}
	}
	return false
}

// Solve runs the searcher over the puzzle's own word list.
func (p *Puzzle) Solve() []Match {
	return Search(p.Cells, p.Words)
}
