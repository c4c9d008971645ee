package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// resultsFile is where the solver saves its table unless told otherwise.
const resultsFile = "word_search_results.txt"

const separatorWidth = 55

// WriteResults writes the results table to w: a header row, a dashed
// separator, then one fixed-width row per match. Column widths are part
// of the output contract: word 15 left, row and column 9 right,
// direction 20 left.
func WriteResults(w io.Writer, matches []Match) error {
	if _, err := fmt.Fprintf(w, "%-15s %9s %9s %-20s\n", "Word", "Start Row", "Start Col", "Direction"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", separatorWidth)); err != nil {
		return err
	}
	for _, m := range matches {
		if _, err := fmt.Fprintf(w, "%-15s %9d %9d %-20s\n", m.Word, m.Row, m.Col, m.Direction); err != nil {
			return err
		}
	}
	return nil
}

// SaveResults writes the results table to path. The file is written even
// when nothing was found, so the header and separator always appear.
func SaveResults(path string, matches []Match) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteResults(f, matches); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
