package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadGrid reads a letter grid from a file: one row per line, cells
// separated by whitespace, blank lines ignored. Cells are kept exactly as
// written. Every non-blank line must hold the same number of cells.
func LoadGrid(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cells, err := parseGrid(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cells, nil
}

// parseGrid tokenizes grid rows from r. A file with no non-blank lines
// yields an empty grid, which the searcher accepts.
func parseGrid(r io.Reader) ([][]string, error) {
	var cells [][]string
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		row := strings.Fields(line)
		if len(cells) > 0 && len(row) != len(cells[0]) {
			return nil, fmt.Errorf("line %d has %d cells, expected %d", lineNo, len(row), len(cells[0]))
		}
		cells = append(cells, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cells, nil
}
