package main

// Direction is one of the eight straight-line search vectors. DR and DC
// are the row and column deltas applied for each successive letter.
type Direction struct {
	DR   int
	DC   int
	Name string
}

// directions lists the eight search vectors in their fixed scan order.
// Search depends on this order for reproducible first-match results.
var directions = []Direction{
	{0, 1, "horizontal_right"},
	{0, -1, "horizontal_left"},
	{1, 0, "vertical_down"},
	{-1, 0, "vertical_up"},
	{1, 1, "diagonal_down_right"},
	{1, -1, "diagonal_down_left"},
	{-1, 1, "diagonal_up_right"},
	{-1, -1, "diagonal_up_left"},
}

// directionByName returns the direction carrying the given table name.
func directionByName(name string) (Direction, bool) {
	for _, d := range directions {
		if d.Name == name {
			return d, true
		}
	}
	return Direction{}, false
}

// Match records where a word was found. Row and Col are 1-based.
type Match struct {
	Word      string `json:"word"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Direction string `json:"direction"`
}

// inBounds reports whether (row, col) lies inside the grid.
func inBounds(cells [][]string, row, col int) bool {
	return row >= 0 && row < len(cells) && col >= 0 && col < len(cells[0])
}

// matchAt reports whether word reads from (row, col) along d, one grid
// cell per letter. It stops at the first mismatch or out-of-bounds cell.
func matchAt(cells [][]string, word string, row, col int, d Direction) bool {
	for i, letter := range []rune(word) {
		r := row + i*d.DR
		c := col + i*d.DC
		if !inBounds(cells, r, c) || cells[r][c] != string(letter) {
			return false
		}
	}
	return true
}

// Search finds the first occurrence of each word in the grid, scanning
// start cells in row-major order and the eight directions in table order.
// Only the first occurrence per word is reported; that is the contract,
// not a shortcut. Results keep the order of the word list, and words with
// no occurrence are simply absent from it.
func Search(cells [][]string, words []string) []Match {
	var found []Match
	for _, word := range words {
		if m, ok := searchWord(cells, word); ok {
			found = append(found, m)
		}
	}
	return found
}

// searchWord locates the earliest occurrence of a single word.
func searchWord(cells [][]string, word string) (Match, bool) {
	for row := range cells {
		for col := range cells[row] {
			for _, d := range directions {
				if matchAt(cells, word, row, col, d) {
					return Match{
						Word:      word,
						Row:       row + 1,
						Col:       col + 1,
						Direction: d.Name,
					}, true
				}
			}
		}
	}
	return Match{}, false
}
