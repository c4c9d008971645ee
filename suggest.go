package main

import (
	"strings"
	"unicode/utf8"

	"github.com/sajari/fuzzy"
)

// maxSuggestions caps the near-miss lines reported per missing word.
const maxSuggestions = 3

// missingWords returns the searched words that produced no match, in
// word-list order.
func missingWords(words []string, found []Match) []string {
	got := make(map[string]bool, len(found))
	for _, m := range found {
		got[m.Word] = true
	}

	var missing []string
	for _, w := range words {
		if !got[w] {
			missing = append(missing, w)
		}
	}
	return missing
}

// NearMisses returns, for each missing word, up to maxSuggestions grid
// lines of the same length that almost spell it. Every straight-line
// string of the wanted lengths is read from the grid (all start cells,
// all eight directions) and fed to a spell-check model; suggestions are
// the lines within an edit distance of 2.
func NearMisses(cells [][]string, missing []string) map[string][]string {
	suggestions := make(map[string][]string)
	if len(cells) == 0 || len(missing) == 0 {
		return suggestions
	}

	lengths := make(map[int]bool)
	for _, w := range missing {
		lengths[utf8.RuneCountInString(w)] = true
	}

	model := fuzzy.NewModel()
	model.SetDepth(2)
	model.SetThreshold(1)
	for line := range lineStrings(cells, lengths) {
		model.TrainWord(strings.ToLower(line))
	}

	for _, w := range missing {
		near := []string{}
		for _, s := range model.SpellCheckSuggestions(strings.ToLower(w), maxSuggestions) {
			up := strings.ToUpper(s)
			if up == w {
				// The grid spells the word in a case the search does not match.
				continue
			}
			near = append(near, up)
		}
		suggestions[w] = near
	}
	return suggestions
}

// lineStrings collects every distinct straight-line string whose length
// appears in lengths, reading from every cell along every direction.
func lineStrings(cells [][]string, lengths map[int]bool) map[string]struct{} {
	maxLen := 0
	for l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}

	lines := make(map[string]struct{})
	var sb strings.Builder
	for row := range cells {
		for col := range cells[row] {
			for _, d := range directions {
				sb.Reset()
				for i := 0; i < maxLen; i++ {
					r := row + i*d.DR
					c := col + i*d.DC
					if !inBounds(cells, r, c) {
						break
					}
					sb.WriteString(cells[r][c])
					if lengths[i+1] {
						lines[sb.String()] = struct{}{}
					}
				}
			}
		}
	}
	return lines
}
