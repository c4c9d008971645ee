package main

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// Player represents a connected player.
type Player struct {
	Pseudo   string    `json:"pseudo"`
	Color    string    `json:"color"`
	JoinedAt time.Time `json:"joined_at"`
}

// Claim records a word found by a player. Row and Col are 1-based, like
// the solver's Match records.
type Claim struct {
	Word      string    `json:"word"`
	Pseudo    string    `json:"pseudo"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Direction string    `json:"direction"`
	FoundAt   time.Time `json:"found_at"`
}

// Claim outcomes the HTTP layer maps to user-facing messages.
var (
	errUnknownWord      = errors.New("word is not part of the puzzle")
	errAlreadyFound     = errors.New("word already found")
	errWrongPosition    = errors.New("word does not read from that position")
	errUnknownDirection = errors.New("unknown direction")
)

// GameSession represents a collaborative hunt on a puzzle.
type GameSession struct {
	ID        string
	PuzzleID  string
	CreatedAt time.Time

	mu      sync.Mutex
	players map[string]*Player
	found   map[string]*Claim // keyed by word
}

// GameView is the wire representation of a session's current state.
type GameView struct {
	ID        string            `json:"id"`
	PuzzleID  string            `json:"puzzle_id"`
	Players   map[string]Player `json:"players"`
	Found     map[string]Claim  `json:"found"`
	CreatedAt time.Time         `json:"created_at"`
}

// playerColors is the palette assigned to players in order.
var playerColors = []string{
	"#2563eb", "#dc2626", "#16a34a", "#9333ea",
	"#ea580c", "#0891b2", "#c026d3", "#ca8a04",
}

// NewGameSession creates an empty session on a puzzle.
func NewGameSession(id, puzzleID string) *GameSession {
	return &GameSession{
		ID:        id,
		PuzzleID:  puzzleID,
		CreatedAt: time.Now(),
		players:   make(map[string]*Player),
		found:     make(map[string]*Claim),
	}
}

// AddPlayer adds a player to the session and returns the player.
func (g *GameSession) AddPlayer(pseudo string) *Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	if p, ok := g.players[pseudo]; ok {
		return p
	}

	p := &Player{
		Pseudo:   pseudo,
		Color:    playerColors[len(g.players)%len(playerColors)],
		JoinedAt: time.Now(),
	}
	g.players[pseudo] = p
	return p
}

// RemovePlayer removes a player from the session.
func (g *GameSession) RemovePlayer(pseudo string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.players, pseudo)
}

// ClaimWord validates a player's claim against the puzzle and records it.
// Row and col are 1-based and direction is a table name; the claim holds
// only if the word belongs to the puzzle, has not been claimed yet, and
// actually reads from that cell along that direction.
func (g *GameSession) ClaimWord(p *Puzzle, pseudo, word string, row, col int, direction string) (*Claim, error) {
	word = strings.ToUpper(strings.TrimSpace(word))

	d, ok := directionByName(direction)
	if !ok {
		return nil, errUnknownDirection
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !p.HasWord(word) {
		return nil, errUnknownWord
	}
	if _, done := g.found[word]; done {
		return nil, errAlreadyFound
	}
	if !matchAt(p.Cells, word, row-1, col-1, d) {
		return nil, errWrongPosition
	}

	c := &Claim{
		Word:      word,
		Pseudo:    pseudo,
		Row:       row,
		Col:       col,
		Direction: d.Name,
		FoundAt:   time.Now(),
	}
	g.found[word] = c
	return c, nil
}

// Complete reports whether every puzzle word has been claimed.
func (g *GameSession) Complete(p *Puzzle) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.found) == len(p.Words)
}

// Snapshot returns a copy of the session state, safe to share and encode
// outside the lock.
func (g *GameSession) Snapshot() GameView {
	g.mu.Lock()
	defer g.mu.Unlock()

	view := GameView{
		ID:        g.ID,
		PuzzleID:  g.PuzzleID,
		Players:   make(map[string]Player, len(g.players)),
		Found:     make(map[string]Claim, len(g.found)),
		CreatedAt: g.CreatedAt,
	}
	for pseudo, p := range g.players {
		view.Players[pseudo] = *p
	}
	for word, c := range g.found {
		view.Found[word] = *c
	}
	return view
}
