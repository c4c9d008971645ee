package main

import (
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

//go:embed frontend
var frontendFS embed.FS

const maxUploadSize = 10 << 20 // 10 Mo

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// rateLimiter is a simple per-IP token bucket rate limiter.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*bucket
	rate     int           // tokens per interval
	interval time.Duration // refill interval
}

type bucket struct {
	tokens   int
	lastSeen time.Time
}

func newRateLimiter(rate int, interval time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*bucket),
		rate:     rate,
		interval: interval,
	}
	// Cleanup stale entries every minute.
	go func() {
		for {
			time.Sleep(time.Minute)
			rl.mu.Lock()
			for ip, b := range rl.visitors {
				if time.Since(b.lastSeen) > 5*time.Minute {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()
	return rl
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.visitors[ip]
	if !ok {
		rl.visitors[ip] = &bucket{tokens: rl.rate - 1, lastSeen: time.Now()}
		return true
	}

	// Refill tokens based on elapsed time.
	elapsed := time.Since(b.lastSeen)
	refill := int(elapsed / rl.interval)
	if refill > 0 {
		b.tokens += refill * rl.rate
		if b.tokens > rl.rate {
			b.tokens = rl.rate
		}
		b.lastSeen = time.Now()
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// Server is the main HTTP server.
type Server struct {
	mux     *http.ServeMux
	store   *Store
	gemini  *GeminiClient
	sse     *Broadcaster
	aiRL    *rateLimiter
	claimRL *rateLimiter
}

// NewServer creates a configured HTTP server.
func NewServer(store *Store, gemini *GeminiClient) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		store:   store,
		gemini:  gemini,
		sse:     NewBroadcaster(),
		aiRL:    newRateLimiter(5, time.Minute),  // 5 Gemini calls/min per IP
		claimRL: newRateLimiter(60, time.Second), // 60 claims/sec per IP
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	// Puzzle API
	s.mux.HandleFunc("POST /api/puzzles", s.handleCreatePuzzle)
	s.mux.HandleFunc("POST /api/puzzles/photo", s.handlePhotoPuzzle)
	s.mux.HandleFunc("POST /api/puzzles/generate", s.handleGeneratePuzzle)
	s.mux.HandleFunc("GET /api/puzzles", s.handleListPuzzles)
	s.mux.HandleFunc("GET /api/puzzles/{id}", s.handleGetPuzzle)
	s.mux.HandleFunc("POST /api/puzzles/{id}/solve", s.handleSolvePuzzle)

	// Game API
	s.mux.HandleFunc("POST /api/games", s.handleCreateGame)
	s.mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	s.mux.HandleFunc("POST /api/games/{id}/join", s.handleJoinGame)
	s.mux.HandleFunc("POST /api/games/{id}/claim", s.handleClaimWord)
	s.mux.HandleFunc("GET /api/games/{id}/events", s.handleGameEvents)

	// Frontend static files
	frontendDir, _ := fs.Sub(frontendFS, "frontend")
	fileServer := http.FileServer(http.FS(frontendDir))
	s.mux.HandleFunc("GET /game/{id}", s.handleGamePage)
	s.mux.Handle("GET /", fileServer)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
	s.mux.ServeHTTP(w, r)
}

// --- Puzzle handlers ---

// POST /api/puzzles — create a puzzle from JSON cells and words.
func (s *Server) handleCreatePuzzle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Cells [][]string `json:"cells"`
		Words []string   `json:"words"`
		Theme string     `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Requête invalide", http.StatusBadRequest)
		return
	}

	puzzle, err := NewPuzzle(req.Cells, req.Words, req.Theme)
	if err != nil {
		jsonError(w, "Grille ou liste de mots invalide", http.StatusBadRequest)
		return
	}

	s.store.SavePuzzle(puzzle)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(puzzle)
}

// POST /api/puzzles/photo — upload image, extract puzzle with Gemini, save it.
func (s *Server) handlePhotoPuzzle(w http.ResponseWriter, r *http.Request) {
	if !s.aiRL.allow(r.RemoteAddr) {
		jsonError(w, "Trop de requêtes, réessayez plus tard", http.StatusTooManyRequests)
		return
	}

	if s.gemini == nil {
		jsonError(w, "Analyse d'image non configurée", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, "Image trop volumineuse (max 10 Mo)", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		jsonError(w, "Champ 'image' requis", http.StatusBadRequest)
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !allowedMIME[mimeType] {
		jsonError(w, "Format accepté : JPEG ou PNG", http.StatusBadRequest)
		return
	}

	imageData, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, "Erreur de lecture de l'image", http.StatusInternalServerError)
		return
	}

	puzzle, err := s.gemini.AnalyzeImage(r.Context(), imageData, mimeType)
	if err != nil {
		log.Printf("Gemini analyze error: %v", err)
		jsonError(w, "Erreur lors de l'analyse de la grille", http.StatusInternalServerError)
		return
	}

	s.store.SavePuzzle(puzzle)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(puzzle)
}

// POST /api/puzzles/generate — have Gemini build a themed puzzle.
func (s *Server) handleGeneratePuzzle(w http.ResponseWriter, r *http.Request) {
	if !s.aiRL.allow(r.RemoteAddr) {
		jsonError(w, "Trop de requêtes, réessayez plus tard", http.StatusTooManyRequests)
		return
	}

	if s.gemini == nil {
		jsonError(w, "Génération non configurée", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		Theme     string `json:"theme"`
		Rows      int    `json:"rows"`
		Cols      int    `json:"cols"`
		WordCount int    `json:"word_count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Theme) == "" {
		jsonError(w, "Champ 'theme' requis", http.StatusBadRequest)
		return
	}

	rows, cols, count := req.Rows, req.Cols, req.WordCount
	if rows < 5 || rows > 20 {
		rows = 12
	}
	if cols < 5 || cols > 20 {
		cols = 12
	}
	if count < 3 || count > 20 {
		count = 8
	}

	puzzle, err := s.gemini.GeneratePuzzle(r.Context(), strings.TrimSpace(req.Theme), rows, cols, count)
	if err != nil {
		log.Printf("Gemini generate error: %v", err)
		jsonError(w, "Erreur lors de la génération de la grille", http.StatusInternalServerError)
		return
	}

	s.store.SavePuzzle(puzzle)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(puzzle)
}

// GET /api/puzzles — list all puzzles.
func (s *Server) handleListPuzzles(w http.ResponseWriter, _ *http.Request) {
	puzzles := s.store.ListPuzzles()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(puzzles)
}

// GET /api/puzzles/{id} — get a single puzzle.
func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	puzzle := s.store.GetPuzzle(r.PathValue("id"))
	if puzzle == nil {
		jsonError(w, "Grille introuvable", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(puzzle)
}

// POST /api/puzzles/{id}/solve — run the solver, with near-miss
// suggestions for the words the grid does not contain.
func (s *Server) handleSolvePuzzle(w http.ResponseWriter, r *http.Request) {
	puzzle := s.store.GetPuzzle(r.PathValue("id"))
	if puzzle == nil {
		jsonError(w, "Grille introuvable", http.StatusNotFound)
		return
	}

	found := puzzle.Solve()
	if found == nil {
		found = []Match{}
	}

	type missEntry struct {
		Word        string   `json:"word"`
		Suggestions []string `json:"suggestions"`
	}
	missing := missingWords(puzzle.Words, found)
	near := NearMisses(puzzle.Cells, missing)
	misses := []missEntry{}
	for _, word := range missing {
		misses = append(misses, missEntry{Word: word, Suggestions: near[word]})
	}

	resp := struct {
		Found   []Match     `json:"found"`
		Missing []missEntry `json:"missing"`
	}{Found: found, Missing: misses}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// --- Game handlers ---

// POST /api/games — create a game from a puzzle.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PuzzleID string `json:"puzzle_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PuzzleID == "" {
		jsonError(w, "Champ 'puzzle_id' requis", http.StatusBadRequest)
		return
	}

	game, err := s.store.CreateGame(req.PuzzleID)
	if err != nil {
		jsonError(w, "Grille introuvable", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(game.Snapshot())
}

// GET /api/games/{id} — get current game state.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game := s.store.GetGame(r.PathValue("id"))
	if game == nil {
		jsonError(w, "Partie introuvable", http.StatusNotFound)
		return
	}

	resp := struct {
		GameView
		Puzzle *Puzzle `json:"puzzle"`
	}{
		GameView: game.Snapshot(),
		Puzzle:   s.store.GetPuzzle(game.PuzzleID),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// POST /api/games/{id}/join — join a game with a pseudo.
func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	game := s.store.GetGame(r.PathValue("id"))
	if game == nil {
		jsonError(w, "Partie introuvable", http.StatusNotFound)
		return
	}

	var req struct {
		Pseudo string `json:"pseudo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Pseudo == "" {
		jsonError(w, "Champ 'pseudo' requis", http.StatusBadRequest)
		return
	}

	pseudo := sanitizePseudo(req.Pseudo)
	if pseudo == "" {
		jsonError(w, "Pseudo invalide", http.StatusBadRequest)
		return
	}

	player := game.AddPlayer(pseudo)

	s.sse.Broadcast(game.ID, event("player_joined", map[string]any{
		"pseudo": player.Pseudo,
		"color":  player.Color,
	}))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(player)
}

// POST /api/games/{id}/claim — claim a word at a position.
func (s *Server) handleClaimWord(w http.ResponseWriter, r *http.Request) {
	if !s.claimRL.allow(r.RemoteAddr) {
		jsonError(w, "Trop de requêtes, réessayez plus tard", http.StatusTooManyRequests)
		return
	}

	game := s.store.GetGame(r.PathValue("id"))
	if game == nil {
		jsonError(w, "Partie introuvable", http.StatusNotFound)
		return
	}
	puzzle := s.store.GetPuzzle(game.PuzzleID)
	if puzzle == nil {
		jsonError(w, "Grille introuvable", http.StatusNotFound)
		return
	}

	var req struct {
		Pseudo    string `json:"pseudo"`
		Word      string `json:"word"`
		Row       int    `json:"row"`
		Col       int    `json:"col"`
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Requête invalide", http.StatusBadRequest)
		return
	}

	pseudo := sanitizePseudo(req.Pseudo)
	if pseudo == "" {
		jsonError(w, "Champ 'pseudo' requis", http.StatusBadRequest)
		return
	}

	claim, err := game.ClaimWord(puzzle, pseudo, req.Word, req.Row, req.Col, req.Direction)
	if err != nil {
		switch {
		case errors.Is(err, errUnknownWord):
			jsonError(w, "Mot inconnu dans cette grille", http.StatusBadRequest)
		case errors.Is(err, errAlreadyFound):
			jsonError(w, "Mot déjà trouvé", http.StatusBadRequest)
		case errors.Is(err, errWrongPosition):
			jsonError(w, "Le mot ne se lit pas à cette position", http.StatusBadRequest)
		case errors.Is(err, errUnknownDirection):
			jsonError(w, "Direction inconnue", http.StatusBadRequest)
		default:
			jsonError(w, "Requête invalide", http.StatusBadRequest)
		}
		return
	}

	s.sse.Broadcast(game.ID, event("word_found", map[string]any{
		"word":      claim.Word,
		"pseudo":    claim.Pseudo,
		"row":       claim.Row,
		"col":       claim.Col,
		"direction": claim.Direction,
	}))

	if game.Complete(puzzle) {
		s.sse.Broadcast(game.ID, event("game_over", map[string]any{
			"words": len(puzzle.Words),
		}))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(claim)
}

// GET /api/games/{id}/events — SSE stream.
func (s *Server) handleGameEvents(w http.ResponseWriter, r *http.Request) {
	game := s.store.GetGame(r.PathValue("id"))
	if game == nil {
		jsonError(w, "Partie introuvable", http.StatusNotFound)
		return
	}

	playerPseudo := sanitizePseudo(r.URL.Query().Get("pseudo"))

	s.sse.ServeSSE(w, r, game.ID, func(c *client) {
		// Send initial game state on connect.
		view := game.Snapshot()
		c.ch <- event("game_state", map[string]any{
			"players": view.Players,
			"found":   view.Found,
		})
	}, func() {
		// On disconnect: broadcast player_left if pseudo was provided.
		if playerPseudo != "" {
			game.RemovePlayer(playerPseudo)
			s.sse.Broadcast(game.ID, event("player_left", map[string]any{
				"pseudo": playerPseudo,
			}))
		}
	})
}

// --- Frontend page handlers ---

// GET /game/{id} — serve the game page.
func (s *Server) handleGamePage(w http.ResponseWriter, _ *http.Request) {
	data, _ := frontendFS.ReadFile("frontend/game.html")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// --- Helpers ---

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizePseudo(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > 20 {
		s = string([]rune(s)[:20])
	}
	return s
}
