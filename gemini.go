package main

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

const analyzePrompt = `Analyse cette photo d'une page de mots mêlés.

Extrais la grille de lettres et la liste des mots à chercher au format JSON suivant :
{
  "rows": <nombre de lignes>,
  "cols": <nombre de colonnes>,
  "cells": [
    ["W", "I", "S", "D", "O", "M"],
    ...
  ],
  "words": ["MOT1", "MOT2", ...]
}

Règles :
- "cells" contient une entrée par ligne de la grille ; chaque entrée est la liste des lettres de la ligne, en majuscules.
- "words" est la liste des mots imprimée à côté de la grille, en majuscules, sans espaces.
- Réponds UNIQUEMENT avec le JSON, sans commentaire ni markdown.`

const generatePrompt = `Génère une grille de mots mêlés de %d lignes sur %d colonnes cachant %d mots sur le thème « %s ».

Réponds au format JSON suivant :
{
  "rows": <nombre de lignes>,
  "cols": <nombre de colonnes>,
  "cells": [
    ["A", "B", "C"],
    ...
  ],
  "words": ["MOT1", "MOT2", ...]
}

Règles :
- Chaque mot doit se lire dans la grille en ligne droite : horizontale, verticale ou diagonale, dans un sens ou dans l'autre.
- Les cases restantes sont remplies de lettres majuscules aléatoires.
- Les mots sont en majuscules, sans accents ni espaces.
- Réponds UNIQUEMENT avec le JSON, sans commentaire ni markdown.`

// AnalyzeImage sends a photo of a printed word-search page to Gemini and
// returns the extracted puzzle.
func (g *GeminiClient) AnalyzeImage(ctx context.Context, imageData []byte, mimeType string) (*Puzzle, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName,
		[]*genai.Content{{
			Role: "user",
			Parts: []*genai.Part{
				{Text: analyzePrompt},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: imageData}},
			},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.1)),
			TopP:             genai.Ptr(float32(1)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	return parsePuzzleResponse(resp.Text())
}

// GeneratePuzzle asks Gemini for a themed puzzle. The model's output is
// untrusted: the grid is validated structurally and every announced word
// is verified by the searcher; words the grid does not actually contain
// are dropped.
func (g *GeminiClient) GeneratePuzzle(ctx context.Context, theme string, rows, cols, wordCount int) (*Puzzle, error) {
	prompt := fmt.Sprintf(generatePrompt, rows, cols, wordCount, theme)
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.1)),
			TopP:             genai.Ptr(float32(1)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	puzzle, err := parsePuzzleResponse(resp.Text())
	if err != nil {
		return nil, err
	}
	puzzle.Theme = theme

	puzzle.Words = placedWords(puzzle)
	if len(puzzle.Words) == 0 {
		return nil, fmt.Errorf("generated grid contains none of its %d words", wordCount)
	}
	return puzzle, nil
}

// placedWords returns the puzzle words the grid actually contains.
func placedWords(p *Puzzle) []string {
	var kept []string
	for _, m := range Search(p.Cells, p.Words) {
		kept = append(kept, m.Word)
	}
	return kept
}

// parsePuzzleResponse decodes and validates Gemini's JSON puzzle payload.
func parsePuzzleResponse(text string) (*Puzzle, error) {
	if text == "" {
		return nil, fmt.Errorf("empty gemini response")
	}

	var raw struct {
		Rows  int        `json:"rows"`
		Cols  int        `json:"cols"`
		Cells [][]string `json:"cells"`
		Words []string   `json:"words"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parse puzzle JSON: %w\nraw response: %s", err, text)
	}

	puzzle, err := NewPuzzle(raw.Cells, raw.Words, "")
	if err != nil {
		return nil, fmt.Errorf("invalid puzzle: %w", err)
	}
	if raw.Rows != puzzle.Rows || raw.Cols != puzzle.Cols {
		return nil, fmt.Errorf("inconsistent dimensions: announced %dx%d, grid is %dx%d", raw.Rows, raw.Cols, puzzle.Rows, puzzle.Cols)
	}
	return puzzle, nil
}
