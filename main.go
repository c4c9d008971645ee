package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	outputPath    string
	suggestMisses bool
)

var rootCmd = &cobra.Command{
	Use:   "wordsearch <grid-file> <words-file>",
	Short: "Find words hidden in a letter grid",
	Long: `wordsearch scans a letter grid for every word of a list, in all
8 directions: horizontal, vertical and diagonal, forward and backward.

The grid file holds one row of letters per line, separated by spaces.
The words file holds one word per line.

Example:
  wordsearch letter_grid.txt words_to_search.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runSolve,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the collaborative puzzle server",
	Long: `serve starts an HTTP server where players share puzzles and race
to find the words together.

Set GCP_PROJECT_ID to enable photo analysis and themed generation
through Gemini.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", resultsFile, "results file path")
	rootCmd.Flags().BoolVar(&suggestMisses, "suggest", false, "suggest near misses for missing words")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	// Past argument validation, an error is a runtime failure and the
	// usage block would only bury it.
	cmd.SilenceUsage = true
	out := cmd.OutOrStdout()

	cells, err := LoadGrid(args[0])
	if err != nil {
		return loadError(err)
	}
	words, err := LoadWords(args[1])
	if err != nil {
		return loadError(err)
	}

	cols := 0
	if len(cells) > 0 {
		cols = len(cells[0])
	}
	fmt.Fprintf(out, "Loaded grid with %d rows and %d columns\n", len(cells), cols)
	fmt.Fprintf(out, "Searching for %d words...\n", len(words))
	fmt.Fprintln(out)

	found := Search(cells, words)
	if len(found) > 0 {
		fmt.Fprintf(out, "Found %d words:\n", len(found))
		if err := WriteResults(out, found); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, "No words found in the grid.")
	}

	if err := SaveResults(outputPath, found); err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	fmt.Fprintf(out, "\nResults also saved to %s\n", outputPath)

	if suggestMisses {
		printNearMisses(out, cells, words, found)
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	ctx := context.Background()

	projectID := os.Getenv("GCP_PROJECT_ID")

	var gemini *GeminiClient
	if projectID != "" {
		var err error
		gemini, err = NewGeminiClient(ctx, projectID, os.Getenv("GCP_REGION"))
		if err != nil {
			log.Fatalf("Impossible d'initialiser Gemini : %v", err)
		}
		defer gemini.Close()
		log.Printf("Client Gemini initialisé (projet: %s)", projectID)
	} else {
		log.Println("GCP_PROJECT_ID non défini — analyse d'image et génération désactivées")
	}

	srv := NewServer(NewStore(), gemini)

	log.Printf("Serveur démarré sur http://localhost:%s", port)
	return http.ListenAndServe(":"+port, srv)
}

// loadError rewrites the missing-file case; the wrapped PathError
// already carries the offending filename.
func loadError(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file not found: %s", pathErr.Path)
	}
	return err
}

func printNearMisses(w io.Writer, cells [][]string, words []string, found []Match) {
	missing := missingWords(words, found)
	if len(missing) == 0 {
		return
	}

	near := NearMisses(cells, missing)
	fmt.Fprintln(w, "\nNear misses:")
	for _, word := range missing {
		if len(near[word]) == 0 {
			fmt.Fprintf(w, "%-15s (no suggestion)\n", word)
			continue
		}
		fmt.Fprintf(w, "%-15s %s\n", word, strings.Join(near[word], ", "))
	}
}
