package main

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestLoadWords(t *testing.T) {
	path := writeTempFile(t, "words.txt", "wisdom\n\n  Genesis  \nEXODUS\n")

	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"WISDOM", "GENESIS", "EXODUS"}
	if len(words) != len(want) {
		t.Fatalf("expected %d words, got %d: %+v", len(want), len(words), words)
	}
	for i, w := range want {
		if words[i] != w {
			t.Fatalf("word %d: expected %s, got %s", i, w, words[i])
		}
	}
}

func TestLoadWordsKeepsDuplicates(t *testing.T) {
	path := writeTempFile(t, "words.txt", "SAM\nSAM\n")

	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("duplicates should be kept, got %d words", len(words))
	}
}

func TestLoadWordsMissingFile(t *testing.T) {
	_, err := LoadWords(filepath.Join(t.TempDir(), "absent.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got: %v", err)
	}
}
