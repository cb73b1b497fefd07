package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/tailscale/hujson"
)

var ErrWordlistNotFound = errors.New("could not find word list file in any config path")

// Wordlist is the raw profanity word list loaded from disk. The lexicon
// package normalizes and compiles it at startup.
type Wordlist struct {
	Words []string `json:"words"`
}

// LoadWordlist loads the word list from the given path when set, otherwise it
// searches the same config paths as LoadConfig.
func LoadWordlist(path string) (*Wordlist, error) {
	if path != "" {
		return loadWordlistFromPath(path)
	}

	for _, dir := range configPaths() {
		if wordlist, err := loadWordlistFromPath(dir + "/wordlist.jsonc"); err == nil {
			return wordlist, nil
		}
	}

	return nil, ErrWordlistNotFound
}

// loadWordlistFromPath loads the word list from a specific file path. The
// file is JSONC so operators can annotate entries with comments.
func loadWordlistFromPath(path string) (*Wordlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list file: %w", err)
	}

	standardJSON, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to standardize JSONC: %w", err)
	}

	var wordlist Wordlist
	if err := sonic.Unmarshal(standardJSON, &wordlist); err != nil {
		return nil, fmt.Errorf("failed to parse word list JSON: %w", err)
	}

	return &wordlist, nil
}
