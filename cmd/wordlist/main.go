package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/bytedance/sonic"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/amulet-team/amulet-bot/internal/moderation/lexicon"
	"github.com/amulet-team/amulet-bot/internal/setup/config"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	app := &cli.Command{
		Name:  "wordlist",
		Usage: "Word list maintenance tool",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "Path to the word list file (default: searched in config paths)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "merge",
				Usage: "Normalize the word list in place",
				Description: `Normalize the word list the same way the bot does at startup:
lower-case every word, add the simple plural (+s) form, remove
duplicates, and sort. The rewritten file is stable under repeated runs.`,
				Action: func(_ context.Context, c *cli.Command) error {
					return mergeWordlist(c.String("path"), logger)
				},
			},
			{
				Name:  "check",
				Usage: "Compile the word list and report problems",
				Description: `Compile the word list into the matcher the bot uses and report
the compiled word count. Returns exit code 1 if the list is empty
or fails to compile.`,
				Action: func(_ context.Context, c *cli.Command) error {
					wordlist, err := config.LoadWordlist(c.String("path"))
					if err != nil {
						return cli.Exit(fmt.Sprintf("failed to load word list: %v", err), 1)
					}

					lex, err := lexicon.New(wordlist.Words)
					if err != nil {
						return cli.Exit(fmt.Sprintf("failed to compile word list: %v", err), 1)
					}

					fmt.Printf("Word list OK: %d words, %d compiled forms\n", len(wordlist.Words), lex.Size())
					return nil
				},
			},
		},
	}

	return app.Run(context.Background(), os.Args)
}

// mergeWordlist rewrites the word list file with the normalized word set.
// Comments in the original JSONC file are not preserved.
func mergeWordlist(path string, logger *zap.Logger) error {
	if path == "" {
		path = "config/wordlist.jsonc"
	}

	wordlist, err := config.LoadWordlist(path)
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}

	before := len(wordlist.Words)
	wordlist.Words = lexicon.Normalize(wordlist.Words)

	data, err := sonic.MarshalIndent(wordlist, "", "\t")
	if err != nil {
		return fmt.Errorf("failed to marshal word list: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write word list: %w", err)
	}

	logger.Info("Rewrote word list",
		zap.String("path", path),
		zap.Int("words_before", before),
		zap.Int("words_after", len(wordlist.Words)))

	return nil
}
