package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/amulet-team/amulet-bot/internal/bot"
	"github.com/amulet-team/amulet-bot/internal/setup"
)

// BotLogDir specifies where bot log files are stored.
const BotLogDir = "logs/bot_logs"

var errMissingToken = errors.New("missing required bot token argument")

func main() {
	app := &cli.Command{
		Name:      "bot",
		Usage:     "Run the Amulet moderation bot",
		ArgsUsage: "<token>",
		Action: func(ctx context.Context, c *cli.Command) error {
			token := c.Args().First()
			if token == "" {
				return errMissingToken
			}

			return run(ctx, token)
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(ctx context.Context, token string) error {
	// Initialize application with required dependencies. A word list that
	// fails to load stops the process here, before any event is handled.
	app, err := setup.InitializeApp(BotLogDir)
	if err != nil {
		return err
	}
	defer app.CleanupApp()

	discordBot, err := bot.New(token, app.Config, app.Lexicon, app.Logger)
	if err != nil {
		return err
	}

	if err := discordBot.Start(ctx); err != nil {
		return err
	}

	log.Println("Bot has been started. Waiting for interrupt signal to gracefully shutdown...")

	// Wait for interrupt signal to gracefully shutdown the bot
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Cleanly close down the Discord session and drain in-flight evaluations
	discordBot.Close(ctx)

	return nil
}
