package setup

import (
	"fmt"

	"github.com/amulet-team/amulet-bot/internal/moderation/lexicon"
	"github.com/amulet-team/amulet-bot/internal/setup/config"
	"go.uber.org/zap"
)

// App bundles the core dependencies needed by the bot. Each field is built
// once at startup and shared read-only afterwards.
type App struct {
	Config  *config.Config   // Application configuration
	Logger  *zap.Logger      // Main application logger
	Lexicon *lexicon.Lexicon // Compiled profanity matcher
}

// InitializeApp bootstraps the application dependencies in order: config,
// logging, then the profanity lexicon. A word list that cannot be loaded or
// compiled is a fatal startup error; the bot must never run with profanity
// checking silently disabled.
func InitializeApp(logDir string) (*App, error) {
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Logging is initialized next to capture setup issues
	logger, err := GetLogger(logDir, cfg.Debug.LogLevel, cfg.Debug.MaxLogsToKeep)
	if err != nil {
		return nil, err
	}

	wordlist, err := config.LoadWordlist(cfg.Moderation.WordlistPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load word list: %w", err)
	}

	lex, err := lexicon.New(wordlist.Words)
	if err != nil {
		return nil, fmt.Errorf("failed to build lexicon: %w", err)
	}

	logger.Info("Compiled profanity lexicon", zap.Int("words", lex.Size()))

	return &App{
		Config:  cfg,
		Logger:  logger,
		Lexicon: lex,
	}, nil
}

// CleanupApp flushes buffered log entries during shutdown.
func (a *App) CleanupApp() {
	_ = a.Logger.Sync()
}
