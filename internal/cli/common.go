package cli

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/mvln/mvln/internal/config"
	"github.com/mvln/mvln/internal/engine"
	"github.com/mvln/mvln/internal/fsx"
)

// loadConfig resolves the effective configuration, honoring the
// --config flag when set.
func loadConfig() (*config.Config, error) {
	return config.Resolve(configPath)
}

// newLogger creates the command logger. Debug logging is enabled by
// the --verbose flag regardless of the configured level.
func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.LogLevel
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine(log *slog.Logger) *engine.Engine {
	return engine.New(fsx.NewRealFS(), log)
}

// outputJSON outputs a value as indented JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
