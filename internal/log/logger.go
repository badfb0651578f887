// README: Global zerolog configuration shared by all components.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the global logger.
type Config struct {
	Level  string    // optional log level ("debug", "info", etc.)
	Output io.Writer // optional writer (defaults to os.Stdout)
}

var (
	once sync.Once
	base zerolog.Logger
)

// Configure initialises the global logger exactly once.
func Configure(cfg Config) {
	once.Do(func() {
		level := zerolog.InfoLevel
		if cfg.Level != "" {
			if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
				level = parsed
			}
		}
		zerolog.SetGlobalLevel(level)
		zerolog.TimeFieldFormat = time.RFC3339

		writer := cfg.Output
		if writer == nil {
			writer = os.Stdout
		}

		base = zerolog.New(writer).With().
			Timestamp().
			Str("service", "saina").
			Logger()
	})
}

// Component returns a logger tagged with the given component name.
func Component(name string) zerolog.Logger {
	Configure(Config{})
	return base.With().Str("component", name).Logger()
}
