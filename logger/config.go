package logger

import (
	"go.uber.org/zap/zapcore"
)

// Config controls the encoder and level of daemon logging.
type Config struct {
	Format string        `toml:"format"`
	Level  zapcore.Level `toml:"level"`
}

// NewConfig returns a new instance of Config with defaults.
func NewConfig() Config {
	return Config{
		Format: "auto",
	}
}
