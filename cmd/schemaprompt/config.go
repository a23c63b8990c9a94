package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joeshaw/envdecode"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

// Config holds settings read from the environment. Flags override them.
type Config struct {
	// ENV: SCHEMAPROMPT_INDENT_WIDTH
	IndentWidth int `env:"SCHEMAPROMPT_INDENT_WIDTH,default=2"`
	// ENV: SCHEMAPROMPT_LANG ("en" or "ja")
	Lang string `env:"SCHEMAPROMPT_LANG,default=en"`
	// ENV: SCHEMAPROMPT_LOG_LEVEL
	LogLevel string `env:"SCHEMAPROMPT_LOG_LEVEL,default=warn"`
	// ENV: SCHEMAPROMPT_PLAIN forces line mode without colors.
	Plain bool `env:"SCHEMAPROMPT_PLAIN,default=false"`
}

// LoadConfig decodes Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("environment: %w", err)
	}
	if cfg.IndentWidth < 0 {
		return Config{}, fmt.Errorf("environment: SCHEMAPROMPT_INDENT_WIDTH must not be negative")
	}
	return cfg, nil
}

// newLogger builds a console logger on stderr at the given level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = lvl
	zc.Encoding = "console"
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.DisableStacktrace = true
	return zc.Build()
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
