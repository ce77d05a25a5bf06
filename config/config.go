// Package config reads server and engine settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/cameroncuttingedge/titration_four/game"
)

type Config struct {
	Addr           string   `env:"ADDR" envDefault:"127.0.0.1:8080"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFile        string   `env:"LOG_FILE"`
	QuestionSet    string   `env:"QUESTION_SET"`
	EventBuffer    int      `env:"EVENT_BUFFER" envDefault:"100"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	Eval           Eval     `envPrefix:"EVAL_"`
}

// Eval holds the position evaluator weights.
type Eval struct {
	Win         int     `env:"WIN" envDefault:"10000"`
	MajorThreat int     `env:"MAJOR_THREAT" envDefault:"100"`
	MinorThreat int     `env:"MINOR_THREAT" envDefault:"10"`
	Center      int     `env:"CENTER" envDefault:"3"`
	MaxSwing    float64 `env:"MAX_SWING" envDefault:"200"`
}

func (e Eval) Weights() game.Weights {
	return game.Weights{
		Win:         e.Win,
		MajorThreat: e.MajorThreat,
		MinorThreat: e.MinorThreat,
		Center:      e.Center,
		MaxSwing:    e.MaxSwing,
	}
}

// Load reads an optional .env file from the working directory, then parses
// the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
