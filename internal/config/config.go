// Package config loads runtime settings from the environment. An optional
// .env file is read first and never overrides variables that are already set.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
	"github.com/KirkDiggler/bfrpg-rules/internal/errors"
)

// DefaultEnvFile is read by Load when no other file is named
const DefaultEnvFile = ".env"

// Config holds every setting the rules engine reads
type Config struct {
	LogFormat string `env:"BFRPG_LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	LogLevel  string `env:"BFRPG_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// AutoRollTokenHP gates monster hit point rolls
	AutoRollTokenHP bool `env:"BFRPG_AUTO_ROLL_TOKEN_HP" envDefault:"true"`

	FormulaTimeout time.Duration `env:"BFRPG_FORMULA_TIMEOUT" envDefault:"250ms" validate:"gt=0"`

	Saves SaveNames
}

// SaveNames are the display names of the five saving throws
type SaveNames struct {
	Death     string `env:"BFRPG_SAVE_DEATH" envDefault:"Death Ray or Poison" validate:"required"`
	Wands     string `env:"BFRPG_SAVE_WANDS" envDefault:"Magic Wands" validate:"required"`
	Paralysis string `env:"BFRPG_SAVE_PARALYSIS" envDefault:"Paralysis or Petrify" validate:"required"`
	Breath    string `env:"BFRPG_SAVE_BREATH" envDefault:"Dragon Breath" validate:"required"`
	Spells    string `env:"BFRPG_SAVE_SPELLS" envDefault:"Spells" validate:"required"`
}

// Labels returns the names keyed by save
func (s SaveNames) Labels() map[string]string {
	return map[string]string{
		bfrpg.SaveDeath:     s.Death,
		bfrpg.SaveWands:     s.Wands,
		bfrpg.SaveParalysis: s.Paralysis,
		bfrpg.SaveBreath:    s.Breath,
		bfrpg.SaveSpells:    s.Spells,
	}
}

func (s *SaveNames) trim() {
	s.Death = strings.TrimSpace(s.Death)
	s.Wands = strings.TrimSpace(s.Wands)
	s.Paralysis = strings.TrimSpace(s.Paralysis)
	s.Breath = strings.TrimSpace(s.Breath)
	s.Spells = strings.TrimSpace(s.Spells)
}

// Load reads the env files, if present, and parses the environment. With no
// files named it tries DefaultEnvFile.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to load env file %s", f)
		}
	}

	return Parse()
}

// Parse builds a Config from the current environment without touching any
// env file.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse env")
	}

	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.Saves.trim()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks the struct tags and reports every failing field
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "validate config")
	}

	vb := errors.NewValidationBuilder()
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			vb.RequiredField(fe.Namespace())
		case "oneof":
			vb.Fieldf(fe.Namespace(), "must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
		default:
			vb.InvalidField(fe.Namespace(), fe.Tag()+" "+fe.Param())
		}
	}
	return vb.Build()
}
