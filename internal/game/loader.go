package game

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go-mines/internal/grid"

	"github.com/joho/godotenv"
)

// Environment keys read by LoadConfig and LoadPreset.
const (
	EnvDifficulty = "MINES_DIFFICULTY"
	EnvRows       = "MINES_ROWS"
	EnvColumns    = "MINES_COLUMNS"
	EnvMines      = "MINES_MINES"
	EnvScoresPath = "MINES_SCORES_PATH"
	EnvNoScores   = "MINES_NO_SCORES"
	EnvLogFile    = "MINES_LOG_FILE"
	EnvLogLevel   = "MINES_LOG_LEVEL"
)

// Config is the runtime configuration gathered from the environment.
type Config struct {
	Difficulty string
	Custom     *Preset // set when MINES_ROWS/COLUMNS/MINES are present
	ScoresPath string
	NoScores   bool
	LogFile    string
	LogLevel   string

	customErr error // why MINES_ROWS/COLUMNS/MINES did not form a board
}

// LoadConfig loads the given .env files into the process environment and
// reads the MINES_* variables. With no files, ./.env is loaded if it exists.
// Variables already set in the environment win over file values.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, fmt.Errorf("failed to load env files %v: %w", envFiles, err)
	}

	cfg := Config{
		Difficulty: getEnv(EnvDifficulty, Easy.Name),
		ScoresPath: os.Getenv(EnvScoresPath),
		LogFile:    os.Getenv(EnvLogFile),
		LogLevel:   getEnv(EnvLogLevel, "info"),
	}

	if v := os.Getenv(EnvNoScores); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvNoScores, err)
		}
		cfg.NoScores = b
	}

	env := map[string]string{}
	for _, k := range []string{EnvRows, EnvColumns, EnvMines} {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	if len(env) > 0 {
		if p, err := presetFromEnv(env, "environment"); err != nil {
			cfg.customErr = err
		} else {
			cfg.Custom = &p
		}
	}

	return cfg, nil
}

// LoadPreset reads a custom difficulty from a .env-format file, e.g.
//
//	MINES_ROWS=16
//	MINES_COLUMNS=16
//	MINES_MINES=40
func LoadPreset(path string) (Preset, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return Preset{}, fmt.Errorf("failed to read preset %s: %w", path, err)
	}
	return presetFromEnv(env, path)
}

func presetFromEnv(env map[string]string, source string) (Preset, error) {
	p := Preset{Name: CustomName}
	fields := []struct {
		key string
		dst *int
	}{
		{EnvRows, &p.Size.Rows},
		{EnvColumns, &p.Size.Columns},
		{EnvMines, &p.Mines},
	}

	for _, f := range fields {
		raw, ok := env[f.key]
		if !ok {
			return Preset{}, fmt.Errorf("%w: %s is missing %s", grid.ErrConfiguration, source, f.key)
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Preset{}, fmt.Errorf("%w: %s: %s=%q is not a number", grid.ErrConfiguration, source, f.key, raw)
		}
		*f.dst = v
	}

	if err := p.Validate(); err != nil {
		return Preset{}, fmt.Errorf("%s: %w", source, err)
	}
	return p, nil
}

// ResolvePreset picks the preset named by cfg.Difficulty. "custom" requires
// cfg.Custom. A malformed custom board is only an error when it is chosen.
func (cfg Config) ResolvePreset() (Preset, error) {
	if strings.EqualFold(cfg.Difficulty, CustomName) {
		if cfg.customErr != nil {
			return Preset{}, cfg.customErr
		}
		if cfg.Custom == nil {
			return Preset{}, fmt.Errorf("%w: custom difficulty needs %s, %s and %s",
				grid.ErrConfiguration, EnvRows, EnvColumns, EnvMines)
		}
		return *cfg.Custom, nil
	}
	return PresetByName(cfg.Difficulty)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
