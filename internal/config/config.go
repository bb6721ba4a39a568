package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds application settings. Precedence is flags over
// environment over file over defaults; flags are applied by the
// commands after Load.
type Config struct {
	// DBPath is the SQLite database location. Empty means the default
	// data-dir path.
	DBPath string `yaml:"dbPath"`

	// PoolPath points at a master drug pool JSON file. Empty uses the
	// embedded seed pool.
	PoolPath string `yaml:"poolPath"`

	// QuizDir is searched for pre-authored quiz files named
	// <quiz-id>.json.
	QuizDir string `yaml:"quizDir"`

	// DefaultMode is used when --mode is not given.
	DefaultMode string `yaml:"defaultMode"`

	// QuestionLimit caps generated sessions when > 0.
	QuestionLimit int `yaml:"questionLimit"`
}

// Default returns a Config with built-in defaults.
func Default() Config {
	return Config{
		DefaultMode: "standard",
	}
}

// DefaultPath returns the standard config file location, honoring
// XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "pharmlet", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pharmlet", "config.yaml"), nil
}

// Load reads the config file at path, layers PHARMLET_* environment
// overrides on top, and returns the result. A missing file is not an
// error; the defaults still apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No file, defaults stand.
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PHARMLET_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PHARMLET_POOL"); v != "" {
		cfg.PoolPath = v
	}
	if v := os.Getenv("PHARMLET_QUIZ_DIR"); v != "" {
		cfg.QuizDir = v
	}
	if v := os.Getenv("PHARMLET_MODE"); v != "" {
		cfg.DefaultMode = v
	}
	if v := os.Getenv("PHARMLET_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.QuestionLimit = n
		}
	}
}
