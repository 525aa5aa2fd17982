package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/kamusis/kiosk/internal/match"
	"github.com/kamusis/kiosk/internal/prompt"
	"github.com/kamusis/kiosk/internal/retrieval"
)

// Environment keys that override values from kiosk.yaml.
const (
	EnvManifestDir = "KIOSK_MANIFEST_DIR"
	EnvAreaCode    = "KIOSK_AREA_CODE"
	EnvLogLevel    = "KIOSK_LOG_LEVEL"
)

// PromptConfig controls prompt rendering.
type PromptConfig struct {
	Join          string `yaml:"join"`
	MaxReferences int    `yaml:"max_references"`
}

// RetrievalConfig locates the knowledge packs and their index.
type RetrievalConfig struct {
	TopK     int    `yaml:"top_k"`
	PackDir  string `yaml:"pack_dir"`
	IndexDir string `yaml:"index_dir"`
}

// GateConfig holds the confidence gate thresholds.
type GateConfig struct {
	MinScore    float64 `yaml:"min_score"`
	MinCoverage float64 `yaml:"min_coverage"`
}

// ManifestsConfig controls manifest loading.
type ManifestsConfig struct {
	SkipMalformed bool `yaml:"skip_malformed"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Config is the in-memory representation of ~/.kiosk/kiosk.yaml.
type Config struct {
	ManifestDir string          `yaml:"manifest_dir"`
	AreaCode    string          `yaml:"area_code"`
	MatchMode   string          `yaml:"match_mode,omitempty"`
	Prompt      PromptConfig    `yaml:"prompt"`
	Retrieval   RetrievalConfig `yaml:"retrieval"`
	Gate        GateConfig      `yaml:"gate"`
	Manifests   ManifestsConfig `yaml:"manifests"`
	Log         LogConfig       `yaml:"log"`
}

// KioskDir returns the absolute path to ~/.kiosk/.
func KioskDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".kiosk"), nil
}

// ConfigPath returns the absolute path to ~/.kiosk/kiosk.yaml.
func ConfigPath() (string, error) {
	dir, err := KioskDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "kiosk.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the default Config written on first kiosk init.
func DefaultConfig() (*Config, error) {
	dir, err := KioskDir()
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		ManifestDir: filepath.Join(dir, "manifests"),
		AreaCode:    "LOCAL",
		MatchMode:   string(match.ModeSubstring),
		Retrieval: RetrievalConfig{
			PackDir:  filepath.Join(dir, "packs"),
			IndexDir: filepath.Join(dir, "index"),
		},
	}
	applyDefaults(cfg)
	return cfg, nil
}

// applyDefaults fills zero values with the built-in defaults.
func applyDefaults(cfg *Config) {
	if cfg.Prompt.Join == "" {
		cfg.Prompt.Join = string(prompt.JoinNewline)
	}
	if cfg.Prompt.MaxReferences <= 0 {
		cfg.Prompt.MaxReferences = prompt.DefaultMaxReferences
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = retrieval.DefaultTopK
	}
	if cfg.Gate.MinScore == 0 {
		cfg.Gate.MinScore = retrieval.DefaultMinScore
	}
	if cfg.Gate.MinCoverage == 0 {
		cfg.Gate.MinCoverage = retrieval.DefaultMinCoverage
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Load reads ~/.kiosk/kiosk.yaml. A missing file yields an error wrapping
// fs.ErrNotExist.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads and parses the config file at path, fills defaults, applies
// environment overrides and expands ~ in directory fields.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	if err := finish(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault is Load, falling back to DefaultConfig (with environment
// overrides) when kiosk.yaml does not exist yet.
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	cfg, err = DefaultConfig()
	if err != nil {
		return nil, err
	}
	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func finish(cfg *Config) error {
	applyDefaults(cfg)
	if err := applyEnv(cfg); err != nil {
		return err
	}
	for _, p := range []*string{&cfg.ManifestDir, &cfg.Retrieval.PackDir, &cfg.Retrieval.IndexDir} {
		v, err := ExpandPath(*p)
		if err != nil {
			return err
		}
		*p = v
	}
	return cfg.Validate()
}

func applyEnv(cfg *Config) error {
	for key, dst := range map[string]*string{
		EnvManifestDir: &cfg.ManifestDir,
		EnvAreaCode:    &cfg.AreaCode,
		EnvLogLevel:    &cfg.Log.Level,
	} {
		v, err := GetConfigValue(key)
		if err != nil {
			return err
		}
		if v != "" {
			*dst = v
		}
	}
	return nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if _, err := match.ParseMode(c.MatchMode); err != nil {
		return fmt.Errorf("match_mode: %w", err)
	}
	if _, err := prompt.ParseJoin(c.Prompt.Join); err != nil {
		return fmt.Errorf("prompt.join: %w", err)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Gate.MinCoverage < 0 || c.Gate.MinCoverage > 1 {
		return fmt.Errorf("gate.min_coverage must be within [0, 1], got %v", c.Gate.MinCoverage)
	}
	return nil
}

// Save marshals cfg and writes it to ~/.kiosk/kiosk.yaml.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}
