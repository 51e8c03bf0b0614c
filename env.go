package heartscene

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvConfigPath    = "HEARTSCENE_CONFIG"
	EnvSeed          = "HEARTSCENE_SEED"
	EnvDebug         = "HEARTSCENE_DEBUG"
	EnvShowFPS       = "HEARTSCENE_SHOW_FPS"
	EnvMaxParticles  = "HEARTSCENE_MAX_PARTICLES"
	EnvScreenshotDir = "HEARTSCENE_SCREENSHOT_DIR"
)

// LoadEnv loads the given .env files (".env" when none are given) into the
// process environment. Missing files are skipped; existing variables are not
// overwritten.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat env file: %w", err)
		}
		present = append(present, f)
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

// ConfigFromEnv builds a Config from HEARTSCENE_CONFIG (a YAML file, or
// DefaultConfig when unset) and then applies the individual HEARTSCENE_*
// overrides.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if path := os.Getenv(EnvConfigPath); path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides cfg fields from the environment.
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	if v, ok := os.LookupEnv(EnvDebug); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		cfg.Debug = b
	}
	if v, ok := os.LookupEnv(EnvShowFPS); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvShowFPS, err)
		}
		cfg.ShowFPS = b
	}
	if v, ok := os.LookupEnv(EnvMaxParticles); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxParticles, err)
		}
		cfg.Burst.MaxActive = n
	}
	if v, ok := os.LookupEnv(EnvScreenshotDir); ok && v != "" {
		cfg.ScreenshotDir = v
	}
	return nil
}
