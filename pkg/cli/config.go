package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultJPEGQuality = 92

// Environment keys read by LoadConfig.
const (
	EnvEffect      = "PIXFX_EFFECT"
	EnvParam       = "PIXFX_PARAM"
	EnvDebug       = "PIXFX_DEBUG"
	EnvJPEGQuality = "PIXFX_JPEG_QUALITY"
	EnvWorkers     = "PIXFX_WORKERS"
)

// Config holds defaults for the apply command. Flags override every field.
type Config struct {
	Effect      string
	Param       float64
	HasParam    bool
	Debug       bool
	JPEGQuality int
	Workers     int
}

// LoadConfig reads defaults from the optional dotenv file at path, then from
// the process environment, which wins over the file. A missing file is not
// an error.
func LoadConfig(path string) (Config, error) {
	vals := map[string]string{}
	if path != "" {
		fileVals, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
		for k, v := range fileVals {
			vals[k] = v
		}
	}
	for _, k := range []string{EnvEffect, EnvParam, EnvDebug, EnvJPEGQuality, EnvWorkers} {
		if v, ok := os.LookupEnv(k); ok {
			vals[k] = v
		}
	}

	cfg := Config{JPEGQuality: defaultJPEGQuality}
	cfg.Effect = strings.TrimSpace(vals[EnvEffect])
	if v := strings.TrimSpace(vals[EnvParam]); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvParam, err)
		}
		cfg.Param, cfg.HasParam = f, true
	}
	if v := strings.TrimSpace(vals[EnvDebug]); v != "" {
		d, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvDebug, err)
		}
		cfg.Debug = d
	}
	if v := strings.TrimSpace(vals[EnvJPEGQuality]); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil || q < 1 || q > 100 {
			return Config{}, fmt.Errorf("invalid %s: %q (want 1-100)", EnvJPEGQuality, v)
		}
		cfg.JPEGQuality = q
	}
	if v := strings.TrimSpace(vals[EnvWorkers]); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid %s: %q", EnvWorkers, v)
		}
		cfg.Workers = n
	}
	return cfg, nil
}
