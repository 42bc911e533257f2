// Package config loads configuration from environment variables and
// command-line arguments.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// ErrHelpRequested is returned by Load when -h or --help is given.
var ErrHelpRequested = errors.New("help requested")

// Config holds all runtime configuration.
type Config struct {
	// Folder opened at startup; empty shows the folder prompt.
	Root string

	// Logging
	LogLevel  string
	LogFormat string
	LogFile   string

	// Metrics endpoint; empty disables it.
	MetricsAddr string

	// Where exported files are written.
	ExportDir string

	// Collation locale for sorting names.
	Locale language.Tag

	// Load directories and files on background goroutines.
	AsyncLoads bool
}

var validLogLevels = []string{"debug", "info", "warn", "error", "quiet"}

// Load reads RGAL_* environment variables with defaults, then applies the
// flags in args (without the program name). Flags win over the environment.
func Load(args []string) (*Config, error) {
	cfg := &Config{
		Root:        envOr("RGAL_ROOT", ""),
		LogLevel:    envOr("RGAL_LOG_LEVEL", "info"),
		LogFormat:   envOr("RGAL_LOG_FORMAT", "json"),
		LogFile:     envOr("RGAL_LOG_FILE", ""),
		MetricsAddr: envOr("RGAL_METRICS_ADDR", ""),
		ExportDir:   envOr("RGAL_EXPORT_DIR", defaultExportDir()),
		AsyncLoads:  envBool("RGAL_ASYNC_LOADS", true),
	}
	localeName := envOr("RGAL_LOCALE", "en")
	positional := 0

	for _, arg := range args {
		switch {
		case arg == "-h" || arg == "--help":
			return nil, ErrHelpRequested
		case strings.HasPrefix(arg, "--log-level="):
			cfg.LogLevel = strings.TrimPrefix(arg, "--log-level=")
		case strings.HasPrefix(arg, "--log-format="):
			cfg.LogFormat = strings.TrimPrefix(arg, "--log-format=")
		case strings.HasPrefix(arg, "--log-file="):
			cfg.LogFile = strings.TrimPrefix(arg, "--log-file=")
		case strings.HasPrefix(arg, "--metrics-addr="):
			cfg.MetricsAddr = strings.TrimPrefix(arg, "--metrics-addr=")
		case strings.HasPrefix(arg, "--export-dir="):
			cfg.ExportDir = strings.TrimPrefix(arg, "--export-dir=")
		case strings.HasPrefix(arg, "--locale="):
			localeName = strings.TrimPrefix(arg, "--locale=")
		case arg == "--sync":
			cfg.AsyncLoads = false
		case strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("unknown option %q", arg)
		default:
			positional++
			if positional > 1 {
				return nil, fmt.Errorf("unexpected argument %q", arg)
			}
			cfg.Root = arg
		}
	}

	if !slices.Contains(validLogLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log level %q (want one of %s)", cfg.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return nil, fmt.Errorf("invalid log format %q (want json or console)", cfg.LogFormat)
	}
	tag, err := language.Parse(localeName)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", localeName, err)
	}
	cfg.Locale = tag

	return cfg, nil
}

// Usage is the help text printed for -h.
const Usage = `rgal - Terminal directory gallery

USAGE:
    rgal [OPTIONS] [FOLDER]

OPTIONS:
    -h, --help              Show this help message and exit
    --log-level=LEVEL       debug, info, warn, error or quiet (default info)
    --log-format=FORMAT     json or console (default json)
    --log-file=PATH         Log file (default $TMPDIR/rgal.log)
    --metrics-addr=ADDR     Serve Prometheus metrics on ADDR, e.g. :9090
    --export-dir=DIR        Where opened non-previewable files are saved
    --locale=TAG            Collation locale for sorting, e.g. de, sv (default en)
    --sync                  Load folders on the UI goroutine

ENVIRONMENT:
    RGAL_ROOT, RGAL_LOG_LEVEL, RGAL_LOG_FORMAT, RGAL_LOG_FILE,
    RGAL_METRICS_ADDR, RGAL_EXPORT_DIR, RGAL_LOCALE, RGAL_ASYNC_LOADS
`

func defaultExportDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, "Downloads")
	}
	return os.TempDir()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
