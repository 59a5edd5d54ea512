package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/docuform/contact-extractor/internal/engine"
	"github.com/docuform/contact-extractor/internal/logger"
)

const (
	// Mode constants
	ModeStdio = "stdio"
	ModeHTTP  = "http"
	ModeWatch = "watch"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "json"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultWorkers     = 2

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the contact extractor
type Config struct {
	// Transport configuration
	Mode string // "stdio", "http" or "watch"
	Host string
	Port int

	// Watch mode configuration
	WatchDirectory string
	ExportPath     string // optional contact sheet (.xlsx or .csv)
	Workers        int

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	LogFormat   string
	MaxFileSize int64 // Maximum PDF file size in bytes

	// Extraction thresholds
	PhoneMinDigits       int
	PhoneMaxDigits       int
	AddressMinWords      int
	NameMaxLength        int
	MaxContinuationLines int
	EnableFallback       bool
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	engineDefaults := engine.DefaultConfig()

	return &Config{
		Mode:                 ModeStdio, // stdio keeps MCP clients working out of the box
		Host:                 DefaultHost,
		Port:                 DefaultPort,
		WatchDirectory:       currentDir,
		ExportPath:           "",
		Workers:              DefaultWorkers,
		Version:              "1.0.0",
		ServerName:           "contact-extractor",
		LogLevel:             DefaultLogLevel,
		LogFormat:            DefaultLogFormat,
		MaxFileSize:          DefaultMaxFileSize,
		PhoneMinDigits:       engineDefaults.PhoneMinDigits,
		PhoneMaxDigits:       engineDefaults.PhoneMaxDigits,
		AddressMinWords:      engineDefaults.AddressMinWords,
		NameMaxLength:        engineDefaults.NameMaxLength,
		MaxContinuationLines: engineDefaults.MaxContinuationLines,
		EnableFallback:       engineDefaults.EnableFallback,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.WatchDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.WatchDirectory); err == nil {
			cfg.WatchDirectory = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("CONTACT")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("watchdir", cfg.WatchDirectory)
	viper.SetDefault("export", cfg.ExportPath)
	viper.SetDefault("workers", cfg.Workers)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("logformat", cfg.LogFormat)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("phonemin", cfg.PhoneMinDigits)
	viper.SetDefault("phonemax", cfg.PhoneMaxDigits)
	viper.SetDefault("addresswords", cfg.AddressMinWords)
	viper.SetDefault("namemaxlen", cfg.NameMaxLength)
	viper.SetDefault("maxlines", cfg.MaxContinuationLines)
	viper.SetDefault("fallback", cfg.EnableFallback)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'stdio' for MCP standard I/O, 'http' for the REST API, 'watch' for the drop folder")
	pflag.String("host", cfg.Host, "Server host address (http mode only)")
	pflag.Int("port", cfg.Port, "Server port (http mode only)")
	pflag.String("watchdir", cfg.WatchDirectory, "Directory watched for incoming PDF files (watch mode only)")
	pflag.String("export", cfg.ExportPath, "Contact sheet written on shutdown, .xlsx or .csv (watch mode only)")
	pflag.Int("workers", cfg.Workers, "Concurrent extraction workers (watch mode only)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.String("logformat", cfg.LogFormat, "Log format (json, console)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.Int("phonemin", cfg.PhoneMinDigits, "Minimum digit count for a plausible phone value")
	pflag.Int("phonemax", cfg.PhoneMaxDigits, "Maximum digit count for a plausible phone value")
	pflag.Int("addresswords", cfg.AddressMinWords, "Minimum word count for a plausible address value")
	pflag.Int("namemaxlen", cfg.NameMaxLength, "Maximum length of a name value")
	pflag.Int("maxlines", cfg.MaxContinuationLines, "Maximum continuation lines captured for an address")
	pflag.Bool("fallback", cfg.EnableFallback, "Scan unlabeled text with patterns when a label is missing")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	for _, key := range []string{
		"mode", "host", "port", "watchdir", "export", "workers",
		"loglevel", "logformat", "maxfilesize",
		"phonemin", "phonemax", "addresswords", "namemaxlen", "maxlines", "fallback",
	} {
		_ = viper.BindPFlag(key, pflag.Lookup(key))
	}
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nContact Extractor - pulls name, phone and address fields out of PDF documents\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                          # stdio MCP server (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=http --port=8080                  # REST API\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=watch --watchdir=/srv/inbox       # drop folder\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=watch --export=contacts.xlsx      # drop folder with contact sheet\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  CONTACT_MODE         Run mode\n")
		fmt.Fprintf(os.Stderr, "  CONTACT_HOST         Server host\n")
		fmt.Fprintf(os.Stderr, "  CONTACT_PORT         Server port\n")
		fmt.Fprintf(os.Stderr, "  CONTACT_WATCHDIR     Watched directory\n")
		fmt.Fprintf(os.Stderr, "  CONTACT_EXPORT       Contact sheet path\n")
		fmt.Fprintf(os.Stderr, "  CONTACT_WORKERS      Extraction workers\n")
		fmt.Fprintf(os.Stderr, "  CONTACT_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  CONTACT_LOGFORMAT    Log format\n")
		fmt.Fprintf(os.Stderr, "  CONTACT_MAXFILESIZE  Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  CONTACT_PHONEMIN     Minimum phone digits\n")
		fmt.Fprintf(os.Stderr, "  CONTACT_PHONEMAX     Maximum phone digits\n")
		fmt.Fprintf(os.Stderr, "  CONTACT_ADDRESSWORDS Minimum address words\n")
		fmt.Fprintf(os.Stderr, "  CONTACT_NAMEMAXLEN   Maximum name length\n")
		fmt.Fprintf(os.Stderr, "  CONTACT_MAXLINES     Address continuation ceiling\n")
		fmt.Fprintf(os.Stderr, "  CONTACT_FALLBACK     Enable unlabeled pattern fallback\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.WatchDirectory = viper.GetString("watchdir")
	cfg.ExportPath = viper.GetString("export")
	cfg.Workers = viper.GetInt("workers")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.LogFormat = viper.GetString("logformat")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.PhoneMinDigits = viper.GetInt("phonemin")
	cfg.PhoneMaxDigits = viper.GetInt("phonemax")
	cfg.AddressMinWords = viper.GetInt("addresswords")
	cfg.NameMaxLength = viper.GetInt("namemaxlen")
	cfg.MaxContinuationLines = viper.GetInt("maxlines")
	cfg.EnableFallback = viper.GetBool("fallback")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeHTTP && c.Mode != ModeWatch {
		return errors.New("mode must be one of 'stdio', 'http' or 'watch'")
	}

	if c.Mode == ModeHTTP && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.Mode == ModeWatch {
		if c.WatchDirectory == "" {
			return errors.New("watch directory cannot be empty")
		}
		if _, err := os.Stat(c.WatchDirectory); os.IsNotExist(err) {
			if err := os.MkdirAll(c.WatchDirectory, DefaultDirPerm); err != nil {
				return fmt.Errorf("cannot create watch directory %s: %w", c.WatchDirectory, err)
			}
		} else if err != nil {
			return fmt.Errorf("cannot access watch directory %s: %w", c.WatchDirectory, err)
		}
		if c.Workers < 1 {
			return errors.New("workers must be at least 1")
		}
	}

	if c.ExportPath != "" {
		switch strings.ToLower(filepath.Ext(c.ExportPath)) {
		case ".xlsx", ".csv":
		default:
			return fmt.Errorf("export path must end in .xlsx or .csv: %s", c.ExportPath)
		}
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("invalid log format: %s (must be 'json' or 'console')", c.LogFormat)
	}

	if c.PhoneMinDigits < 1 {
		return errors.New("minimum phone digits must be at least 1")
	}
	if c.PhoneMaxDigits < c.PhoneMinDigits {
		return errors.New("maximum phone digits must not be below the minimum")
	}
	if c.AddressMinWords < 1 {
		return errors.New("minimum address words must be at least 1")
	}
	if c.NameMaxLength < 1 {
		return errors.New("maximum name length must be at least 1")
	}
	if c.MaxContinuationLines < 1 {
		return errors.New("address continuation ceiling must be at least 1")
	}

	return nil
}

// EngineConfig maps the extraction thresholds onto the engine's config
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		PhoneMinDigits:       c.PhoneMinDigits,
		PhoneMaxDigits:       c.PhoneMaxDigits,
		AddressMinWords:      c.AddressMinWords,
		NameMaxLength:        c.NameMaxLength,
		MaxContinuationLines: c.MaxContinuationLines,
		EnableFallback:       c.EnableFallback,
	}
}

// LoggerConfig maps the logging settings onto the logger's config. Stdio
// mode always logs to stderr so stdout stays a clean protocol channel.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:     c.LogLevel,
		Format:    c.LogFormat,
		UseStderr: c.IsStdioMode(),
	}
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, WatchDirectory: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Host, c.Port, c.WatchDirectory, c.LogLevel, c.MaxFileSize)
}

// IsStdioMode returns true if the extractor runs as a stdio MCP server
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

// IsHTTPMode returns true if the extractor serves the REST API
func (c *Config) IsHTTPMode() bool {
	return c.Mode == ModeHTTP
}

// IsWatchMode returns true if the extractor watches a drop folder
func (c *Config) IsWatchMode() bool {
	return c.Mode == ModeWatch
}
