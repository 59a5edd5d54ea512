package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != "stdio" {
		t.Errorf("Expected default mode to be 'stdio', got '%s'", cfg.Mode)
	}

	if cfg.Host != "127.0.0.1" {
		t.Errorf("Expected default host to be '127.0.0.1', got '%s'", cfg.Host)
	}

	if cfg.Port != 8080 {
		t.Errorf("Expected default port to be 8080, got %d", cfg.Port)
	}

	if cfg.Version != "1.0.0" {
		t.Errorf("Expected default version to be '1.0.0', got '%s'", cfg.Version)
	}

	if cfg.ServerName != "contact-extractor" {
		t.Errorf("Expected default server name to be 'contact-extractor', got '%s'", cfg.ServerName)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}

	if cfg.LogFormat != "json" {
		t.Errorf("Expected default log format to be 'json', got '%s'", cfg.LogFormat)
	}

	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("Expected default max file size to be 100MB, got %d", cfg.MaxFileSize)
	}

	// Extraction thresholds mirror the engine defaults
	if cfg.PhoneMinDigits != 7 || cfg.PhoneMaxDigits != 15 {
		t.Errorf("Expected default phone digit range 7..15, got %d..%d", cfg.PhoneMinDigits, cfg.PhoneMaxDigits)
	}
	if cfg.AddressMinWords != 3 {
		t.Errorf("Expected default address word minimum 3, got %d", cfg.AddressMinWords)
	}
	if cfg.NameMaxLength != 120 {
		t.Errorf("Expected default name ceiling 120, got %d", cfg.NameMaxLength)
	}
	if cfg.MaxContinuationLines != 4 {
		t.Errorf("Expected default continuation ceiling 4, got %d", cfg.MaxContinuationLines)
	}
	if cfg.EnableFallback {
		t.Error("Expected fallback to be disabled by default")
	}

	// Watch directory defaults to the current working directory
	currentDir, _ := os.Getwd()
	if cfg.WatchDirectory != currentDir {
		t.Errorf("Expected default watch directory to be '%s', got '%s'", currentDir, cfg.WatchDirectory)
	}
}

func TestConfigValidate(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "contact-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.WatchDirectory = tempDir
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config - stdio mode",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "valid config - http mode",
			mutate: func(c *Config) {
				c.Mode = ModeHTTP
			},
			wantErr: false,
		},
		{
			name: "valid config - watch mode",
			mutate: func(c *Config) {
				c.Mode = ModeWatch
			},
			wantErr: false,
		},
		{
			name: "invalid mode",
			mutate: func(c *Config) {
				c.Mode = "server"
			},
			wantErr: true,
		},
		{
			name: "invalid port - too low (http mode)",
			mutate: func(c *Config) {
				c.Mode = ModeHTTP
				c.Port = 0
			},
			wantErr: true,
		},
		{
			name: "invalid port - too high (http mode)",
			mutate: func(c *Config) {
				c.Mode = ModeHTTP
				c.Port = 70000
			},
			wantErr: true,
		},
		{
			name: "invalid port ignored in stdio mode",
			mutate: func(c *Config) {
				c.Port = 0
			},
			wantErr: false,
		},
		{
			name: "empty watch directory (watch mode)",
			mutate: func(c *Config) {
				c.Mode = ModeWatch
				c.WatchDirectory = ""
			},
			wantErr: true,
		},
		{
			name: "zero workers (watch mode)",
			mutate: func(c *Config) {
				c.Mode = ModeWatch
				c.Workers = 0
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			mutate: func(c *Config) {
				c.LogLevel = "trace"
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			mutate: func(c *Config) {
				c.LogFormat = "xml"
			},
			wantErr: true,
		},
		{
			name: "invalid max file size",
			mutate: func(c *Config) {
				c.MaxFileSize = 0
			},
			wantErr: true,
		},
		{
			name: "export extension xlsx",
			mutate: func(c *Config) {
				c.ExportPath = filepath.Join(tempDir, "contacts.xlsx")
			},
			wantErr: false,
		},
		{
			name: "export extension csv",
			mutate: func(c *Config) {
				c.ExportPath = filepath.Join(tempDir, "contacts.csv")
			},
			wantErr: false,
		},
		{
			name: "unsupported export extension",
			mutate: func(c *Config) {
				c.ExportPath = filepath.Join(tempDir, "contacts.pdf")
			},
			wantErr: true,
		},
		{
			name: "phone minimum below one",
			mutate: func(c *Config) {
				c.PhoneMinDigits = 0
			},
			wantErr: true,
		},
		{
			name: "phone maximum below minimum",
			mutate: func(c *Config) {
				c.PhoneMinDigits = 9
				c.PhoneMaxDigits = 8
			},
			wantErr: true,
		},
		{
			name: "address words below one",
			mutate: func(c *Config) {
				c.AddressMinWords = 0
			},
			wantErr: true,
		},
		{
			name: "name ceiling below one",
			mutate: func(c *Config) {
				c.NameMaxLength = 0
			},
			wantErr: true,
		},
		{
			name: "continuation ceiling below one",
			mutate: func(c *Config) {
				c.MaxContinuationLines = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidateCreatesWatchDirectory(t *testing.T) {
	tempParent, err := os.MkdirTemp("", "contact-config-parent-*")
	if err != nil {
		t.Fatalf("Failed to create temp parent dir: %v", err)
	}
	defer os.RemoveAll(tempParent)

	inbox := filepath.Join(tempParent, "inbox")

	cfg := DefaultConfig()
	cfg.Mode = ModeWatch
	cfg.WatchDirectory = inbox

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Config.Validate() error = %v", err)
	}

	if _, err := os.Stat(inbox); err != nil {
		t.Errorf("watch directory should have been created: %v", err)
	}
}

func TestConfigAddress(t *testing.T) {
	cfg := &Config{
		Host: "192.168.1.1",
		Port: 9090,
	}

	expected := "192.168.1.1:9090"
	if got := cfg.Address(); got != expected {
		t.Errorf("Config.Address() = %v, want %v", got, expected)
	}
}

func TestConfigIsDebug(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		want     bool
	}{
		{name: "debug level", logLevel: "debug", want: true},
		{name: "info level", logLevel: "info", want: false},
		{name: "warn level", logLevel: "warn", want: false},
		{name: "error level", logLevel: "error", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			if got := cfg.IsDebug(); got != tt.want {
				t.Errorf("Config.IsDebug() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{
		Mode:           "http",
		Host:           "localhost",
		Port:           8080,
		WatchDirectory: "/srv/inbox",
		LogLevel:       "debug",
		MaxFileSize:    1024,
	}

	result := cfg.String()

	expectedSubstrings := []string{
		"Mode: http",
		"Host: localhost",
		"Port: 8080",
		"WatchDirectory: /srv/inbox",
		"LogLevel: debug",
		"MaxFileSize: 1024",
	}

	for _, substr := range expectedSubstrings {
		if !strings.Contains(result, substr) {
			t.Errorf("Config.String() result doesn't contain expected substring: %s\nGot: %s", substr, result)
		}
	}
}

func TestConfigModes(t *testing.T) {
	tests := []struct {
		mode      string
		wantStdio bool
		wantHTTP  bool
		wantWatch bool
	}{
		{mode: "stdio", wantStdio: true},
		{mode: "http", wantHTTP: true},
		{mode: "watch", wantWatch: true},
		{mode: "server"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cfg := &Config{Mode: tt.mode}
			if got := cfg.IsStdioMode(); got != tt.wantStdio {
				t.Errorf("Config.IsStdioMode() = %v, want %v", got, tt.wantStdio)
			}
			if got := cfg.IsHTTPMode(); got != tt.wantHTTP {
				t.Errorf("Config.IsHTTPMode() = %v, want %v", got, tt.wantHTTP)
			}
			if got := cfg.IsWatchMode(); got != tt.wantWatch {
				t.Errorf("Config.IsWatchMode() = %v, want %v", got, tt.wantWatch)
			}
		})
	}
}

func TestConfigEngineConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PhoneMinDigits = 6
	cfg.PhoneMaxDigits = 12
	cfg.AddressMinWords = 2
	cfg.NameMaxLength = 64
	cfg.MaxContinuationLines = 3
	cfg.EnableFallback = true

	ec := cfg.EngineConfig()

	if ec.PhoneMinDigits != 6 || ec.PhoneMaxDigits != 12 {
		t.Errorf("EngineConfig phone range = %d..%d, want 6..12", ec.PhoneMinDigits, ec.PhoneMaxDigits)
	}
	if ec.AddressMinWords != 2 {
		t.Errorf("EngineConfig address words = %d, want 2", ec.AddressMinWords)
	}
	if ec.NameMaxLength != 64 {
		t.Errorf("EngineConfig name ceiling = %d, want 64", ec.NameMaxLength)
	}
	if ec.MaxContinuationLines != 3 {
		t.Errorf("EngineConfig continuation ceiling = %d, want 3", ec.MaxContinuationLines)
	}
	if !ec.EnableFallback {
		t.Error("EngineConfig should carry the fallback toggle")
	}
}

func TestConfigLoggerConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "warn"
	cfg.LogFormat = "console"

	// Stdio mode routes logs to stderr
	cfg.Mode = ModeStdio
	lc := cfg.LoggerConfig()
	if lc.Level != "warn" || lc.Format != "console" {
		t.Errorf("LoggerConfig = %+v, want level warn format console", lc)
	}
	if !lc.UseStderr {
		t.Error("stdio mode must log to stderr")
	}

	cfg.Mode = ModeHTTP
	if cfg.LoggerConfig().UseStderr {
		t.Error("http mode should log to stdout")
	}
}
