package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"mercator-hq/docguard/pkg/model"
)

// DefaultFileNames are looked up, in order, by Discover.
var DefaultFileNames = []string{".docguard.yaml", ".docguard.yml", "docguard.yaml", "docguard.yml"}

// LoadConfig loads configuration from a YAML file at the specified path.
// The file is decoded on top of DefaultConfig, then validated. An empty
// path yields the validated defaults.
// The configuration is not modified by environment variables; use
// LoadConfigWithEnvOverrides for that functionality.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := decodeOver(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := decodeOver(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// decodeOver decodes data into cfg, rejecting unknown keys. An empty
// document leaves cfg unchanged.
func decodeOver(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention DOCGUARD_SECTION_FIELD (e.g., DOCGUARD_FAIL_ON_SEVERITY).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Start from defaults
// 2. Decode YAML from file
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("DOCGUARD_PROJECT_ROOT"); val != "" {
		cfg.ProjectRoot = val
	}
	if val := os.Getenv("DOCGUARD_FAIL_ON_SEVERITY"); val != "" {
		// Invalid values are kept so validation reports them.
		if sev, err := model.ParseSeverity(val); err == nil {
			cfg.FailOn.Severity = sev
		} else {
			cfg.FailOn.Severity = model.Severity(val)
		}
	}

	// Telemetry overrides
	if val := os.Getenv("DOCGUARD_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("DOCGUARD_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("DOCGUARD_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("DOCGUARD_TELEMETRY_METRICS_TEXTFILE"); val != "" {
		cfg.Telemetry.Metrics.Textfile = val
	}
	if val := os.Getenv("DOCGUARD_TELEMETRY_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("DOCGUARD_TELEMETRY_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
}

// Discover returns the first default configuration file found in dir, or
// an empty string when there is none.
func Discover(dir string) string {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return buf.Bytes(), nil
}
