// Package settings loads and persists the CLI configuration. Values come
// from three layers: built-in defaults, the YAML config file of BUNDLE_*
// keys, and BUNDLE_* environment variables. Environment wins over the file,
// which wins over defaults.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Keys recognized in the config file and environment. Unknown file keys are
// preserved verbatim so foreign tooling state survives a set/unset cycle.
const (
	KeyAutoInstall = "BUNDLE_AUTO_INSTALL"
	KeyPlugins     = "BUNDLE_PLUGINS"
	KeyRetry       = "BUNDLE_RETRY"
	KeyNoColor     = "BUNDLE_NO_COLOR"
	KeyGemfile     = "BUNDLE_GEMFILE"
	KeyPath        = "BUNDLE_PATH"
)

// Settings is the merged configuration view for one invocation.
type Settings struct {
	// AutoInstall turns on the missing-gem repair before guarded commands.
	AutoInstall bool
	// Plugins enables the plugin index during command resolution.
	Plugins bool
	// Retry is the network retry budget handed to commands.
	Retry int
	// NoColor disables output coloring.
	NoColor bool
	// Gemfile overrides manifest discovery with an explicit path.
	Gemfile string
	// Path is the directory, relative to the project root, holding
	// installed-gem state.
	Path string
}

// overrides mirrors Settings with pointer fields so variables that are not
// set stay nil instead of clobbering file values.
type overrides struct {
	AutoInstall *bool   `env:"BUNDLE_AUTO_INSTALL"`
	Plugins     *bool   `env:"BUNDLE_PLUGINS"`
	Retry       *int    `env:"BUNDLE_RETRY"`
	NoColor     *bool   `env:"BUNDLE_NO_COLOR"`
	Gemfile     *string `env:"BUNDLE_GEMFILE"`
	Path        *string `env:"BUNDLE_PATH"`
}

// File returns the config file location: $BUNDLE_CONFIG when set, otherwise
// ~/.bundle/config. An empty string means no usable location exists.
func File() string {
	if p := strings.TrimSpace(os.Getenv("BUNDLE_CONFIG")); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bundle", "config")
}

// Load builds the merged Settings for this invocation.
func Load() (*Settings, error) {
	s := &Settings{Plugins: true, Path: ".bundle"}
	raw, err := ReadFile()
	if err != nil {
		return nil, err
	}
	for key, val := range raw {
		s.apply(key, val)
	}

	var ov overrides
	if err := env.Parse(&ov); err != nil {
		return nil, fmt.Errorf("reading BUNDLE_* environment: %w", err)
	}
	if ov.AutoInstall != nil {
		s.AutoInstall = *ov.AutoInstall
	}
	if ov.Plugins != nil {
		s.Plugins = *ov.Plugins
	}
	if ov.Retry != nil {
		s.Retry = *ov.Retry
	}
	if ov.NoColor != nil {
		s.NoColor = *ov.NoColor
	}
	if ov.Gemfile != nil {
		s.Gemfile = *ov.Gemfile
	}
	if ov.Path != nil && *ov.Path != "" {
		s.Path = *ov.Path
	}
	return s, nil
}

func (s *Settings) apply(key, val string) {
	switch key {
	case KeyAutoInstall:
		s.AutoInstall = truthy(val)
	case KeyPlugins:
		s.Plugins = truthy(val)
	case KeyRetry:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil && n >= 0 {
			s.Retry = n
		}
	case KeyNoColor:
		s.NoColor = truthy(val)
	case KeyGemfile:
		s.Gemfile = val
	case KeyPath:
		if strings.TrimSpace(val) != "" {
			s.Path = val
		}
	}
}

// truthy accepts the spellings gem tooling has historically written for
// boolean settings.
func truthy(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "on", "t":
		return true
	}
	return false
}

// ReadFile returns the raw key/value pairs stored in the config file. A
// missing file reads as empty.
func ReadFile() (map[string]string, error) {
	path := File()
	if path == "" {
		return map[string]string{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	// read values of any YAML scalar type; hand-edited files are not
	// always quoted
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	out := make(map[string]string, len(doc))
	for k, v := range doc {
		out[k] = fmt.Sprint(v)
	}
	return out, nil
}

// Set persists key=value in the config file, creating it if needed. The key
// may be spelled in user form (auto_install) or storage form
// (BUNDLE_AUTO_INSTALL).
func Set(key, value string) error {
	raw, err := ReadFile()
	if err != nil {
		return err
	}
	raw[Normalize(key)] = value
	return writeFile(raw)
}

// Unset removes key from the config file.
func Unset(key string) error {
	raw, err := ReadFile()
	if err != nil {
		return err
	}
	delete(raw, Normalize(key))
	return writeFile(raw)
}

// Normalize maps a user-spelled key onto the BUNDLE_-prefixed storage form.
func Normalize(key string) string {
	key = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(key), "-", "_"))
	if !strings.HasPrefix(key, "BUNDLE_") {
		key = "BUNDLE_" + key
	}
	return key
}

func writeFile(raw map[string]string) error {
	path := File()
	if path == "" {
		return fmt.Errorf("no config file location; set BUNDLE_CONFIG or HOME")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
