package deps

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kayger44/rubygems/cli/bundle/internal/settings"
)

// ledgerName is the installed-gem record kept under the bundle path.
const ledgerName = "installed.yml"

// Entry records one installed gem.
type Entry struct {
	Version string `yaml:"version"`
	License string `yaml:"license,omitempty"`
}

type ledgerFile struct {
	Gems map[string]Entry `yaml:"gems"`
}

func ledgerPath(root string, st *settings.Settings) string {
	return filepath.Join(root, st.Path, ledgerName)
}

func readLedger(path string) (ledgerFile, error) {
	led := ledgerFile{Gems: map[string]Entry{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return led, nil
		}
		return led, err
	}
	if err := yaml.Unmarshal(data, &led); err != nil {
		return led, fmt.Errorf("parse %s: %w", path, err)
	}
	if led.Gems == nil {
		led.Gems = map[string]Entry{}
	}
	return led, nil
}

func writeLedger(path string, led ledgerFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(led)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
