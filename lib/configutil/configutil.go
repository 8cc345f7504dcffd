package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

func localName(name string) string {
	dir := filepath.Dir(name)
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	prefix := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, fmt.Sprintf("%s.local%s", prefix, ext))
}

// ReadConfig reads a json5 configuration file. A sibling
// <name>.local.<ext> file, when present, is merged on top of the default
// file so operators can override page counts and credentials without
// touching the checked-in config. os.ErrNotExist is returned when neither
// file exists.
func ReadConfig[T any](name string) (T, error) {
	var out T
	found := false

	base, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(base) > 0 {
		if err := json5.Unmarshal(base, &out); err != nil {
			return out, fmt.Errorf("parse %s: %w", name, err)
		}
		found = true
	}

	local := localName(name)
	override, err := os.ReadFile(local)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(override) > 0 {
		var layer T
		if err := json5.Unmarshal(override, &layer); err != nil {
			return out, fmt.Errorf("parse %s: %w", local, err)
		}
		if err := mergo.Merge(&out, layer, mergo.WithOverride); err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", local)
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadRecursively walks from the working directory up to the filesystem
// root looking for a config file matching name.
func ReadRecursively[T any](name string) (T, error) {
	var zero T

	root, err := filepath.Abs("/")
	if err != nil {
		return zero, err
	}
	current, err := os.Getwd()
	if err != nil {
		return zero, err
	}

	for current != root {
		config, err := ReadConfig[T](filepath.Join(current, name))
		if os.IsNotExist(err) {
			current = filepath.Join(current, "..")
			continue
		}
		if err != nil {
			return zero, err
		}
		return config, nil
	}

	return zero, os.ErrNotExist
}
