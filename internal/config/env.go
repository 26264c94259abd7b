package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix starts every environment variable that overrides a config value.
const EnvPrefix = "SANDBOX_"

// LoadDotEnv reads the given file (e.g. ".env") and sets an environment variable for each
// KEY=VALUE line. Variables already set in the environment win over the file.
// Empty lines and lines starting with # are skipped. A missing file is not an error.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("env: %w", err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(strings.TrimPrefix(key, "export "))
		if !ok || key == "" {
			continue
		}
		value = unquote(strings.TrimSpace(value))
		if _, set := os.LookupEnv(key); set {
			continue
		}
		_ = os.Setenv(key, value)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("env %s: %w", path, err)
	}
	return nil
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' && v[len(v)-1] == '"' || v[0] == '\'' && v[len(v)-1] == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}

// ApplyEnv overrides fields of c from SANDBOX_* variables found through lookup (os.LookupEnv
// in the binary). Unparseable values are reported together; the fields that did parse are kept.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	integer := func(name string, dst *int) {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	float := func(name string, dst *float64) {
		if v, ok := lookup(EnvPrefix + name); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = f
		}
	}
	boolean := func(name string, dst *bool) {
		if v, ok := lookup(EnvPrefix + name); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = b
		}
	}

	integer("WIDTH", &c.Window.Width)
	integer("HEIGHT", &c.Window.Height)
	boolean("FULLSCREEN", &c.Window.Fullscreen)
	integer("TIME_SCALE", &c.TimeScale)
	str("SCENARIO", &c.Scenario)
	str("LOG_PATH", &c.LogPath)
	float("G", &c.Physics.G)
	float("MERGE_THRESHOLD", &c.Physics.MergeThreshold)
	str("MERGE_MODE", &c.Physics.MergeMode)
	str("MERGE_POLICY", &c.Physics.MergePolicy)
	boolean("GRID", &c.Render.Grid)
	boolean("BLEND", &c.Render.Blend)
	str("SPAWN_COLOR", &c.Spawn.Color)
	return errors.Join(errs...)
}
