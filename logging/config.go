package logging

import (
	"fmt"
	"path/filepath"

	"github.com/grovetools/dragdrop/internal/paths"
)

// SectionName is the dnd.yml section read by NewLogger.
const SectionName = "logging"

// Config is the logging section of dnd.yml. DND_LOG_LEVEL and DND_LOG_CALLER
// take precedence over Level and ReportCaller.
type Config struct {
	Level        string         `yaml:"level" toml:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,description=Minimum level written"`
	ReportCaller bool           `yaml:"report_caller" toml:"report_caller" jsonschema:"description=Add file:line of the log call"`
	File         FileSinkConfig `yaml:"file" toml:"file"`
	Format       FormatConfig   `yaml:"format" toml:"format"`
}

// FileSinkConfig appends log lines to a file. An empty Path means
// dndctl.log in the state directory.
type FileSinkConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Path    string `yaml:"path" toml:"path" jsonschema:"description=Log file; ~ expands to the home directory"`
}

type FormatConfig struct {
	Preset           string `yaml:"preset" toml:"preset" jsonschema:"enum=default,enum=simple,enum=json"`
	DisableTimestamp bool   `yaml:"disable_timestamp" toml:"disable_timestamp"`
	DisableComponent bool   `yaml:"disable_component" toml:"disable_component"`
	// auto writes to stderr only when debugging or when stderr is not a
	// terminal, so the demo's screen stays clean.
	StructuredToStderr string `yaml:"structured_to_stderr" toml:"structured_to_stderr" jsonschema:"enum=auto,enum=always,enum=never"`
}

// FilePath resolves where the file sink writes.
func (f FileSinkConfig) FilePath() string {
	if f.Path != "" {
		return expandPath(f.Path)
	}
	if dir := paths.StateDir(); dir != "" {
		return filepath.Join(dir, "dndctl.log")
	}
	return ""
}

// Validate rejects values the logger would otherwise silently replace.
func (c Config) Validate() error {
	switch c.Format.Preset {
	case "", "default", "simple", "json":
	default:
		return fmt.Errorf("unknown format preset %q", c.Format.Preset)
	}
	switch c.Format.StructuredToStderr {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("unknown structured_to_stderr mode %q", c.Format.StructuredToStderr)
	}
	return nil
}
