package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Config is the dragdrop configuration loaded from dnd.yml or dnd.toml.
// Keys that are not part of the core schema (for example the `logging`
// section) are kept in Extensions and decoded on demand with
// UnmarshalExtension.
type Config struct {
	Version string        `yaml:"version,omitempty" toml:"version,omitempty" mapstructure:"version" jsonschema:"description=Configuration version (e.g. '1.0')"`
	Pointer PointerConfig `yaml:"pointer,omitempty" toml:"pointer,omitempty" mapstructure:"pointer" jsonschema:"description=Options for the terminal pointer backend"`
	Remote  RemoteConfig  `yaml:"remote,omitempty" toml:"remote,omitempty" mapstructure:"remote" jsonschema:"description=Options for the websocket pointer input endpoint"`

	Extensions map[string]interface{} `yaml:",inline" toml:"-" mapstructure:",remain" jsonschema:"-"`
}

// PointerConfig configures the pointer backend.
type PointerConfig struct {
	// DelayMouseStart is a Go duration string. A press must be held this long
	// before motion can start a drag.
	DelayMouseStart string `yaml:"delay_mouse_start,omitempty" toml:"delay_mouse_start,omitempty" mapstructure:"delay_mouse_start" jsonschema:"description=Press-and-hold delay before a drag may start (Go duration such as 150ms)"`
	// TouchSlop is the distance in cells the pointer must travel from the
	// press position before a drag starts.
	TouchSlop                float64  `yaml:"touch_slop,omitempty" toml:"touch_slop,omitempty" mapstructure:"touch_slop" jsonschema:"minimum=0,description=Distance in cells the pointer must travel before a drag starts"`
	EnableKeyboardEvents     *bool    `yaml:"enable_keyboard_events,omitempty" toml:"enable_keyboard_events,omitempty" mapstructure:"enable_keyboard_events" jsonschema:"description=Cancel an active drag with the cancel keys (default: true)"`
	EnableHoverOutsideTarget bool     `yaml:"enable_hover_outside_target,omitempty" toml:"enable_hover_outside_target,omitempty" mapstructure:"enable_hover_outside_target" jsonschema:"description=Keep hovering a target that contains the dragged source while the pointer is outside it"`
	CancelOnSourceDisconnect bool     `yaml:"cancel_on_source_disconnect,omitempty" toml:"cancel_on_source_disconnect,omitempty" mapstructure:"cancel_on_source_disconnect" jsonschema:"description=End the drag when the dragged source's node is disconnected"`
	CancelKeys               []string `yaml:"cancel_keys,omitempty" toml:"cancel_keys,omitempty" mapstructure:"cancel_keys" jsonschema:"description=Keys that cancel an active drag (default: esc)"`
}

// RemoteConfig configures the websocket pointer input endpoint.
type RemoteConfig struct {
	Listen         string   `yaml:"listen,omitempty" toml:"listen,omitempty" mapstructure:"listen" jsonschema:"description=host:port to listen on (default: 127.0.0.1:7878)"`
	Path           string   `yaml:"path,omitempty" toml:"path,omitempty" mapstructure:"path" jsonschema:"description=HTTP path of the websocket endpoint (default: /pointer)"`
	ReadLimit      int64    `yaml:"read_limit,omitempty" toml:"read_limit,omitempty" mapstructure:"read_limit" jsonschema:"minimum=0,description=Maximum size in bytes of one client message (default: 4096)"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty" toml:"allowed_origins,omitempty" mapstructure:"allowed_origins" jsonschema:"description=Origins allowed to connect; empty allows same-origin only"`
}

// Default values applied by SetDefaults.
const (
	DefaultVersion    = "1.0"
	DefaultListen     = "127.0.0.1:7878"
	DefaultRemotePath = "/pointer"
	DefaultReadLimit  = 4096
)

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}

	if c.Pointer.EnableKeyboardEvents == nil {
		trueVal := true
		c.Pointer.EnableKeyboardEvents = &trueVal
	}
	if len(c.Pointer.CancelKeys) == 0 {
		c.Pointer.CancelKeys = []string{"esc"}
	}

	if c.Remote.Listen == "" {
		c.Remote.Listen = DefaultListen
	}
	if c.Remote.Path == "" {
		c.Remote.Path = DefaultRemotePath
	}
	if c.Remote.ReadLimit == 0 {
		c.Remote.ReadLimit = DefaultReadLimit
	}
}

// Delay returns the parsed press-and-hold delay. An empty value means no delay.
func (p PointerConfig) Delay() (time.Duration, error) {
	if p.DelayMouseStart == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(p.DelayMouseStart)
	if err != nil {
		return 0, fmt.Errorf("delay_mouse_start: %w", err)
	}
	return d, nil
}

// KeyboardEnabled reports whether cancel keys are active, treating an unset
// value as enabled.
func (p PointerConfig) KeyboardEnabled() bool {
	return p.EnableKeyboardEvents == nil || *p.EnableKeyboardEvents
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded dnd.yml into the provided target struct. The target must be a pointer.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// A missing key leaves the target zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
