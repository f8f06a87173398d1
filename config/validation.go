package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/grovetools/dragdrop/errors"
)

// Validate checks the semantic constraints the schema cannot express.
func (c *Config) Validate() error {
	if err := validatePointer(&c.Pointer); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid pointer configuration")
	}

	if err := validateRemote(&c.Remote); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid remote configuration")
	}

	return nil
}

func validatePointer(p *PointerConfig) error {
	d, err := p.Delay()
	if err != nil {
		return err
	}
	if d < 0 {
		return fmt.Errorf("delay_mouse_start cannot be negative: %s", p.DelayMouseStart)
	}
	if p.TouchSlop < 0 {
		return fmt.Errorf("touch_slop cannot be negative: %v", p.TouchSlop)
	}
	for _, k := range p.CancelKeys {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("cancel_keys cannot contain empty keys")
		}
	}
	return nil
}

func validateRemote(r *RemoteConfig) error {
	if r.Listen != "" {
		if _, _, err := net.SplitHostPort(r.Listen); err != nil {
			return fmt.Errorf("listen must be host:port: %w", err)
		}
	}
	if r.Path != "" && !strings.HasPrefix(r.Path, "/") {
		return fmt.Errorf("path must start with '/': %s", r.Path)
	}
	if r.ReadLimit < 0 {
		return fmt.Errorf("read_limit cannot be negative: %d", r.ReadLimit)
	}
	return nil
}
