package scenario

import (
	"fmt"
	"os"
	"sync"

	"github.com/mitchellh/mapstructure"

	"github.com/grovetools/dragdrop/config"
	"github.com/grovetools/dragdrop/errors"
	"github.com/grovetools/dragdrop/schema"
)

var (
	validatorOnce sync.Once
	validator     *schema.Validator
	validatorErr  error
)

// GenerateSchema returns the JSON Schema of scenario files.
func GenerateSchema() ([]byte, error) {
	return schema.Generate(&Scenario{}, schema.Options{
		Title:       "Dragdrop Scenario",
		Description: "Scripted drag interaction replayed by dndctl replay.",
	})
}

func scenarioValidator() (*schema.Validator, error) {
	validatorOnce.Do(func() {
		data, err := GenerateSchema()
		if err != nil {
			validatorErr = err
			return
		}
		validator, validatorErr = schema.NewValidator("scenario.json", data)
	})
	return validator, validatorErr
}

// Load reads a YAML or TOML scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeScenarioInvalid, "failed to read scenario").
			WithDetail("path", path)
	}
	s, err := Parse(data, config.FormatForPath(path))
	if err != nil {
		if dragErr, ok := err.(*errors.DragError); ok {
			return nil, dragErr.WithDetail("path", path)
		}
		return nil, err
	}
	return s, nil
}

// Parse decodes, schema-checks and validates a scenario document.
func Parse(data []byte, format config.Format) (*Scenario, error) {
	raw, err := config.DecodeRaw(data, format)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeScenarioInvalid, "failed to parse "+string(format)+" scenario")
	}

	v, err := scenarioValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create scenario validator")
	}
	if err := v.Validate(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeScenarioInvalid, "schema validation failed")
	}

	var s Scenario
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &s,
		TagName: "mapstructure",
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create mapstructure decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeScenarioInvalid, "failed to decode scenario")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks cross references the schema cannot express.
func (s *Scenario) Validate() error {
	roles := make(map[string]string)
	for i, src := range s.Sources {
		if src.Name == "" || src.Type == "" {
			return invalid("sources[%d] needs a name and a type", i)
		}
		if _, dup := roles[src.Name]; dup {
			return invalid("handler name '%s' is declared twice", src.Name)
		}
		roles[src.Name] = "source"
	}
	for i, tgt := range s.Targets {
		if tgt.Name == "" || len(tgt.Types) == 0 {
			return invalid("targets[%d] needs a name and at least one type", i)
		}
		if _, dup := roles[tgt.Name]; dup {
			return invalid("handler name '%s' is declared twice", tgt.Name)
		}
		roles[tgt.Name] = "target"
	}

	expect := func(step int, name, role string) error {
		if roles[name] != role {
			return invalid("steps[%d] refers to unknown %s '%s'", step, role, name)
		}
		return nil
	}

	for i, step := range s.Steps {
		switch step.Action {
		case ActionBeginDrag:
			for _, name := range step.Sources {
				if err := expect(i, name, "source"); err != nil {
					return err
				}
			}
		case ActionHover:
			for _, name := range step.Targets {
				if err := expect(i, name, "target"); err != nil {
					return err
				}
			}
		case ActionAddSource, ActionRemoveSource:
			if err := expect(i, step.Name, "source"); err != nil {
				return err
			}
		case ActionAddTarget, ActionRemoveTarget:
			if err := expect(i, step.Name, "target"); err != nil {
				return err
			}
		case ActionPublish, ActionDrop, ActionEndDrag:
		default:
			return invalid("steps[%d] has unknown action '%s'", i, step.Action)
		}
	}
	return nil
}

func invalid(format string, args ...interface{}) *errors.DragError {
	return errors.New(errors.ErrCodeScenarioInvalid, fmt.Sprintf(format, args...))
}
