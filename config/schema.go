package config

import (
	"sync"

	"github.com/grovetools/dragdrop/schema"
)

var (
	validatorOnce sync.Once
	validator     *schema.Validator
	validatorErr  error
)

// GenerateSchema generates the JSON Schema for dnd.yml. Unknown top-level
// keys are allowed so that extension sections such as `logging` validate.
func GenerateSchema() ([]byte, error) {
	return schema.Generate(&Config{}, schema.Options{
		Title:       "Dragdrop Configuration",
		Description: "Schema for dnd.yml and dnd.toml.",
		OpenRoot:    true,
	})
}

// schemaValidator compiles the generated schema once per process.
func schemaValidator() (*schema.Validator, error) {
	validatorOnce.Do(func() {
		data, err := GenerateSchema()
		if err != nil {
			validatorErr = err
			return
		}
		validator, validatorErr = schema.NewValidator("dnd.json", data)
	})
	return validator, validatorErr
}
