package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Options controls how a Go type is reflected into a JSON Schema document.
type Options struct {
	Title       string
	Description string
	// OpenRoot allows unknown keys at the top level while nested objects
	// stay closed. Used for documents with free-form extension sections.
	OpenRoot bool
}

// Generate reflects v into an indented JSON Schema document, using yaml tags
// for property names.
func Generate(v interface{}, opts Options) ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	s := r.Reflect(v)
	s.Title = opts.Title
	s.Description = opts.Description
	if opts.OpenRoot {
		s.AdditionalProperties = jsonschema.TrueSchema
	}

	return json.MarshalIndent(s, "", "  ")
}

// MustValidator generates the schema for v and compiles it. It panics on
// failure and is meant for package-level initialization of static types.
func MustValidator(name string, v interface{}, opts Options) *Validator {
	data, err := Generate(v, opts)
	if err != nil {
		panic(err)
	}
	validator, err := NewValidator(name, data)
	if err != nil {
		panic(err)
	}
	return validator
}
