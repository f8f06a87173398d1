// Command schema-generator writes the JSON Schemas of dnd.yml, its logging
// section and scenario files to schema/definitions.
package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/grovetools/dragdrop/config"
	"github.com/grovetools/dragdrop/logging"
	"github.com/grovetools/dragdrop/pkg/scenario"
)

func loggingSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}
	s := r.Reflect(&logging.Config{})
	s.Title = "Dragdrop Logging Configuration"
	s.Description = "Schema for the 'logging' extension in dnd.yml."
	// Every logging key is optional.
	s.Required = nil
	return json.MarshalIndent(s, "", "  ")
}

func main() {
	outputDir := "schema/definitions"
	if len(os.Args) > 1 {
		outputDir = os.Args[1]
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Error creating schema directory: %v", err)
	}

	generators := map[string]func() ([]byte, error){
		"config.schema.json":   config.GenerateSchema,
		"logging.schema.json":  loggingSchema,
		"scenario.schema.json": scenario.GenerateSchema,
	}
	for name, generate := range generators {
		data, err := generate()
		if err != nil {
			log.Fatalf("Error generating %s: %v", name, err)
		}
		path := filepath.Join(outputDir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			log.Fatalf("Error writing %s: %v", path, err)
		}
		log.Printf("Generated %s", path)
	}
}
