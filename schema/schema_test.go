package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInner struct {
	Slop float64 `yaml:"slop,omitempty" jsonschema:"minimum=0"`
}

type sample struct {
	Name  string      `yaml:"name" jsonschema:"required"`
	Inner sampleInner `yaml:"inner,omitempty"`
}

func TestGenerate(t *testing.T) {
	data, err := Generate(&sample{}, Options{Title: "Sample"})
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Sample", doc["title"])

	props, ok := doc["properties"].(map[string]interface{})
	require.True(t, ok, "expected properties object")
	assert.Contains(t, props, "name")
	assert.Contains(t, props, "inner")
}

func TestValidator(t *testing.T) {
	v := MustValidator("sample.json", &sample{}, Options{Title: "Sample"})

	assert.NoError(t, v.Validate(map[string]interface{}{"name": "ok"}))
	assert.Error(t, v.Validate(map[string]interface{}{}), "missing required name")
	assert.Error(t, v.Validate(map[string]interface{}{"name": "ok", "extra": 1}), "closed root")
	assert.Error(t, v.Validate(map[string]interface{}{
		"name":  "ok",
		"inner": map[string]interface{}{"slop": -1},
	}))
}

func TestValidatorOpenRoot(t *testing.T) {
	v := MustValidator("open.json", &sample{}, Options{OpenRoot: true})

	assert.NoError(t, v.Validate(map[string]interface{}{"name": "ok", "logging": map[string]interface{}{"level": "debug"}}))
	assert.Error(t, v.Validate(map[string]interface{}{
		"name":  "ok",
		"inner": map[string]interface{}{"unknown": true},
	}), "nested objects stay closed")
}
