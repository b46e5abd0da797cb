package validation

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"max_stack": {"type": "integer", "minimum": 1}
	},
	"required": ["name"]
}`

func newTestValidator() SchemaValidator {
	return NewSchemaValidator(fstest.MapFS{
		"item.schema.json": &fstest.MapFile{Data: []byte(testSchema)},
	})
}

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name      string
		data      string
		wantError bool
		errorMsg  string
	}{
		{name: "valid data", data: `{"name": "potion", "max_stack": 5}`},
		{name: "optional field missing", data: `{"name": "potion"}`},
		{name: "missing required", data: `{"max_stack": 5}`, wantError: true, errorMsg: "required"},
		{name: "below minimum", data: `{"name": "potion", "max_stack": 0}`, wantError: true, errorMsg: "/max_stack"},
		{name: "wrong type", data: `{"name": 7}`, wantError: true, errorMsg: "/name"},
		{name: "malformed json", data: `{`, wantError: true, errorMsg: "failed to parse JSON data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), "item.schema.json")
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_SchemaErrors(t *testing.T) {
	t.Run("missing schema", func(t *testing.T) {
		err := newTestValidator().ValidateBytes([]byte(`{}`), "nope.schema.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load schema nope.schema.json")
	})

	t.Run("schema is cached", func(t *testing.T) {
		v := newTestValidator().(*validator)
		require.NoError(t, v.ValidateBytes([]byte(`{"name": "a"}`), "item.schema.json"))
		require.NoError(t, v.ValidateBytes([]byte(`{"name": "b"}`), "item.schema.json"))
		assert.Len(t, v.schemas, 1)
	})

	t.Run("violations wrap sentinel", func(t *testing.T) {
		err := newTestValidator().ValidateBytes([]byte(`{}`), "item.schema.json")
		assert.ErrorIs(t, err, ErrSchemaValidation)
	})
}
