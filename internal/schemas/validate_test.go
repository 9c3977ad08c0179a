package schemas

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/jobfit/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSchemasCompile(t *testing.T) {
	for _, name := range []string{schemas.LibraryImport, schemas.Statement, schemas.Resume} {
		t.Run(name, func(t *testing.T) {
			raw, err := schemas.FS.ReadFile(name)
			require.NoError(t, err)
			assert.True(t, json.Valid(raw))
			_, err = load(name)
			assert.NoError(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	statement := `{"action":"Led","context":"c","method":"m","result":"r","impact":"i","outcome":"o"}`

	tests := []struct {
		name      string
		schema    string
		document  string
		wantField string
	}{
		{"statement ok", schemas.Statement, statement, ""},
		{"statement missing part", schemas.Statement, `{"action":"Led"}`, "(root)"},
		{"statement bad stage", schemas.Statement, `{"action":"Led","context":"c","method":"m","result":"r","impact":"i","outcome":"o","company_stage":"series_z"}`, "company_stage"},
		{"import ok", schemas.LibraryImport, `{"items":[{"id":"a","statement":` + statement + `}]}`, ""},
		{"import unknown key", schemas.LibraryImport, `{"items":[{"statement":` + statement + `,"score":3}]}`, "items.0"},
		{"import wrong type", schemas.LibraryImport, `{"items":{}}`, "items"},
		{"resume ok", schemas.Resume, `{"name":"A","summary":"s","experience":[{"title":"t","company":"c"}],"skills":["Go"]}`, ""},
		{"resume missing company", schemas.Resume, `{"name":"A","summary":"s","experience":[{"title":"t"}],"skills":[]}`, "experience.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.schema, []byte(tt.document))
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.NotEmpty(t, ve.Errors)
			assert.Equal(t, tt.wantField, ve.Errors[0].Field)
			assert.Contains(t, ve.Error(), tt.schema)
		})
	}
}

func TestValidate_Errors(t *testing.T) {
	err := Validate("missing.schema.json", []byte(`{}`))
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "schema not found")

	err = Validate(schemas.Statement, []byte(`{ invalid json }`))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`
	assert.NoError(t, ValidateJSONString(schema, `{"name":"x"}`))

	err := ValidateJSONString(schema, `{"name":1}`)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Errors[0].Field)
}
