package internal

import (
	"encoding/json"
	"testing"

	"github.com/lychee-technology/formdesk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJSONSchema(t *testing.T) {
	def := inspectionForm()

	schema, err := ToJSONSchema(def)
	require.NoError(t, err)

	assert.Equal(t, "Site Inspection", schema.Title)
	assert.Equal(t, "object", schema.Type)
	assert.False(t, schema.AdditionalProperties)
	assert.Equal(t, []string{"customer", "notes", "visits", "hours", "safe", "priority"}, schema.Order)
	assert.Equal(t, []string{"customer", "hours", "safe"}, schema.Required)

	assert.Equal(t, "string", schema.Properties["customer"].Type)
	assert.Equal(t, formdesk.FieldTypeTextarea, schema.Properties["notes"].FieldType)
	assert.Len(t, schema.Properties["hours"].AnyOf, 2)
	assert.Equal(t, float64(1), schema.Properties["visits"].Default)
	assert.Equal(t, "boolean", schema.Properties["safe"].Type)
	assert.Equal(t, []any{"", "Low", "Normal", "High"}, schema.Properties["priority"].Enum)
	assert.Equal(t, def.Fields[0].ID.String(), schema.Properties["customer"].FieldID)
}

func TestToJSONSchema_MarshalsAsDocument(t *testing.T) {
	schema, err := ToJSONSchema(inspectionForm())
	require.NoError(t, err)

	raw, err := json.Marshal(schema)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, draft202012, doc["$schema"])
	assert.Equal(t, false, doc["additionalProperties"])
	assert.Contains(t, doc, "x-order")
}

func TestToJSONSchema_UnknownFieldType(t *testing.T) {
	def := inspectionForm()
	def.Fields[0].Type = "signature"

	_, err := ToJSONSchema(def)
	assertFormErrorCode(t, err, formdesk.ErrCodeUnknownFieldType)
}

func TestCheckConformance(t *testing.T) {
	def := inspectionForm()

	tests := []struct {
		name    string
		edit    func(formdesk.SubmissionDataRecord)
		wantErr bool
	}{
		{name: "fresh record", edit: func(formdesk.SubmissionDataRecord) {}},
		{
			name: "filled record",
			edit: func(r formdesk.SubmissionDataRecord) {
				r["customer"] = formdesk.StringValue("ACME")
				r["hours"] = formdesk.NumberValue(2)
				r["safe"] = formdesk.BoolValue(true)
				r["priority"] = formdesk.StringValue("High")
			},
		},
		{
			name:    "non numeric number",
			edit:    func(r formdesk.SubmissionDataRecord) { r["hours"] = formdesk.StringValue("abc") },
			wantErr: true,
		},
		{
			name:    "option not offered",
			edit:    func(r formdesk.SubmissionDataRecord) { r["priority"] = formdesk.StringValue("Urgent") },
			wantErr: true,
		},
		{
			name:    "checkbox holds text",
			edit:    func(r formdesk.SubmissionDataRecord) { r["safe"] = formdesk.StringValue("yes") },
			wantErr: true,
		},
		{
			name:    "unknown key",
			edit:    func(r formdesk.SubmissionDataRecord) { r["extra"] = formdesk.StringValue("x") },
			wantErr: true,
		},
		{
			name:    "missing key",
			edit:    func(r formdesk.SubmissionDataRecord) { delete(r, "customer") },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := Instantiate(def)
			tt.edit(record)

			err := CheckConformance(def, record)
			if tt.wantErr {
				assertFormErrorCode(t, err, formdesk.ErrCodeSchemaInvalid)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateAgainstSchema_RawBytes(t *testing.T) {
	schema := map[string]any{"type": "object", "required": []any{"a"}}

	assert.NoError(t, ValidateAgainstSchema(schema, []byte(`{"a": 1}`)))
	assert.Error(t, ValidateAgainstSchema(schema, []byte(`{"b": 1}`)))
	assert.Error(t, ValidateAgainstSchema(schema, []byte(`{`)))
}
