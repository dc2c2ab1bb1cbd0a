package formdesk

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFieldName(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Text Field 1", "text_field_1"},
		{"Customer  Name", "customer_name"},
		{"E-mail (work)", "email_work"},
		{"  padded  ", "_padded_"},
		{"tab\tand\nnewline", "tab_and_newline"},
		{"already_normal", "already_normal"},
		{"Café", "caf"},
		{"Customer\u00a0Name", "customer_name"},
		{"Customer\u2003Name", "customer_name"},
		{"Line\u2028Break \u3000Wide", "line_break_wide"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := NormalizeFieldName(tt.label)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeFieldName(got))
		})
	}
}

func testDefinition() FormDefinition {
	def := NewFormDefinition(uuid.New(), "Form", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	for _, name := range []string{"a", "b", "c"} {
		def.Fields = append(def.Fields, Field{ID: uuid.New(), Type: FieldTypeText, Name: name, FieldConfig: FieldConfig{Label: name}})
	}
	return def
}

func TestFormDefinition_Lookup(t *testing.T) {
	def := testDefinition()

	f, ok := def.FieldByID(def.Fields[1].ID)
	require.True(t, ok)
	assert.Equal(t, "b", f.Name)

	f, ok = def.FieldByName("c")
	require.True(t, ok)
	assert.Equal(t, def.Fields[2].ID, f.ID)

	_, ok = def.FieldByID(uuid.New())
	assert.False(t, ok)
	_, ok = def.FieldByName("zzz")
	assert.False(t, ok)
}

func TestFormDefinition_MutationsTouchUpdatedAt(t *testing.T) {
	later := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	def := testDefinition()
	assert.False(t, def.RemoveField(uuid.New(), later))
	assert.False(t, def.MoveField(uuid.New(), 0, later))
	assert.False(t, def.ReplaceField(Field{ID: uuid.New()}, later))
	def.PatchMeta(FormMetaPatch{}, later)
	assert.Equal(t, def.CreatedAt, def.UpdatedAt)

	assert.True(t, def.RemoveField(def.Fields[0].ID, later))
	assert.Len(t, def.Fields, 2)
	assert.Equal(t, later, def.UpdatedAt)
}

func TestFormDefinition_MoveField(t *testing.T) {
	def := testDefinition()
	now := time.Now()
	c := def.Fields[2].ID

	require.True(t, def.MoveField(c, 0, now))
	assert.Equal(t, "c", def.Fields[0].Name)

	require.True(t, def.MoveField(c, 10, now))
	assert.Equal(t, "c", def.Fields[2].Name)
	assert.Equal(t, "a", def.Fields[0].Name)
}

func TestFormDefinition_DuplicateFieldNames(t *testing.T) {
	def := testDefinition()
	assert.Empty(t, def.DuplicateFieldNames())

	def.Fields[2].Name = "a"
	def.Fields = append(def.Fields, Field{ID: uuid.New(), Name: "a"})
	assert.Equal(t, []string{"a"}, def.DuplicateFieldNames())
}

func TestFormDefinition_CloneIsDeep(t *testing.T) {
	dv := StringListValue([]string{"x"})
	def := testDefinition()
	def.Fields[0].Options = []string{"one"}
	def.Fields[0].DefaultValue = &dv

	clone := def.Clone()
	clone.Fields[0].Options[0] = "changed"
	clone.Fields[0].Label = "changed"
	*clone.Fields[0].DefaultValue = StringValue("changed")

	assert.Equal(t, "one", def.Fields[0].Options[0])
	assert.Equal(t, "a", def.Fields[0].Label)
	assert.True(t, def.Fields[0].DefaultValue.Equal(StringListValue([]string{"x"})))
}

func TestFormDefinition_JSONRoundTrip(t *testing.T) {
	checked := BoolValue(true)
	def := testDefinition()
	def.Description = "desc"
	def.Fields[0].Required = true
	def.Fields[1].Type = FieldTypeCheckbox
	def.Fields[1].DefaultValue = &checked
	def.Fields[2].Type = FieldTypeDropdown
	def.Fields[2].Options = []string{"x", "y"}

	raw, err := json.Marshal(def)
	require.NoError(t, err)

	var back FormDefinition
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, def, back)
}

func TestFieldType_Valid(t *testing.T) {
	for _, ft := range AllFieldTypes() {
		assert.True(t, ft.Valid(), ft)
	}
	assert.False(t, FieldType("signature").Valid())
	assert.Len(t, AllFieldTypes(), 5)
}
