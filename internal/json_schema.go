package internal

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/lychee-technology/formdesk"
)

const draft202012 = "https://json-schema.org/draft/2020-12/schema"

// ToJSONSchema renders a definition as an object schema keyed by field name. Required
// fields are listed as required keys; emptiness is left to Validate.
func ToJSONSchema(def formdesk.FormDefinition) (*formdesk.JSONSchema, error) {
	out := &formdesk.JSONSchema{
		Schema:      draft202012,
		Title:       def.Name,
		Description: def.Description,
		Type:        "object",
		Properties:  make(map[string]*formdesk.PropertySchema, len(def.Fields)),
	}

	seen := NewSet[string]()
	for _, field := range def.Fields {
		prop, err := propertyFor(field)
		if err != nil {
			return nil, err
		}
		out.Properties[field.Name] = prop
		if seen.Contains(field.Name) {
			continue
		}
		seen.Add(field.Name)
		out.Order = append(out.Order, field.Name)
		if field.Required {
			out.Required = append(out.Required, field.Name)
		}
	}
	return out, nil
}

func propertyFor(field formdesk.Field) (*formdesk.PropertySchema, error) {
	prop := &formdesk.PropertySchema{
		Title:       field.Label,
		Description: field.Placeholder,
		FieldType:   field.Type,
		FieldID:     field.ID.String(),
	}
	if field.DefaultValue != nil {
		prop.Default = field.DefaultValue.Interface()
	}

	switch field.Type {
	case formdesk.FieldTypeText, formdesk.FieldTypeTextarea:
		prop.Type = "string"
	case formdesk.FieldTypeNumber:
		// untouched number inputs hold the empty string
		empty := 0
		prop.AnyOf = []*formdesk.PropertySchema{
			{Type: "number"},
			{Type: "string", MaxLength: &empty},
		}
	case formdesk.FieldTypeCheckbox:
		prop.Type = "boolean"
	case formdesk.FieldTypeDropdown:
		prop.Type = "string"
		prop.Enum = make([]any, 0, len(field.Options)+1)
		prop.Enum = append(prop.Enum, "")
		for _, opt := range field.Options {
			prop.Enum = append(prop.Enum, opt)
		}
	default:
		return nil, formdesk.NewUnknownFieldTypeError(field.Type).WithField(field.Name)
	}
	return prop, nil
}

// CheckConformance validates the record's value types against the definition's schema.
func CheckConformance(def formdesk.FormDefinition, record formdesk.SubmissionDataRecord) error {
	exported, err := ToJSONSchema(def)
	if err != nil {
		return err
	}
	if err := ValidateAgainstSchema(exported, record); err != nil {
		return formdesk.NewFormError(formdesk.ErrorTypeValidation, formdesk.ErrCodeSchemaInvalid,
			"record does not conform to the form schema").WithForm(def.ID).WithCause(err)
	}
	return nil
}

// ValidateAgainstSchema validates data against a schema value. Both sides go through
// encoding/json first so typed Go values validate the same as decoded documents.
func ValidateAgainstSchema(schemaDoc any, data any) error {
	schemaBytes, err := json.Marshal(schemaDoc)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(schemaBytes, &schema); err != nil {
		return fmt.Errorf("failed to unmarshal into jsonschema.Schema: %w", err)
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return fmt.Errorf("failed to resolve JSON schema: %w", err)
	}

	var dataToValidate any
	switch d := data.(type) {
	case []byte:
		if err := json.Unmarshal(d, &dataToValidate); err != nil {
			return fmt.Errorf("failed to unmarshal JSON data: %w", err)
		}
	default:
		raw, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to marshal data: %w", err)
		}
		if err := json.Unmarshal(raw, &dataToValidate); err != nil {
			return fmt.Errorf("failed to unmarshal JSON data: %w", err)
		}
	}

	if err := resolved.Validate(dataToValidate); err != nil {
		return fmt.Errorf("JSON validation failed: %w", err)
	}
	return nil
}
