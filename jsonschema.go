package formdesk

// JSONSchema is the JSON Schema (draft 2020-12) rendition of a form definition.
type JSONSchema struct {
	Schema               string                     `json:"$schema"`
	ID                   string                     `json:"$id,omitempty"`
	Title                string                     `json:"title"`
	Description          string                     `json:"description,omitempty"`
	Type                 string                     `json:"type"`
	Properties           map[string]*PropertySchema `json:"properties"`
	Required             []string                   `json:"required,omitempty"`
	AdditionalProperties bool                       `json:"additionalProperties"`
	Order                []string                   `json:"x-order,omitempty"`
}

// PropertySchema defines the schema for a single field.
type PropertySchema struct {
	Type        string            `json:"type,omitempty"` // "string", "number", "boolean", "array"
	AnyOf       []*PropertySchema `json:"anyOf,omitempty"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty"`
	MaxLength   *int              `json:"maxLength,omitempty"`
	Items       *PropertySchema   `json:"items,omitempty"`
	FieldType   FieldType         `json:"x-field-type,omitempty"`
	FieldID     string            `json:"x-field-id,omitempty"`
}
