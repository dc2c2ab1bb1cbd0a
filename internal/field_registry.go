package internal

import (
	"github.com/lychee-technology/formdesk"
)

// FieldTypeInfo describes a palette entry and what its fields can carry.
type FieldTypeInfo struct {
	Type                formdesk.FieldType
	DisplayName         string
	SupportsPlaceholder bool
	SupportsOptions     bool
	Defaults            formdesk.FieldConfig
}

// LookupFieldType returns the registry entry for t.
func LookupFieldType(t formdesk.FieldType) (FieldTypeInfo, error) {
	switch t {
	case formdesk.FieldTypeText:
		return FieldTypeInfo{
			Type:                t,
			DisplayName:         "Text Input",
			SupportsPlaceholder: true,
			Defaults: formdesk.FieldConfig{
				Label:       "Text Field",
				Placeholder: "Enter text",
			},
		}, nil
	case formdesk.FieldTypeTextarea:
		return FieldTypeInfo{
			Type:                t,
			DisplayName:         "Text Area",
			SupportsPlaceholder: true,
			Defaults: formdesk.FieldConfig{
				Label:       "Text Area",
				Placeholder: "Enter multi-line text",
			},
		}, nil
	case formdesk.FieldTypeNumber:
		return FieldTypeInfo{
			Type:                t,
			DisplayName:         "Number Input",
			SupportsPlaceholder: true,
			Defaults: formdesk.FieldConfig{
				Label:       "Number Field",
				Placeholder: "Enter a number",
			},
		}, nil
	case formdesk.FieldTypeCheckbox:
		unchecked := formdesk.BoolValue(false)
		return FieldTypeInfo{
			Type:        t,
			DisplayName: "Checkbox",
			Defaults: formdesk.FieldConfig{
				Label:        "Checkbox Field",
				DefaultValue: &unchecked,
			},
		}, nil
	case formdesk.FieldTypeDropdown:
		return FieldTypeInfo{
			Type:                t,
			DisplayName:         "Dropdown",
			SupportsPlaceholder: true,
			SupportsOptions:     true,
			Defaults: formdesk.FieldConfig{
				Label:   "Dropdown Field",
				Options: []string{"Option 1", "Option 2", "Option 3"},
			},
		}, nil
	default:
		return FieldTypeInfo{}, formdesk.NewUnknownFieldTypeError(t)
	}
}

// DefaultsFor returns a fresh copy of the default configuration for t.
// Unknown types yield the zero config.
func DefaultsFor(t formdesk.FieldType) formdesk.FieldConfig {
	info, err := LookupFieldType(t)
	if err != nil {
		return formdesk.FieldConfig{}
	}
	return info.Defaults.Clone()
}

// Palette lists every field type in display order.
func Palette() []FieldTypeInfo {
	types := formdesk.AllFieldTypes()
	palette := make([]FieldTypeInfo, 0, len(types))
	for _, t := range types {
		info, err := LookupFieldType(t)
		if err != nil {
			continue
		}
		palette = append(palette, info)
	}
	return palette
}
