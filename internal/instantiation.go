package internal

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lychee-technology/formdesk"
)

// Instantiate seeds a record with one entry per field: the field default when set,
// false for checkboxes, the empty string otherwise.
func Instantiate(def formdesk.FormDefinition) formdesk.SubmissionDataRecord {
	record := make(formdesk.SubmissionDataRecord, len(def.Fields))
	for _, field := range def.Fields {
		record[field.Name] = initialValue(field)
	}
	return record
}

func initialValue(field formdesk.Field) formdesk.Value {
	if field.DefaultValue != nil {
		if list, ok := field.DefaultValue.AsStringList(); ok {
			return formdesk.StringListValue(list)
		}
		return *field.DefaultValue
	}
	switch field.Type {
	case formdesk.FieldTypeCheckbox:
		return formdesk.BoolValue(false)
	case formdesk.FieldTypeText, formdesk.FieldTypeTextarea, formdesk.FieldTypeNumber, formdesk.FieldTypeDropdown:
		return formdesk.StringValue("")
	default:
		return formdesk.StringValue("")
	}
}

// Validate checks presence of required fields. A required field fails when its value is
// missing, the empty string, or false on a checkbox. Optional fields never fail.
func Validate(def formdesk.FormDefinition, record formdesk.SubmissionDataRecord) formdesk.FieldValidationErrors {
	errs := make(formdesk.FieldValidationErrors)
	for _, field := range def.Fields {
		if !field.Required {
			continue
		}
		if isMissing(field, record) {
			errs[field.Name] = RequiredMessage(field)
		}
	}
	return errs
}

// RequiredMessage is the error shown under an unfilled required field.
func RequiredMessage(field formdesk.Field) string {
	return fmt.Sprintf("%s is required.", field.Label)
}

func isMissing(field formdesk.Field, record formdesk.SubmissionDataRecord) bool {
	value, ok := record[field.Name]
	if !ok {
		return true
	}
	if value.IsEmptyString() {
		return true
	}
	if field.Type == formdesk.FieldTypeCheckbox {
		if checked, isBool := value.AsBool(); isBool && !checked {
			return true
		}
	}
	return false
}

// ApplyInput returns a copy of record with fieldName set to value.
func ApplyInput(record formdesk.SubmissionDataRecord, fieldName string, value formdesk.Value) formdesk.SubmissionDataRecord {
	next := record.Clone()
	if next == nil {
		next = make(formdesk.SubmissionDataRecord, 1)
	}
	next[fieldName] = value
	return next
}

// ParseInput turns raw text typed into a field into a value of the field's kind.
// Number input that does not parse to a finite number is kept as the raw string.
func ParseInput(field formdesk.Field, raw string) (formdesk.Value, error) {
	switch field.Type {
	case formdesk.FieldTypeNumber:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return formdesk.StringValue(""), nil
		}
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
			return formdesk.NumberValue(n), nil
		}
		return formdesk.StringValue(raw), nil
	case formdesk.FieldTypeCheckbox:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "", "0", "false", "off", "no":
			return formdesk.BoolValue(false), nil
		case "1", "true", "on", "yes":
			return formdesk.BoolValue(true), nil
		default:
			return formdesk.Value{}, formdesk.NewFormError(formdesk.ErrorTypeValidation, formdesk.ErrCodeValidationFailed,
				fmt.Sprintf("%q is not a checkbox value", raw)).WithField(field.Name)
		}
	case formdesk.FieldTypeText, formdesk.FieldTypeTextarea, formdesk.FieldTypeDropdown:
		return formdesk.StringValue(raw), nil
	default:
		return formdesk.Value{}, formdesk.NewUnknownFieldTypeError(field.Type)
	}
}
