package formdesk

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// FieldType enumerates the supported field kinds.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeNumber   FieldType = "number"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeDropdown FieldType = "dropdown"
)

// AllFieldTypes returns the field types in palette order.
func AllFieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeTextarea,
		FieldTypeNumber,
		FieldTypeCheckbox,
		FieldTypeDropdown,
	}
}

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	return slices.Contains(AllFieldTypes(), t)
}

// FieldConfig is the configurable part of a field, shared by registry defaults and live fields.
type FieldConfig struct {
	Label        string   `json:"label"`
	Placeholder  string   `json:"placeholder,omitempty"`
	Required     bool     `json:"required"`
	Options      []string `json:"options,omitempty"`
	DefaultValue *Value   `json:"defaultValue,omitempty"`
}

// Clone returns a deep copy of the config.
func (c FieldConfig) Clone() FieldConfig {
	out := c
	if c.Options != nil {
		out.Options = slices.Clone(c.Options)
	}
	if c.DefaultValue != nil {
		dv := *c.DefaultValue
		if list, ok := dv.AsStringList(); ok {
			dv = StringListValue(list)
		}
		out.DefaultValue = &dv
	}
	return out
}

// Field is a FieldConfig placed on a form.
type Field struct {
	ID   uuid.UUID `json:"id"`
	Type FieldType `json:"type"`
	// Name is the key submitted values are stored under.
	Name string `json:"name"`
	// NameOverridden is set when Name was entered explicitly and must survive label edits.
	NameOverridden bool `json:"nameOverridden,omitempty"`
	FieldConfig
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	out.FieldConfig = f.FieldConfig.Clone()
	return out
}

// FormDefinition is a form schema: ordered fields plus form-level metadata.
type FormDefinition struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Fields      []Field   `json:"fields"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SubmissionDataRecord maps field names to the values entered for them.
type SubmissionDataRecord map[string]Value

// Clone returns a copy that shares no list storage with r.
func (r SubmissionDataRecord) Clone() SubmissionDataRecord {
	if r == nil {
		return nil
	}
	out := make(SubmissionDataRecord, len(r))
	for k, v := range r {
		if list, ok := v.AsStringList(); ok {
			v = StringListValue(list)
		}
		out[k] = v
	}
	return out
}

// Plain converts the record into JSON-compatible Go values.
func (r SubmissionDataRecord) Plain() map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		out[k] = v.Interface()
	}
	return out
}

// FieldValidationErrors maps field names to a message; absent keys are valid fields.
type FieldValidationErrors map[string]string

func (e FieldValidationErrors) Clone() FieldValidationErrors {
	return maps.Clone(e)
}

// ApprovalStatus is the review state of a submission.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "Pending Approval"
	ApprovalStatusApproved ApprovalStatus = "Approved"
	ApprovalStatusRejected ApprovalStatus = "Rejected"
)

// Submission is a filled-in form as it appears in the submission list.
type Submission struct {
	ID              uuid.UUID            `json:"id"`
	FormID          uuid.UUID            `json:"formId"`
	FormName        string               `json:"formName"`
	SubmittedBy     string               `json:"submittedBy"`
	SubmissionDate  time.Time            `json:"submissionDate"`
	Status          ApprovalStatus       `json:"status"`
	CustomerName    string               `json:"customerName,omitempty"`
	Data            SubmissionDataRecord `json:"data"`
	RejectionReason string               `json:"rejectionReason,omitempty"`
}

// Clone returns a deep copy of the submission.
func (s Submission) Clone() Submission {
	out := s
	out.Data = s.Data.Clone()
	return out
}

// FieldPatch is a partial update of a field. Nil members are left unchanged.
type FieldPatch struct {
	Label        *string
	Placeholder  *string
	Required     *bool
	Options      *[]string
	DefaultValue *Value
	// Name sets an explicit name; an empty string drops the override and re-derives from the label.
	Name *string
}

// FormMetaPatch is a partial update of form-level metadata.
type FormMetaPatch struct {
	Name        *string
	Description *string
}

// FillState is the lifecycle state of a fill session.
type FillState string

const (
	FillStateLoading    FillState = "loading"
	FillStateReady      FillState = "ready"
	FillStateRedirected FillState = "redirected"
	FillStateSubmitted  FillState = "submitted"
)
