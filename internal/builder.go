package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lychee-technology/formdesk"
	"go.uber.org/zap"
)

// BuilderOptions carries the collaborators of a form builder.
type BuilderOptions struct {
	Repository      formdesk.DefinitionRepository
	IDs             formdesk.IDGenerator
	Clock           formdesk.Clock
	DefaultFormName string
}

type formBuilder struct {
	repo            formdesk.DefinitionRepository
	ids             formdesk.IDGenerator
	clock           formdesk.Clock
	defaultFormName string

	def      formdesk.FormDefinition
	selected *uuid.UUID
}

// NewFormBuilder starts a builder session on a brand-new empty definition.
func NewFormBuilder(opts BuilderOptions) formdesk.FormBuilder {
	b := &formBuilder{
		repo:            opts.Repository,
		ids:             opts.IDs,
		clock:           opts.Clock,
		defaultFormName: opts.DefaultFormName,
	}
	if b.ids == nil {
		b.ids = NewUUIDGenerator()
	}
	if b.clock == nil {
		b.clock = NewSystemClock()
	}
	if b.defaultFormName == "" {
		b.defaultFormName = formdesk.DefaultConfig().Builder.DefaultFormName
	}
	b.Clear()
	return b
}

// NewFormBuilderFrom opens a builder session on a copy of an existing definition.
func NewFormBuilderFrom(opts BuilderOptions, def formdesk.FormDefinition) formdesk.FormBuilder {
	b := NewFormBuilder(opts).(*formBuilder)
	b.def = def.Clone()
	if b.def.Fields == nil {
		b.def.Fields = []formdesk.Field{}
	}
	return b
}

func (b *formBuilder) Definition() formdesk.FormDefinition {
	return b.def.Clone()
}

func (b *formBuilder) SelectedField() (formdesk.Field, bool) {
	if b.selected == nil {
		return formdesk.Field{}, false
	}
	return b.def.FieldByID(*b.selected)
}

// SelectField moves the cursor to id; ids not on the form leave the selection unchanged.
func (b *formBuilder) SelectField(id uuid.UUID) bool {
	if _, ok := b.def.FieldByID(id); !ok {
		return false
	}
	b.selected = &id
	return true
}

func (b *formBuilder) ClearSelection() {
	b.selected = nil
}

func (b *formBuilder) AddField(t formdesk.FieldType) (formdesk.Field, error) {
	info, err := LookupFieldType(t)
	if err != nil {
		return formdesk.Field{}, err
	}

	defaults := info.Defaults.Clone()
	position := len(b.def.Fields) + 1
	taken := fieldNames(b.def.Fields)
	base := formdesk.NormalizeFieldName(defaults.Label)
	for taken.Contains(fmt.Sprintf("%s_%d", base, position)) {
		position++
	}

	field := formdesk.Field{
		ID:          b.ids.NewID(),
		Type:        t,
		Name:        fmt.Sprintf("%s_%d", base, position),
		FieldConfig: defaults,
	}
	field.Label = fmt.Sprintf("%s %d", defaults.Label, position)

	b.def.AppendField(field, b.clock.Now())
	b.selected = &field.ID

	EmitFieldAdded(context.Background(), string(t))
	zap.S().Debugw("field added", "formId", b.def.ID, "fieldId", field.ID, "type", t, "name", field.Name)
	return field.Clone(), nil
}

func (b *formBuilder) UpdateField(id uuid.UUID, patch formdesk.FieldPatch) bool {
	field, ok := b.def.FieldByID(id)
	if !ok {
		return false
	}
	if patch == (formdesk.FieldPatch{}) {
		return true
	}
	info, err := LookupFieldType(field.Type)
	if err != nil {
		// Fields are only created through AddField, so the type is always registered.
		return false
	}

	if patch.Label != nil {
		field.Label = *patch.Label
		if !field.NameOverridden {
			field.Name = formdesk.NormalizeFieldName(field.Label)
		}
	}
	if patch.Name != nil {
		if *patch.Name == "" {
			field.NameOverridden = false
			field.Name = formdesk.NormalizeFieldName(field.Label)
		} else {
			field.NameOverridden = true
			field.Name = formdesk.NormalizeFieldName(*patch.Name)
		}
	}
	if patch.Placeholder != nil && info.SupportsPlaceholder {
		field.Placeholder = *patch.Placeholder
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.Options != nil && info.SupportsOptions {
		field.Options = CleanOptions(*patch.Options)
	}
	if patch.DefaultValue != nil {
		dv := *patch.DefaultValue
		field.DefaultValue = &dv
	}

	return b.def.ReplaceField(field, b.clock.Now())
}

func (b *formBuilder) RemoveField(id uuid.UUID) bool {
	removed := b.def.RemoveField(id, b.clock.Now())
	if b.selected != nil && *b.selected == id {
		b.selected = nil
	}
	return removed
}

func (b *formBuilder) MoveField(id uuid.UUID, to int) bool {
	return b.def.MoveField(id, to, b.clock.Now())
}

func (b *formBuilder) UpdateFormMeta(patch formdesk.FormMetaPatch) {
	b.def.PatchMeta(patch, b.clock.Now())
}

// Save upserts a snapshot of the definition; builder state is left as is.
func (b *formBuilder) Save(ctx context.Context) error {
	if b.repo == nil {
		return formdesk.NewInternalError("form builder has no definition repository", nil)
	}
	snapshot := b.def.Clone()
	if dups := snapshot.DuplicateFieldNames(); len(dups) > 0 {
		zap.S().Warnw("saving form with duplicate field names; later values overwrite earlier ones",
			"formId", snapshot.ID, "names", dups)
	}
	if err := b.repo.Upsert(ctx, snapshot); err != nil {
		return fmt.Errorf("save form %s: %w", snapshot.ID, err)
	}
	EmitFormSaved(ctx)
	zap.S().Infow("form saved", "formId", snapshot.ID, "name", snapshot.Name, "fields", len(snapshot.Fields))
	return nil
}

// Clear discards the in-progress definition and starts a new one with a fresh id.
func (b *formBuilder) Clear() {
	b.def = formdesk.NewFormDefinition(b.ids.NewID(), b.defaultFormName, b.clock.Now())
	b.selected = nil
}

// CleanOptions trims dropdown options and drops blank entries.
func CleanOptions(options []string) []string {
	cleaned := make([]string, 0, len(options))
	for _, opt := range options {
		if opt = strings.TrimSpace(opt); opt != "" {
			cleaned = append(cleaned, opt)
		}
	}
	return cleaned
}

// ParseOptionsText splits a multi-line options editor value into options.
func ParseOptionsText(text string) []string {
	return CleanOptions(strings.Split(text, "\n"))
}
