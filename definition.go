package formdesk

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	whitespaceRun   = regexp.MustCompile(`[\s\p{Zs}\x{85}\x{2028}\x{2029}\x{FEFF}]+`)
	invalidNameChar = regexp.MustCompile(`[^a-z0-9_]`)
)

// NormalizeFieldName derives a field name from a label: lower-case, whitespace runs
// become "_", and anything outside [a-z0-9_] is dropped. It is idempotent.
func NormalizeFieldName(label string) string {
	name := strings.ToLower(label)
	name = whitespaceRun.ReplaceAllString(name, "_")
	return invalidNameChar.ReplaceAllString(name, "")
}

// NewFormDefinition returns an empty definition stamped with now.
func NewFormDefinition(id uuid.UUID, name string, now time.Time) FormDefinition {
	return FormDefinition{
		ID:        id,
		Name:      name,
		Fields:    []Field{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FieldByID returns a copy of the field with the given id.
func (d *FormDefinition) FieldByID(id uuid.UUID) (Field, bool) {
	idx := d.indexOf(id)
	if idx < 0 {
		return Field{}, false
	}
	return d.Fields[idx].Clone(), true
}

// FieldByName returns the first field stored under name.
func (d *FormDefinition) FieldByName(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f.Clone(), true
		}
	}
	return Field{}, false
}

// AppendField adds a field at the end of the list.
func (d *FormDefinition) AppendField(f Field, now time.Time) {
	d.Fields = append(d.Fields, f.Clone())
	d.UpdatedAt = now
}

// ReplaceField swaps in f for the field with the same id. Unknown ids are a no-op.
func (d *FormDefinition) ReplaceField(f Field, now time.Time) bool {
	idx := d.indexOf(f.ID)
	if idx < 0 {
		return false
	}
	d.Fields[idx] = f.Clone()
	d.UpdatedAt = now
	return true
}

// RemoveField drops the field with the given id. Unknown ids are a no-op.
func (d *FormDefinition) RemoveField(id uuid.UUID, now time.Time) bool {
	idx := d.indexOf(id)
	if idx < 0 {
		return false
	}
	d.Fields = slices.Delete(d.Fields, idx, idx+1)
	d.UpdatedAt = now
	return true
}

// MoveField moves the field to position to, clamped to the list bounds.
func (d *FormDefinition) MoveField(id uuid.UUID, to int, now time.Time) bool {
	idx := d.indexOf(id)
	if idx < 0 {
		return false
	}
	to = max(0, min(to, len(d.Fields)-1))
	if to == idx {
		return true
	}
	f := d.Fields[idx]
	d.Fields = slices.Delete(d.Fields, idx, idx+1)
	d.Fields = slices.Insert(d.Fields, to, f)
	d.UpdatedAt = now
	return true
}

// PatchMeta applies name/description changes.
func (d *FormDefinition) PatchMeta(patch FormMetaPatch, now time.Time) {
	if patch.Name == nil && patch.Description == nil {
		return
	}
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Description != nil {
		d.Description = *patch.Description
	}
	d.UpdatedAt = now
}

// DuplicateFieldNames lists names used by more than one field, in first-seen order.
func (d *FormDefinition) DuplicateFieldNames() []string {
	seen := make(map[string]int, len(d.Fields))
	var dups []string
	for _, f := range d.Fields {
		seen[f.Name]++
		if seen[f.Name] == 2 {
			dups = append(dups, f.Name)
		}
	}
	return dups
}

// Clone returns a deep copy of the definition.
func (d FormDefinition) Clone() FormDefinition {
	out := d
	out.Fields = make([]Field, len(d.Fields))
	for i, f := range d.Fields {
		out.Fields[i] = f.Clone()
	}
	return out
}

func (d *FormDefinition) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(d.Fields, func(f Field) bool { return f.ID == id })
}
