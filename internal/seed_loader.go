package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/lychee-technology/formdesk"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SeedLoader reads saved form definitions from a directory of .json/.yaml documents.
type SeedLoader struct {
	dir    string
	strict bool
	repo   formdesk.DefinitionRepository
	clock  formdesk.Clock
}

func NewSeedLoader(cfg formdesk.SeedConfig, repo formdesk.DefinitionRepository, clock formdesk.Clock) *SeedLoader {
	if clock == nil {
		clock = NewSystemClock()
	}
	return &SeedLoader{dir: cfg.Directory, strict: cfg.Strict, repo: repo, clock: clock}
}

// Load upserts every definition document in the directory, in file name order, and
// returns how many were stored. Outside strict mode a bad document is logged and skipped.
func (l *SeedLoader) Load(ctx context.Context) (int, error) {
	if l.dir == "" {
		return 0, nil
	}
	if l.repo == nil {
		return 0, formdesk.NewInternalError("seed loader has no definition repository", nil)
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed directory %s: %w", l.dir, err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !isSeedDocument(entry.Name()) {
			continue
		}
		path := filepath.Join(l.dir, entry.Name())
		def, err := l.loadFile(path)
		if err != nil {
			if l.strict {
				return loaded, err
			}
			zap.S().Warnw("skipping seed document", "path", path, "error", err)
			continue
		}
		if err := l.repo.Upsert(ctx, def); err != nil {
			return loaded, fmt.Errorf("failed to store seed %s: %w", path, err)
		}
		loaded++
		zap.S().Debugw("seed form loaded", "path", path, "formId", def.ID, "name", def.Name)
	}

	zap.S().Infow("seed forms loaded", "directory", l.dir, "count", loaded)
	return loaded, nil
}

func (l *SeedLoader) loadFile(path string) (formdesk.FormDefinition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return formdesk.FormDefinition{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	def, err := ParseDefinitionDocument(raw, filepath.Ext(path))
	if err != nil {
		return formdesk.FormDefinition{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	now := l.clock.Now()
	if def.CreatedAt.IsZero() {
		def.CreatedAt = now
	}
	if def.UpdatedAt.IsZero() {
		def.UpdatedAt = def.CreatedAt
	}
	if dups := def.DuplicateFieldNames(); len(dups) > 0 {
		zap.S().Warnw("seed form has duplicate field names", "path", path, "names", dups)
	}
	return def, nil
}

// ParseDefinitionDocument decodes a JSON or YAML definition document, checking it against
// the definition document schema before decoding into the model.
func ParseDefinitionDocument(raw []byte, ext string) (formdesk.FormDefinition, error) {
	var doc any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return formdesk.FormDefinition{}, formdesk.NewFormError(formdesk.ErrorTypeValidation,
				formdesk.ErrCodeSchemaInvalid, "malformed YAML document").WithCause(err)
		}
	default:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return formdesk.FormDefinition{}, formdesk.NewFormError(formdesk.ErrorTypeValidation,
				formdesk.ErrCodeSchemaInvalid, "malformed JSON document").WithCause(err)
		}
	}

	if err := ValidateAgainstSchema(definitionDocumentSchema(), doc); err != nil {
		return formdesk.FormDefinition{}, formdesk.NewFormError(formdesk.ErrorTypeValidation,
			formdesk.ErrCodeSchemaInvalid, "document is not a form definition").WithCause(err)
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return formdesk.FormDefinition{}, formdesk.NewInternalError("re-encode seed document", err)
	}
	var def formdesk.FormDefinition
	if err := json.Unmarshal(normalized, &def); err != nil {
		return formdesk.FormDefinition{}, formdesk.NewFormError(formdesk.ErrorTypeValidation,
			formdesk.ErrCodeSchemaInvalid, "document does not decode into a form definition").WithCause(err)
	}
	if def.Fields == nil {
		def.Fields = []formdesk.Field{}
	}
	if err := checkDocumentFields(def); err != nil {
		return formdesk.FormDefinition{}, err
	}
	return def, nil
}

// checkDocumentFields rejects what the builder could not have produced: repeated field ids
// and names that are not in normalized form.
func checkDocumentFields(def formdesk.FormDefinition) error {
	ids := NewSet[uuid.UUID]()
	for _, f := range def.Fields {
		if ids.Contains(f.ID) {
			return formdesk.NewFormError(formdesk.ErrorTypeValidation, formdesk.ErrCodeSchemaInvalid,
				"field id is used more than once").WithForm(def.ID).WithDetail("fieldId", f.ID.String())
		}
		ids.Add(f.ID)
		if f.Name == "" || formdesk.NormalizeFieldName(f.Name) != f.Name {
			return formdesk.NewFormError(formdesk.ErrorTypeValidation, formdesk.ErrCodeSchemaInvalid,
				fmt.Sprintf("field name %q is not normalized", f.Name)).WithForm(def.ID).WithField(f.Name)
		}
	}
	return nil
}

func isSeedDocument(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func definitionDocumentSchema() map[string]any {
	types := make([]any, 0, len(formdesk.AllFieldTypes()))
	for _, t := range formdesk.AllFieldTypes() {
		types = append(types, string(t))
	}
	uuidPattern := "^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$"

	field := map[string]any{
		"type":     "object",
		"required": []any{"id", "type", "name", "label"},
		"properties": map[string]any{
			"id":             map[string]any{"type": "string", "pattern": uuidPattern},
			"type":           map[string]any{"enum": types},
			"name":           map[string]any{"type": "string", "minLength": 1},
			"nameOverridden": map[string]any{"type": "boolean"},
			"label":          map[string]any{"type": "string"},
			"placeholder":    map[string]any{"type": "string"},
			"required":       map[string]any{"type": "boolean"},
			"options":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"defaultValue": map[string]any{
				"anyOf": []any{
					map[string]any{"type": "string"},
					map[string]any{"type": "number"},
					map[string]any{"type": "boolean"},
					map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
		},
	}

	return map[string]any{
		"$schema":  draft202012,
		"type":     "object",
		"required": []any{"id", "name", "fields"},
		"properties": map[string]any{
			"id":          map[string]any{"type": "string", "pattern": uuidPattern},
			"name":        map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"createdAt":   map[string]any{"type": "string"},
			"updatedAt":   map[string]any{"type": "string"},
			"fields":      map[string]any{"type": "array", "items": field},
		},
	}
}
