package internal

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/lychee-technology/formdesk"
)

// MemoryDefinitionRepository keeps definitions in save order.
type MemoryDefinitionRepository struct {
	mu   sync.RWMutex
	defs []formdesk.FormDefinition
}

func NewMemoryDefinitionRepository() *MemoryDefinitionRepository {
	return &MemoryDefinitionRepository{}
}

func (r *MemoryDefinitionRepository) List(ctx context.Context) ([]formdesk.FormDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]formdesk.FormDefinition, len(r.defs))
	for i, d := range r.defs {
		out[i] = d.Clone()
	}
	return out, nil
}

func (r *MemoryDefinitionRepository) Get(ctx context.Context, id uuid.UUID) (formdesk.FormDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.defs {
		if d.ID == id {
			return d.Clone(), nil
		}
	}
	return formdesk.FormDefinition{}, formdesk.NewFormNotFoundError(id)
}

// Upsert replaces the definition in place, keeping its position, or appends it.
func (r *MemoryDefinitionRepository) Upsert(ctx context.Context, def formdesk.FormDefinition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.defs {
		if r.defs[i].ID == def.ID {
			r.defs[i] = def.Clone()
			return nil
		}
	}
	r.defs = append(r.defs, def.Clone())
	return nil
}

// MemorySubmissionRepository keeps submissions newest first.
type MemorySubmissionRepository struct {
	mu   sync.RWMutex
	subs []formdesk.Submission
}

func NewMemorySubmissionRepository() *MemorySubmissionRepository {
	return &MemorySubmissionRepository{}
}

func (r *MemorySubmissionRepository) Append(ctx context.Context, sub formdesk.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append([]formdesk.Submission{sub.Clone()}, r.subs...)
	return nil
}

func (r *MemorySubmissionRepository) List(ctx context.Context) ([]formdesk.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]formdesk.Submission, len(r.subs))
	for i, s := range r.subs {
		out[i] = s.Clone()
	}
	return out, nil
}

func (r *MemorySubmissionRepository) Get(ctx context.Context, id uuid.UUID) (formdesk.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.subs {
		if s.ID == id {
			return s.Clone(), nil
		}
	}
	return formdesk.Submission{}, formdesk.NewSubmissionNotFoundError(id)
}

func (r *MemorySubmissionRepository) Update(ctx context.Context, sub formdesk.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.subs {
		if r.subs[i].ID == sub.ID {
			r.subs[i] = sub.Clone()
			return nil
		}
	}
	return formdesk.NewSubmissionNotFoundError(sub.ID)
}
