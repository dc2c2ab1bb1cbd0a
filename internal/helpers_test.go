package internal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lychee-technology/formdesk"
)

type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), step: time.Second}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID() uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return uuid.MustParse(fmt.Sprintf("00000000-0000-7000-8000-%012d", g.n))
}

type recordingNavigator struct {
	redirects []uuid.UUID
}

func (n *recordingNavigator) RedirectToFormSelection(_ context.Context, missing uuid.UUID) {
	n.redirects = append(n.redirects, missing)
}

type stubSummarizer struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (s *stubSummarizer) Summarize(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

type metricEvent struct {
	name   string
	labels map[string]string
	value  int64
}

// captureTelemetry installs a recording emitter for the duration of a test.
func captureTelemetry(t interface{ Cleanup(func()) }) *[]metricEvent {
	var mu sync.Mutex
	events := &[]metricEvent{}
	RegisterTelemetryEmitter(func(_ context.Context, name string, labels map[string]string, value int64) {
		mu.Lock()
		defer mu.Unlock()
		*events = append(*events, metricEvent{name: name, labels: labels, value: value})
	})
	t.Cleanup(func() { RegisterTelemetryEmitter(nil) })
	return events
}

func newTestBuilder() (formdesk.FormBuilder, *MemoryDefinitionRepository) {
	repo := NewMemoryDefinitionRepository()
	b := NewFormBuilder(BuilderOptions{
		Repository: repo,
		IDs:        &seqIDs{},
		Clock:      newStepClock(),
	})
	return b, repo
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
