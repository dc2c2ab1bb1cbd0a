package factory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lychee-technology/formdesk"
	"github.com/lychee-technology/formdesk/internal"
	"go.uber.org/zap"
)

// Desk wires the builder, fill and review flows over one pair of repositories.
//
// Usage:
//
//	cfg := formdesk.LoadConfigFromEnv()
//	desk, err := factory.NewDesk(ctx, cfg, factory.WithSummarizer(remote))
//	if err != nil {
//	    // handle error
//	}
//	b := desk.NewBuilder()
type Desk struct {
	Config      *formdesk.Config
	Definitions formdesk.DefinitionRepository
	Submissions formdesk.SubmissionRepository
	Reviewer    formdesk.SubmissionReviewer
	Summaries   formdesk.SubmissionSummaries

	ids        formdesk.IDGenerator
	clock      formdesk.Clock
	identity   formdesk.IdentityProvider
	navigator  formdesk.Navigator
	summarizer formdesk.Summarizer
	submission *internal.SubmissionBuilder
}

// Option customizes a Desk before it is assembled.
type Option func(*Desk)

func WithDefinitionRepository(repo formdesk.DefinitionRepository) Option {
	return func(d *Desk) { d.Definitions = repo }
}

func WithSubmissionRepository(repo formdesk.SubmissionRepository) Option {
	return func(d *Desk) { d.Submissions = repo }
}

func WithIDGenerator(ids formdesk.IDGenerator) Option {
	return func(d *Desk) { d.ids = ids }
}

func WithClock(clock formdesk.Clock) Option {
	return func(d *Desk) { d.clock = clock }
}

func WithIdentity(identity formdesk.IdentityProvider) Option {
	return func(d *Desk) { d.identity = identity }
}

func WithNavigator(nav formdesk.Navigator) Option {
	return func(d *Desk) { d.navigator = nav }
}

// WithSummarizer plugs in a remote summarization service. Without one, summaries are mocked.
func WithSummarizer(s formdesk.Summarizer) Option {
	return func(d *Desk) { d.summarizer = s }
}

// NewDesk validates config, fills in in-memory defaults for anything not supplied,
// installs the metrics emitter and loads seed forms.
func NewDesk(ctx context.Context, config *formdesk.Config, opts ...Option) (*Desk, error) {
	if config == nil {
		config = formdesk.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	d := &Desk{Config: config}
	for _, opt := range opts {
		opt(d)
	}
	if d.Definitions == nil {
		d.Definitions = internal.NewMemoryDefinitionRepository()
	}
	if d.Submissions == nil {
		d.Submissions = internal.NewMemorySubmissionRepository()
	}
	if d.ids == nil {
		d.ids = internal.NewUUIDGenerator()
	}
	if d.clock == nil {
		d.clock = internal.NewSystemClock()
	}
	if d.identity == nil {
		d.identity = internal.NewStaticIdentity(config.Submission.DefaultSubmittedBy)
	}

	d.submission = internal.NewSubmissionBuilder(d.ids, d.clock, d.identity)
	d.Reviewer = internal.NewSubmissionReviewer(d.Submissions)
	d.Summaries = internal.NewSummaryService(d.Submissions, d.summarizer, config.Summary)

	if config.Metrics.Enabled {
		internal.RegisterTelemetryEmitter(NewOTelEmitter(config.Metrics.Namespace))
	}

	if config.Seed.Directory != "" {
		n, err := internal.NewSeedLoader(config.Seed, d.Definitions, d.clock).Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load seed forms: %w", err)
		}
		zap.S().Infow("desk ready", "seedForms", n)
	}

	return d, nil
}

// NewBuilder starts a builder session on a new empty form.
func (d *Desk) NewBuilder() formdesk.FormBuilder {
	return internal.NewFormBuilder(d.builderOptions())
}

// EditForm opens a builder session on a saved form.
func (d *Desk) EditForm(ctx context.Context, id uuid.UUID) (formdesk.FormBuilder, error) {
	def, err := d.Definitions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return internal.NewFormBuilderFrom(d.builderOptions(), def), nil
}

// OpenFillSession starts data entry for the saved form id.
func (d *Desk) OpenFillSession(ctx context.Context, id uuid.UUID) (formdesk.FillSession, error) {
	return internal.OpenFillSession(ctx, internal.FillOptions{
		Definitions: d.Definitions,
		Submissions: d.Submissions,
		Builder:     d.submission,
		Navigator:   d.navigator,
	}, id)
}

// ResolveForm looks a form up by UUID or short reference.
func (d *Desk) ResolveForm(ctx context.Context, ref string) (formdesk.FormDefinition, error) {
	id, err := internal.ResolveFormRef(ref)
	if err != nil {
		return formdesk.FormDefinition{}, err
	}
	return d.Definitions.Get(ctx, id)
}

// FormRef is the short reference for a form id.
func (d *Desk) FormRef(id uuid.UUID) string {
	return internal.EncodeFormRef(id)
}

func (d *Desk) builderOptions() internal.BuilderOptions {
	return internal.BuilderOptions{
		Repository:      d.Definitions,
		IDs:             d.ids,
		Clock:           d.clock,
		DefaultFormName: d.Config.Builder.DefaultFormName,
	}
}
