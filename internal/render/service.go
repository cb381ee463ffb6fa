// Package render exposes the SSML builders as a service: single fragments,
// presets and independent batches, with render events.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pitabwire/frame/workerpool"
	"github.com/rs/xid"

	"github.com/voicetyped/ssmlkit/pkg/events"
	"github.com/voicetyped/ssmlkit/pkg/preset"
	"github.com/voicetyped/ssmlkit/pkg/ssml"
)

var (
	// ErrPresetNotFound is returned when a named preset is not loaded.
	ErrPresetNotFound = errors.New("preset not found")
	// ErrBatchTooLarge is returned when a batch exceeds the configured limit.
	ErrBatchTooLarge = errors.New("batch too large")
)

const defaultMaxBatch = 256

// PresetSource provides loaded presets. *preset.Loader implements it.
type PresetSource interface {
	Get(name string) (*preset.Preset, bool)
	All() map[string]*preset.Preset
}

// Result is a rendered fragment.
type Result struct {
	ID     string
	Tag    ssml.Tag
	Preset string
	SSML   string
}

// BatchItem is the outcome of one fragment of a batch. Exactly one of
// Result.SSML and Err is set.
type BatchItem struct {
	Index  int
	Result Result
	Err    error
}

// Service renders fragments with a configured builder.
type Service struct {
	builder  *ssml.Builder
	presets  PresetSource
	pub      *events.Publisher
	pool     workerpool.WorkerPool
	maxBatch int
}

// Option configures a Service.
type Option func(*Service)

// WithPresets enables preset rendering.
func WithPresets(src PresetSource) Option {
	return func(s *Service) { s.presets = src }
}

// WithPublisher emits ssml.rendered and ssml.rejected events.
func WithPublisher(pub *events.Publisher) Option {
	return func(s *Service) { s.pub = pub }
}

// WithPool renders batches on the given worker pool.
func WithPool(pool workerpool.WorkerPool) Option {
	return func(s *Service) { s.pool = pool }
}

// WithMaxBatch limits the number of fragments in one batch.
func WithMaxBatch(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBatch = n
		}
	}
}

// NewService creates a render service. A nil builder uses ssml.Default.
func NewService(builder *ssml.Builder, opts ...Option) *Service {
	if builder == nil {
		builder = ssml.Default
	}
	s := &Service{builder: builder, maxBatch: defaultMaxBatch}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Render renders a single fragment.
func (s *Service) Render(ctx context.Context, f ssml.Fragment) (Result, error) {
	return s.render(ctx, f, "")
}

// RenderPreset renders the named preset with vars over its defaults.
func (s *Service) RenderPreset(ctx context.Context, name string, vars map[string]string) (Result, error) {
	if s.presets == nil {
		return Result{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	p, ok := s.presets.Get(name)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}

	frag, err := p.Fragment(vars)
	if err != nil {
		s.emitRejected(ctx, "", p.Tag, name, err)
		return Result{}, err
	}
	return s.render(ctx, frag, name)
}

// RenderBatch renders independent fragments concurrently. Items are
// returned in input order; a failed item does not affect the others.
func (s *Service) RenderBatch(ctx context.Context, frags []ssml.Fragment) ([]BatchItem, error) {
	if len(frags) > s.maxBatch {
		return nil, fmt.Errorf("%w: %d fragments, limit %d", ErrBatchTooLarge, len(frags), s.maxBatch)
	}

	items := make([]BatchItem, len(frags))
	var wg sync.WaitGroup
	for i, f := range frags {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			res, err := s.render(ctx, f, "")
			items[i] = BatchItem{Index: i, Result: res, Err: err}
		}

		if s.pool == nil {
			go task()
			continue
		}
		if err := s.pool.Submit(ctx, task); err != nil {
			slog.WarnContext(ctx, "render pool full, rendering inline", slog.Int("index", i))
			task()
		}
	}
	wg.Wait()

	return items, nil
}

// Escape escapes text for embedding as SSML character data.
func (s *Service) Escape(text string) string {
	return ssml.EscapeText(text)
}

// Tags lists the supported tags.
func (s *Service) Tags() []ssml.Tag {
	return ssml.Tags()
}

// Presets returns the loaded presets keyed by name.
func (s *Service) Presets() map[string]*preset.Preset {
	if s.presets == nil {
		return map[string]*preset.Preset{}
	}
	return s.presets.All()
}

func (s *Service) render(ctx context.Context, f ssml.Fragment, presetName string) (Result, error) {
	id := xid.New().String()

	out, err := s.builder.Render(f)
	if err != nil {
		s.emitRejected(ctx, id, f.Tag, presetName, err)
		return Result{}, err
	}

	s.emit(ctx, events.FragmentRendered, id, events.FragmentRenderedData{
		Tag:    string(f.Tag),
		Preset: presetName,
		Bytes:  len(out),
	})
	return Result{ID: id, Tag: f.Tag, Preset: presetName, SSML: out}, nil
}

func (s *Service) emitRejected(ctx context.Context, id string, tag ssml.Tag, presetName string, err error) {
	data := events.FragmentRejectedData{Tag: string(tag), Preset: presetName, Error: err.Error()}
	var fe *ssml.FieldError
	if errors.As(err, &fe) {
		data.Field = fe.Field
	}
	s.emit(ctx, events.FragmentRejected, id, data)
}

func (s *Service) emit(ctx context.Context, eventType events.EventType, id string, data any) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Emit(ctx, eventType, id, data); err != nil {
		slog.WarnContext(ctx, "emit render event failed",
			slog.String("event_type", string(eventType)),
			slog.String("error", err.Error()))
	}
}
