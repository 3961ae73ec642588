package mocks

import (
	"context"
	"sync"

	"solireserve/infras/otel"
)

type otelImpl struct {
}

// NewScope implements otel.Otel.
func (o *otelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func NewOtel() otel.Otel {
	return &otelImpl{}
}

// Recorder is an otel.Otel that remembers span names, attributes and traced errors.
type Recorder struct {
	mu         sync.Mutex
	spans      []string
	errors     []error
	attributes map[string]any
}

func NewRecorder() *Recorder {
	return &Recorder{attributes: map[string]any{}}
}

// NewScope implements otel.Otel.
func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.spans = append(r.spans, spanName)

	return ctx, &recordingScope{recorder: r}
}

func (r *Recorder) Spans() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.spans...)
}

func (r *Recorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errors...)
}

func (r *Recorder) Attribute(key string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.attributes[key]

	return value, ok
}

type recordingScope struct {
	recorder *Recorder
}

func (s *recordingScope) End() {}

func (s *recordingScope) AddEvent(_ string) {}

func (s *recordingScope) TraceError(err error) {
	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.recorder.errors = append(s.recorder.errors, err)
}

func (s *recordingScope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *recordingScope) SetAttribute(key string, value any) {
	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.recorder.attributes[key] = value
}

func (s *recordingScope) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}
