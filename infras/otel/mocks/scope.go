package mocks

import "solireserve/infras/otel"

// noopScope satisfies otel.Scope without exporting anything.
type noopScope struct{}

func (noopScope) End()                           {}
func (noopScope) AddEvent(_ string)              {}
func (noopScope) TraceError(_ error)             {}
func (noopScope) TraceIfError(_ error)           {}
func (noopScope) SetAttribute(_ string, _ any)   {}
func (noopScope) SetAttributes(_ map[string]any) {}

func NewScope() otel.Scope {
	return noopScope{}
}
