package otel

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"solireserve/shared/failure"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const attrErrorStatus = "error.status"

// Scope is the span handle services get from Otel.NewScope.
type Scope interface {
	End()
	TraceError(err error)
	TraceIfError(err error)
	AddEvent(name string)
	SetAttribute(key string, value any)
	SetAttributes(attributes map[string]any)
}

type scopeImpl struct {
	span oteltrace.Span
}

// NewScope wraps a started span. Callers own End.
func NewScope(span oteltrace.Span) Scope {
	return &scopeImpl{span: span}
}

func (s *scopeImpl) End() {
	s.span.End()
}

// TraceError records err on the span with its HTTP status. Only server side failures mark
// the span as errored; a 404 or a refused transition is an expected answer.
func (s *scopeImpl) TraceError(err error) {
	status := failure.GetCode(err)

	s.span.RecordError(err)
	s.span.SetAttributes(attribute.Int(attrErrorStatus, status))

	if status >= http.StatusInternalServerError {
		s.span.SetStatus(codes.Error, err.Error())
	}
}

func (s *scopeImpl) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scopeImpl) AddEvent(name string) {
	s.span.AddEvent(name)
}

func (s *scopeImpl) SetAttribute(key string, value any) {
	s.span.SetAttributes(attributeOf(key, value))
}

func (s *scopeImpl) SetAttributes(attributes map[string]any) {
	keys := make([]string, 0, len(attributes))
	for key := range attributes {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	kvs := make([]attribute.KeyValue, 0, len(keys))
	for _, key := range keys {
		kvs = append(kvs, attributeOf(key, attributes[key]))
	}

	s.span.SetAttributes(kvs...)
}

func attributeOf(key string, value any) attribute.KeyValue {
	switch val := value.(type) {
	case bool:
		return attribute.Bool(key, val)
	case string:
		return attribute.String(key, val)
	case *string:
		if val == nil {
			return attribute.String(key, "")
		}

		return attribute.String(key, *val)
	case int:
		return attribute.Int(key, val)
	case int64:
		return attribute.Int64(key, val)
	case float64:
		return attribute.Float64(key, val)
	case decimal.Decimal:
		// amounts keep full precision
		return attribute.String(key, val.String())
	case time.Time:
		return attribute.String(key, val.Format(time.RFC3339))
	case []string:
		return attribute.StringSlice(key, val)
	case fmt.Stringer:
		return attribute.String(key, val.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", val))
	}
}
