package otel

import (
	"backoffice/shared/failure"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	attrErrorCode    = "error.code"
	attrErrorMessage = "error.message"
	eventRejected    = "request rejected"
)

// Scope is one span as seen by handlers and services.
type Scope interface {
	End()
	// TraceError marks the span failed. Rejections (4xx failures such as a
	// validation error or a missing entity) are recorded as events instead.
	TraceError(err error)
	TraceIfError(err error)
	AddEvent(name string)
	SetAttribute(key string, value any)
	SetAttributes(attributes map[string]any)
}

type scopeImpl struct {
	span oteltrace.Span
}

func NewScope(span oteltrace.Span) Scope {
	return &scopeImpl{span: span}
}

func (s *scopeImpl) End() {
	s.span.End()
}

func (s *scopeImpl) TraceError(err error) {
	code := failure.GetCode(err)
	attrs := []attribute.KeyValue{
		attribute.Int(attrErrorCode, code),
		attribute.String(attrErrorMessage, failure.Message(err)),
	}

	if code < http.StatusInternalServerError {
		s.span.AddEvent(eventRejected, oteltrace.WithAttributes(attrs...))

		return
	}

	s.span.RecordError(err, oteltrace.WithAttributes(attrs...))
	s.span.SetStatus(codes.Error, failure.Message(err))
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
	s.span.SetAttributes(toAttribute(key, value))
}

func (s *scopeImpl) SetAttributes(attributes map[string]any) {
	kvs := make([]attribute.KeyValue, 0, len(attributes))
	for key, value := range attributes {
		kvs = append(kvs, toAttribute(key, value))
	}

	s.span.SetAttributes(kvs...)
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch val := value.(type) {
	case bool:
		return attribute.Bool(key, val)
	case string:
		return attribute.String(key, val)
	case int:
		return attribute.Int(key, val)
	case int64:
		return attribute.Int64(key, val)
	case float64:
		return attribute.Float64(key, val)
	case []string:
		return attribute.StringSlice(key, val)
	case time.Duration:
		return attribute.Int64(key+".ms", val.Milliseconds())
	case time.Time:
		return attribute.String(key, val.Format(time.RFC3339))
	default:
		return attribute.String(key, fmt.Sprintf("%v", val))
	}
}
