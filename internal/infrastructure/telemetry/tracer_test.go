package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false}, zap.NewNop())

	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NoError(t, tp.Shutdown(context.Background()))
	assert.NoError(t, tp.ForceFlush(context.Background()))
	assert.NotNil(t, tp.Tracer("test"))
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "report.root_trial_balance", "company_id", "abc")
	defer span.End()

	assert.NotNil(t, ctx)
	assert.NotNil(t, span)

	// No-op spans tolerate helper calls
	SetAttributes(span, "rows", 5)
	RecordError(span, errors.New("boom"))
	RecordError(span, nil)
	RecordError(nil, errors.New("ignored"))
}

func TestGetTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestToAttribute(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected attribute.KeyValue
	}{
		{"string", "x", attribute.String("k", "x")},
		{"int", 7, attribute.Int("k", 7)},
		{"int64", int64(7), attribute.Int64("k", 7)},
		{"float64", 1.5, attribute.Float64("k", 1.5)},
		{"bool", true, attribute.Bool("k", true)},
		{"fallback", struct{}{}, attribute.String("k", "{}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, toAttribute("k", tt.value))
		})
	}
}

func TestToAttributes_SkipsNonStringKeys(t *testing.T) {
	attrs := toAttributes([]interface{}{"a", 1, 2, "dropped", "b", "x"})

	assert.Equal(t, []attribute.KeyValue{
		attribute.Int("a", 1),
		attribute.String("b", "x"),
	}, attrs)
}
