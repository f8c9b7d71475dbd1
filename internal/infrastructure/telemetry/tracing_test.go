package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

func TestStartServiceSpan(t *testing.T) {
	tp, recorder := setupRecorder(t)
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	productID := uuid.New()
	ctx, span := StartServiceSpan(context.Background(), "product_unit", "configure",
		SpanAttrProductID, productID,
		SpanAttrUnitCount, 3,
		SpanAttrQuantity, decimal.RequireFromString("2.5"),
		"cached", false,
		"dangling")
	assert.NotEmpty(t, GetTraceID(ctx))
	RecordError(span, errors.New("boom"))
	RecordError(span, nil)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "product_unit.configure", ended[0].Name())
	attrs := attrMap(ended[0].Attributes())
	assert.Equal(t, productID.String(), attrs[SpanAttrProductID].AsString())
	assert.Equal(t, int64(3), attrs[SpanAttrUnitCount].AsInt64())
	assert.Equal(t, "2.5", attrs[SpanAttrQuantity].AsString())
	assert.False(t, attrs["cached"].AsBool())
	assert.Len(t, attrs, 4)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
}

func TestGetTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}
