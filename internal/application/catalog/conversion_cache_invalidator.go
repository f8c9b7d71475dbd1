package catalog

import (
	"context"
	"fmt"

	"github.com/bizcocho/backend/internal/domain/catalog"
	"github.com/bizcocho/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ConversionCacheInvalidator drops cached conversion tables when the data
// they were built from changes. Unit changes clear every table since unit
// names and abbreviations appear in the labels.
type ConversionCacheInvalidator struct {
	cache  ConversionCache
	logger *zap.Logger
}

// NewConversionCacheInvalidator creates a new handler for catalog change events
func NewConversionCacheInvalidator(cache ConversionCache, logger *zap.Logger) *ConversionCacheInvalidator {
	return &ConversionCacheInvalidator{
		cache:  cache,
		logger: logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ConversionCacheInvalidator) EventTypes() []string {
	return []string{
		catalog.EventTypeUnitChanged,
		catalog.EventTypeProductUnitsConfigured,
		catalog.EventTypeProductUnitChanged,
		catalog.EventTypeProductDeleted,
	}
}

// Handle invalidates the cache entries affected by event
func (h *ConversionCacheInvalidator) Handle(ctx context.Context, event shared.DomainEvent) error {
	var err error
	switch e := event.(type) {
	case *catalog.UnitChangedEvent:
		err = h.cache.InvalidateAll(ctx)
	case *catalog.ProductUnitsConfiguredEvent:
		err = h.cache.Invalidate(ctx, e.ProductID)
	case *catalog.ProductUnitChangedEvent:
		err = h.cache.Invalidate(ctx, e.ProductID)
	case *catalog.ProductDeletedEvent:
		err = h.cache.Invalidate(ctx, e.ProductID)
	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
	if err != nil {
		h.logger.Error("failed to invalidate conversion cache",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.Error(err),
		)
		return err
	}

	h.logger.Debug("conversion cache invalidated",
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID().String()),
	)
	return nil
}

var _ shared.EventHandler = (*ConversionCacheInvalidator)(nil)
