package event

import "github.com/bizcocho/backend/internal/domain/catalog"

// RegisterCatalogEvents registers the catalog event types with the serializer
func RegisterCatalogEvents(serializer *EventSerializer) {
	serializer.Register(catalog.EventTypeUnitChanged, &catalog.UnitChangedEvent{})
	serializer.Register(catalog.EventTypeProductUnitsConfigured, &catalog.ProductUnitsConfiguredEvent{})
	serializer.Register(catalog.EventTypeProductUnitChanged, &catalog.ProductUnitChangedEvent{})
	serializer.Register(catalog.EventTypeProductDeleted, &catalog.ProductDeletedEvent{})
}
