package catalog

import (
	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeUnit    = "Unit"
	AggregateTypeProduct = "Product"
)

// Event type constants
const (
	EventTypeUnitChanged            = "UnitChanged"
	EventTypeProductUnitsConfigured = "ProductUnitsConfigured"
	EventTypeProductUnitChanged     = "ProductUnitChanged"
	EventTypeProductDeleted         = "ProductDeleted"
)

// UnitChangedEvent is published when a registry unit is updated or deleted
type UnitChangedEvent struct {
	shared.BaseDomainEvent
	UnitID  uuid.UUID `json:"unit_id"`
	Deleted bool      `json:"deleted"`
}

// NewUnitChangedEvent creates a new UnitChangedEvent
func NewUnitChangedEvent(unitID uuid.UUID, deleted bool) *UnitChangedEvent {
	return &UnitChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUnitChanged, AggregateTypeUnit, unitID),
		UnitID:          unitID,
		Deleted:         deleted,
	}
}

// ProductUnitsConfiguredEvent is published after a bulk configuration replaced a product's set
type ProductUnitsConfiguredEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	UnitCount int       `json:"unit_count"`
}

// NewProductUnitsConfiguredEvent creates a new ProductUnitsConfiguredEvent
func NewProductUnitsConfiguredEvent(productID uuid.UUID, count int) *ProductUnitsConfiguredEvent {
	return &ProductUnitsConfiguredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUnitsConfigured, AggregateTypeProduct, productID),
		ProductID:       productID,
		UnitCount:       count,
	}
}

// ProductUnitChangedEvent is published when a single configuration row changes
type ProductUnitChangedEvent struct {
	shared.BaseDomainEvent
	ProductID     uuid.UUID `json:"product_id"`
	ProductUnitID uuid.UUID `json:"product_unit_id"`
	Action        string    `json:"action"`
}

// NewProductUnitChangedEvent creates a new ProductUnitChangedEvent
func NewProductUnitChangedEvent(productID, productUnitID uuid.UUID, action string) *ProductUnitChangedEvent {
	return &ProductUnitChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUnitChanged, AggregateTypeProduct, productID),
		ProductID:       productID,
		ProductUnitID:   productUnitID,
		Action:          action,
	}
}

// ProductDeletedEvent is published when a product and its configuration are removed
type ProductDeletedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Code      string    `json:"code"`
}

// NewProductDeletedEvent creates a new ProductDeletedEvent
func NewProductDeletedEvent(product *Product) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeleted, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Code:            product.Code,
	}
}
