package catalog

import (
	"context"

	"github.com/bizcocho/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// ProductLocker serializes configuration writes per product across callers.
type ProductLocker interface {
	// Lock blocks until the product's lock is held or ctx is done. The
	// returned release func must be called exactly once.
	Lock(ctx context.Context, productID uuid.UUID) (release func(), err error)
}

// ConversionTableLoader builds a product's conversion table from storage
type ConversionTableLoader func(ctx context.Context) ([]catalog.ConversionEntry, error)

// ConversionCache caches conversion tables per product.
type ConversionCache interface {
	// GetOrLoad returns the cached table or calls load and caches its result.
	// Errors from load are returned as is and never cached.
	GetOrLoad(ctx context.Context, productID uuid.UUID, load ConversionTableLoader) ([]catalog.ConversionEntry, error)
	// Invalidate drops the cached table of one product
	Invalidate(ctx context.Context, productID uuid.UUID) error
	// InvalidateAll drops every cached table
	InvalidateAll(ctx context.Context) error
}
