package catalog

import (
	"context"

	"github.com/bizcocho/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// TransactionScope provides transactional access to catalog repositories.
// All repository operations executed through fn share one database
// transaction that is committed when fn succeeds and rolled back otherwise.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// LockingProductRepository is a product repository that can row-lock a
// product for the rest of the transaction.
type LockingProductRepository interface {
	catalog.ProductRepository
	// FindByIDForUpdate loads the product and holds a row lock on it where
	// the database supports it
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
}

// TransactionalRepositories exposes repositories bound to the current transaction.
type TransactionalRepositories interface {
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() LockingProductRepository
	// ProductUnitRepo returns the product unit repository scoped to the current transaction
	ProductUnitRepo() catalog.ProductUnitRepository
}

// NoOpTransactionScope runs fn directly against the given repositories.
// Useful in tests where transaction support is not under test.
type NoOpTransactionScope struct {
	productRepo     LockingProductRepository
	productUnitRepo catalog.ProductUnitRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(productRepo LockingProductRepository, productUnitRepo catalog.ProductUnitRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:     productRepo,
		productUnitRepo: productUnitRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() LockingProductRepository {
	return s.productRepo
}

// ProductUnitRepo returns the product unit repository.
func (s *NoOpTransactionScope) ProductUnitRepo() catalog.ProductUnitRepository {
	return s.productUnitRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
