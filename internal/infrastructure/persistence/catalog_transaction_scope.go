package persistence

import (
	"context"

	appcatalog "github.com/bizcocho/backend/internal/application/catalog"
	"github.com/bizcocho/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction, rolling back when fn
// returns an error or panics.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appcatalog.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ProductRepo returns the product repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ProductRepo() appcatalog.LockingProductRepository {
	return NewGormProductRepository(r.tx)
}

// ProductUnitRepo returns the product unit repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ProductUnitRepo() catalog.ProductUnitRepository {
	return NewGormProductUnitRepository(r.tx)
}

var _ appcatalog.TransactionScope = (*GormTransactionScope)(nil)
var _ appcatalog.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
