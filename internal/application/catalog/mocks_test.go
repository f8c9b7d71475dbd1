package catalog

import (
	"context"
	"sync"

	"github.com/bizcocho/backend/internal/domain/catalog"
	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUnitRepository is a mock implementation of catalog.UnitRepository
type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Unit, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindAll(ctx context.Context, filter catalog.UnitFilter) ([]catalog.Unit, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Unit), args.Get(1).(int64), args.Error(2)
}

func (m *MockUnitRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUnitRepository) ExistsByAbbreviation(ctx context.Context, abbreviation string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, abbreviation, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUnitRepository) Save(ctx context.Context, unit *catalog.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUnitRepository) FindUsages(ctx context.Context, id uuid.UUID) ([]catalog.UnitUsage, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]catalog.UnitUsage), args.Error(1)
}

// MockProductRepository is a mock implementation of LockingProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductUnitRepository is a mock implementation of catalog.ProductUnitRepository
type MockProductUnitRepository struct {
	mock.Mock
}

func (m *MockProductUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductUnit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductUnit), args.Error(1)
}

func (m *MockProductUnitRepository) FindConfiguredByID(ctx context.Context, id uuid.UUID) (*catalog.ConfiguredUnit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ConfiguredUnit), args.Error(1)
}

func (m *MockProductUnitRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]catalog.ConfiguredUnit, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]catalog.ConfiguredUnit), args.Error(1)
}

func (m *MockProductUnitRepository) FindByProductAndUnit(ctx context.Context, productID, unitID uuid.UUID) (*catalog.ConfiguredUnit, error) {
	args := m.Called(ctx, productID, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ConfiguredUnit), args.Error(1)
}

func (m *MockProductUnitRepository) FindBaseUnit(ctx context.Context, productID uuid.UUID) (*catalog.ConfiguredUnit, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ConfiguredUnit), args.Error(1)
}

func (m *MockProductUnitRepository) ExistsByProductAndUnit(ctx context.Context, productID, unitID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID, unitID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductUnitRepository) NextSortOrder(ctx context.Context, productID uuid.UUID) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

func (m *MockProductUnitRepository) Save(ctx context.Context, pu *catalog.ProductUnit) error {
	args := m.Called(ctx, pu)
	return args.Error(0)
}

func (m *MockProductUnitRepository) SaveBatch(ctx context.Context, units []*catalog.ProductUnit) error {
	args := m.Called(ctx, units)
	return args.Error(0)
}

func (m *MockProductUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductUnitRepository) DeleteByProductID(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockConversionCache is a mock implementation of ConversionCache
type MockConversionCache struct {
	mock.Mock
}

func (m *MockConversionCache) GetOrLoad(ctx context.Context, productID uuid.UUID, load ConversionTableLoader) ([]catalog.ConversionEntry, error) {
	args := m.Called(ctx, productID, load)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ConversionEntry), args.Error(1)
}

func (m *MockConversionCache) Invalidate(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockConversionCache) InvalidateAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// recordingLocker counts lock acquisitions and releases
type recordingLocker struct {
	mu       sync.Mutex
	acquired []uuid.UUID
	released int
	err      error
}

func (l *recordingLocker) Lock(_ context.Context, productID uuid.UUID) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	l.acquired = append(l.acquired, productID)
	return func() {
		l.mu.Lock()
		l.released++
		l.mu.Unlock()
	}, nil
}

var (
	_ catalog.UnitRepository        = (*MockUnitRepository)(nil)
	_ LockingProductRepository      = (*MockProductRepository)(nil)
	_ catalog.ProductUnitRepository = (*MockProductUnitRepository)(nil)
	_ shared.EventPublisher         = (*MockEventPublisher)(nil)
	_ ConversionCache               = (*MockConversionCache)(nil)
	_ ProductLocker                 = (*recordingLocker)(nil)
)
