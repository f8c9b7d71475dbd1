package handler

import (
	"context"

	catalogapp "github.com/bizcocho/backend/internal/application/catalog"
	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUnitService struct {
	mock.Mock
}

func (m *mockUnitService) List(ctx context.Context, filter catalogapp.UnitListFilter) (shared.Paginated[catalogapp.UnitResponse], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[catalogapp.UnitResponse]), args.Error(1)
}

func (m *mockUnitService) GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.UnitDetailResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.UnitDetailResponse), args.Error(1)
}

func (m *mockUnitService) Create(ctx context.Context, req catalogapp.CreateUnitRequest) (*catalogapp.UnitResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.UnitResponse), args.Error(1)
}

func (m *mockUnitService) Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateUnitRequest) (*catalogapp.UnitResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.UnitResponse), args.Error(1)
}

func (m *mockUnitService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUnitService) Convert(ctx context.Context, req catalogapp.ConvertUnitsRequest) (*catalogapp.ConversionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ConversionResponse), args.Error(1)
}

type mockProductUnitService struct {
	mock.Mock
}

func (m *mockProductUnitService) ListForProduct(ctx context.Context, productID uuid.UUID) ([]catalogapp.ProductUnitResponse, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogapp.ProductUnitResponse), args.Error(1)
}

func (m *mockProductUnitService) GetBaseUnit(ctx context.Context, productID uuid.UUID) (*catalogapp.ProductUnitResponse, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductUnitResponse), args.Error(1)
}

func (m *mockProductUnitService) GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.ProductUnitResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductUnitResponse), args.Error(1)
}

func (m *mockProductUnitService) Configure(ctx context.Context, productID uuid.UUID, req catalogapp.ConfigureProductUnitsRequest) ([]catalogapp.ProductUnitResponse, error) {
	args := m.Called(ctx, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogapp.ProductUnitResponse), args.Error(1)
}

func (m *mockProductUnitService) Create(ctx context.Context, req catalogapp.CreateProductUnitRequest) (*catalogapp.ProductUnitResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductUnitResponse), args.Error(1)
}

func (m *mockProductUnitService) Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateProductUnitRequest) (*catalogapp.ProductUnitResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductUnitResponse), args.Error(1)
}

func (m *mockProductUnitService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductUnitService) Convert(ctx context.Context, productID uuid.UUID, req catalogapp.ConvertProductUnitsRequest) (*catalogapp.ConversionResponse, error) {
	args := m.Called(ctx, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ConversionResponse), args.Error(1)
}

func (m *mockProductUnitService) ConversionTable(ctx context.Context, productID uuid.UUID) ([]catalogapp.ConversionTableEntryResponse, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogapp.ConversionTableEntryResponse), args.Error(1)
}

func (m *mockProductUnitService) QuoteSalesLine(ctx context.Context, productID uuid.UUID, req catalogapp.QuoteSalesLineRequest) (*catalogapp.SalesQuoteResponse, error) {
	args := m.Called(ctx, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.SalesQuoteResponse), args.Error(1)
}

type mockProductService struct {
	mock.Mock
}

func (m *mockProductService) Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *mockProductService) GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *mockProductService) List(ctx context.Context, filter catalogapp.ProductListFilter) (shared.Paginated[catalogapp.ProductResponse], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[catalogapp.ProductResponse]), args.Error(1)
}

func (m *mockProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

var (
	_ UnitService        = (*mockUnitService)(nil)
	_ ProductUnitService = (*mockProductUnitService)(nil)
	_ ProductService     = (*mockProductService)(nil)
)
