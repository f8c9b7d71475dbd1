package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizcocho/backend/internal/domain/catalog"
	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService handles the products units are configured for
type ProductService struct {
	productRepo    catalog.ProductRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, txScope TransactionScope, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		txScope:     txScope,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	basePrice := decimal.Zero
	if req.BasePrice != nil {
		basePrice = *req.BasePrice
	}
	product, err := catalog.NewProduct(req.Code, req.Name, basePrice)
	if err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsByCode(ctx, product.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.DuplicateKeyError("Product code", product.Code)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("code", product.Code),
	)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID gets a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFoundError("Product", id)
		}
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List lists products by code
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (shared.Paginated[ProductResponse], error) {
	f := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
	}.Normalize()

	products, total, err := s.productRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, fmt.Errorf("list products: %w", err)
	}
	return shared.NewPaginated(ToProductResponses(products), total, f.Page, f.PageSize), nil
}

// Delete removes a product together with its unit configuration
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	var product *catalog.Product
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		product, err = repos.ProductRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NotFoundError("Product", id)
			}
			return err
		}
		if err := repos.ProductUnitRepo().DeleteByProductID(ctx, id); err != nil {
			return fmt.Errorf("delete product units: %w", err)
		}
		return repos.ProductRepo().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("product deleted",
		zap.String("product_id", id.String()),
		zap.String("code", product.Code),
	)
	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, catalog.NewProductDeletedEvent(product))
	}
	return nil
}
