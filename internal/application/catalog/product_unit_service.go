package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizcocho/backend/internal/domain/catalog"
	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/bizcocho/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Product unit change actions carried by ProductUnitChangedEvent
const (
	ProductUnitActionCreated = "created"
	ProductUnitActionUpdated = "updated"
	ProductUnitActionDeleted = "deleted"
)

// ProductUnitService manages the units a product is handled in
type ProductUnitService struct {
	productRepo     catalog.ProductRepository
	unitRepo        catalog.UnitRepository
	productUnitRepo catalog.ProductUnitRepository
	txScope         TransactionScope
	locker          ProductLocker
	cache           ConversionCache
	eventPublisher  shared.EventPublisher
	logger          *zap.Logger
}

// NewProductUnitService creates a new ProductUnitService. Writes to one
// product's configuration are serialized through locker.
func NewProductUnitService(
	productRepo catalog.ProductRepository,
	unitRepo catalog.UnitRepository,
	productUnitRepo catalog.ProductUnitRepository,
	txScope TransactionScope,
	locker ProductLocker,
	logger *zap.Logger,
) *ProductUnitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductUnitService{
		productRepo:     productRepo,
		unitRepo:        unitRepo,
		productUnitRepo: productUnitRepo,
		txScope:         txScope,
		locker:          locker,
		logger:          logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductUnitService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetConversionCache enables caching of conversion tables
func (s *ProductUnitService) SetConversionCache(cache ConversionCache) {
	s.cache = cache
}

// ListForProduct lists a product's configured units, base unit first
func (s *ProductUnitService) ListForProduct(ctx context.Context, productID uuid.UUID) ([]ProductUnitResponse, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	configured, err := s.productUnitRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list product units: %w", err)
	}
	return ToProductUnitResponses(configured, product.BasePrice), nil
}

// GetBaseUnit returns the product's base unit
func (s *ProductUnitService) GetBaseUnit(ctx context.Context, productID uuid.UUID) (*ProductUnitResponse, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	base, err := s.productUnitRepo.FindBaseUnit(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound,
				fmt.Sprintf("Product %s has no base unit configured", product.Code))
		}
		return nil, err
	}

	response := ToProductUnitResponse(base, product.BasePrice)
	return &response, nil
}

// GetByID returns one configuration row
func (s *ProductUnitService) GetByID(ctx context.Context, id uuid.UUID) (*ProductUnitResponse, error) {
	cu, err := s.productUnitRepo.FindConfiguredByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFoundError("Product unit", id)
		}
		return nil, err
	}
	product, err := s.findProduct(ctx, cu.ProductID)
	if err != nil {
		return nil, err
	}

	response := ToProductUnitResponse(cu, product.BasePrice)
	return &response, nil
}

// Configure replaces the product's whole configuration. The request is
// validated before anything is written; the delete and insert then run in a
// single transaction so a failure leaves the previous set in place.
func (s *ProductUnitService) Configure(ctx context.Context, productID uuid.UUID, req ConfigureProductUnitsRequest) ([]ProductUnitResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product_unit", "configure",
		telemetry.SpanAttrProductID, productID,
		telemetry.SpanAttrUnitCount, len(req.Units),
	)
	defer span.End()

	resp, err := s.configure(ctx, productID, req)
	telemetry.RecordError(span, err)
	return resp, err
}

func (s *ProductUnitService) configure(ctx context.Context, productID uuid.UUID, req ConfigureProductUnitsRequest) ([]ProductUnitResponse, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	entries := make([]catalog.ConfigurationEntry, len(req.Units))
	unitIDs := make([]uuid.UUID, len(req.Units))
	for i, u := range req.Units {
		entries[i] = catalog.ConfigurationEntry{
			UnitID:         u.UnitID,
			Ratio:          ratioOrDefault(u.Ratio),
			IsBaseUnit:     u.IsBaseUnit,
			IsSalesUnit:    u.IsSalesUnit,
			IsPurchaseUnit: u.IsPurchaseUnit,
			PriceOverride:  u.PriceOverride,
		}
		unitIDs[i] = u.UnitID
	}

	rows, err := catalog.BuildConfiguration(productID, entries)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnitsExist(ctx, unitIDs); err != nil {
		return nil, err
	}

	release, err := s.lock(ctx, productID)
	if err != nil {
		return nil, err
	}
	defer release()

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := s.lockProductRow(ctx, repos, productID); err != nil {
			return err
		}
		if err := repos.ProductUnitRepo().DeleteByProductID(ctx, productID); err != nil {
			return fmt.Errorf("clear product units: %w", err)
		}
		return repos.ProductUnitRepo().SaveBatch(ctx, rows)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product units configured",
		zap.String("product_id", productID.String()),
		zap.Int("unit_count", len(rows)),
	)
	s.publish(ctx, catalog.NewProductUnitsConfiguredEvent(productID, len(rows)))

	configured, err := s.productUnitRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("reload product units: %w", err)
	}
	return ToProductUnitResponses(configured, product.BasePrice), nil
}

// Create adds one unit to a product's configuration
func (s *ProductUnitService) Create(ctx context.Context, req CreateProductUnitRequest) (*ProductUnitResponse, error) {
	product, err := s.findProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	unit, err := s.findUnit(ctx, req.UnitID)
	if err != nil {
		return nil, err
	}

	pu, err := catalog.NewProductUnit(product.ID, unit.ID, ratioOrDefault(req.Ratio))
	if err != nil {
		return nil, err
	}
	if err := pu.SetRoles(req.IsBaseUnit, req.IsSalesUnit, req.IsPurchaseUnit); err != nil {
		return nil, err
	}
	if err := pu.SetPriceOverride(req.PriceOverride); err != nil {
		return nil, err
	}

	release, err := s.lock(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := s.lockProductRow(ctx, repos, product.ID); err != nil {
			return err
		}
		puRepo := repos.ProductUnitRepo()

		exists, err := puRepo.ExistsByProductAndUnit(ctx, product.ID, unit.ID)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError(shared.CodeDuplicateKey,
				fmt.Sprintf("Unit %s is already configured for product %s", unit.Abbreviation, product.Code))
		}

		configured, err := puRepo.FindByProductID(ctx, product.ID)
		if err != nil {
			return err
		}
		if err := catalog.CheckBaseOnCreate(len(configured), pu); err != nil {
			return err
		}

		next, err := puRepo.NextSortOrder(ctx, product.ID)
		if err != nil {
			return err
		}
		pu.SortOrder = next
		return puRepo.Save(ctx, pu)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product unit created",
		zap.String("product_id", product.ID.String()),
		zap.String("product_unit_id", pu.ID.String()),
		zap.String("unit", unit.Abbreviation),
	)
	s.publish(ctx, catalog.NewProductUnitChangedEvent(product.ID, pu.ID, ProductUnitActionCreated))

	response := ToProductUnitResponse(&catalog.ConfiguredUnit{ProductUnit: *pu, Unit: *unit}, product.BasePrice)
	return &response, nil
}

// Update applies a partial update to one configuration row
func (s *ProductUnitService) Update(ctx context.Context, id uuid.UUID, req UpdateProductUnitRequest) (*ProductUnitResponse, error) {
	current, err := s.findProductUnit(ctx, id)
	if err != nil {
		return nil, err
	}
	productID := current.ProductID

	release, err := s.lock(ctx, productID)
	if err != nil {
		return nil, err
	}
	defer release()

	var (
		product *catalog.Product
		updated *catalog.ConfiguredUnit
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		if product, err = s.lockProductRow(ctx, repos, productID); err != nil {
			return err
		}
		// Re-read under the lock
		if updated, err = repos.ProductUnitRepo().FindConfiguredByID(ctx, id); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NotFoundError("Product unit", id)
			}
			return err
		}

		before := updated.ProductUnit
		if err := updated.Apply(catalog.ProductUnitUpdate{
			Ratio:              req.Ratio,
			IsBaseUnit:         req.IsBaseUnit,
			IsSalesUnit:        req.IsSalesUnit,
			IsPurchaseUnit:     req.IsPurchaseUnit,
			PriceOverride:      req.PriceOverride,
			ClearPriceOverride: req.ClearPriceOverride,
		}); err != nil {
			return err
		}
		if err := catalog.CheckBaseOnUpdate(&before, &updated.ProductUnit); err != nil {
			return err
		}
		return repos.ProductUnitRepo().Save(ctx, &updated.ProductUnit)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product unit updated",
		zap.String("product_id", productID.String()),
		zap.String("product_unit_id", id.String()),
	)
	s.publish(ctx, catalog.NewProductUnitChangedEvent(productID, id, ProductUnitActionUpdated))

	response := ToProductUnitResponse(updated, product.BasePrice)
	return &response, nil
}

// Delete removes one configuration row. The base unit can only be removed
// when it is the last row left.
func (s *ProductUnitService) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := s.findProductUnit(ctx, id)
	if err != nil {
		return err
	}
	productID := current.ProductID

	release, err := s.lock(ctx, productID)
	if err != nil {
		return err
	}
	defer release()

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := s.lockProductRow(ctx, repos, productID); err != nil {
			return err
		}
		puRepo := repos.ProductUnitRepo()

		target, err := puRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NotFoundError("Product unit", id)
			}
			return err
		}
		configured, err := puRepo.FindByProductID(ctx, productID)
		if err != nil {
			return err
		}
		if err := catalog.CheckBaseOnDelete(target, len(configured)); err != nil {
			return err
		}
		return puRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("product unit deleted",
		zap.String("product_id", productID.String()),
		zap.String("product_unit_id", id.String()),
	)
	s.publish(ctx, catalog.NewProductUnitChangedEvent(productID, id, ProductUnitActionDeleted))
	return nil
}

// ConvertQuantity converts quantity between two units configured for the
// product. Equal units return quantity without touching storage.
func (s *ProductUnitService) ConvertQuantity(ctx context.Context, productID uuid.UUID, quantity decimal.Decimal, fromUnitID, toUnitID uuid.UUID) (decimal.Decimal, error) {
	if fromUnitID == toUnitID {
		return quantity, nil
	}
	from, err := s.findConfiguredUnit(ctx, productID, fromUnitID)
	if err != nil {
		return decimal.Zero, err
	}
	to, err := s.findConfiguredUnit(ctx, productID, toUnitID)
	if err != nil {
		return decimal.Zero, err
	}
	return catalog.ConvertBetween(quantity, &from.ProductUnit, &to.ProductUnit), nil
}

// Convert converts a quantity between two of the product's units and labels
// both sides with their unit
func (s *ProductUnitService) Convert(ctx context.Context, productID uuid.UUID, req ConvertProductUnitsRequest) (*ConversionResponse, error) {
	if req.Quantity.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Quantity cannot be negative")
	}
	if _, err := s.findProduct(ctx, productID); err != nil {
		return nil, err
	}

	from, err := s.findConfiguredUnit(ctx, productID, req.FromUnitID)
	if err != nil {
		return nil, err
	}
	to := from
	if req.ToUnitID != req.FromUnitID {
		if to, err = s.findConfiguredUnit(ctx, productID, req.ToUnitID); err != nil {
			return nil, err
		}
	}

	return &ConversionResponse{
		Original:  QuantityInUnit{Quantity: req.Quantity, Unit: from.Unit.Name, Abbreviation: from.Unit.Abbreviation},
		Converted: QuantityInUnit{Quantity: catalog.ConvertBetween(req.Quantity, &from.ProductUnit, &to.ProductUnit), Unit: to.Unit.Name, Abbreviation: to.Unit.Abbreviation},
	}, nil
}

// ConversionTable returns the conversion factor between every ordered pair
// of the product's units
func (s *ProductUnitService) ConversionTable(ctx context.Context, productID uuid.UUID) ([]ConversionTableEntryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product_unit", "conversion_table",
		telemetry.SpanAttrProductID, productID,
	)
	defer span.End()

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	load := func(ctx context.Context) ([]catalog.ConversionEntry, error) {
		configured, err := s.productUnitRepo.FindByProductID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if len(configured) == 0 {
			return nil, shared.NewDomainError(shared.CodeNotFound,
				fmt.Sprintf("Product %s has no configured units", product.Code))
		}
		return catalog.BuildConversionTable(configured), nil
	}

	var table []catalog.ConversionEntry
	if s.cache != nil {
		table, err = s.cache.GetOrLoad(ctx, productID, load)
	} else {
		table, err = load(ctx)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrEntryCount, len(table))
	return ToConversionTableResponse(table), nil
}

// QuoteSalesLine prices a quantity sold in one of the product's sales units
func (s *ProductUnitService) QuoteSalesLine(ctx context.Context, productID uuid.UUID, req QuoteSalesLineRequest) (*SalesQuoteResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product_unit", "quote_sales_line",
		telemetry.SpanAttrProductID, productID,
		telemetry.SpanAttrUnitID, req.UnitID,
		telemetry.SpanAttrQuantity, req.Quantity,
	)
	defer span.End()

	resp, err := s.quoteSalesLine(ctx, productID, req)
	telemetry.RecordError(span, err)
	return resp, err
}

func (s *ProductUnitService) quoteSalesLine(ctx context.Context, productID uuid.UUID, req QuoteSalesLineRequest) (*SalesQuoteResponse, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	cu, err := s.findConfiguredUnit(ctx, productID, req.UnitID)
	if err != nil {
		return nil, err
	}

	quote, err := catalog.QuoteSale(product, &cu.ProductUnit, req.Quantity)
	if err != nil {
		return nil, err
	}

	return &SalesQuoteResponse{
		ProductID:        productID,
		UnitID:           cu.UnitID,
		UnitAbbreviation: cu.Unit.Abbreviation,
		Quantity:         quote.Quantity,
		BaseQuantity:     quote.BaseQuantity,
		UnitPrice:        quote.UnitPrice,
		Subtotal:         quote.Subtotal,
	}, nil
}

func (s *ProductUnitService) lock(ctx context.Context, productID uuid.UUID) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	release, err := s.locker.Lock(ctx, productID)
	if err != nil {
		s.logger.Warn("failed to acquire product lock",
			zap.String("product_id", productID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return release, nil
}

func (s *ProductUnitService) lockProductRow(ctx context.Context, repos TransactionalRepositories, productID uuid.UUID) (*catalog.Product, error) {
	product, err := repos.ProductRepo().FindByIDForUpdate(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFoundError("Product", productID)
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductUnitService) findProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFoundError("Product", id)
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductUnitService) findUnit(ctx context.Context, id uuid.UUID) (*catalog.Unit, error) {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFoundError("Unit", id)
		}
		return nil, err
	}
	return unit, nil
}

func (s *ProductUnitService) findProductUnit(ctx context.Context, id uuid.UUID) (*catalog.ProductUnit, error) {
	pu, err := s.productUnitRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFoundError("Product unit", id)
		}
		return nil, err
	}
	return pu, nil
}

func (s *ProductUnitService) findConfiguredUnit(ctx context.Context, productID, unitID uuid.UUID) (*catalog.ConfiguredUnit, error) {
	cu, err := s.productUnitRepo.FindByProductAndUnit(ctx, productID, unitID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound,
				fmt.Sprintf("Unit configuration %s not found for this product", unitID))
		}
		return nil, err
	}
	return cu, nil
}

// ensureUnitsExist fails with NOT_FOUND naming the first unknown unit
func (s *ProductUnitService) ensureUnitsExist(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	units, err := s.unitRepo.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load units: %w", err)
	}
	found := make(map[uuid.UUID]struct{}, len(units))
	for _, u := range units {
		found[u.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return shared.NotFoundError("Unit", id)
		}
	}
	return nil
}

func (s *ProductUnitService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

func ratioOrDefault(ratio *decimal.Decimal) decimal.Decimal {
	if ratio == nil {
		return decimal.NewFromInt(1)
	}
	return *ratio
}
