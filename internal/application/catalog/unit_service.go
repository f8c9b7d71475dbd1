package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizcocho/backend/internal/domain/catalog"
	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UnitService handles the global unit registry
type UnitService struct {
	unitRepo       catalog.UnitRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewUnitService creates a new UnitService
func NewUnitService(unitRepo catalog.UnitRepository, logger *zap.Logger) *UnitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnitService{
		unitRepo: unitRepo,
		logger:   logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *UnitService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// List lists units ordered by category then name
func (s *UnitService) List(ctx context.Context, filter UnitListFilter) (shared.Paginated[UnitResponse], error) {
	f := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
	}.Normalize()

	unitFilter := catalog.UnitFilter{Filter: f, Active: filter.Active}
	if filter.Category != "" {
		category := catalog.UnitCategory(filter.Category)
		unitFilter.Category = &category
	}

	units, total, err := s.unitRepo.FindAll(ctx, unitFilter)
	if err != nil {
		return shared.Paginated[UnitResponse]{}, fmt.Errorf("list units: %w", err)
	}
	return shared.NewPaginated(ToUnitResponses(units), total, f.Page, f.PageSize), nil
}

// GetByID returns a unit together with the products configured with it
func (s *UnitService) GetByID(ctx context.Context, id uuid.UUID) (*UnitDetailResponse, error) {
	unit, err := s.findUnit(ctx, id)
	if err != nil {
		return nil, err
	}

	usages, err := s.unitRepo.FindUsages(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find unit usages: %w", err)
	}
	products := make([]UnitUsageResponse, len(usages))
	for i, u := range usages {
		products[i] = UnitUsageResponse{ProductID: u.ProductID, ProductCode: u.ProductCode, ProductName: u.ProductName}
	}

	return &UnitDetailResponse{
		UnitResponse: ToUnitResponse(unit),
		UsageCount:   len(products),
		Products:     products,
	}, nil
}

// Create registers a new unit
func (s *UnitService) Create(ctx context.Context, req CreateUnitRequest) (*UnitResponse, error) {
	unit, err := catalog.NewUnit(req.Name, req.Abbreviation, catalog.UnitCategory(req.Category), req.IsBaseUnit, req.ConversionFactor)
	if err != nil {
		return nil, err
	}
	if req.Active != nil && !*req.Active {
		if err := unit.Apply(catalog.UnitUpdate{Active: req.Active}); err != nil {
			return nil, err
		}
	}

	if err := s.checkUnique(ctx, unit, nil); err != nil {
		return nil, err
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}

	s.logger.Info("unit created",
		zap.String("unit_id", unit.ID.String()),
		zap.String("abbreviation", unit.Abbreviation),
		zap.String("category", string(unit.Category)),
	)

	response := ToUnitResponse(unit)
	return &response, nil
}

// Update applies a partial update to a unit
func (s *UnitService) Update(ctx context.Context, id uuid.UUID, req UpdateUnitRequest) (*UnitResponse, error) {
	unit, err := s.findUnit(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *unit

	upd := catalog.UnitUpdate{
		Name:                  req.Name,
		Abbreviation:          req.Abbreviation,
		IsBaseUnit:            req.IsBaseUnit,
		ConversionFactor:      req.ConversionFactor,
		ClearConversionFactor: req.ClearConversionFactor,
		Active:                req.Active,
	}
	if req.Category != nil {
		category := catalog.UnitCategory(*req.Category)
		upd.Category = &category
	}
	if err := unit.Apply(upd); err != nil {
		return nil, err
	}

	// Only changed values can collide with another unit
	changed := &catalog.Unit{}
	if unit.Name != before.Name {
		changed.Name = unit.Name
	}
	if unit.Abbreviation != before.Abbreviation {
		changed.Abbreviation = unit.Abbreviation
	}
	if err := s.checkUnique(ctx, changed, &id); err != nil {
		return nil, err
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}

	s.logger.Info("unit updated", zap.String("unit_id", id.String()))
	s.publish(ctx, catalog.NewUnitChangedEvent(id, false))

	response := ToUnitResponse(unit)
	return &response, nil
}

// Delete removes a unit that no product configuration references
func (s *UnitService) Delete(ctx context.Context, id uuid.UUID) error {
	unit, err := s.findUnit(ctx, id)
	if err != nil {
		return err
	}

	usages, err := s.unitRepo.FindUsages(ctx, id)
	if err != nil {
		return fmt.Errorf("find unit usages: %w", err)
	}
	if len(usages) > 0 {
		return shared.ConflictError(fmt.Sprintf("Unit %s is used by %d product(s)", unit.Abbreviation, len(usages)))
	}

	if err := s.unitRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFoundError("Unit", id)
		}
		return err
	}

	s.logger.Info("unit deleted",
		zap.String("unit_id", id.String()),
		zap.String("abbreviation", unit.Abbreviation),
	)
	s.publish(ctx, catalog.NewUnitChangedEvent(id, true))
	return nil
}

// Convert converts a quantity between two registry units using their
// conversion factors
func (s *UnitService) Convert(ctx context.Context, req ConvertUnitsRequest) (*ConversionResponse, error) {
	if req.Quantity.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Quantity cannot be negative")
	}

	from, err := s.findUnit(ctx, req.FromUnitID)
	if err != nil {
		return nil, err
	}
	to := from
	if req.ToUnitID != req.FromUnitID {
		if to, err = s.findUnit(ctx, req.ToUnitID); err != nil {
			return nil, err
		}
	}

	converted, err := catalog.ConvertGlobal(req.Quantity, from, to)
	if err != nil {
		return nil, err
	}

	return &ConversionResponse{
		Original:  QuantityInUnit{Quantity: req.Quantity, Unit: from.Name, Abbreviation: from.Abbreviation},
		Converted: QuantityInUnit{Quantity: converted, Unit: to.Name, Abbreviation: to.Abbreviation},
	}, nil
}

func (s *UnitService) findUnit(ctx context.Context, id uuid.UUID) (*catalog.Unit, error) {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFoundError("Unit", id)
		}
		return nil, err
	}
	return unit, nil
}

// checkUnique rejects a non-empty name or abbreviation already used by
// another unit
func (s *UnitService) checkUnique(ctx context.Context, unit *catalog.Unit, excludeID *uuid.UUID) error {
	if unit.Name != "" {
		exists, err := s.unitRepo.ExistsByName(ctx, unit.Name, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return shared.DuplicateKeyError("Unit name", unit.Name)
		}
	}
	if unit.Abbreviation != "" {
		exists, err := s.unitRepo.ExistsByAbbreviation(ctx, unit.Abbreviation, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return shared.DuplicateKeyError("Unit abbreviation", unit.Abbreviation)
		}
	}
	return nil
}

func (s *UnitService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	// Errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
}
