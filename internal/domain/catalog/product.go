package catalog

import (
	"strings"

	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a sellable item. Its base price is quoted per base unit.
type Product struct {
	shared.BaseEntity
	Code      string
	Name      string
	BasePrice decimal.Decimal
	Active    bool
}

// NewProduct creates a new active product
func NewProduct(code, name string, basePrice decimal.Decimal) (*Product, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	name = strings.TrimSpace(name)

	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Base price cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
		BasePrice:  basePrice,
		Active:     true,
	}, nil
}

func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Product code cannot exceed 50 characters")
	}
	return nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Product name cannot exceed 200 characters")
	}
	return nil
}
