// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns. The schema itself is owned by the SQL files in migrations/;
// the tags here only describe it to GORM (and to AutoMigrate in tests).
//
//   - base.go: BaseModel shared by every table
//   - catalog.go: units, products and product_units
package models
