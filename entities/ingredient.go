package entities

import (
	"github.com/google/uuid"
)

// Ingredient is reference data shared by every recipe. The same name may
// appear with different measurement units, so uniqueness is on the pair.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name            string    `gorm:"size:200;not null;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string    `gorm:"size:100;not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}
