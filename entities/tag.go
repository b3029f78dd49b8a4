package entities

import (
	"github.com/google/uuid"
)

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name  string    `gorm:"size:200;not null;unique;uniqueIndex:idx_tag_name_slug_color" json:"name"`
	Slug  string    `gorm:"size:200;not null;unique;uniqueIndex:idx_tag_name_slug_color" json:"slug"`
	Color string    `gorm:"size:7;not null;unique;uniqueIndex:idx_tag_name_slug_color;default:#FF0000" json:"color"`
}
