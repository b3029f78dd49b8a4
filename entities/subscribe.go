package entities

import (
	"time"

	"github.com/google/uuid"
)

// Subscribe is a directed follow edge from a user to an author.
type Subscribe struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscribe_user_author" json:"user_id"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscribe_user_author" json:"author_id"`
	PubDate  time.Time `gorm:"type:timestamp;autoCreateTime" json:"pub_date"`

	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}
