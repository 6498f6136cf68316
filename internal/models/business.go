package models

import (
	"github.com/google/uuid"
)

// Business is a coffee shop owned by a partner account. It persists
// independently of its owner once created.
type Business struct {
	BaseModel
	OwnerID uuid.UUID `gorm:"type:uuid;index" json:"owner_id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
	Lat     *float64  `json:"lat"`
	Lng     *float64  `json:"lng"`
	Phone   string    `json:"phone"`
	Website string    `json:"website"`
}

// HasCoordinates reports whether the business carries a geo position.
func (b *Business) HasCoordinates() bool {
	return b.Lat != nil && b.Lng != nil
}
