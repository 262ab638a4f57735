package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          string           `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string           `gorm:"type:varchar(255);not null" json:"name"`
	Description string           `gorm:"type:text" json:"description"`
	Price       int64            `gorm:"not null" json:"price"`
	SalePrice   *int64           `json:"sale_price"`
	Stock       int64            `gorm:"not null;default:0" json:"stock"`
	IsActive    bool             `gorm:"not null;default:false" json:"is_active"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	CreatedAt   time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

// EffectivePrice is the list price, or the sale price when one is set
// and actually lower.
func (p Product) EffectivePrice() int64 {
	if p.SalePrice != nil && *p.SalePrice < p.Price {
		return *p.SalePrice
	}
	return p.Price
}

// Variant looks up one of the product's own variants by id.
func (p Product) Variant(variantID string) (ProductVariant, bool) {
	for _, v := range p.Variants {
		if v.ID == variantID {
			return v, true
		}
	}
	return ProductVariant{}, false
}
