package model

import "time"

// ProductVariant is a purchasable sub-option of a product (size, color).
// Its stock pool is independent from the parent product's counter.
type ProductVariant struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID     string    `gorm:"type:uuid;not null;index" json:"product_id"`
	Label         string    `gorm:"type:varchar(255);not null" json:"label"`
	Stock         int64     `gorm:"not null;default:0" json:"stock"`
	PriceOverride *int64    `json:"price_override"`
	PriceDiff     *int64    `json:"price_diff"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
