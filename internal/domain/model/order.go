package model

import "time"

const CurrencyVND = "VND"

// Order rows are created once by checkout and never mutated; Total is
// frozen at creation time.
type Order struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    *string   `gorm:"type:uuid;index" json:"user_id"`
	Total     int64     `gorm:"not null" json:"total"`
	Currency  string    `gorm:"type:varchar(8);not null" json:"currency"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
