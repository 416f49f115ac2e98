package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"column:image_url;size:500" json:"image_url"`
	MRP         float64   `gorm:"column:mrp;type:decimal(10,2);default:0" json:"mrp"`
	SRP         *float64  `gorm:"column:srp;type:decimal(10,2)" json:"srp"` // giá bán, nil = bán đúng giá niêm yết
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
