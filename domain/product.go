package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id             TEXT PRIMARY KEY,
//     name           TEXT,
//     product_type   TEXT,
//     expires_on     TIMESTAMPTZ,
//     stock          INTEGER,
//     price          NUMERIC,
//     original_price NUMERIC,
//     tags           TEXT,
//     store_id       TEXT,
//     is_active      BOOLEAN,
//     created_at     TIMESTAMPTZ DEFAULT NOW()
// );

// Product is an inventory row owned by the upstream store service.
// The bundler only ever reads it.
type Product struct {
	ID            string     `gorm:"primaryKey;column:id" json:"id"`
	Name          string     `gorm:"column:name;type:text" json:"name"`
	ProductType   string     `gorm:"column:product_type;type:text" json:"product_type"`
	ExpiresOn     *time.Time `gorm:"column:expires_on" json:"expires_on,omitempty"`
	Stock         int        `gorm:"column:stock" json:"stock"`
	Price         float64    `gorm:"column:price;type:numeric" json:"price"`
	OriginalPrice float64    `gorm:"column:original_price;type:numeric" json:"original_price"`
	Tags          string     `gorm:"column:tags;type:text" json:"tags"`
	StoreID       string     `gorm:"column:store_id" json:"store_id"`
	IsActive      bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}

// HasExpiry reports whether the product carries a real expiry date.
// NULL and pre-1900 sentinel values both mean "never expires".
func (p Product) HasExpiry() bool {
	return p.ExpiresOn != nil && p.ExpiresOn.Year() >= 1900
}
