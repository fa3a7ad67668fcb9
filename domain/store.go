package domain

import (
	"time"
)

// CREATE TABLE public.stores (
//     id          TEXT PRIMARY KEY,
//     seller_id   TEXT NOT NULL UNIQUE,
//     name        TEXT,
//     created_at  TIMESTAMPTZ DEFAULT NOW()
// );

type Store struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	SellerID  string    `gorm:"column:seller_id;uniqueIndex" json:"seller_id"`
	Name      string    `gorm:"column:name;type:text" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Store) TableName() string {
	return "stores"
}
