package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.bundles (
//     id             TEXT PRIMARY KEY,
//     seller_id      TEXT NOT NULL,
//     store_id       TEXT NOT NULL,
//     signature      TEXT NOT NULL,
//     name           TEXT NOT NULL,
//     description    TEXT,
//     products       JSONB NOT NULL,
//     price          NUMERIC,
//     original_price NUMERIC,
//     stock          INTEGER NOT NULL DEFAULT 0,
//     created_at     TIMESTAMPTZ DEFAULT NOW(),
//     updated_at     TIMESTAMPTZ,
//     CONSTRAINT uq_bundle_store_signature UNIQUE (store_id, signature)
// );

// Bundle is a persisted grouping of products offered together. The member
// list is immutable once saved; a new recommendation cycle produces new
// bundles, it never edits past ones.
type Bundle struct {
	ID            string         `gorm:"primaryKey;column:id" json:"id"`
	SellerID      string         `gorm:"column:seller_id;index" json:"seller_id"`
	StoreID       string         `gorm:"column:store_id;index;uniqueIndex:uq_bundle_store_signature" json:"store_id"`
	Signature     string         `gorm:"column:signature;uniqueIndex:uq_bundle_store_signature" json:"-"`
	Name          string         `gorm:"column:name;type:text;not null" json:"name"`
	Description   string         `gorm:"column:description;type:text" json:"description"`
	Products      datatypes.JSON `gorm:"column:products;type:jsonb;not null" json:"products"`
	Price         float64        `gorm:"column:price;type:numeric" json:"price"`
	OriginalPrice float64        `gorm:"column:original_price;type:numeric" json:"original_price"`
	Stock         int            `gorm:"column:stock;default:0" json:"stock"`
	CreatedAt     time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Bundle) TableName() string {
	return "bundles"
}

// BundleProduct is the member snapshot embedded in candidates and in the
// bundles.products jsonb column.
type BundleProduct struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Price     float64    `json:"price"`
	Stock     int        `json:"stock"`
	ExpiresOn *time.Time `json:"expires_on,omitempty"`
}

// EnrichmentResult records which path produced a candidate's copy text, so
// callers and tests can tell an AI rewrite from the deterministic template
// without digging through logs.
type EnrichmentResult struct {
	Enriched       bool   `json:"enriched"`
	FallbackReason string `json:"fallback_reason,omitempty"`
}

// BundleCandidate is an unpersisted bundle proposal. It lives only for the
// duration of a recommendation request unless the caller explicitly saves it.
type BundleCandidate struct {
	StoreID       string            `json:"store_id"`
	Category      string            `json:"category"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Products      []BundleProduct   `json:"products"`
	Price         float64           `json:"price"`
	OriginalPrice float64           `json:"original_price"`
	Stock         int               `json:"stock"`
	Enrichment    *EnrichmentResult `json:"enrichment,omitempty"`
}

// ProductIDs returns the member ids in candidate order.
func (c BundleCandidate) ProductIDs() []string {
	ids := make([]string, 0, len(c.Products))
	for _, p := range c.Products {
		ids = append(ids, p.ID)
	}
	return ids
}
