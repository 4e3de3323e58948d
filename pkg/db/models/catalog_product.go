package models

import (
	"time"

	"github.com/angelmondragon/storefront/pkg/enums"
)

// CatalogProduct is a storefront product row. Position preserves the order the
// products appear in the store document.
type CatalogProduct struct {
	ID            string            `gorm:"column:id;primaryKey;size:64"`
	Position      int               `gorm:"column:position;not null;default:0;index"`
	Name          string            `gorm:"column:name;not null"`
	Type          enums.ProductType `gorm:"column:type;not null;size:16"`
	Price         int64             `gorm:"column:price;not null"`
	OriginalPrice *int64            `gorm:"column:original_price"`
	Image         string            `gorm:"column:image;not null;default:''"`
	Description   string            `gorm:"column:description;not null;default:''"`
	IsActive      bool              `gorm:"column:is_active;not null"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (CatalogProduct) TableName() string { return "catalog_products" }
