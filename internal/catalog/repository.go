package catalog

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository reads and writes the catalog_products table.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a product repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns active products in catalog order.
func (r *Repository) ListActive(ctx context.Context) ([]Product, error) {
	var rows []models.CatalogProduct
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("position ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list catalog products: %w", err)
	}
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, productFromModel(row))
	}
	return products, nil
}

// Sync upserts products by id, keeping their order, and deactivates rows
// that are no longer listed.
func (r *Repository) Sync(ctx context.Context, products []Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}
	rows := make([]models.CatalogProduct, 0, len(products))
	ids := make([]string, 0, len(products))
	for i, p := range products {
		rows = append(rows, modelFromProduct(p, i))
		ids = append(ids, p.ID)
	}

	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"position", "name", "type", "price", "original_price", "image", "description", "is_active", "updated_at",
		}),
	}).Create(&rows).Error; err != nil {
		return 0, fmt.Errorf("upsert catalog products: %w", err)
	}

	res := db.Model(&models.CatalogProduct{}).
		Where("id NOT IN ?", ids).
		Where("is_active = ?", true).
		Update("is_active", false)
	if res.Error != nil {
		return 0, fmt.Errorf("deactivate catalog products: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}

func productFromModel(m models.CatalogProduct) Product {
	return Product{
		ID:            m.ID,
		Name:          m.Name,
		Type:          m.Type,
		Price:         m.Price,
		OriginalPrice: m.OriginalPrice,
		Image:         m.Image,
		Description:   m.Description,
	}
}

func modelFromProduct(p Product, position int) models.CatalogProduct {
	return models.CatalogProduct{
		ID:            p.ID,
		Position:      position,
		Name:          p.Name,
		Type:          p.Type,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Description:   p.Description,
		IsActive:      true,
	}
}
