// backend-go/internal/repository/postgres/inventory_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stockcast/backend-go/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) *inventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	query := `
		SELECT id, name, sku, category, current_stock, min_stock, unit_price,
		       supplier, COALESCE(description, '') AS description, last_updated
		FROM inventory
		ORDER BY name
	`

	var items []domain.InventoryItem
	if err := sqlx.SelectContext(ctx, r.db, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	return items, nil
}

func (r *inventoryRepository) GetItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	query := `
		SELECT id, name, sku, category, current_stock, min_stock, unit_price,
		       supplier, COALESCE(description, '') AS description, last_updated
		FROM inventory
		WHERE id = $1
	`

	var item domain.InventoryItem
	if err := sqlx.GetContext(ctx, r.db, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("inventory item %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}

	return &item, nil
}

func (r *inventoryRepository) CreateItem(ctx context.Context, item *domain.InventoryItem) error {
	if item.LastUpdated.IsZero() {
		item.LastUpdated = time.Now()
	}

	query := `
		INSERT INTO inventory (
			name, sku, category, current_stock, min_stock, unit_price,
			supplier, description, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		item.Name,
		item.SKU,
		item.Category,
		item.CurrentStock,
		item.MinStock,
		item.UnitPrice,
		item.Supplier,
		item.Description,
		item.LastUpdated,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to insert inventory item: %w", err)
	}

	return nil
}
