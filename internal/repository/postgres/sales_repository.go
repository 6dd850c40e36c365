// backend-go/internal/repository/postgres/sales_repository.go
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

// ErrInsufficientStock is returned when a sale would drive stock negative.
var ErrInsufficientStock = errors.New("insufficient stock")

type salesRepository struct {
	db *DB
}

func NewSalesRepository(db *DB) *salesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) ListSales(ctx context.Context) ([]domain.SaleEvent, error) {
	query := `
		SELECT id, product_id, quantity, sale_price, total_amount,
		       COALESCE(customer, '') AS customer, timestamp
		FROM sales
		ORDER BY timestamp
	`

	var sales []domain.SaleEvent
	if err := sqlx.SelectContext(ctx, r.db, &sales, query); err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	return sales, nil
}

// RecordSale inserts the sale and decrements the product's stock in one
// transaction. The decrement is guarded so concurrent sales can never drive
// stock below zero.
func (r *salesRepository) RecordSale(ctx context.Context, sale *domain.SaleEvent) error {
	if sale.Timestamp.IsZero() {
		sale.Timestamp = time.Now()
	}
	sale.TotalAmount = float64(sale.Quantity) * sale.SalePrice

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE inventory
			SET current_stock = current_stock - $1, last_updated = $2
			WHERE id = $3 AND current_stock >= $1
		`, sale.Quantity, sale.Timestamp, sale.ProductID)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check stock update: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("product %s: %w", sale.ProductID, ErrInsufficientStock)
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO sales (product_id, quantity, sale_price, total_amount, customer, timestamp)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`,
			sale.ProductID,
			sale.Quantity,
			sale.SalePrice,
			sale.TotalAmount,
			sale.Customer,
			sale.Timestamp,
		).Scan(&sale.ID)
		if err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}

		return nil
	})
}
