// backend-go/internal/repository/repository.go
package repository

import (
	"context"

	"github.com/stockcast/backend-go/internal/domain"
)

// InventoryRepository defines the operations over inventory items.
type InventoryRepository interface {
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)
	GetItem(ctx context.Context, id string) (*domain.InventoryItem, error)
	CreateItem(ctx context.Context, item *domain.InventoryItem) error
}

// SalesRepository defines the operations over sale events. RecordSale
// inserts a sale and decrements the product's stock in one transaction.
type SalesRepository interface {
	ListSales(ctx context.Context) ([]domain.SaleEvent, error)
	RecordSale(ctx context.Context, sale *domain.SaleEvent) error
}

// RecommendationRepository persists the latest generated recommendations.
type RecommendationRepository interface {
	ReplaceAll(ctx context.Context, recommendations []domain.Recommendation) error
	List(ctx context.Context) ([]domain.Recommendation, error)
}
