// backend-go/internal/domain/models.go
package domain

import "time"

// InventoryItem represents a product tracked by the inventory store.
// The forecasting core treats it as read-only input.
type InventoryItem struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	SKU          string    `json:"sku" db:"sku"`
	Category     string    `json:"category" db:"category"`
	CurrentStock int       `json:"current_stock" db:"current_stock"`
	MinStock     int       `json:"min_stock" db:"min_stock"`
	UnitPrice    float64   `json:"unit_price" db:"unit_price"`
	Supplier     string    `json:"supplier" db:"supplier"`
	Description  string    `json:"description" db:"description"`
	LastUpdated  time.Time `json:"last_updated" db:"last_updated"`
}

// SaleEvent represents a single recorded sale for a product.
type SaleEvent struct {
	ID          string    `json:"id" db:"id"`
	ProductID   string    `json:"product_id" db:"product_id"`
	Quantity    int       `json:"quantity" db:"quantity"`
	SalePrice   float64   `json:"sale_price" db:"sale_price"`
	TotalAmount float64   `json:"total_amount" db:"total_amount"`
	Customer    string    `json:"customer" db:"customer"`
	Timestamp   time.Time `json:"timestamp" db:"timestamp"`
}

// DailySalesPoint is one calendar day of aggregated sales for a product.
// Quantity is the summed units sold that day; Price is the mean sale price,
// forward-filled from the most recent day with a sale when the day had none.
type DailySalesPoint struct {
	Date     time.Time
	Quantity float64
	Price    float64
}

// Recommendation is a prioritized restock action for one product.
type Recommendation struct {
	ProductID            string  `json:"product_id" db:"product_id"`
	Priority             string  `json:"priority" db:"priority"`
	RecommendedQuantity  int     `json:"recommended_quantity" db:"recommended_quantity"`
	DaysRemaining        int     `json:"days_remaining" db:"days_remaining"`
	PredictedDailyDemand float64 `json:"predicted_daily_demand" db:"predicted_daily_demand"`
	ConfidenceScore      float64 `json:"confidence_score" db:"confidence_score"`
	Reason               string  `json:"reason" db:"reason"`
}

// DashboardStats holds the aggregate figures shown on the dashboard.
type DashboardStats struct {
	TotalItems    int       `json:"total_items"`
	LowStockItems int       `json:"low_stock_items"`
	TotalValue    float64   `json:"total_value"`
	TotalSales    int       `json:"total_sales"`
	LastUpdated   time.Time `json:"last_updated"`
}

// TrainingReport summarizes the outcome of a model training run.
type TrainingReport struct {
	Success           bool    `json:"success"`
	PooledSampleCount int     `json:"pooled_sample_count"`
	TrainScore        float64 `json:"train_score"`
	TestScore         float64 `json:"test_score"`
}
