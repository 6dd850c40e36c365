package main

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/urfave/cli/v2"
)

type salesPattern struct {
	baseDemand   float64
	volatility   float64
	weekendBoost float64
}

// Per-category demand shapes. Anything uncategorized falls back to a
// moderate pattern so new products still get usable training data.
var categoryPatterns = map[string]salesPattern{
	"Beverages":   {baseDemand: 5, volatility: 0.3, weekendBoost: 1.5},
	"Snacks":      {baseDemand: 4, volatility: 0.4, weekendBoost: 1.4},
	"Electronics": {baseDemand: 1, volatility: 0.2, weekendBoost: 1.1},
	"Household":   {baseDemand: 3, volatility: 0.3, weekendBoost: 1.2},
	"Toys":        {baseDemand: 2, volatility: 0.4, weekendBoost: 1.1},
}

var defaultPattern = salesPattern{baseDemand: 2, volatility: 0.3, weekendBoost: 1.2}

var customers = []string{
	"Walk-in Customer",
	"Online Order",
	"Corporate Client",
	"Retail Store",
	"Individual Customer",
}

type seedProduct struct {
	id        string
	name      string
	category  string
	unitPrice float64
}

var demoInventory = []struct {
	name         string
	sku          string
	category     string
	currentStock int
	minStock     int
	unitPrice    float64
	supplier     string
}{
	{"Cola 330ml", "BEV-001", "Beverages", 120, 24, 1.50, "FreshDrinks Co"},
	{"Lollipop Mix", "SNK-001", "Snacks", 80, 20, 0.75, "SweetWorld"},
	{"Chocolate Bar", "SNK-002", "Snacks", 60, 15, 2.25, "SweetWorld"},
	{"Air Conditioner 12K", "ELC-001", "Electronics", 8, 2, 449.00, "CoolTech"},
	{"Smartphone X", "ELC-002", "Electronics", 12, 3, 899.00, "MobileHub"},
	{"All-Purpose Cleaner", "HSH-001", "Household", 45, 10, 4.99, "CleanPlus"},
	{"Office Chair", "HSH-002", "Household", 10, 3, 89.00, "FurniCorp"},
	{"Puzzle Cube", "TOY-001", "Toys", 30, 8, 9.99, "PlayMakers"},
	{"Sour Candy Pack", "SNK-003", "Snacks", 70, 18, 1.25, "SweetWorld"},
	{"Sparkling Water 500ml", "BEV-002", "Beverages", 90, 20, 1.10, "FreshDrinks Co"},
}

func seedInventory(c *cli.Context) error {
	db := dbFromContext(c)

	inserted := int64(0)
	for _, p := range demoInventory {
		result, err := db.ExecContext(c.Context, `
			INSERT INTO inventory (name, sku, category, current_stock, min_stock, unit_price, supplier, description, last_updated)
			VALUES ($1, $2, $3, $4, $5, $6, $7, '', NOW())
			ON CONFLICT (sku) DO NOTHING`,
			p.name, p.sku, p.category, p.currentStock, p.minStock, p.unitPrice, p.supplier)
		if err != nil {
			return fmt.Errorf("failed to insert %s: %w", p.sku, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check insert of %s: %w", p.sku, err)
		}
		inserted += affected
	}

	log.Printf("Seeded %d of %d inventory items (existing SKUs skipped)", inserted, len(demoInventory))
	return nil
}

// seedDemoSales generates dense patterned history: daily demand per
// category with weekend boosts, broken into 1-3 sales per day, with a
// 10% chance of a quiet day.
func seedDemoSales(c *cli.Context) error {
	db := dbFromContext(c)
	days := c.Int("days")

	products, err := loadProducts(c, db)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return fmt.Errorf("no inventory items found, run 'seed inventory' first")
	}

	if c.Bool("clear") {
		if _, err := db.ExecContext(c.Context, `DELETE FROM sales`); err != nil {
			return fmt.Errorf("failed to clear sales: %w", err)
		}
		log.Println("Cleared existing sales data")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	start := time.Now().AddDate(0, 0, -days)

	total := 0
	for _, p := range products {
		pattern, ok := categoryPatterns[p.category]
		if !ok {
			pattern = defaultPattern
		}

		for dayOffset := 0; dayOffset < days; dayOffset++ {
			if rng.Float64() < 0.1 {
				continue
			}

			saleDate := start.AddDate(0, 0, dayOffset)

			demand := pattern.baseDemand
			if wd := saleDate.Weekday(); wd == time.Saturday || wd == time.Sunday {
				demand *= pattern.weekendBoost
			}
			units := int(demand * (0.5 + rng.Float64()))
			if units <= 0 {
				continue
			}

			numSales := 1 + rng.Intn(min(3, units))
			for i := 0; i < numSales; i++ {
				quantity := 1 + rng.Intn(max(1, min(5, units/numSales)))
				price := round2(p.unitPrice * (0.9 + 0.2*rng.Float64()))
				ts := saleDate.Add(time.Duration(9+rng.Intn(12)) * time.Hour).
					Add(time.Duration(rng.Intn(60)) * time.Minute)

				if err := insertSale(c, db, p.id, quantity, price, customers[rng.Intn(len(customers))], ts); err != nil {
					return err
				}
				total++
			}
		}
	}

	log.Printf("Generated %d sales records over %d days", total, days)
	return nil
}

// seedSparseHistory generates just enough history to exercise the
// low-data paths: 2-5 sales per product spread over the window.
func seedSparseHistory(c *cli.Context) error {
	db := dbFromContext(c)
	days := c.Int("days")

	products, err := loadProducts(c, db)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return fmt.Errorf("no inventory items found, run 'seed inventory' first")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	total := 0
	for _, p := range products {
		numSales := 2 + rng.Intn(4)
		for i := 0; i < numSales; i++ {
			ts := now.AddDate(0, 0, -rng.Intn(days+1))
			quantity := 1 + rng.Intn(5)
			price := round2(p.unitPrice * (0.9 + 0.2*rng.Float64()))

			if err := insertSale(c, db, p.id, quantity, price, customers[rng.Intn(len(customers))], ts); err != nil {
				return err
			}
			total++
		}
	}

	log.Printf("Generated %d sparse sales records over %d days", total, days)
	return nil
}

func loadProducts(c *cli.Context, db *sql.DB) ([]seedProduct, error) {
	rows, err := db.QueryContext(c.Context, `SELECT id, name, category, unit_price FROM inventory`)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	defer rows.Close()

	var products []seedProduct
	for rows.Next() {
		var p seedProduct
		if err := rows.Scan(&p.id, &p.name, &p.category, &p.unitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func insertSale(c *cli.Context, db *sql.DB, productID string, quantity int, price float64, customer string, ts time.Time) error {
	_, err := db.ExecContext(c.Context, `
		INSERT INTO sales (product_id, quantity, sale_price, total_amount, customer, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		productID, quantity, price, round2(price*float64(quantity)), customer, ts)
	if err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
