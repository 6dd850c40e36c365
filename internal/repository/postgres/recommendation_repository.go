// backend-go/internal/repository/postgres/recommendation_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/stockcast/backend-go/internal/domain"
)

type recommendationRepository struct {
	db *DB
}

func NewRecommendationRepository(db *DB) *recommendationRepository {
	return &recommendationRepository{db: db}
}

// ReplaceAll clears the previous recommendation set and stores the new one.
// Recommendations are recomputed wholesale on every generation, so a full
// replace keeps the table consistent with the latest run.
func (r *recommendationRepository) ReplaceAll(ctx context.Context, recommendations []domain.Recommendation) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM recommendations`); err != nil {
			return fmt.Errorf("failed to clear recommendations: %w", err)
		}

		query := `
			INSERT INTO recommendations (
				product_id, priority, recommended_quantity, days_remaining,
				predicted_daily_demand, confidence_score, reason, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, rec := range recommendations {
			if _, err := stmt.ExecContext(ctx,
				rec.ProductID,
				rec.Priority,
				rec.RecommendedQuantity,
				rec.DaysRemaining,
				rec.PredictedDailyDemand,
				rec.ConfidenceScore,
				rec.Reason,
			); err != nil {
				return fmt.Errorf("failed to insert recommendation: %w", err)
			}
		}

		return nil
	})
}

func (r *recommendationRepository) List(ctx context.Context) ([]domain.Recommendation, error) {
	query := `
		SELECT product_id, priority, recommended_quantity, days_remaining,
		       predicted_daily_demand, confidence_score, reason
		FROM recommendations
		ORDER BY
			CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC,
			days_remaining ASC
	`

	var recommendations []domain.Recommendation
	if err := sqlx.SelectContext(ctx, r.db, &recommendations, query); err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}

	return recommendations, nil
}
