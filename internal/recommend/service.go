package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stockcast/backend-go/internal/domain"
	"github.com/stockcast/backend-go/internal/forecast"
)

const predictionHorizonDays = 7

// Service turns a trained demand model plus inventory and sales snapshots
// into an ordered list of restock recommendations.
type Service struct {
	model     *forecast.Model
	autoTrain bool
}

// NewService wires the recommendation service to a forecast model.
// autoTrain opts in to training inside Generate when the model is untrained;
// the default is explicit caller-driven training.
func NewService(model *forecast.Model, autoTrain bool) *Service {
	return &Service{model: model, autoTrain: autoTrain}
}

// Model exposes the underlying forecast model for training and status calls.
func (s *Service) Model() *forecast.Model {
	return s.model
}

// Generate evaluates every inventory item against the reorder policy and
// returns recommendations sorted by priority, then by ascending days
// remaining. An untrained model yields an empty list unless auto-training
// was opted in.
func (s *Service) Generate(ctx context.Context, inventory []domain.InventoryItem, sales []domain.SaleEvent, asOf time.Time) []domain.Recommendation {
	if !s.model.Trained() {
		if !s.autoTrain {
			log.Info().Msg("model untrained, skipping recommendation generation")
			return []domain.Recommendation{}
		}
		if _, err := s.model.Train(ctx, sales, inventory, asOf); err != nil {
			if !errors.Is(err, forecast.ErrInsufficientData) {
				log.Error().Err(err).Msg("auto-training failed")
			}
			return []domain.Recommendation{}
		}
	}

	recommendations := make([]domain.Recommendation, 0, len(inventory))
	for _, item := range inventory {
		weeklyDemand := s.model.Predict(item, sales, predictionHorizonDays, asOf)

		decision, ok := Evaluate(weeklyDemand, item.CurrentStock, item.MinStock)
		if !ok {
			continue
		}

		recommendations = append(recommendations, domain.Recommendation{
			ProductID:            item.ID,
			Priority:             decision.Priority,
			RecommendedQuantity:  decision.RecommendedQuantity,
			DaysRemaining:        decision.DaysRemaining,
			PredictedDailyDemand: round2(decision.DailyDemand),
			ConfidenceScore:      round2(decision.Confidence),
			Reason: fmt.Sprintf("Forecast %.1f units/day demand. Stock will last %d days.",
				decision.DailyDemand, decision.DaysRemaining),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		ri, rj := domain.PriorityRank(recommendations[i].Priority), domain.PriorityRank(recommendations[j].Priority)
		if ri != rj {
			return ri > rj
		}
		return recommendations[i].DaysRemaining < recommendations[j].DaysRemaining
	})

	return recommendations
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
