package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stockcast/backend-go/internal/domain"
	"golang.org/x/sync/errgroup"
)

const (
	// minTrainingRows is the minimum pooled sample count for a training run.
	minTrainingRows = 3

	// defaultMaxTrainingRows bounds the pooled sample count so training
	// wall-clock time stays predictable.
	defaultMaxTrainingRows = 50000

	// splitSeed keeps the train/test partition reproducible across runs.
	splitSeed = 42

	defaultRidgeLambda = 1.0
)

// modelState is an immutable snapshot of a fitted model. Predictions read
// whichever snapshot is current; a successful train swaps in a new one.
type modelState struct {
	Regressor *RidgeRegressor
	Scaler    *StandardScaler
}

type artifact struct {
	Regressor *RidgeRegressor `json:"regressor"`
	Scaler    *StandardScaler `json:"scaler"`
	Trained   bool            `json:"trained"`
}

// Model owns the shared demand regressor and its feature scaler. One model
// serves all products; rows from every eligible product are pooled at
// training time.
type Model struct {
	mu      sync.RWMutex
	state   *modelState
	store   ArtifactStore
	maxRows int
}

// Option configures a Model.
type Option func(*Model)

// WithMaxTrainingRows caps the pooled training sample count.
func WithMaxTrainingRows(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.maxRows = n
		}
	}
}

// NewModel creates an untrained model persisting to the given store.
func NewModel(store ArtifactStore, opts ...Option) *Model {
	m := &Model{
		store:   store,
		maxRows: defaultMaxTrainingRows,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Trained reports whether the model currently holds a fitted state.
func (m *Model) Trained() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state != nil
}

// Train pools feature rows from every eligible product, fits the scaler and
// regressor, and atomically replaces the model state on success. An
// insufficient pool is reported with Success=false and ErrInsufficientData;
// the previous state stays untouched either way until the swap.
func (m *Model) Train(ctx context.Context, sales []domain.SaleEvent, inventory []domain.InventoryItem, asOf time.Time) (domain.TrainingReport, error) {
	report := domain.TrainingReport{}

	salesByProduct := SalesByProduct(sales)

	// One slot per inventory position so the pooled row order is the
	// inventory order regardless of goroutine scheduling. The seeded
	// shuffle below only stays reproducible if the pool it permutes is.
	productFeatures := make([][][]float64, len(inventory))
	productTargets := make([][]float64, len(inventory))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, item := range inventory {
		g.Go(func() error {
			series := BuildDailySeries(salesByProduct[item.ID], asOf)
			rows, rowTargets := BuildTrainingRows(item, series)
			if len(rows) == 0 {
				log.Debug().Str("product_id", item.ID).Int("days", len(series)).
					Msg("skipping product with insufficient history")
				return nil
			}

			productFeatures[i] = rows
			productTargets[i] = rowTargets
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	var features [][]float64
	var targets []float64
	for i := range productFeatures {
		features = append(features, productFeatures[i]...)
		targets = append(targets, productTargets[i]...)
	}

	if len(features) > m.maxRows {
		features = features[:m.maxRows]
		targets = targets[:m.maxRows]
	}

	report.PooledSampleCount = len(features)
	if len(features) < minTrainingRows {
		return report, fmt.Errorf("%w: %d pooled rows, need %d",
			ErrInsufficientData, len(features), minTrainingRows)
	}

	// Deterministic shuffle, then 80/20 split. The held-out score is
	// diagnostic only and never gates success.
	rng := rand.New(rand.NewSource(splitSeed))
	perm := rng.Perm(len(features))
	testCount := len(features) / 5
	trainCount := len(features) - testCount

	trainX := make([][]float64, 0, trainCount)
	trainY := make([]float64, 0, trainCount)
	testX := make([][]float64, 0, testCount)
	testY := make([]float64, 0, testCount)
	for i, idx := range perm {
		if i < trainCount {
			trainX = append(trainX, features[idx])
			trainY = append(trainY, targets[idx])
		} else {
			testX = append(testX, features[idx])
			testY = append(testY, targets[idx])
		}
	}

	scaler := &StandardScaler{}
	scaler.Fit(trainX)
	trainScaled := scaler.Transform(trainX)
	testScaled := scaler.Transform(testX)

	regressor := NewRidgeRegressor(defaultRidgeLambda)
	if err := regressor.Fit(trainScaled, trainY); err != nil {
		return report, fmt.Errorf("failed to fit regressor: %w", err)
	}

	report.TrainScore = regressor.Score(trainScaled, trainY)
	if len(testScaled) > 0 {
		report.TestScore = regressor.Score(testScaled, testY)
	} else {
		report.TestScore = report.TrainScore
	}
	report.Success = true

	m.mu.Lock()
	m.state = &modelState{Regressor: regressor, Scaler: scaler}
	m.mu.Unlock()

	log.Info().
		Int("pooled_samples", report.PooledSampleCount).
		Float64("train_score", report.TrainScore).
		Float64("test_score", report.TestScore).
		Msg("demand model trained")

	if err := m.Save(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to persist model artifact")
	}

	return report, nil
}

// Predict estimates total demand for the next daysAhead days. It fails
// closed: an untrained model, a product with too little history, or any
// internal failure yields 0 so the reorder policy always receives a
// well-formed number.
func (m *Model) Predict(item domain.InventoryItem, sales []domain.SaleEvent, daysAhead int, asOf time.Time) float64 {
	m.mu.RLock()
	state := m.state
	m.mu.RUnlock()

	if state == nil {
		return 0
	}

	var productSales []domain.SaleEvent
	for _, s := range sales {
		if s.ProductID == item.ID {
			productSales = append(productSales, s)
		}
	}

	series := BuildDailySeries(productSales, asOf)
	row, err := BuildPredictionRow(item, series, asOf)
	if err != nil {
		log.Debug().Err(err).Str("product_id", item.ID).Msg("prediction skipped")
		return 0
	}

	estimate := state.Regressor.Predict(state.Scaler.TransformRow(row))
	total := estimate * float64(daysAhead)
	if total < 0 {
		return 0
	}
	return total
}

// Save serializes the current state through the artifact store.
func (m *Model) Save(ctx context.Context) error {
	m.mu.RLock()
	state := m.state
	m.mu.RUnlock()

	if state == nil {
		return ErrUntrained
	}

	data, err := json.Marshal(artifact{
		Regressor: state.Regressor,
		Scaler:    state.Scaler,
		Trained:   true,
	})
	if err != nil {
		return fmt.Errorf("failed to encode model artifact: %w", err)
	}

	return m.store.Save(ctx, data)
}

// Load restores a previously persisted state without retraining. A missing
// or corrupt artifact is treated as "no existing model" and reported as
// false, never as a failure.
func (m *Model) Load(ctx context.Context) bool {
	data, err := m.store.Load(ctx)
	if err != nil {
		log.Info().Err(err).Msg("no existing model artifact")
		return false
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		log.Warn().Err(err).Msg("model artifact is corrupt, ignoring")
		return false
	}
	if !a.Trained || a.Regressor == nil || a.Scaler == nil {
		return false
	}

	m.mu.Lock()
	m.state = &modelState{Regressor: a.Regressor, Scaler: a.Scaler}
	m.mu.Unlock()
	return true
}
