package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRidgeRecoversLinearRelation(t *testing.T) {
	// y = 2x + 1 with negligible regularization.
	var rows [][]float64
	var targets []float64
	for x := 0.0; x < 20; x++ {
		rows = append(rows, []float64{x})
		targets = append(targets, 2*x+1)
	}

	r := NewRidgeRegressor(1e-9)
	require.NoError(t, r.Fit(rows, targets))

	assert.InDelta(t, 1, r.Weights[0], 1e-3)
	assert.InDelta(t, 2, r.Weights[1], 1e-3)
	assert.InDelta(t, 21, r.Predict([]float64{10}), 1e-2)
	assert.InDelta(t, 1, r.Score(rows, targets), 1e-6)
}

func TestRidgeShrinksWeights(t *testing.T) {
	var rows [][]float64
	var targets []float64
	for x := 0.0; x < 20; x++ {
		rows = append(rows, []float64{x})
		targets = append(targets, 2*x+1)
	}

	weak := NewRidgeRegressor(1e-9)
	require.NoError(t, weak.Fit(rows, targets))
	strong := NewRidgeRegressor(1000)
	require.NoError(t, strong.Fit(rows, targets))

	assert.Less(t, abs(strong.Weights[1]), abs(weak.Weights[1]))
}

func TestRidgeFitEmpty(t *testing.T) {
	r := NewRidgeRegressor(1)
	assert.Error(t, r.Fit(nil, nil))
}

func TestRidgePredictDimensionMismatch(t *testing.T) {
	r := NewRidgeRegressor(1)
	require.NoError(t, r.Fit([][]float64{{1}, {2}, {3}}, []float64{1, 2, 3}))
	assert.Zero(t, r.Predict([]float64{1, 2}))
}

func TestStandardScaler(t *testing.T) {
	rows := [][]float64{
		{1, 10, 7},
		{2, 20, 7},
		{3, 30, 7},
	}

	s := &StandardScaler{}
	s.Fit(rows)

	scaled := s.Transform(rows)
	require.Len(t, scaled, 3)

	// Centered columns sum to zero.
	for j := 0; j < 3; j++ {
		sum := 0.0
		for i := range scaled {
			sum += scaled[i][j]
		}
		assert.InDelta(t, 0, sum, 1e-9, "column %d", j)
	}

	// A zero-variance column shifts without dividing by zero.
	assert.Equal(t, 1.0, s.Scale[2])
	assert.Zero(t, scaled[0][2])
}
