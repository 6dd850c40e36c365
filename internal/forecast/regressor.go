package forecast

import "fmt"

// RidgeRegressor is a linear model fit by ridge-regularized least squares.
// The normal equations (XᵀX + λI)w = Xᵀy are solved directly; the intercept
// is carried as an unpenalized bias column.
type RidgeRegressor struct {
	Lambda  float64   `json:"lambda"`
	Weights []float64 `json:"weights"` // Weights[0] is the intercept
}

// NewRidgeRegressor returns a regressor with the given regularization
// strength. Zero or negative lambda falls back to 1.
func NewRidgeRegressor(lambda float64) *RidgeRegressor {
	if lambda <= 0 {
		lambda = 1
	}
	return &RidgeRegressor{Lambda: lambda}
}

// Fit solves the ridge normal equations over the given rows.
func (r *RidgeRegressor) Fit(rows [][]float64, targets []float64) error {
	if len(rows) == 0 || len(rows) != len(targets) {
		return fmt.Errorf("ridge fit: %d rows, %d targets", len(rows), len(targets))
	}

	d := len(rows[0]) + 1 // bias column

	// Gram matrix XᵀX and moment vector Xᵀy, with the implicit leading 1.
	gram := make([][]float64, d)
	for i := range gram {
		gram[i] = make([]float64, d)
	}
	moment := make([]float64, d)

	for k, row := range rows {
		y := targets[k]
		gram[0][0]++
		moment[0] += y
		for i, vi := range row {
			gram[0][i+1] += vi
			gram[i+1][0] += vi
			moment[i+1] += vi * y
			for j, vj := range row {
				gram[i+1][j+1] += vi * vj
			}
		}
	}

	// Penalize everything except the bias.
	for i := 1; i < d; i++ {
		gram[i][i] += r.Lambda
	}

	weights, err := solveLinearSystem(gram, moment)
	if err != nil {
		return fmt.Errorf("ridge fit: %w", err)
	}

	r.Weights = weights
	return nil
}

// Predict returns the point estimate for a single feature row.
func (r *RidgeRegressor) Predict(row []float64) float64 {
	if len(r.Weights) != len(row)+1 {
		return 0
	}
	estimate := r.Weights[0]
	for i, v := range row {
		estimate += r.Weights[i+1] * v
	}
	return estimate
}

// Score reports the coefficient of determination R² over the given rows.
func (r *RidgeRegressor) Score(rows [][]float64, targets []float64) float64 {
	if len(rows) == 0 {
		return 0
	}

	mean := 0.0
	for _, y := range targets {
		mean += y
	}
	mean /= float64(len(targets))

	var ssRes, ssTot float64
	for i, row := range rows {
		d := targets[i] - r.Predict(row)
		ssRes += d * d
		t := targets[i] - mean
		ssTot += t * t
	}

	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

// solveLinearSystem solves Ax = b by Gaussian elimination with partial
// pivoting. A and b are modified in place.
func solveLinearSystem(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	for col := 0; col < n; col++ {
		// pivot
		pivot := col
		for row := col + 1; row < n; row++ {
			if abs(a[row][col]) > abs(a[pivot][col]) {
				pivot = row
			}
		}
		if a[pivot][col] == 0 {
			return nil, fmt.Errorf("singular system at column %d", col)
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < n; row++ {
			factor := a[row][col] / a[col][col]
			if factor == 0 {
				continue
			}
			for k := col; k < n; k++ {
				a[row][k] -= factor * a[col][k]
			}
			b[row] -= factor * b[col]
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := b[row]
		for col := row + 1; col < n; col++ {
			sum -= a[row][col] * x[col]
		}
		x[row] = sum / a[row][row]
	}
	return x, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
