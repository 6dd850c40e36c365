package forecast

import "errors"

var (
	// ErrInsufficientData means the pooled training set was below the minimum
	// row count. The previous model state is left untouched.
	ErrInsufficientData = errors.New("insufficient training data")

	// ErrUntrained means predict was called before a successful train or load.
	ErrUntrained = errors.New("model is not trained")

	// ErrNoHistory means a product's daily series is too short to build a
	// feature row.
	ErrNoHistory = errors.New("not enough sales history")
)
