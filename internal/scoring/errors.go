package scoring

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a scoring configuration fails validation.
var ErrInvalidConfig = errors.New("invalid scoring config")

// MissingFieldError reports a required field absent from the batch schema
// (CustomerID empty) or from a single record. It is fatal for the batch.
type MissingFieldError struct {
	Field      string
	CustomerID string
}

func (e *MissingFieldError) Error() string {
	if e.CustomerID == "" {
		return fmt.Sprintf("missing required field %q", e.Field)
	}
	return fmt.Sprintf("missing required field %q on customer %s", e.Field, e.CustomerID)
}

// RangeViolation reports a derived value outside its allowed range.
// Clamping makes this unreachable; it guards against regressions.
type RangeViolation struct {
	Field      string
	CustomerID string
	Value      float64
	Min        float64
	Max        float64
}

func (e *RangeViolation) Error() string {
	return fmt.Sprintf("%s=%v out of range [%v, %v] for customer %s",
		e.Field, e.Value, e.Min, e.Max, e.CustomerID)
}
