package anchor

import (
	"fmt"
	"strings"
)

type AnchorError struct {
	Message string
}

func (errorValue AnchorError) Error() string {
	return errorValue.Message
}

// CostLimitError reports that a probed entry range cannot fit under the
// current resource ceiling. The slicer handles it by narrowing the
// boundary search; it is never fatal.
type CostLimitError struct {
	AnchorError
	Cost    uint64
	Ceiling uint64
}

func NewCostLimitError(cost uint64, ceiling uint64) error {
	return CostLimitError{
		AnchorError: AnchorError{Message: fmt.Sprintf("estimated cost %d exceeds ceiling %d", cost, ceiling)},
		Cost:        cost,
		Ceiling:     ceiling,
	}
}

// EstimationError wraps a non-limit estimator failure. It aborts the
// slicer call and carries the original error unchanged.
type EstimationError struct {
	AnchorError
	Err error
}

func (errorValue EstimationError) Unwrap() error {
	return errorValue.Err
}

func NewEstimationError(err error) error {
	return EstimationError{
		AnchorError: AnchorError{Message: fmt.Sprintf("cost estimation failed: %v", err)},
		Err:         err,
	}
}

// IntegrityError reports that a claimed commitment does not correspond
// to any prefix of the local record set.
type IntegrityError struct {
	AnchorError
	Target Commitment
}

func NewIntegrityError(target Commitment) error {
	return IntegrityError{
		AnchorError: AnchorError{
			Message: fmt.Sprintf("commitment %s does not match any prefix of the local record set", target.Hex()),
		},
		Target: target,
	}
}

// ValidationError reports malformed caller input. These are caller bugs
// and fail fast rather than being sanitized.
type ValidationError struct {
	AnchorError
	Violations []string
}

func NewValidationError(message string, violations []string) error {
	if len(violations) == 0 {
		return ValidationError{
			AnchorError: AnchorError{Message: message},
		}
	}
	return ValidationError{
		AnchorError: AnchorError{Message: fmt.Sprintf("%s: %s", message, strings.Join(violations, ", "))},
		Violations:  append([]string{}, violations...),
	}
}
