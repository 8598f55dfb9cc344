package mirror

import "fmt"

type MirrorError struct {
	Message string
}

func (errorValue MirrorError) Error() string {
	return errorValue.Message
}

// CallError reports a failed contract call or estimate. Status carries
// the mirror node's response status token when one was returned.
type CallError struct {
	MirrorError
	StatusCode int
	Status     string
}

func NewCallError(statusCode int, status string, detail string) error {
	message := fmt.Sprintf("contract call failed with HTTP %d", statusCode)
	if status != "" {
		message = fmt.Sprintf("%s: %s", message, status)
	}
	if detail != "" {
		message = fmt.Sprintf("%s (%s)", message, detail)
	}
	return CallError{
		MirrorError: MirrorError{Message: message},
		StatusCode:  statusCode,
		Status:      status,
	}
}

// CallLimitError reports that an estimated call cannot fit under the
// network's per-transaction limits. It is a distinct type so callers
// branch on the discriminator rather than on message text.
type CallLimitError struct {
	MirrorError
	Status string
}

func NewCallLimitError(status string) error {
	return CallLimitError{
		MirrorError: MirrorError{Message: fmt.Sprintf("contract call exceeds network limits: %s", status)},
		Status:      status,
	}
}

// limitStatuses are the mirror node response statuses that mean the
// probed call exceeds what a single transaction may consume.
var limitStatuses = map[string]struct{}{
	"MAX_GAS_LIMIT_EXCEEDED":     {},
	"INSUFFICIENT_GAS":           {},
	"MAX_CHILD_RECORDS_EXCEEDED": {},
	"TRANSACTION_OVERSIZE":       {},
}

// IsLimitStatus reports whether a mirror node status token denotes a
// per-transaction resource limit.
func IsLimitStatus(status string) bool {
	_, limited := limitStatuses[status]
	return limited
}
