package inventory

// Log messages
const (
	LogMsgInvariantViolation = "Inventory invariant violation"
)

// Violation details
const (
	ErrFmtAddRemainder = "add left %d of %d '%s' unplaced after capacity check passed"
)
