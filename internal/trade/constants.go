package trade

// Violation details
const (
	ErrFmtResidual = "trade residual: %d '%s' did not fit into %s (returned to sender: %t)"
)
