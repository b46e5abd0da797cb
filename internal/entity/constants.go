package entity

// Movement and casting
const (
	// ApproachFactor scales the cast range when walking up to a target so
	// the entity ends up inside the range rather than on its edge.
	ApproachFactor = 0.9
	// ArrivalTolerance absorbs floating point error at the stopping distance.
	ArrivalTolerance = 1e-6
)
