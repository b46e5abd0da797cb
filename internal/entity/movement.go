package entity

import (
	"time"
)

// Navigator moves entities toward their destination.
type Navigator interface {
	Start(e *Entity, d Destination)
	Stop(e *Entity)
	Arrived(e *Entity) bool
	Advance(e *Entity, dt time.Duration)
}

// StraightLine moves entities on a straight line at their speed. There is no
// obstacle avoidance.
type StraightLine struct{}

// Start sets the destination.
func (StraightLine) Start(e *Entity, d Destination) {
	e.Movement = Movement{Active: true, Destination: d}
}

// Stop cancels the active navigation.
func (StraightLine) Stop(e *Entity) {
	e.Movement = Movement{}
}

// Arrived reports whether the entity is within stopping distance of its
// destination or not navigating at all.
func (StraightLine) Arrived(e *Entity) bool {
	if !e.Movement.Active {
		return true
	}
	d := e.Movement.Destination
	return e.Position.Distance(d.Point) <= d.StoppingDistance+ArrivalTolerance
}

// Advance moves the entity by speed*dt, never past the stopping distance.
func (n StraightLine) Advance(e *Entity, dt time.Duration) {
	if n.Arrived(e) {
		return
	}
	d := e.Movement.Destination
	left := e.Position.Distance(d.Point) - d.StoppingDistance
	step := min(e.Speed*dt.Seconds(), left)
	if step <= 0 {
		return
	}
	e.Position = e.Position.MoveTowards(d.Point, step)
}
