package entity

// State is the closed set of entity states.
type State int

const (
	StateIdle State = iota
	StateMoving
	StateCasting
	StateTrading
	StateDead
)

// States lists every state.
var States = []State{StateIdle, StateMoving, StateCasting, StateTrading, StateDead}

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateMoving:
		return "MOVING"
	case StateCasting:
		return "CASTING"
	case StateTrading:
		return "TRADING"
	case StateDead:
		return "DEAD"
	}
	return "UNKNOWN"
}

// Event is a state machine input: a latched command or a status predicate.
type Event int

const (
	EventDied Event = iota
	EventCancelAction
	EventTradeStarted
	EventNavigate
	EventSkillRequest
	EventMoveEnd
	EventTargetDisappeared
	EventTargetDied
	EventCastFinished
	EventTradeDone
	EventRespawn
)

// eventOrder is the fixed evaluation priority.
var eventOrder = []Event{
	EventDied,
	EventCancelAction,
	EventTradeStarted,
	EventNavigate,
	EventSkillRequest,
	EventMoveEnd,
	EventTargetDisappeared,
	EventTargetDied,
	EventCastFinished,
	EventTradeDone,
	EventRespawn,
}

// Events lists every event in evaluation order.
func Events() []Event {
	return append([]Event(nil), eventOrder...)
}

func (e Event) String() string {
	switch e {
	case EventDied:
		return "died"
	case EventCancelAction:
		return "cancel_action"
	case EventTradeStarted:
		return "trade_started"
	case EventNavigate:
		return "navigate"
	case EventSkillRequest:
		return "skill_request"
	case EventMoveEnd:
		return "move_end"
	case EventTargetDisappeared:
		return "target_disappeared"
	case EventTargetDied:
		return "target_died"
	case EventCastFinished:
		return "cast_finished"
	case EventTradeDone:
		return "trade_done"
	case EventRespawn:
		return "respawn"
	}
	return "unknown"
}
