package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "ummorpg_http_requests_total"
	MetricNameHTTPRequestDuration  = "ummorpg_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "ummorpg_http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "ummorpg_events_published_total"
	MetricNameEventHandlerErrors = "ummorpg_event_handler_errors_total"
	MetricNameEventLogDropped    = "ummorpg_event_log_dropped_total"
)

// Simulation metric names
const (
	MetricNameStepDuration        = "ummorpg_step_duration_seconds"
	MetricNameStateTransitions    = "ummorpg_state_transitions_total"
	MetricNameCommands            = "ummorpg_commands_total"
	MetricNameTrades              = "ummorpg_trades_total"
	MetricNameCrafts              = "ummorpg_crafts_total"
	MetricNameQuestsCompleted     = "ummorpg_quests_completed_total"
	MetricNameInvariantViolations = "ummorpg_invariant_violations_total"
	MetricNameOnlineEntities      = "ummorpg_online_entities"
	MetricNameAutosaves           = "ummorpg_autosaves_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
	HelpTextEventLogDropped    = "Total number of events not stored because the event log buffer was full"
)

// Simulation metric help text
const (
	HelpTextStepDuration        = "Duration of one world step in seconds"
	HelpTextStateTransitions    = "Total number of entity state transitions"
	HelpTextCommands            = "Total number of transport commands by kind and outcome"
	HelpTextTrades              = "Total number of finished trades by result"
	HelpTextCrafts              = "Total number of crafted items by result"
	HelpTextQuestsCompleted     = "Total number of completed quests"
	HelpTextInvariantViolations = "Total number of internal invariant violations"
	HelpTextOnlineEntities      = "Current number of entities in the world by kind"
	HelpTextAutosaves           = "Total number of autosave runs by outcome"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelFrom      = "from"
	LabelTo        = "to"
	LabelKind      = "kind"
	LabelOutcome   = "outcome"
	LabelResult    = "result"
	LabelItem      = "item"
	LabelQuest     = "quest"
	LabelComponent = "component"
)

// Label values
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
	OutcomeQueued   = "queued"
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"

	ResultCompleted = "completed"
	ResultAborted   = "aborted"

	PathUnmatched = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// StepLatencyBuckets covers a world step from 50µs to 250ms.
var StepLatencyBuckets = []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1, .25}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
