package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)

	EventLogDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventLogDropped,
			Help: HelpTextEventLogDropped,
		},
		[]string{LabelType},
	)
)

// Simulation Metrics
var (
	StepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameStepDuration,
			Help:    HelpTextStepDuration,
			Buckets: StepLatencyBuckets,
		},
	)

	StateTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStateTransitions,
			Help: HelpTextStateTransitions,
		},
		[]string{LabelFrom, LabelTo},
	)

	Commands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommands,
			Help: HelpTextCommands,
		},
		[]string{LabelKind, LabelOutcome},
	)

	Trades = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTrades,
			Help: HelpTextTrades,
		},
		[]string{LabelResult},
	)

	Crafts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCrafts,
			Help: HelpTextCrafts,
		},
		[]string{LabelItem},
	)

	QuestsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuestsCompleted,
			Help: HelpTextQuestsCompleted,
		},
		[]string{LabelQuest},
	)

	InvariantViolations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameInvariantViolations,
			Help: HelpTextInvariantViolations,
		},
		[]string{LabelComponent},
	)

	OnlineEntities = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameOnlineEntities,
			Help: HelpTextOnlineEntities,
		},
		[]string{LabelKind},
	)

	Autosaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAutosaves,
			Help: HelpTextAutosaves,
		},
		[]string{LabelOutcome},
	)
)
