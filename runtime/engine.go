package runtime

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hubbub/contract"
	"hubbub/domain/event"
	"hubbub/moderation"
	"hubbub/observability"
	"hubbub/runtime/workers"
)

//go:embed censored/*
var censoredFolder embed.FS

// Engine wires the event pipeline: dispatcher emits raw events, the
// moderation worker sanitizes committed messages, the fanout delivers
// to permanent sinks and to connected recipients via the registry.
type Engine struct {
	log               *slog.Logger
	supervisor        contract.ISupervisor
	registry          *Registry
	dispatcher        *Dispatcher
	monitoring        *observability.Monitoring
	permanentSinks    []contract.EventSink
	rawEvents         chan event.DomainEvent
	domainEvents      chan event.DomainEvent
	sinkTimeout       time.Duration
	heartbeatInterval time.Duration
	charReplacement   rune
}

func NewEngine(log *slog.Logger, supervisor contract.ISupervisor,
	registry *Registry, monitoring *observability.Monitoring,
	bufferSize int, sinkTimeout, heartbeatInterval time.Duration,
	charReplacement rune) *Engine {
	rawEvents := make(chan event.DomainEvent, bufferSize)
	return &Engine{
		log:               log,
		supervisor:        supervisor,
		registry:          registry,
		dispatcher:        NewDispatcher(log, registry, rawEvents, monitoring),
		monitoring:        monitoring,
		rawEvents:         rawEvents,
		domainEvents:      make(chan event.DomainEvent, bufferSize),
		sinkTimeout:       sinkTimeout,
		heartbeatInterval: heartbeatInterval,
		charReplacement:   charReplacement,
	}
}

func (e *Engine) Dispatcher() *Dispatcher {
	return e.dispatcher
}

func (e *Engine) Registry() *Registry {
	return e.registry
}

// AddSinks registers permanent consumers that receive every event
// regardless of conversation membership (disk, timeline, search).
// Must be called before Start.
func (e *Engine) AddSinks(sinks ...contract.EventSink) {
	e.permanentSinks = append(e.permanentSinks, sinks...)
}

// Start prepares all workers and hands them to the supervisor. Heavy
// preparation (loading dictionaries, building the Aho-Corasick
// automaton) happens before anything runs.
func (e *Engine) Start(ctx context.Context) error {
	moderationWorker, err := e.prepareModeration("censored", e.charReplacement)
	if err != nil {
		return err
	}

	fanout := workers.NewEventFanout(
		e.log, e.registry, e.domainEvents,
		e.permanentSinks, e.sinkTimeout, e.monitoring)

	heartbeat := workers.NewHeartbeatWorker(e.log, e.monitoring, e.heartbeatInterval)

	e.supervisor.Add(moderationWorker, fanout, heartbeat)

	e.log.Info("Starting engine and all supervised workers")
	go e.supervisor.Run(ctx)
	return nil
}

// prepareModeration loads censored words and builds the moderator.
func (e *Engine) prepareModeration(path string, charReplacement rune) (contract.Worker, error) {
	loader := NewCensoredLoader(censoredFolder)
	data, err := loader.LoadAll(path)
	if err != nil {
		return nil, err
	}

	e.log.Info(fmt.Sprintf("%d censored files loaded [%s]",
		len(data.Languages), strings.Join(data.Languages, ",")))
	e.log.Info(fmt.Sprintf("%d unique censored words loaded", len(data.Words)))

	moderator, err := moderation.NewModerator(data.Words, charReplacement)
	if err != nil {
		return nil, err
	}

	return workers.NewModerationWorker(moderator, e.rawEvents, e.domainEvents, e.log), nil
}

// Stop initiates a graceful shutdown by canceling the supervised
// context; workers drain and exit on their own.
func (e *Engine) Stop() {
	e.log.Info("Requesting engine shutdown")
	e.supervisor.Stop()
}
