package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"wikiflow/internal/config"
	"wikiflow/internal/domain/models/audit"
	auditRepo "wikiflow/internal/domain/repositories/audit"
	"wikiflow/internal/domain/services"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RecorderConfig sizes the recorder's queue and worker pool
type RecorderConfig struct {
	QueueSize    int
	Workers      int
	WriteTimeout time.Duration
}

// Recorder persists audit events off the request path.
//
// Services call Record after their unit of work commits. Record only enqueues
// onto a bounded channel and drops the event when the queue is full, so a
// slow or failing audit store never delays or fails a mutation. Workers
// drain the queue; every failure on their side is logged and swallowed.
type Recorder struct {
	repo       auditRepo.EventRepository
	resolver   services.ActorIDResolver
	publishers []auditRepo.ActivityPublisher
	cfg        RecorderConfig
	logger     *slog.Logger
	tracer     trace.Tracer

	queue   chan audit.Event
	mu      sync.RWMutex
	closed  bool
	started atomic.Bool
	wg      sync.WaitGroup
	dropped atomic.Int64
	failed  atomic.Int64
}

// NewRecorder creates a recorder. resolver may be nil, in which case events
// carry no actor id.
func NewRecorder(
	repo auditRepo.EventRepository,
	resolver services.ActorIDResolver,
	cfg RecorderConfig,
	logger *slog.Logger,
	publishers ...auditRepo.ActivityPublisher,
) *Recorder {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1024
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}

	return &Recorder{
		repo:       repo,
		resolver:   resolver,
		publishers: publishers,
		cfg:        cfg,
		logger:     logger,
		tracer:     otel.Tracer("wikiflow/audit"),
		queue:      make(chan audit.Event, cfg.QueueSize),
	}
}

// Start launches the worker goroutines. Calling it more than once is a no-op.
func (r *Recorder) Start() {
	if !r.started.CompareAndSwap(false, true) {
		return
	}
	for i := 0; i < r.cfg.Workers; i++ {
		r.wg.Add(1)
		go r.work()
	}
	r.logger.Info("audit recorder started",
		"workers", r.cfg.Workers,
		"queue_size", r.cfg.QueueSize,
	)
}

// Record enqueues an event without blocking.
func (r *Recorder) Record(event audit.Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.dropped.Add(1)
		r.logger.Warn("audit event dropped after shutdown",
			"event_type", event.EventType,
			"entity_id", event.EntityID,
		)
		return
	}

	select {
	case r.queue <- event:
	default:
		r.dropped.Add(1)
		r.logger.Warn("audit queue full, event dropped",
			"event_type", event.EventType,
			"entity_id", event.EntityID,
			"queue_size", r.cfg.QueueSize,
		)
	}
}

// Close stops accepting events and waits for queued ones to be written, or
// for ctx to end.
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	// Nothing will drain the queue if workers never ran
	if !r.started.Load() {
		r.Start()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("audit recorder stopped",
			"dropped", r.dropped.Load(),
			"failed", r.failed.Load(),
		)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain audit queue: %w", ctx.Err())
	}
}

// Dropped is the number of events discarded because the queue was full or closed.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Failed is the number of events whose write to the store failed.
func (r *Recorder) Failed() int64 {
	return r.failed.Load()
}

func (r *Recorder) work() {
	defer r.wg.Done()
	for event := range r.queue {
		r.persist(event)
	}
}

// persist writes one event. It must never panic out of the worker.
func (r *Recorder) persist(event audit.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.WriteTimeout)
	defer cancel()

	ctx, span := r.tracer.Start(ctx, "audit.persist", trace.WithAttributes(
		attribute.String("audit.event_type", string(event.EventType)),
		attribute.String("audit.entity_type", string(event.EntityType)),
	))
	defer span.End()

	defer func() {
		if p := recover(); p != nil {
			r.failed.Add(1)
			span.SetStatus(codes.Error, "panic")
			r.logger.Error("audit write panicked",
				"event_type", event.EventType,
				"entity_id", event.EntityID,
				"panic", p,
			)
		}
	}()

	event.Message = truncate(event.Message, config.MaxAuditMessageLength)
	event.Actor = truncate(event.Actor, config.MaxActorLength)
	event.MetaJSON = r.encodeMetadata(&event)

	if r.resolver != nil && event.ActorID == nil {
		if id, ok := r.resolver.Resolve(ctx, event.Actor); ok {
			event.ActorID = &id
		}
	}

	if err := r.repo.Create(ctx, &event); err != nil {
		r.failed.Add(1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "store audit event")
		r.logger.Error("failed to store audit event",
			"event_type", event.EventType,
			"entity_id", event.EntityID,
			"error", err,
		)
		return
	}

	for _, p := range r.publishers {
		if err := p.Publish(ctx, &event); err != nil {
			r.logger.Warn("failed to publish audit event",
				"event_type", event.EventType,
				"entity_id", event.EntityID,
				"error", err,
			)
		}
	}
}

// encodeMetadata serializes event metadata; unencodable metadata is stored as null.
func (r *Recorder) encodeMetadata(event *audit.Event) *string {
	if event.MetaJSON != nil || len(event.Metadata) == 0 {
		return event.MetaJSON
	}
	b, err := json.Marshal(event.Metadata)
	if err != nil {
		r.logger.Warn("audit metadata not serializable",
			"event_type", event.EventType,
			"entity_id", event.EntityID,
			"error", err,
		)
		return nil
	}
	s := string(b)
	return &s
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
