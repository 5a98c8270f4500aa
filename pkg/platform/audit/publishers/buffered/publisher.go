// Package buffered decouples audit emission from sink latency. Emit only
// enqueues; Run drains the queue to a Sink in batches. Delivery is
// best-effort: when the sink keeps failing its circuit opens and batches are
// dropped until it recovers.
package buffered

import (
	"context"
	"log/slog"
	"time"

	audit "launchpad/pkg/platform/audit"
	"launchpad/pkg/platform/circuit"
)

// Sink persists a batch of events, e.g. to Kafka or the log.
type Sink interface {
	Write(ctx context.Context, events []audit.Event) error
}

const (
	defaultBatchSize     = 100
	defaultFlushInterval = time.Second
	drainTimeout         = 5 * time.Second
)

// Publisher emits audit events asynchronously.
type Publisher struct {
	sink     Sink
	buffer   *RingBuffer
	sampler  *Sampler
	breaker  *circuit.Breaker
	logger   *slog.Logger
	metrics  *Metrics
	batch    int
	interval time.Duration
	wake     chan struct{}
}

// Option configures the Publisher.
type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

func WithSampler(s *Sampler) Option {
	return func(p *Publisher) {
		p.sampler = s
	}
}

func WithCapacity(n int) Option {
	return func(p *Publisher) {
		p.buffer = NewRingBuffer(n)
	}
}

func WithBatchSize(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.batch = n
		}
	}
}

func WithFlushInterval(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.interval = d
		}
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(p *Publisher) {
		p.breaker = b
	}
}

func New(sink Sink, opts ...Option) *Publisher {
	p := &Publisher{
		sink:     sink,
		buffer:   NewRingBuffer(0),
		breaker:  circuit.New("audit_sink"),
		batch:    defaultBatchSize,
		interval: defaultFlushInterval,
		wake:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit enqueues event and never blocks on the sink.
func (p *Publisher) Emit(_ context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if p.sampler != nil && !p.sampler.Keep(event) {
		if p.metrics != nil {
			p.metrics.IncSampled()
		}
		return nil
	}
	if p.buffer.Enqueue(event) && p.metrics != nil {
		p.metrics.IncBufferDropped()
	}
	if p.buffer.Len() >= p.batch {
		select {
		case p.wake <- struct{}{}:
		default:
		}
	}
	return nil
}

// Run flushes on every interval tick, or sooner when a full batch is queued,
// until ctx ends. The remaining queue is drained before returning.
func (p *Publisher) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drainTimeout)
			defer cancel()
			p.Flush(drainCtx)
			return nil
		case <-ticker.C:
			p.Flush(ctx)
		case <-p.wake:
			p.Flush(ctx)
		}
	}
}

// Flush writes queued events in batches until the queue is empty or ctx ends.
func (p *Publisher) Flush(ctx context.Context) {
	for ctx.Err() == nil {
		events := p.buffer.DequeueBatch(p.batch)
		if len(events) == 0 {
			return
		}
		p.write(ctx, events)
	}
}

func (p *Publisher) write(ctx context.Context, events []audit.Event) {
	if !p.breaker.Allow() {
		if p.metrics != nil {
			p.metrics.AddCircuitBreakerDropped(len(events))
		}
		return
	}

	if err := p.sink.Write(ctx, events); err != nil {
		_, change := p.breaker.RecordFailure()
		if p.metrics != nil {
			p.metrics.IncWriteFailures()
		}
		if p.logger != nil {
			p.logger.WarnContext(ctx, "audit sink write failed",
				"events", len(events),
				"error", err,
			)
		}
		if change.Opened {
			p.onStateChange(ctx, true)
		}
		return
	}

	_, change := p.breaker.RecordSuccess()
	if p.metrics != nil {
		p.metrics.AddPublished(len(events))
	}
	if change.Closed {
		p.onStateChange(ctx, false)
	}
}

func (p *Publisher) onStateChange(ctx context.Context, open bool) {
	if p.metrics != nil {
		p.metrics.SetCircuitBreakerState(open)
	}
	if p.logger != nil {
		p.logger.WarnContext(ctx, "audit sink circuit state changed",
			"breaker", p.breaker.Name(),
			"open", open,
		)
	}
}

// Pending returns the number of queued events.
func (p *Publisher) Pending() int {
	return p.buffer.Len()
}
