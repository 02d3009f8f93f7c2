package usecase

import (
	"context"
	"time"

	"github.com/allisson/accounts/internal/metrics"
	"github.com/allisson/accounts/internal/notification/domain"
)

// eventProcessorWithMetrics decorates EventProcessor with metrics instrumentation.
type eventProcessorWithMetrics struct {
	next    EventProcessor
	metrics metrics.BusinessMetrics
}

// NewEventProcessorWithMetrics wraps an EventProcessor with delivery metrics.
func NewEventProcessorWithMetrics(processor EventProcessor, m metrics.BusinessMetrics) EventProcessor {
	return &eventProcessorWithMetrics{
		next:    processor,
		metrics: m,
	}
}

// Process records metrics for one delivery attempt.
func (p *eventProcessorWithMetrics) Process(ctx context.Context, event *domain.OutboxEvent) error {
	start := time.Now()
	err := p.next.Process(ctx, event)

	metrics.Observe(ctx, p.metrics, "notification", "deliver", start, err)
	return err
}
