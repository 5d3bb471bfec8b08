package worker

import (
	"context"
	"log/slog"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/amqp"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/services"
)

// IngestWorker consumes statement ingest messages and runs the categorization
// pipeline for each one.
type IngestWorker struct {
	client    *amqp.Client
	processor *services.IngestProcessor
}

func NewIngestWorker(client *amqp.Client, processor *services.IngestProcessor) *IngestWorker {
	return &IngestWorker{
		client:    client,
		processor: processor,
	}
}

// Run blocks consuming messages until the context is canceled.
func (w *IngestWorker) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "Ingest worker starting")
	return w.client.ConsumeStatementIngest(ctx, func(msg *amqp.StatementIngestMessage) error {
		return w.processor.ProcessStatement(ctx, msg.StatementID)
	})
}
