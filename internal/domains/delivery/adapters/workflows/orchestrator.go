package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/dharai-delivery/internal/domains/delivery/ports"
	ordersports "github.com/Apurer/dharai-delivery/internal/domains/orders/ports"
	deliveryworkflows "github.com/Apurer/dharai-delivery/internal/platform/temporal/workflows/delivery"
)

var (
	_ ports.CompletionOrchestrator = (*TemporalCompletion)(nil)
	_ ports.CompletionOrchestrator = (*InlineCompletion)(nil)
)

// TemporalCompletion runs delivery completion as a Temporal workflow.
type TemporalCompletion struct {
	client    client.Client
	taskQueue string
}

// NewTemporalCompletion wires a Temporal client into the orchestrator.
func NewTemporalCompletion(c client.Client) *TemporalCompletion {
	return &TemporalCompletion{client: c, taskQueue: deliveryworkflows.DeliveryCompletionTaskQueue}
}

// CompleteDelivery starts the workflow and waits for it. A second confirmation
// for the same tab and order joins the run already in flight.
func (o *TemporalCompletion) CompleteDelivery(ctx context.Context, cmd ports.CompletionCommand) error {
	if o == nil || o.client == nil {
		return errors.New("temporal delivery workflows not configured")
	}
	workflowID := buildCompletionWorkflowID(cmd)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		deliveryworkflows.DeliveryCompletionWorkflowName,
		deliveryworkflows.DeliveryCompletionWorkflowInput{OrderID: cmd.OrderID, TabID: cmd.TabID, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId).Get(ctx, nil)
		}
		return err
	}
	return run.Get(ctx, nil)
}

// InlineCompletion runs the completion steps in-process, used when Temporal is disabled.
type InlineCompletion struct {
	ledger  ports.OrderLedger
	handoff ports.Handoff
}

func NewInlineCompletion(ledger ports.OrderLedger, handoff ports.Handoff) *InlineCompletion {
	return &InlineCompletion{ledger: ledger, handoff: handoff}
}

// CompleteDelivery marks the order delivered and clears the Transfer record.
// An order that has left the registry counts as already closed.
func (o *InlineCompletion) CompleteDelivery(ctx context.Context, cmd ports.CompletionCommand) error {
	if o == nil || o.ledger == nil || o.handoff == nil {
		return errors.New("inline delivery workflows not configured")
	}
	if _, err := o.ledger.MarkDelivered(ctx, cmd.OrderID); err != nil && !errors.Is(err, ordersports.ErrNotFound) {
		return err
	}
	return o.handoff.Clear(ctx, cmd.TabID)
}

func buildCompletionWorkflowID(cmd ports.CompletionCommand) string {
	return fmt.Sprintf("delivery-completion-%d-%s", cmd.OrderID, cmd.TabID)
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if spanCtx.IsValid() && spanCtx.TraceID().IsValid() {
		return spanCtx.TraceID().String()
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
