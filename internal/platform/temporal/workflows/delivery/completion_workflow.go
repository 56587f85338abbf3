package delivery

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/dharai-delivery/internal/platform/temporal/sequences"
)

const (
	// DeliveryCompletionWorkflowName is the public identifier for registering the workflow.
	DeliveryCompletionWorkflowName = "delivery.workflows.Completion"
	// DeliveryCompletionTaskQueue is the queue consumed by the worker processing delivery workflows.
	DeliveryCompletionTaskQueue = "DELIVERY_COMPLETION"
)

// DeliveryCompletionWorkflowInput identifies the order and browsing tab being closed out.
type DeliveryCompletionWorkflowInput struct {
	OrderID int64
	TabID   string
	TraceID string
}

// DeliveryCompletionWorkflow marks the order delivered, then releases the Transfer record.
func DeliveryCompletionWorkflow(ctx workflow.Context, input DeliveryCompletionWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("DeliveryCompletionWorkflow started", withTraceID(input.TraceID, "orderId", input.OrderID)...)
	err := sequences.RunDeliveryCompletionSequence(ctx, sequences.DeliveryCompletionInput{
		OrderID: input.OrderID,
		TabID:   input.TabID,
	})
	if err != nil {
		logger.Error("DeliveryCompletionWorkflow failed", withTraceID(input.TraceID, "orderId", input.OrderID, "error", err)...)
		return err
	}
	logger.Info("DeliveryCompletionWorkflow completed", withTraceID(input.TraceID, "orderId", input.OrderID)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
