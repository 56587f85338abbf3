package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	deliveryactivities "github.com/Apurer/dharai-delivery/internal/platform/temporal/activities/delivery"
)

// DeliveryCompletionInput is the payload shared by the completion activities.
type DeliveryCompletionInput = deliveryactivities.CompletionInput

// RunDeliveryCompletionSequence executes the ordered activities that close a delivery.
// The handoff is only cleared after the order is recorded as delivered.
func RunDeliveryCompletionSequence(ctx workflow.Context, input DeliveryCompletionInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("delivery completion sequence started", "orderId", input.OrderID)
	markOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	clearOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    3,
		},
	}

	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, markOptions), deliveryactivities.MarkOrderDeliveredActivityName, input).Get(ctx, nil)
	if err != nil {
		logger.Error("delivery completion sequence failed to mark order", "orderId", input.OrderID, "error", err)
		return err
	}
	logger.Info("delivery completion sequence marked order delivered", "orderId", input.OrderID)

	if err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, clearOptions), deliveryactivities.ClearHandoffActivityName, input).Get(ctx, nil); err != nil {
		logger.Error("delivery completion sequence failed to clear handoff", "orderId", input.OrderID, "error", err)
		return err
	}
	logger.Info("delivery completion sequence cleared handoff", "orderId", input.OrderID)
	return nil
}
