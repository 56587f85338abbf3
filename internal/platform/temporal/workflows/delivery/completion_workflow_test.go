package delivery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"

	ordersmemory "github.com/Apurer/dharai-delivery/internal/domains/orders/adapters/memory"
	ordersapp "github.com/Apurer/dharai-delivery/internal/domains/orders/application"
	sessionmemory "github.com/Apurer/dharai-delivery/internal/domains/session/adapters/memory"
	sessionapp "github.com/Apurer/dharai-delivery/internal/domains/session/application"
	deliveryactivities "github.com/Apurer/dharai-delivery/internal/platform/temporal/activities/delivery"
)

func newEnvironment(t *testing.T) (*testsuite.TestWorkflowEnvironment, *ordersmemory.Repository, *ordersapp.Handoff) {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	repo := ordersmemory.NewSeededRepository()
	handoff := ordersapp.NewHandoff(sessionmemory.NewStore())
	orders := ordersapp.NewService(repo, sessionapp.NewSessions(sessionmemory.NewStore()), handoff, nil)
	activities := deliveryactivities.NewActivities(orders, handoff)
	env.RegisterActivityWithOptions(activities.MarkOrderDelivered, activity.RegisterOptions{Name: deliveryactivities.MarkOrderDeliveredActivityName})
	env.RegisterActivityWithOptions(activities.ClearHandoff, activity.RegisterOptions{Name: deliveryactivities.ClearHandoffActivityName})
	return env, repo, handoff
}

func TestDeliveryCompletionWorkflow_MarksOrderAndClearsHandoff(t *testing.T) {
	env, repo, handoff := newEnvironment(t)
	ctx := context.Background()
	order, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, handoff.Put(ctx, "tab-1", order))

	env.ExecuteWorkflow(DeliveryCompletionWorkflow, DeliveryCompletionWorkflowInput{OrderID: 1, TabID: "tab-1"})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	delivered, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, delivered.IsCompleted())
	snapshot, err := handoff.Current(ctx, "tab-1")
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestDeliveryCompletionWorkflow_RemovedOrderStillClearsHandoff(t *testing.T) {
	env, repo, handoff := newEnvironment(t)
	ctx := context.Background()
	order, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, handoff.Put(ctx, "tab-1", order))
	require.NoError(t, repo.Delete(ctx, 2))

	env.ExecuteWorkflow(DeliveryCompletionWorkflow, DeliveryCompletionWorkflowInput{OrderID: 2, TabID: "tab-1"})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	snapshot, err := handoff.Current(ctx, "tab-1")
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}
