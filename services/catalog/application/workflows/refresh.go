// Package workflows contains the Temporal workflow that keeps the catalog
// read model in sync with the upstream feed.
package workflows

import (
	"context"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	appsvcs "github.com/ghuser/atelier/services/catalog/application/services"
)

// TaskQueue is the Temporal task queue for catalog workflows.
const TaskQueue = "catalog"

// RefreshWorkflowID is the fixed workflow ID for the cron refresh, so only
// one schedule exists regardless of how many api instances start it.
const RefreshWorkflowID = "catalog-feed-refresh"

// RefreshCronSchedule refreshes the catalog at the top of every hour.
const RefreshCronSchedule = "0 * * * *"

// RefreshResult reports the outcome of one refresh run.
type RefreshResult struct {
	ProductCount int
}

// RefreshWorkflow runs one catalog refresh via the RefreshCatalog activity.
// Started with a cron schedule, Temporal re-runs it on RefreshCronSchedule.
func RefreshWorkflow(ctx workflow.Context) (RefreshResult, error) {
	opts := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    5 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, opts)

	var result RefreshResult
	if err := workflow.ExecuteActivity(ctx, (*RefreshActivities).RefreshCatalog, nil).Get(ctx, &result); err != nil {
		return RefreshResult{}, err
	}

	workflow.GetLogger(ctx).Info("catalog refreshed", "product_count", result.ProductCount)
	return result, nil
}

// RefreshActivities holds the activity implementations for RefreshWorkflow.
type RefreshActivities struct {
	Catalog *appsvcs.CatalogService
}

// RefreshCatalog fetches the feed and rebuilds the read model.
func (a *RefreshActivities) RefreshCatalog(ctx context.Context, _ any) (RefreshResult, error) {
	count, err := a.Catalog.Refresh(ctx)
	if err != nil {
		return RefreshResult{}, err
	}
	return RefreshResult{ProductCount: count}, nil
}
