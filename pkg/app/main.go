package app

import (
	"github.com/ghuser/atelier/pkg/cache"
	"github.com/ghuser/atelier/pkg/database"
	"github.com/ghuser/atelier/pkg/events"
	"github.com/ghuser/atelier/pkg/logger"
	"github.com/ghuser/atelier/pkg/workflows"
	"github.com/gorilla/sessions"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to each service's route registration during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "adding cart line", "product_id", id)
//	app.Logger.ErrorContext(ctx, "failed to persist cart", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient
	SessionStore   sessions.Store // Redis-backed session store; nil in worker process
}
