package mid

import (
	"context"
	"net/http"
	"runtime/debug"

	"github.com/dev2ever/userservice/bridge/scaffolding/apiresponse"
	"github.com/dev2ever/userservice/bridge/scaffolding/metrics"
	"github.com/dev2ever/userservice/core/scaffolding/results"
	"github.com/dev2ever/userservice/infrastructure/web"
	"github.com/dev2ever/userservice/sdk/logger"
)

// Panics recovers from panics anywhere in the call chain and converts them
// into an opaque 500 envelope so one request cannot take the process down.
func Panics(log *logger.Logger) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) (resp web.Encoder) {
			defer func() {
				if rec := recover(); rec != nil {
					metrics.AddPanics(ctx)

					log.ErrorContext(ctx, "panic during request",
						"panic", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"trace", string(debug.Stack()))

					resp = apiresponse.Error[results.Void](results.InternalServerError, "Internal server error.", http.StatusInternalServerError)
				}
			}()

			return next(ctx, r)
		}
	}
}
