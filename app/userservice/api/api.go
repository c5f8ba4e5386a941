// Package api assembles the HTTP surface: global middleware, the versioned
// user routes behind the role check, and the health probes.
package api

import (
	"context"
	"expvar"
	"net/http"

	"github.com/dev2ever/userservice/app/userservice/config"
	"github.com/dev2ever/userservice/bridge/repositories/usersrepobridge"
	"github.com/dev2ever/userservice/bridge/scaffolding/mid"
	"github.com/dev2ever/userservice/infrastructure/postgresdb"
	"github.com/dev2ever/userservice/infrastructure/web"
)

// Routes builds the full HTTP handler for the service.
func Routes(cfg config.UserService) http.Handler {
	handler := web.NewWebHandler(
		web.WithLogging(cfg.Log.Logger),
		web.WithTelemetry(cfg.Telemetry),
		web.WithGlobalMiddleware(
			mid.CORS(cfg.CORSOrigins...),
			mid.Logger(cfg.Log),
			mid.Errors(cfg.Log),
			mid.Metrics(),
			mid.Panics(cfg.Log),
		),
	)

	// Identity and the role check sit ahead of every versioned route.
	group := handler.Group(cfg.ApiRoute, mid.Authenticate(), mid.RequireRole(mid.RoleUser))

	usersrepobridge.AddHttpRoutes(group, usersrepobridge.Config{
		Log:        cfg.Log,
		Repository: cfg.Repositories.Users,
	})

	// Probes stay outside the auth boundary.
	handler.GET("/health", liveness(cfg.Build))
	handler.GET("/health/ready", readiness(cfg.DB))

	if cfg.EnableDebug {
		handler.HandleRaw("GET /debug/vars", expvar.Handler())
	}

	return handler
}

func liveness(build string) web.HandlerFunc {
	return func(ctx context.Context, r *http.Request) web.Encoder {
		info := struct {
			Status string `json:"status"`
			Build  string `json:"build"`
		}{
			Status: "up",
			Build:  build,
		}
		return web.NewJSONResponse(info)
	}
}

func readiness(db *postgresdb.Pool) web.HandlerFunc {
	return func(ctx context.Context, r *http.Request) web.Encoder {
		if err := postgresdb.StatusCheck(ctx, db); err != nil {
			resp := web.NewJSONResponseWithStatus(struct {
				Status string `json:"status"`
			}{Status: "db not ready"}, http.StatusServiceUnavailable)
			return resp
		}

		return web.NewJSONResponse(struct {
			Status string `json:"status"`
		}{Status: "ready"})
	}
}
