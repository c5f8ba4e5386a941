package mid

import (
	"context"
	"net/http"

	"github.com/dev2ever/userservice/bridge/scaffolding/apiresponse"
	"github.com/dev2ever/userservice/core/scaffolding/results"
	"github.com/dev2ever/userservice/infrastructure/web"
	"github.com/dev2ever/userservice/sdk/logger"
)

// Errors handles errors coming out of the call chain. Handlers normally
// answer with an envelope; a bare error escaping the chain is logged and
// replaced with an opaque 500 envelope.
func Errors(log *logger.Logger) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := isError(resp)
			if err == nil {
				return resp
			}

			log.ErrorContext(ctx, "handled error during request",
				"err", err,
				"method", r.Method,
				"path", r.URL.Path)

			return apiresponse.Error[results.Void](results.InternalServerError, "Internal server error.", http.StatusInternalServerError)
		}
	}
}
