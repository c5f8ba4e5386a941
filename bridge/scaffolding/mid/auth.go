package mid

import (
	"context"
	"net/http"
	"strings"

	"github.com/dev2ever/userservice/bridge/scaffolding/apiresponse"
	"github.com/dev2ever/userservice/core/scaffolding/results"
	"github.com/dev2ever/userservice/infrastructure/web"
)

// RoleUser is required for every user endpoint.
const RoleUser = "user"

// Envelope codes for the access checks. These live at the HTTP edge and are
// never produced by a repository.
const (
	codeUnauthorized results.ErrorCode = "UNAUTHORIZED"
	codeForbidden    results.ErrorCode = "FORBIDDEN"
)

// Identity headers set by the gateway in front of this service. The service
// trusts them; authenticating the caller is the gateway's job.
const (
	headerUserID = "X-User-Id"
	headerRoles  = "X-User-Roles"
)

// Authenticate extracts the caller identity from the gateway headers and
// stores it in the context. Requests with no identity are refused.
func Authenticate() web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			userID := strings.TrimSpace(r.Header.Get(headerUserID))
			if userID == "" {
				return apiresponse.Error[results.Void](codeUnauthorized, "Missing caller identity.", http.StatusUnauthorized)
			}

			var roles []string
			for _, role := range strings.Split(r.Header.Get(headerRoles), ",") {
				if role = strings.TrimSpace(role); role != "" {
					roles = append(roles, role)
				}
			}

			ctx = setUserID(ctx, userID)
			ctx = setRoles(ctx, roles)

			return next(ctx, r)
		}
	}
}

// RequireRole refuses any caller whose identity lacks the given role.
func RequireRole(role string) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			if !hasRole(ctx, role) {
				return apiresponse.Error[results.Void](codeForbidden, "Caller lacks the required role.", http.StatusForbidden)
			}

			return next(ctx, r)
		}
	}
}
