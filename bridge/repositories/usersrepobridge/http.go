// Package usersrepobridge binds the user repository to the HTTP surface.
package usersrepobridge

import (
	"github.com/dev2ever/userservice/core/repositories/usersrepo"
	"github.com/dev2ever/userservice/infrastructure/web"
	"github.com/dev2ever/userservice/sdk/logger"
)

// Config holds what the user bridge needs to register its routes.
type Config struct {
	Log        *logger.Logger
	Repository *usersrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers all HTTP routes for users.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log, cfg.Repository)

	group.GET("/users", b.httpList, cfg.Middleware...)
	group.GET("/users/{user_id}", b.httpGetByID, cfg.Middleware...)
	group.POST("/users", b.httpCreate, cfg.Middleware...)
	group.PUT("/users/{user_id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/users/{user_id}", b.httpDelete, cfg.Middleware...)
}
