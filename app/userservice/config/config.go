// Package config carries the wired dependencies handed to the route builder.
package config

import (
	"github.com/dev2ever/userservice/core/repositories/usersrepo"
	"github.com/dev2ever/userservice/infrastructure/postgresdb"
	"github.com/dev2ever/userservice/sdk/logger"
	"github.com/dev2ever/userservice/sdk/telemetry"
)

// Repositories groups the repositories exposed over HTTP.
type Repositories struct {
	Users *usersrepo.Repository
}

// UserService is everything the API surface needs to stand up.
type UserService struct {
	Build        string
	Log          *logger.Logger
	Telemetry    telemetry.Telemetry
	DB           *postgresdb.Pool
	ApiRoute     string
	CORSOrigins  []string
	EnableDebug  bool
	Repositories Repositories
}
