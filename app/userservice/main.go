package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dev2ever/userservice/app/userservice/api"
	"github.com/dev2ever/userservice/app/userservice/config"
	"github.com/dev2ever/userservice/core/repositories/usersrepo"
	"github.com/dev2ever/userservice/core/repositories/usersrepo/stores/userspgxstore"
	"github.com/dev2ever/userservice/infrastructure/postgresdb"
	"github.com/dev2ever/userservice/infrastructure/web"
	"github.com/dev2ever/userservice/sdk/logger"
	"github.com/dev2ever/userservice/sdk/telemetry"
)

var build = "develop"

const appName = "USERSERVICE"

func main() {
	godotenv.Load()
	ctx := context.Background()

	log, err := logger.NewFromEnv(appName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuring logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	pool, err := postgresdb.NewFromEnv(appName)
	if err != nil {
		return fmt.Errorf("configuring postgres support: %w", err)
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing database connection")
		pool.Close()
	}()

	log.InfoContext(ctx, "startup", "status", "initializing repository support")
	usersRepository := usersrepo.NewRepository(log, userspgxstore.NewStore(log, pool))

	webCfg, err := web.LoadServerConfig(appName)
	if err != nil {
		return fmt.Errorf("loading webserver config: %w", err)
	}

	siteCfg := config.UserService{
		Build:       build,
		Log:         log,
		Telemetry:   telemetry.NewTelemetry(),
		DB:          pool,
		ApiRoute:    webCfg.ApiRoute,
		CORSOrigins: webCfg.CORSOrigins,
		EnableDebug: webCfg.EnableDebug,
		Repositories: config.Repositories{
			Users: usersRepository,
		},
	}

	server, err := web.NewServerFromEnv(appName,
		web.WithHandler(api.Routes(siteCfg)),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)
	if err != nil {
		return fmt.Errorf("building webserver: %w", err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig.String())
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete", "signal", sig.String())

		ctx, cancel := context.WithTimeout(ctx, server.Config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
