package main

import (
	"context"
	"fmt"
	"os"

	"fleet-admin-service/internal/auth"
	"fleet-admin-service/internal/client"
	"fleet-admin-service/internal/config"
	"fleet-admin-service/internal/db"
	httphandler "fleet-admin-service/internal/http"
	"fleet-admin-service/internal/http/middleware"
	"fleet-admin-service/internal/logger"
	"fleet-admin-service/internal/repository"
	"fleet-admin-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	mongoClient, err := db.Connect(context.Background(), cfg.Mongo.URI, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer mongoClient.Disconnect(context.Background())

	database := mongoClient.Database(cfg.Mongo.Database)

	locationRepo := repository.NewLocationRepository(database)
	driverRepo := repository.NewDriverRepository(database)
	truckRepo := repository.NewTruckRepository(database)
	auditRepo := repository.NewAuditRepository(database)

	locationService := service.NewLocationService(locationRepo, appLogger)
	driverService := service.NewDriverService(driverRepo, appLogger)
	truckService := service.NewTruckService(truckRepo, driverService, appLogger)
	seedService := service.NewSeedService(locationRepo, auditRepo, appLogger)
	rollbackService := service.NewRollbackService(locationRepo, auditRepo, appLogger)

	pathfinder := client.NewPathfinderClient(cfg)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(
		locationService,
		driverService,
		truckService,
		seedService,
		rollbackService,
		pathfinder,
		appLogger,
	)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting fleet admin service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
