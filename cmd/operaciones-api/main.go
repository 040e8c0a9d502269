// README: Entry point of the operaciones service; loads config, wires the
// request/route/leg services and serves the HTTP API.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"logistica/internal/cache"
	"logistica/internal/config"
	"logistica/internal/infra"
	"logistica/internal/logging"
	"logistica/internal/maps"
	"logistica/internal/operaciones/cliente"
	"logistica/internal/operaciones/contenedor"
	"logistica/internal/operaciones/flota"
	"logistica/internal/operaciones/httpapi"
	"logistica/internal/operaciones/ruta"
	"logistica/internal/operaciones/solicitud"
	"logistica/internal/operaciones/tramo"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal(err)
	}
	if err := logging.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatal(err)
	}
	defer logging.Sync()
	logger := logging.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient, err := infra.NewRedis(cfg.Redis.URL)
	if err != nil {
		logger.Fatal("redis init failed", zap.Error(err))
	}

	distance, err := maps.NewDistanceService(cfg.Maps.APIKey)
	if err != nil {
		logger.Fatal("maps client init failed", zap.Error(err))
	}
	oracle := maps.NewCachedOracle(distance, cache.NewRedisCache(redisClient), cfg.Maps.CacheTTL(), logger)

	clienteSvc := cliente.NewService(cliente.NewStore(dbPool))
	contenedorStore := contenedor.NewStore(dbPool)
	contenedorSvc := contenedor.NewService(contenedorStore)

	refStore := flota.NewStore(dbPool)
	directory := flota.NewClient(cfg.Flota.BaseURL, cfg.Flota.Timeout(), logger)

	rutaStore := ruta.NewStore(dbPool)
	planner := ruta.NewPlanner(rutaStore, oracle, logger)

	solicitudStore := solicitud.NewStore(dbPool)
	solicitudSvc := solicitud.NewService(solicitudStore, clienteSvc, contenedorSvc, planner, logger)

	tramoSvc := tramo.NewService(rutaStore, solicitudStore, contenedorStore, directory, refStore, logger)

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Solicitudes:  solicitudSvc,
		Planner:      planner,
		Tramos:       tramoSvc,
		Clientes:     clienteSvc,
		Contenedores: contenedorSvc,
		CamionRefs:   refStore,
		Log:          logger,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		logger.Info("operaciones api listening", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
