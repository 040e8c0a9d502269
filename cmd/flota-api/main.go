// README: Entry point of the flota service; trucks, tariffs, warehouses.
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

	"logistica/internal/config"
	"logistica/internal/flota/camion"
	"logistica/internal/flota/deposito"
	"logistica/internal/flota/httpapi"
	"logistica/internal/flota/tarifa"
	"logistica/internal/infra"
	"logistica/internal/logging"
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

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Camiones:  camion.NewService(camion.NewStore(dbPool)),
		Tarifas:   tarifa.NewService(tarifa.NewStore(dbPool)),
		Depositos: deposito.NewService(deposito.NewStore(dbPool)),
		Log:       logger,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		logger.Info("flota api listening", zap.String("addr", cfg.HTTP.Addr))
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
