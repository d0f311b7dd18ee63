package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/nurpe/contracts-service/internal/auth"
	"github.com/nurpe/contracts-service/internal/config"
	"github.com/nurpe/contracts-service/internal/db"
	"github.com/nurpe/contracts-service/internal/excel"
	httphandler "github.com/nurpe/contracts-service/internal/http"
	"github.com/nurpe/contracts-service/internal/http/middleware"
	"github.com/nurpe/contracts-service/internal/logger"
	"github.com/nurpe/contracts-service/internal/pdf"
	"github.com/nurpe/contracts-service/internal/repository"
	"github.com/nurpe/contracts-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	profileRepo := repository.NewProfileRepository(database)
	contractRepo := repository.NewContractRepository(database)
	ledgerRepo := repository.NewLedgerRepository(database)
	reportRepo := repository.NewReportRepository(database)

	paymentService := service.NewPaymentService(ledgerRepo, cfg, log)
	contractService := service.NewContractService(contractRepo, ledgerRepo, pdf.NewGenerator())
	reportService := service.NewReportService(reportRepo, excel.NewGenerator(), cfg)

	var resolver auth.Resolver = auth.NewHeaderResolver(profileRepo)
	if cfg.Auth.Mode == config.AuthModeJWT {
		resolver = auth.NewTokenResolver(auth.NewParser(cfg.Auth.AccessSecret), profileRepo)
	}

	handler := httphandler.NewHandler(paymentService, contractService, reportService, log)
	router := httphandler.NewRouter(handler, middleware.Profile(resolver), cfg, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{Addr: addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Str("auth_mode", cfg.Auth.Mode).Msg("starting contracts service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}

	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
