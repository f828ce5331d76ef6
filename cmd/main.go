package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"kinvoice"
	"kinvoice/internal/config"
	httpapi "kinvoice/internal/http"
	"kinvoice/internal/pagination"
	"kinvoice/internal/repository"
	"kinvoice/internal/service"

	_ "kinvoice/docs"
)

// @title kinvoice API
// @version 0.0.1
// @description Счета и отгрузки
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, cleanup, err := openStores(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	invoicesSvc := service.NewInvoiceService(st.invoices, st.shipments, st.tx)
	shipmentsSvc := service.NewShipmentService(st.shipments, st.invoices, st.tx)

	srv := httpapi.NewServer(invoicesSvc, shipmentsSvc, httpapi.Options{
		AppName: cfg.AppName,
		Paging: pagination.Defaults{
			Size:    cfg.PageDefaultSize,
			MaxSize: cfg.PageMaxSize,
		},
		Swagger: cfg.SwaggerEnabled,
		Health:  st.health,
	})

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	go func() {
		slog.Info("HTTP server listening", "addr", httpServer.Addr, "memory_store", cfg.UseMemoryStore())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

type stores struct {
	invoices  repository.InvoiceRepository
	shipments repository.ShipmentRepository
	tx        repository.TxManager
	health    repository.Pinger
}

// openStores без DATABASE_URL отдаёт память, иначе Postgres с применёнными миграциями
func openStores(ctx context.Context, cfg *config.Config) (stores, func(), error) {
	if cfg.UseMemoryStore() {
		store := repository.NewMemoryStore()
		return stores{
			invoices:  store,
			shipments: repository.NewMemoryShipments(store),
			tx:        repository.NewMemoryTx(store),
			health:    store,
		}, func() {}, nil
	}

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		return stores{}, nil, err
	}

	migrationsFS, err := fs.Sub(kinvoice.MigrationsFS, "migrations")
	if err != nil {
		pool.Close()
		return stores{}, nil, err
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		pool.Close()
		return stores{}, nil, err
	}

	return stores{
		invoices:  repository.NewPostgresInvoices(pool),
		shipments: repository.NewPostgresShipments(pool),
		tx:        repository.NewPostgresTx(pool),
		health:    repository.NewPostgresPinger(pool),
	}, pool.Close, nil
}
