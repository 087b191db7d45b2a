package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rizki31/whatsapp-voucher-bot/internal/config"
	"github.com/rizki31/whatsapp-voucher-bot/internal/handler"
	"github.com/rizki31/whatsapp-voucher-bot/internal/middleware"
	"github.com/rizki31/whatsapp-voucher-bot/internal/server"
	"github.com/rizki31/whatsapp-voucher-bot/internal/service"
	"github.com/rizki31/whatsapp-voucher-bot/internal/store"
	"github.com/rizki31/whatsapp-voucher-bot/internal/whatsapp"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize store and services
	recordStore := store.New(cfg.DatabasePath)
	userService := service.NewUserService(recordStore)
	voucherService := service.NewVoucherService(recordStore)

	// Initialize command handler
	h := handler.New(handler.Deps{
		Cfg:            cfg,
		UserService:    userService,
		VoucherService: voucherService,
	})

	handle := whatsapp.Chain(h.Handle,
		middleware.Recover(),
		middleware.Logging(),
	)

	// Create gateway
	gateway, err := whatsapp.NewGateway(ctx, cfg.SessionPath, handle)
	if err != nil {
		slog.Error("failed to create gateway", "error", err)
		os.Exit(1)
	}

	// Liveness endpoint
	srv := server.New(cfg.Port, recordStore)
	go func() {
		slog.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server", "error", err)
		}
	}()

	// Connect to WhatsApp
	if err := gateway.Start(ctx); err != nil {
		slog.Error("failed to start gateway", "error", err)
		os.Exit(1)
	}
	slog.Info("bot ready", "admin", cfg.AdminPhone, "database", cfg.DatabasePath)

	<-ctx.Done()

	// Graceful shutdown
	gateway.Close()
	server.Shutdown(srv)
	slog.Info("bot stopped gracefully")
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
