package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	app "github.com/Ionution132/chat-backend/internal/app"
	"github.com/Ionution132/chat-backend/internal/chat"
	httpx "github.com/Ionution132/chat-backend/internal/http"
	"github.com/Ionution132/chat-backend/internal/store"
	"github.com/Ionution132/chat-backend/internal/ws"
)

func main() {
	// Load local .env (dev only)
	_ = godotenv.Load()

	cfg := app.LoadConfig()
	logger := app.NewLogger(cfg.Env)

	// Cancel on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Message persistence (memory, sqlite, postgres or redis)
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("store.open", "backend", cfg.StoreBackend, "err", err)
		log.Fatal(err)
	}
	if c, ok := st.(interface{ Close() }); ok {
		defer c.Close()
	}
	logger.Info("store.ready", "backend", cfg.StoreBackend)

	// Room policies: one restricted room, everything else open
	policies := chat.NewPolicyTable()
	policies.Restrict(cfg.RestrictedRoom, chat.NoLinks)

	// Chat core
	registry := chat.NewRegistry()
	svc := chat.NewService(logger, registry, st, policies, cfg.HistoryLimit)
	go svc.Run(ctx)

	// WebSocket gateway + HTTP router
	gw := ws.NewGateway(logger, svc)
	router := httpx.NewRouter(cfg, logger, gw)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("server.listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server.crash", "err", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	logger.Info("server.shutdown.start")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	_ = srv.Shutdown(shutdownCtx)

	logger.Info("server.shutdown.complete")
	_ = os.Stdout.Sync()
}
