package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"deck-of-cards-go/internal/config"
	"deck-of-cards-go/internal/database"
	"deck-of-cards-go/internal/deck"
	"deck-of-cards-go/internal/handlers"
	"deck-of-cards-go/internal/middleware"
	"deck-of-cards-go/internal/tracing"
	"deck-of-cards-go/pkg/websocket"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	logger := zapLogger.Sugar()

	ctx := context.Background()
	shutdownTracer, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName: "deck-of-cards-go",
		Environment: cfg.AppEnv,
		PrettyPrint: cfg.AppEnv == "development",
	})
	if err != nil {
		log.Fatalf("tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			logger.Errorw("tracer shutdown error", "err", err)
		}
	}()

	db, err := database.OpenAndMigrate(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("db open/migrate: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Errorw("db close error", "err", err)
		}
	}()

	// The one shared deck: built and shuffled once, alive until exit.
	theDeck := deck.New()

	hubRef := websocket.NewHubRef(websocket.NewHub())
	go func() {
		for {
			panicked := false
			currentHub, ok := hubRef.Get()
			if !ok || currentHub == nil {
				// Should never happen (we always Store a *Hub), but avoid nil deref.
				time.Sleep(1 * time.Second)
				hubRef.Set(websocket.NewHub())
				continue
			}
			func() {
				defer func() {
					if r := recover(); r != nil {
						panicked = true
						logger.Errorw("hub.Run panic", "panic", r, "stack", string(debug.Stack()))
					}
				}()
				currentHub.Run()
			}()

			// Run returned normally (Stop called): exit. Only restart on panic.
			if !panicked {
				return
			}
			currentHub.Stop()
			hubRef.Set(websocket.NewHub())
			time.Sleep(1 * time.Second)
		}
	}()

	handlers.SetWebSocketOriginPolicy(cfg.AppEnv == "development", cfg.DevWebSocketsAllowAll, cfg.WSAllowedOrigins)

	r := gin.Default()
	r.Use(otelgin.Middleware("deck-of-cards-go"))
	r.Use(middleware.DevCORS(cfg))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	api := handlers.NewDeckAPI(theDeck, db, hubRef.Get, logger)
	handlers.RegisterDeckRoutes(r.Group("/api"), api)

	r.GET("/ws", handlers.EventStreamHandler(hubRef.Get))

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Infow("shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		logger.Errorw("server error", "err", err)
	}

	if h, ok := hubRef.Get(); ok && h != nil {
		h.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("server shutdown error", "err", err)
	}
}
