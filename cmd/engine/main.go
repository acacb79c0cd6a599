// In file: cmd/engine/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dileep-u-k/pattern-engine/internal/cache"
	"github.com/dileep-u-k/pattern-engine/internal/pattern"
	"github.com/dileep-u-k/pattern-engine/internal/stats"
)

// main is the entry point for the recommendation service.
// Its primary role is the "Composition Root": it loads configuration,
// initializes all services, injects dependencies, and starts the server.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	buildInfo := GetBuildInfo()
	log.Printf("🚀 Starting Pattern Engine | Version: %s | Commit: %s", buildInfo.Version, buildInfo.GitCommit)

	// 1. LOAD CONFIGURATION
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("❌ FATAL: Configuration Error: %v", err)
	}
	log.Println("✅ Configuration loaded.")

	// 2. INITIALIZE SERVICES
	engine := pattern.NewEngine(cfg.EngineConfig)

	// Redis is optional: without it the service runs on the in-process cache
	// alone and usage stats are disabled.
	var store *cache.Store
	var profiler *stats.Profiler
	if cfg.RedisAddr != "" {
		store, err = cache.New(cfg.RedisAddr)
		if err != nil {
			log.Fatalf("❌ FATAL: %v", err)
		}
		profiler = stats.NewProfiler(store.Client())
		log.Println("✅ Shared cache and usage stats connected.")
	} else {
		log.Println("⚠️ REDIS_ADDR not set, running without shared cache or usage stats.")
	}

	engineHandler := NewEngineHandler(engine, store, profiler)
	log.Println("✅ All services initialized.")

	// 3. SETUP AND RUN THE WEB SERVER
	gin.SetMode(os.Getenv("GIN_MODE"))
	router := gin.Default()
	v1 := router.Group("/api/v1")
	{
		v1.POST("/recommend", engineHandler.HandleRecommend)
		v1.GET("/stats", engineHandler.HandleStats)
		v1.GET("/patterns", engineHandler.HandlePatterns)
	}

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: router}
	runServerWithGracefulShutdown(srv)
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server) {
	go func() {
		log.Printf("👂 Engine is listening on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Listen error: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server shutdown failed:", err)
	}

	log.Println("👋 Server exited gracefully.")
}
