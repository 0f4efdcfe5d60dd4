package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/driversense-api/internal/config"
	jwtinfra "github.com/driversense-api/internal/infrastructure/jwt"
	"github.com/driversense-api/internal/infrastructure/memory"
	transporthttp "github.com/driversense-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("jwt provider: %v", err)
	}

	// In-memory stores; state is lost on restart.
	users := memory.NewUserRepo(cfg.BcryptCost)
	vehicles := memory.NewVehicleRepo()
	challenges := memory.NewChallengeRepo()
	ledger := memory.NewRefreshLedger()
	memory.Bootstrap(ctx, users, vehicles, cfg.SeedDemoUsers)

	go challenges.Run(ctx, cfg.SweepInterval)
	go ledger.Run(ctx, cfg.SweepInterval)

	deps := &transporthttp.Deps{
		UserRepo:      users,
		ChallengeRepo: challenges,
		RefreshLedger: ledger,
		VehicleRepo:   vehicles,
		TripRepo:      memory.NewTripRepo(),
		JWTProvider:   jwtProvider,
	}

	router := transporthttp.NewRouter(ctx, cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if cfg.SeedDemoUsers {
			log.Printf("Test credentials: %s / %s", memory.TestUserEmail, memory.TestUserPassword)
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
