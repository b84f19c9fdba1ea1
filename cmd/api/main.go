package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sitecrew/auth-api/internal/application/verification"
	"github.com/sitecrew/auth-api/internal/config"
	jwtinfra "github.com/sitecrew/auth-api/internal/infrastructure/jwt"
	"github.com/sitecrew/auth-api/internal/infrastructure/mail"
	"github.com/sitecrew/auth-api/internal/infrastructure/memstore"
	"github.com/sitecrew/auth-api/internal/infrastructure/opsapi"
	transporthttp "github.com/sitecrew/auth-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("JWT provider: %v", err)
	}

	deps := &transporthttp.Deps{
		PasscodeStore: verification.NewStore(cfg.PasscodeLifetime, cfg.PasscodeMaxAttempts),
		SessionRepo:   memstore.NewSessionRepo(),
		Accounts:      opsapi.NewClient(cfg),
		Mailer:        mail.NewMailer(cfg),
		JWTProvider:   jwtProvider,
	}

	router, verifySvc := transporthttp.NewRouter(cfg, deps)
	go verifySvc.Sweeper(cfg.SweepInterval)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
