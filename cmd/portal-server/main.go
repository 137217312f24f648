package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/docport/docport/internal/config"
	"github.com/docport/docport/internal/domain/booking"
	"github.com/docport/docport/internal/domain/catalog"
	"github.com/docport/docport/internal/domain/doctor"
	"github.com/docport/docport/internal/domain/identity"
	"github.com/docport/docport/internal/domain/payment"
	"github.com/docport/docport/internal/platform/auth"
	"github.com/docport/docport/internal/platform/db"
	"github.com/docport/docport/internal/platform/middleware"
	"github.com/docport/docport/internal/platform/notification"
	"github.com/docport/docport/internal/platform/payments"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "portal-server",
		Short: "Appointment booking API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the booking API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the treatment catalog and ensure store indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := context.Background()
			client, err := db.Connect(ctx, cfg.MongoURI)
			if err != nil {
				return err
			}
			defer db.Disconnect(client)

			database := client.Database(cfg.MongoDB)
			if err := booking.NewMongoRepository(database).EnsureIndexes(ctx); err != nil {
				return err
			}
			if err := identity.NewMongoRepository(database).EnsureIndexes(ctx); err != nil {
				return err
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read seed file: %w", err)
			}
			var treatments []*catalog.Treatment
			if err := json.Unmarshal(data, &treatments); err != nil {
				return fmt.Errorf("parse seed file: %w", err)
			}

			catalogSvc := catalog.NewService(catalog.NewMongoRepository(database))
			for _, t := range treatments {
				if err := catalogSvc.Upsert(ctx, t); err != nil {
					return err
				}
			}

			fmt.Printf("Seeded %d treatment(s).\n", len(treatments))
			return nil
		},
	}
	cmd.Flags().String("file", "./seed/services.json", "Path to the catalog seed file")
	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Document store
	ctx := context.Background()
	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := db.Disconnect(client); err != nil {
			logger.Error().Err(err).Msg("store disconnect failed")
		}
	}()
	logger.Info().Msg("connected to mongodb")

	database := client.Database(cfg.MongoDB)

	// Repositories
	catalogRepo := catalog.NewMongoRepository(database)
	bookingRepo := booking.NewMongoRepository(database)
	userRepo := identity.NewMongoRepository(database)
	doctorRepo := doctor.NewMongoRepository(database)
	paymentRepo := payment.NewMongoRepository(database)

	// The unique indexes back the dedup and identity invariants; they
	// must exist before the first request is served.
	if err := bookingRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure booking indexes")
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure user indexes")
	}

	// Services
	issuer := auth.NewIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL())
	verifier := auth.NewVerifier([]byte(cfg.JWTSecret))

	mailer := notification.NewMailer(notification.NewLogSender(logger), logger)

	catalogSvc := catalog.NewService(catalogRepo)
	identitySvc := identity.NewService(userRepo, issuer)
	bookingSvc := booking.NewService(bookingRepo, catalogRepo, paymentRepo).WithNotifier(mailer)
	doctorSvc := doctor.NewService(doctorRepo)

	var intents payment.IntentCreator
	if sc := payments.NewStripeClient(cfg.StripeSecretKey); sc != nil {
		intents = sc
	} else {
		logger.Warn().Msg("STRIPE_SECRET_KEY not set; payment-intent creation disabled")
	}
	paymentSvc := payment.NewService(paymentRepo, intents)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout()))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Route groups: public, bearer-authenticated, admin-gated
	public := e.Group("")
	authed := e.Group("", verifier.Middleware())
	admin := e.Group("", verifier.Middleware(), auth.RequireAdmin(identitySvc))

	catalog.NewHandler(catalogSvc).RegisterRoutes(public)
	booking.NewHandler(bookingSvc).RegisterRoutes(public, authed)
	identity.NewHandler(identitySvc).RegisterRoutes(public, authed, admin)
	doctor.NewHandler(doctorSvc).RegisterRoutes(admin)
	payment.NewHandler(paymentSvc).RegisterRoutes(authed)

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(client))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
