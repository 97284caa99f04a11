package main

import (
	"context"
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

	"github.com/frontdesk/frontdesk/internal/config"
	"github.com/frontdesk/frontdesk/internal/domain/doctor"
	"github.com/frontdesk/frontdesk/internal/domain/queue"
	"github.com/frontdesk/frontdesk/internal/domain/scheduling"
	"github.com/frontdesk/frontdesk/internal/domain/user"
	"github.com/frontdesk/frontdesk/internal/platform/auth"
	"github.com/frontdesk/frontdesk/internal/platform/db"
	"github.com/frontdesk/frontdesk/internal/platform/httperr"
	"github.com/frontdesk/frontdesk/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "frontdesk-server",
		Short: "Clinic front-desk API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the front-desk API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

// seedDoctors is the initial roster inserted by `frontdesk-server seed`.
var seedDoctors = []doctor.Doctor{
	{Name: "Dr. Smith", Specialization: "Cardiology", Gender: "male", Location: "Room 101", Status: doctor.StatusAvailable},
	{Name: "Dr. Johnson", Specialization: "Dermatology", Gender: "female", Location: "Room 102", Status: doctor.StatusAvailable},
	{Name: "Dr. Lee", Specialization: "Pediatrics", Gender: "female", Location: "Room 103", Status: doctor.StatusAvailable},
	{Name: "Dr. Patel", Specialization: "Orthopedics", Gender: "male", Location: "Room 104", Status: doctor.StatusAvailable},
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample doctors and the initial admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			adminPassword, _ := cmd.Flags().GetString("admin-password")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			doctorRepo := doctor.NewRepoPG(pool)
			doctorSvc := doctor.NewService(doctorRepo)
			for _, d := range seedDoctors {
				n, err := doctorRepo.CountByName(ctx, d.Name)
				if err != nil {
					return err
				}
				if n > 0 {
					continue
				}
				seeded := d
				if err := doctorSvc.Create(ctx, &seeded); err != nil {
					return fmt.Errorf("seeding doctor %s: %w", d.Name, err)
				}
				fmt.Printf("Created doctor %s\n", d.Name)
			}

			userRepo := user.NewRepoPG(pool)
			userSvc := user.NewService(userRepo, auth.JWTConfig{Secret: []byte(cfg.JWTSecret)})
			const adminEmail = "admin@clinic.com"
			if _, err := userRepo.GetByEmail(ctx, adminEmail); err == nil {
				fmt.Println("Admin user already present, nothing to do.")
				return nil
			} else if !httperr.IsNotFound(err) {
				return err
			}
			if _, err := userSvc.Register(ctx, "Admin", adminEmail, adminPassword, user.RoleAdmin); err != nil {
				return fmt.Errorf("seeding admin user: %w", err)
			}
			fmt.Printf("Created admin user %s\n", adminEmail)
			return nil
		},
	}
	cmd.Flags().String("admin-password", "changeme123", "Password for the seeded admin user")
	return cmd
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	jwtCfg := auth.JWTConfig{Secret: []byte(cfg.JWTSecret), TokenTTL: 8 * time.Hour}

	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Login stays outside the auth guard so the dashboard can get a token.
	userRepo := user.NewRepoPG(pool)
	userSvc := user.NewService(userRepo, jwtCfg)
	user.NewHandler(userSvc).RegisterRoutes(apiV1)

	protected := apiV1.Group("")
	if cfg.AuthDisabled {
		logger.Warn().Msg("AUTH_DISABLED is set, API is open")
		protected.Use(auth.DevAuthMiddleware())
	} else {
		protected.Use(auth.JWTMiddleware(jwtCfg))
	}

	doctorRepo := doctor.NewRepoPG(pool)
	doctorSvc := doctor.NewService(doctorRepo)
	doctor.NewHandler(doctorSvc).RegisterRoutes(protected)

	queueRepo := queue.NewRepoPG(pool)
	queueSvc := queue.NewService(queueRepo)
	queue.NewHandler(queueSvc).RegisterRoutes(protected)

	apptRepo := scheduling.NewRepoPG(pool)
	apptSvc := scheduling.NewService(apptRepo, doctorRepo)
	scheduling.NewHandler(apptSvc).RegisterRoutes(protected)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

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
