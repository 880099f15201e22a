package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartpark/config"
	"smartpark/handlers"
	"smartpark/monitoring"
	"smartpark/repository"
	"smartpark/security"
	"smartpark/services"
	"smartpark/utils"

	_ "smartpark/migrations"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"
	"github.com/robfig/cron/v3"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	// Initialize PubNub when keys are configured
	var pn *pubnub.PubNub
	if cfg.PubNubPublishKey != "" && cfg.PubNubSubscribeKey != "" {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey
		pn = pubnub.NewPubNub(pnConfig)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize services
	repo := repository.NewParkingRepository(app)
	resolver := services.NewSpotStatusResolver(cfg.SpotKeyPrefix)
	pricing := services.NewPricingCalculator(cfg.HourlyRate, cfg.Currency)
	aggregator := services.NewRevenueAggregator(cfg.ReportLocation)
	mailService := services.NewMailService(app, cfg)
	feed := services.NewOccupancyFeed(repo, resolver, pn, redisClient)
	reservationService := services.NewReservationService(repo, resolver, pricing, mailService)
	sessionService := services.NewSessionService(redisClient, repo, cfg.SessionTTL, cfg.AdminPasswordHash)
	archiveService := services.NewArchiveService(repo, cfg.ReportLocation)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(app, sessionService)
	spotHandler := handlers.NewSpotHandler(app, repo, resolver, sessionService)
	reservationHandler := handlers.NewReservationHandler(app, reservationService, sessionService)
	adminHandler := handlers.NewAdminHandler(app, repo, resolver, aggregator, sessionService)
	mailHandler := handlers.NewMailHandler(app, mailService)

	rateLimiter := security.NewRateLimiter(redisClient)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Start background tasks
	if cfg.EnableMetrics {
		monitor := monitoring.NewMonitor(repo, resolver, aggregator)
		go monitor.Run(ctx, feed.Subscribe())
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ArchiveSchedule, func() {
		count, err := archiveService.ArchiveElapsed(ctx, time.Now())
		if err != nil {
			log.Printf("Archive sweep failed: %v", err)
			return
		}
		if count > 0 {
			monitoring.TrackArchiveRun(count)
			feed.Notify(ctx)
		}
	}); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup graceful shutdown
	go handleShutdown(cancel)

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		go feed.Notify(ctx)

		// Session endpoints
		e.Router.POST("/api/v1/session/client", rateLimiter.Limit(sessionHandler.SignInClient))
		e.Router.POST("/api/v1/session/admin", rateLimiter.Limit(sessionHandler.SignInAdmin))
		e.Router.DELETE("/api/v1/session", sessionHandler.SignOut)

		// Spot endpoints
		e.Router.GET("/api/v1/spots", spotHandler.GetSpots)

		// Reservation endpoints
		e.Router.POST("/api/v1/availability/check", rateLimiter.Limit(reservationHandler.CheckAvailability))
		e.Router.POST("/api/v1/reservations", rateLimiter.Limit(reservationHandler.CreateReservation))
		e.Router.GET("/api/v1/reservations", reservationHandler.ListReservations)

		// Admin endpoints
		e.Router.GET("/api/v1/admin/dashboard", adminHandler.GetDashboard)

		// Mail endpoints
		e.Router.POST("/api/v1/mail/verification", rateLimiter.Limit(mailHandler.SendVerification))

		// Test endpoint to force an archive sweep without waiting for cron
		if cfg.Environment == "development" {
			e.Router.POST("/api/v1/test/run-archive", func(e *core.RequestEvent) error {
				count, err := archiveService.ArchiveElapsed(e.Request.Context(), time.Now())
				if err != nil {
					return apis.NewBadRequestError("Archive sweep failed", err)
				}
				if count > 0 {
					monitoring.TrackArchiveRun(count)
					go feed.Notify(ctx)
				}
				return e.JSON(200, map[string]any{"archived": count})
			})
		}

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		// Prometheus scrape endpoint
		if cfg.EnableMetrics {
			e.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))
		}

		log.Println("Server routes registered")

		setupOccupancyHooks(ctx, app, feed)

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}

// setupOccupancyHooks re-publishes the lot snapshot after every write to the
// occupancy collection, whichever API path the write came through.
func setupOccupancyHooks(ctx context.Context, app *pocketbase.PocketBase, feed *services.OccupancyFeed) {
	app.OnRecordAfterCreateSuccess("parking_lot").BindFunc(func(e *core.RecordEvent) error {
		go feed.Notify(ctx)
		return e.Next()
	})

	app.OnRecordAfterUpdateSuccess("parking_lot").BindFunc(func(e *core.RecordEvent) error {
		go feed.Notify(ctx)
		return e.Next()
	})

	app.OnRecordAfterDeleteSuccess("parking_lot").BindFunc(func(e *core.RecordEvent) error {
		go feed.Notify(ctx)
		return e.Next()
	})
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
