package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/ai"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/api"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/config"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/mail"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/pkg/distlock"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/pkg/logger"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/repository/postgres"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/scheduler"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/service/campaign"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/service/contact"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/service/dispatch"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/tracking"
)

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		logger.Error("loading config failed", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		logger.Error("opening database failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("database unreachable", "error", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis unreachable, dispatch locks fall back to postgres", "error", err)
			redisClient = nil
		}
	}

	campaignRepo := postgres.NewCampaignRepo(db)
	contactRepo := postgres.NewContactRepo(db)
	logRepo := postgres.NewEmailLogRepo(db)

	campaignSvc := campaign.NewService(campaignRepo)
	contactSvc := contact.NewService(contactRepo)
	generator := ai.NewGenerator(cfg.AI)

	engine := dispatch.NewEngine(dispatch.Config{
		Campaigns: campaignRepo,
		Contacts:  contactRepo,
		Logs:      logRepo,
		Sender: mail.NewSMTPSender(mail.RelayConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			Timeout:  cfg.SMTP.Timeout(),
		}),
		Renderer:    mail.NewRenderer(),
		Locks:       distlock.NewFactory(redisClient, db, 10*time.Minute),
		FromAddress: cfg.SMTP.Username,
		FromName:    cfg.SMTP.FromName,
		SendTimeout: cfg.SMTP.Timeout(),
		Decorate:    tracking.NewInjector(cfg.Tracking.BaseURL),
	})

	trackingHandler := tracking.NewHandler(
		tracking.NewService(logRepo, campaignSvc),
		contactSvc,
	)

	handlers := api.NewHandlers(campaignSvc, contactSvc, engine, generator, logRepo, cfg.AI.CompanyName)
	router := api.SetupRoutes(handlers, trackingHandler.Routes())
	server := api.NewServer(cfg.Server, router)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(campaignRepo, engine, cfg.Scheduler.Interval())
		if err := sched.Start(ctx); err != nil {
			logger.Error("starting scheduler failed", "error", err)
			os.Exit(1)
		}
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
		}
	}

	cancel()
	if sched != nil {
		sched.Stop()
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown incomplete", "error", err)
	}
}
