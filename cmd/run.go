package cmd

import (
	"context"
	"fmt"

	"lottery/bot"
	"lottery/config"
	"lottery/database"
	"lottery/events"
	"lottery/infrastructure"
	"lottery/repository"
	"lottery/service"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	configureLogging(cfg)

	log.WithField("environment", cfg.Environment).Info("Starting lottery bot...")

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	if err := repository.InitializeLedger(ctx, db, cfg.DefaultFeeRate); err != nil {
		return fmt.Errorf("failed to initialize ledger: %w", err)
	}

	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	lotteryService := service.NewLotteryService(uowFactory, service.LotteryConfig{
		ManagerDiscordID:   cfg.ManagerDiscordID,
		MaxEntrantsPerGame: cfg.MaxEntrantsPerGame,
	}, service.NewRandomWinnerSelector())

	natsClient, err := startEventForwarding(ctx, cfg.NATSServers, eventBus)
	if err != nil {
		return err
	}
	if natsClient != nil {
		defer func() {
			if err := natsClient.Close(); err != nil {
				log.WithError(err).Error("Error closing NATS client")
			}
		}()
	}

	discordBot, err := bot.New(bot.Config{
		Token:            cfg.DiscordToken,
		GuildID:          cfg.GuildID,
		LotteryChannelID: cfg.LotteryChannelID,
	}, lotteryService, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized")

	<-ctx.Done()

	log.Info("Shutting down lottery bot...")
	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	// Deliver queued events while NATS is still connected
	eventBus.Close()

	return nil
}

// startEventForwarding connects to NATS and relays ledger events there.
// It returns a nil client when no servers are configured.
func startEventForwarding(ctx context.Context, servers string, eventBus *events.Bus) (*infrastructure.NATSClient, error) {
	if servers == "" {
		log.Info("NATS_SERVERS not set, event forwarding disabled")
		return nil, nil
	}

	client := infrastructure.NewNATSClient(servers)
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	mapper := infrastructure.NewEventSubjectMapper()
	if err := client.EnsureLotteryEventStream(mapper.GetAllSubjects()); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ensure lottery event stream: %w", err)
	}

	infrastructure.NewNATSEventForwarder(client, mapper).Attach(eventBus)
	log.Info("Forwarding lottery events to NATS")

	return client, nil
}

// configureLogging applies the configured level, production logs as JSON
func configureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("logLevel", cfg.LogLevel).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	}
}
