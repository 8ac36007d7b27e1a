package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"lottery/database"
	"lottery/models"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken     string
	GuildID          string
	LotteryChannelID string // Channel for game announcements, empty disables them

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Ledger configuration
	ManagerDiscordID   int64 // The only identity allowed to run admin operations
	DefaultFeeRate     int64 // Fee rate written when the ledger is first initialized
	MaxEntrantsPerGame int   // Zero disables the cap

	// NATS configuration, empty disables event forwarding
	NATSServers string

	// Logging
	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// Load reads the configuration from the environment without touching the global instance
func Load() (*Config, error) {
	return load()
}

// GetDatabaseURL combines the base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

func load() (*Config, error) {
	config := &Config{
		DiscordToken:     os.Getenv("DISCORD_TOKEN"),
		GuildID:          os.Getenv("GUILD_ID"),
		LotteryChannelID: os.Getenv("LOTTERY_CHANNEL_ID"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		DefaultFeeRate:     models.DefaultFeeRate,
		MaxEntrantsPerGame: 10000,

		NATSServers: os.Getenv("NATS_SERVERS"),

		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if manager := os.Getenv("MANAGER_DISCORD_ID"); manager != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(manager), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("MANAGER_DISCORD_ID must be a Discord user ID: %w", err)
		}
		config.ManagerDiscordID = id
	}

	if rate := os.Getenv("DEFAULT_FEE_RATE"); rate != "" {
		parsed, err := strconv.ParseInt(strings.TrimSpace(rate), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("DEFAULT_FEE_RATE must be an integer: %w", err)
		}
		config.DefaultFeeRate = parsed
	}
	if !models.IsValidFeeRate(config.DefaultFeeRate) {
		return nil, fmt.Errorf("DEFAULT_FEE_RATE must be between %d and %d, got %d",
			models.MinFeeRate, models.MaxFeeRate, config.DefaultFeeRate)
	}

	if maxEntrants := os.Getenv("MAX_ENTRANTS_PER_GAME"); maxEntrants != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(maxEntrants))
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("MAX_ENTRANTS_PER_GAME must be a non-negative integer, got %q", maxEntrants)
		}
		config.MaxEntrantsPerGame = parsed
	}

	if config.Environment != "test" {
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.ManagerDiscordID == 0 {
			return nil, fmt.Errorf("MANAGER_DISCORD_ID is required")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:        "test",
		ManagerDiscordID:   999999,
		DefaultFeeRate:     models.DefaultFeeRate,
		MaxEntrantsPerGame: 10000,
		LogLevel:           "debug",
	}
}
