package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/GustavoLR548/blog-bot/internal/bot"
	"github.com/GustavoLR548/blog-bot/internal/storage"
	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// Cooldowns are opt-in through BLOG_COOLDOWN_SECONDS
const defaultCooldownSeconds = 0

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get configuration from environment
	discordToken := os.Getenv("DISCORD_TOKEN")
	if discordToken == "" {
		log.Fatal("DISCORD_TOKEN is required")
	}

	// Commands are registered globally when no guild is given
	guildID := os.Getenv("GUILD_ID")

	// The @everyone role shares its ID with the guild
	denyRoleID := os.Getenv("BLOG_DENY_ROLE_ID")
	if denyRoleID == "" {
		denyRoleID = guildID
	}
	if denyRoleID == "" {
		log.Fatal("BLOG_DENY_ROLE_ID or GUILD_ID is required")
	}

	cooldownSeconds := getEnvAsInt("BLOG_COOLDOWN_SECONDS", defaultCooldownSeconds)
	cooldownDuration := time.Duration(cooldownSeconds) * time.Second

	log.Printf("Starting Blog Bot (Guild: %q, Deny Role: %s, Cooldown: %v)", guildID, denyRoleID, cooldownDuration)

	// Redis is optional - cooldowns are kept in memory without it
	var cooldown storage.CooldownRepository
	var redisClient *redis.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     redisURL,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		})

		// Test Redis connection
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Connected to Redis successfully")

		cooldown = storage.NewRedisCooldownRepository(redisClient, cooldownDuration)
	} else {
		log.Println("No REDIS_URL provided, keeping cooldowns in memory")
		cooldown = bot.NewRateLimiter(cooldownDuration)
	}

	// Create Discord session
	dg, err := discordgo.New("Bot " + discordToken)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	// Set intents
	dg.Identify.Intents = discordgo.IntentsGuilds

	commandHandler := bot.NewCommandHandler(bot.Config{
		GuildID:    guildID,
		DenyRoleID: denyRoleID,
	}, cooldown)

	// Register commands and handlers
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
		log.Printf("Bot ID: %v", s.State.User.ID)

		// Register slash commands
		if err := commandHandler.RegisterCommands(s); err != nil {
			log.Printf("Error registering commands: %v", err)
		}
	})

	// Handle commands
	commandHandler.HandleCommands(dg)

	// Open Discord connection
	if err := dg.Open(); err != nil {
		log.Fatalf("Failed to open Discord connection: %v", err)
	}
	defer dg.Close()

	log.Println("Bot is now running. Press CTRL+C to exit.")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Println("Shutting down...")

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}

	cleanupCommands(dg, guildID)
}

// getEnvAsInt retrieves an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Warning: Invalid value for %s, using default: %d", key, defaultVal)
		return defaultVal
	}

	return val
}

// cleanupCommands removes all registered commands on shutdown
func cleanupCommands(s *discordgo.Session, guildID string) {
	log.Println("Cleaning up commands...")

	commands, err := s.ApplicationCommands(s.State.User.ID, guildID)
	if err != nil {
		log.Printf("Error fetching commands: %v", err)
		return
	}

	for _, cmd := range commands {
		err := s.ApplicationCommandDelete(s.State.User.ID, guildID, cmd.ID)
		if err != nil {
			log.Printf("Error deleting command %s: %v", cmd.Name, err)
		} else {
			log.Printf("Deleted command: %s", cmd.Name)
		}
	}
}
