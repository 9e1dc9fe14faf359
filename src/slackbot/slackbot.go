package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/solethus/slack-ollama/src/shared/ai"
	"github.com/solethus/slack-ollama/src/shared/data"
	"github.com/solethus/slack-ollama/src/slackbot/bot"
	"github.com/solethus/slack-ollama/src/slackbot/config"
	"github.com/solethus/slack-ollama/src/slackbot/webserver"
)

func main() {
	_ = godotenv.Load()

	var db *gorm.DB
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		db = data.MustMySQL(dsn)
	}

	cfg := config.Load(db)

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb = data.MustRedis(cfg.RedisURL)
	}

	model, err := ai.NewClient(ai.FactoryConfig{
		Provider: cfg.AIProvider,
		Host:     cfg.OllamaHost,
		Model:    cfg.OllamaModel,
		APIKey:   cfg.AIAPIKey,
	})
	if err != nil {
		log.Fatalf("model client: %v", err)
	}

	// Verify the model server is reachable before connecting to Slack.
	log.Printf("Testing connection to %s with model %s...", cfg.OllamaHost, cfg.OllamaModel)
	probeCtx, cancelProbe := context.WithTimeout(context.Background(), 60*time.Second)
	if _, err := model.Chat(probeCtx, "test"); err != nil {
		cancelProbe()
		log.Fatalf("model probe failed: %v", err)
	}
	cancelProbe()
	log.Println("Successfully connected to model server")

	b, err := bot.New(cfg, model, rdb)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		srv := webserver.New(b.Stats())
		if err := srv.Run(cfg.ListenAddr); err != nil {
			log.Fatalf("webserver: %v", err)
		}
	}()

	go func() {
		if err := b.Run(ctx); err != nil {
			log.Fatalf("Failed to run bot: %v", err)
		}
	}()

	log.Println("Slack bot is running. Press CTRL-C to exit.")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	cancel()
	log.Println("Slack bot stopped gracefully")
}
