package config

import (
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/solethus/slack-ollama/src/shared/data"
)

type Config struct {
	SlackBotToken      string
	SlackAppToken      string
	SlackSigningSecret string

	OllamaModel string
	OllamaHost  string
	AIProvider  string
	AIAPIKey    string

	RedisURL   string
	ListenAddr string
	Debug      bool
}

// Load resolves configuration from the optional settings table with
// environment fallbacks. A missing model name is the one fatal startup error.
func Load(db *gorm.DB) *Config {
	if db != nil {
		if err := data.LoadSettings(db); err != nil {
			log.Printf("Failed to load settings: %v", err)
		}
	}

	cfg := &Config{
		SlackBotToken:      setting("slack_bot_token", "SLACK_BOT_TOKEN"),
		SlackAppToken:      setting("slack_app_token", "SLACK_APP_TOKEN"),
		SlackSigningSecret: setting("slack_signing_secret", "SLACK_SIGNING_SECRET"),
		OllamaModel:        setting("ollama_model", "OLLAMA_MODEL"),
		OllamaHost:         setting("ollama_host", "OLLAMA_HOST"),
		AIProvider:         setting("ai_provider", "AI_PROVIDER"),
		AIAPIKey:           setting("ai_api_key", "AI_API_KEY"),
		RedisURL:           os.Getenv("REDIS_URL"),
		ListenAddr:         setting("listen_addr", "LISTEN_ADDR"),
		Debug:              os.Getenv("DEBUG") == "1",
	}

	if cfg.OllamaModel == "" {
		log.Fatal("OLLAMA_MODEL not set in database or environment")
	}
	if cfg.OllamaHost == "" {
		cfg.OllamaHost = "http://localhost:11434"
	}
	if cfg.AIProvider == "" {
		cfg.AIProvider = "ollama"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}

	return cfg
}

// setting returns the settings-table value when loaded, else the environment
// variable.
func setting(name, env string) string {
	if v := data.GetSetting(name); v != "" {
		return v
	}
	return os.Getenv(env)
}
