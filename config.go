package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the bot needs, loaded from the environment once
// at startup and treated as immutable for the process lifetime.
type Config struct {
	TelegramToken   string
	AnthropicAPIKey string

	// Destination channel: chat id (numeric or @name) and the public URL
	// used for the appended subscription link.
	ChannelID  string
	ChannelURL string

	// Optional outbound HTTP proxy for both Telegram and the model API.
	ProxyURL string

	// Telegram user ids allowed to feed the bot.
	AllowedUsers []int64

	MaxDailyReposts int

	Model            string
	ModelMaxTokens   int
	ModelTemperature float32

	// How long a media group may stay quiet before it is considered
	// complete and flushed downstream.
	AlbumWindow time.Duration

	// Pacing for outbound channel publishes.
	PublishPerMinute int

	// When true, a post whose rewrite degraded to the error placeholder is
	// dropped instead of published.
	SkipDegraded bool
}

func loadConfig() (Config, error) {
	cfg := Config{
		TelegramToken:    os.Getenv("TG_BOT_TOKEN"),
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		ChannelID:        os.Getenv("CHANNEL_ID"),
		ChannelURL:       os.Getenv("CHANNEL_URL"),
		ProxyURL:         os.Getenv("PROXY_URL"),
		MaxDailyReposts:  envInt("MAX_DAILY_REPOSTS", 555),
		Model:            envString("MODEL", "claude-3-5-sonnet-20240620"),
		ModelMaxTokens:   envInt("MODEL_MAX_TOKENS", 500),
		ModelTemperature: envFloat("MODEL_TEMPERATURE", 0.7),
		AlbumWindow:      time.Duration(envInt("ALBUM_WINDOW_MS", 300)) * time.Millisecond,
		PublishPerMinute: envInt("PUBLISH_PER_MINUTE", 20),
		SkipDegraded:     envBool("SKIP_DEGRADED", false),
	}

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TG_BOT_TOKEN is not set")
	}
	if cfg.AnthropicAPIKey == "" {
		return cfg, fmt.Errorf("ANTHROPIC_API_KEY is not set")
	}
	if cfg.ChannelID == "" {
		return cfg, fmt.Errorf("CHANNEL_ID is not set")
	}
	if cfg.ChannelURL == "" {
		return cfg, fmt.Errorf("CHANNEL_URL is not set")
	}

	users, err := parseUserIDs(os.Getenv("ALLOWED_USERS"))
	if err != nil {
		return cfg, fmt.Errorf("invalid ALLOWED_USERS: %w", err)
	}
	if len(users) == 0 {
		return cfg, fmt.Errorf("ALLOWED_USERS is empty")
	}
	cfg.AllowedUsers = users

	return cfg, nil
}

// parseUserIDs parses a comma-separated list of Telegram user ids.
func parseUserIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad user id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func envString(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func envInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float32) float32 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 32); err == nil {
			return float32(f)
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return def
}
