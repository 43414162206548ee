package main

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/liushuangls/go-anthropic/v2"
)

func main() {
	// A .env file is optional; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	initLoggers()

	InfoLogger.Println("Starting channel repost bot")

	config, err := loadConfig()
	if err != nil {
		ErrorLogger.Fatalf("Error loading configuration: %v", err)
	}

	// Both the Telegram and the model API share the outbound client, so a
	// configured proxy covers them both.
	httpClient, err := newHTTPClient(config.ProxyURL)
	if err != nil {
		ErrorLogger.Fatalf("Error configuring HTTP client: %v", err)
	}

	anthropicClient := anthropic.NewClient(config.AnthropicAPIKey, anthropic.WithHTTPClient(httpClient))
	rewriter := NewRewriter(anthropicClient, config)

	// Create the Bot without a TelegramClient first; the framework needs
	// the bot's handleUpdate method to construct one.
	b := NewBot(config, RealClock{}, nil, rewriter)

	tgClient, err := initTelegramBot(config.TelegramToken, httpClient, b.handleUpdate)
	if err != nil {
		ErrorLogger.Fatalf("Error initializing Telegram client: %v", err)
	}
	b.tgBot = tgClient

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	InfoLogger.Printf("Relaying for %d allowed users to channel %s", len(config.AllowedUsers), config.ChannelID)
	b.Start(ctx)

	InfoLogger.Println("Bot stopped. Exiting.")
}

func newHTTPClient(proxyURL string) (*http.Client, error) {
	if proxyURL == "" {
		return http.DefaultClient, nil
	}
	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, err
	}
	return &http.Client{
		Transport: &http.Transport{Proxy: http.ProxyURL(u)},
	}, nil
}
