package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"golang.org/x/time/rate"
)

// maxMessageSymbols is Telegram's limit on a single message.
const maxMessageSymbols = 4096

const (
	greetingText      = "Приветствую, %s!"
	quotaExceededText = "🛑 Превышен суточный лимит в %d сообщений."
)

// Bot wires the relay pipeline together: inbound updates are routed either
// through the album aggregator or straight to the single-message path, the
// text is rewritten, and the result is published to the configured channel.
type Bot struct {
	tgBot          TelegramClient
	rewriter       *Rewriter
	quota          *quotaTracker
	albums         *albumAggregator
	publishLimiter *rate.Limiter
	config         Config
	allowed        map[int64]struct{}
}

func NewBot(config Config, clock Clock, tgClient TelegramClient, rewriter *Rewriter) *Bot {
	allowed := make(map[int64]struct{}, len(config.AllowedUsers))
	for _, id := range config.AllowedUsers {
		allowed[id] = struct{}{}
	}

	b := &Bot{
		tgBot:    tgClient,
		rewriter: rewriter,
		quota:    newQuotaTracker(config.MaxDailyReposts, clock),
		config:   config,
		allowed:  allowed,
	}
	b.albums = newAlbumAggregator(config.AlbumWindow, b.handleAlbum)
	b.publishLimiter = newPublishLimiter(config.PublishPerMinute)

	return b
}

// newPublishLimiter paces outbound channel sends; Telegram throttles bots
// that post too quickly into the same chat.
func newPublishLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}

func (b *Bot) Start(ctx context.Context) {
	b.tgBot.Start(ctx)
}

func initTelegramBot(token string, httpClient bot.HttpClient, handleUpdate bot.HandlerFunc) (TelegramClient, error) {
	opts := []bot.Option{
		bot.WithDefaultHandler(handleUpdate),
		bot.WithHTTPClient(time.Minute, httpClient),
	}

	tgBot, err := bot.New(token, opts...)
	if err != nil {
		return nil, err
	}

	return tgBot, nil
}

// handleUpdate is the framework's default handler: every inbound update
// lands here on its own goroutine.
func (b *Bot) handleUpdate(ctx context.Context, _ *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	if isStartCommand(msg) {
		b.sendGreeting(ctx, msg)
		return
	}

	if _, ok := b.allowed[msg.From.ID]; !ok {
		ErrorLogger.Printf("Access denied for user %d", msg.From.ID)
		return
	}

	if msg.MediaGroupID != "" {
		b.albums.Add(ctx, msg)
		return
	}

	b.handleMessage(ctx, msg)
}

func isStartCommand(msg *models.Message) bool {
	for _, entity := range msg.Entities {
		if entity.Type == "bot_command" && entity.Offset == 0 && entity.Length <= len(msg.Text) {
			command := msg.Text[:entity.Length]
			if command == "/start" || strings.HasPrefix(command, "/start@") {
				return true
			}
		}
	}
	return false
}

func (b *Bot) sendGreeting(ctx context.Context, msg *models.Message) {
	name := msg.From.FirstName
	if msg.From.LastName != "" {
		name += " " + msg.From.LastName
	}
	b.reply(ctx, msg.Chat.ID, fmt.Sprintf(greetingText, name))
}

// handleMessage is the single-message path: extract text, reserve quota,
// rewrite, publish by content kind.
func (b *Bot) handleMessage(ctx context.Context, msg *models.Message) {
	text := messageHTML(msg)
	if text == "" {
		return
	}

	if !b.quota.Reserve(msg.Chat.ID) {
		b.reply(ctx, msg.Chat.ID, fmt.Sprintf(quotaExceededText, b.config.MaxDailyReposts))
		return
	}

	final, degraded := b.rewriter.Rewrite(ctx, text, maxMessageSymbols)
	if degraded && b.config.SkipDegraded {
		ErrorLogger.Printf("Dropping degraded rewrite for chat %d", msg.Chat.ID)
		return
	}

	b.publish(ctx, msg, final)
}

// publish sends one message to the channel, choosing the send operation by
// content kind. Failures are logged and not retried; the quota unit stays
// consumed either way.
func (b *Bot) publish(ctx context.Context, msg *models.Message, text string) {
	if err := b.publishLimiter.Wait(ctx); err != nil {
		ErrorLogger.Printf("Publish cancelled: %v", err)
		return
	}

	var err error
	switch {
	case len(msg.Photo) > 0:
		// Highest-resolution variant is last.
		photo := msg.Photo[len(msg.Photo)-1]
		_, err = b.tgBot.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:    b.config.ChannelID,
			Photo:     &models.InputFileString{Data: photo.FileID},
			Caption:   text,
			ParseMode: models.ParseModeHTML,
		})
	case msg.Video != nil:
		_, err = b.tgBot.SendVideo(ctx, &bot.SendVideoParams{
			ChatID:    b.config.ChannelID,
			Video:     &models.InputFileString{Data: msg.Video.FileID},
			Caption:   text,
			ParseMode: models.ParseModeHTML,
		})
	case msg.Document != nil:
		_, err = b.tgBot.SendDocument(ctx, &bot.SendDocumentParams{
			ChatID:    b.config.ChannelID,
			Document:  &models.InputFileString{Data: msg.Document.FileID},
			Caption:   text,
			ParseMode: models.ParseModeHTML,
		})
	default:
		_, err = b.tgBot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    b.config.ChannelID,
			Text:      text,
			ParseMode: models.ParseModeHTML,
		})
	}

	if err != nil {
		ErrorLogger.Printf("Error publishing to channel: %v", err)
	}
}

// handleAlbum is the album path, invoked once per media group by the
// aggregator. Quota is reserved once for the whole album; each item's
// caption is rewritten independently, without the message hard cap.
func (b *Bot) handleAlbum(ctx context.Context, album []*models.Message) {
	first := album[0]

	if !b.quota.Reserve(first.Chat.ID) {
		b.reply(ctx, first.Chat.ID, fmt.Sprintf(quotaExceededText, b.config.MaxDailyReposts))
		return
	}

	var media []models.InputMedia
	for _, msg := range album {
		if item := b.albumItem(ctx, msg); item != nil {
			media = append(media, item)
		}
	}
	if len(media) == 0 {
		return
	}

	if err := b.publishLimiter.Wait(ctx); err != nil {
		ErrorLogger.Printf("Publish cancelled: %v", err)
		return
	}

	_, err := b.tgBot.SendMediaGroup(ctx, &bot.SendMediaGroupParams{
		ChatID: b.config.ChannelID,
		Media:  media,
	})
	if err != nil {
		ErrorLogger.Printf("Error publishing media group: %v", err)
	}
}

// albumItem resolves one album member into a grouped-media input. Items
// with no resolvable media reference are skipped; the rest of the album
// still publishes.
func (b *Bot) albumItem(ctx context.Context, msg *models.Message) models.InputMedia {
	caption := messageHTML(msg)
	if caption != "" {
		rewritten, degraded := b.rewriter.Rewrite(ctx, caption, 0)
		if degraded && b.config.SkipDegraded {
			rewritten = ""
		}
		caption = rewritten
	}

	switch {
	case len(msg.Photo) > 0:
		return &models.InputMediaPhoto{
			Media:     msg.Photo[len(msg.Photo)-1].FileID,
			Caption:   caption,
			ParseMode: models.ParseModeHTML,
		}
	case msg.Video != nil:
		return &models.InputMediaVideo{
			Media:     msg.Video.FileID,
			Caption:   caption,
			ParseMode: models.ParseModeHTML,
		}
	case msg.Document != nil:
		return &models.InputMediaDocument{
			Media:     msg.Document.FileID,
			Caption:   caption,
			ParseMode: models.ParseModeHTML,
		}
	}
	return nil
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	_, err := b.tgBot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		ErrorLogger.Printf("Error sending reply to chat %d: %v", chatID, err)
	}
}
