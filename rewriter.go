package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"
)

const rewritePrompt = `Измени немного слова в посте, не меняя разметку.
Удаляй следующие элементы:
- Упоминания аккаунтов (начинающиеся с @)
- Ссылки, начинающиеся на t.me/
Не трогай другие ссылки (например, https:// или http://).
Сократи текст, без изменения смысла текста, чтобы текст влезал в 1000 сиволов.`

const compressPrompt = `Сократи текст до 1000 символов, сохранив смысл, не меняя сам текст и не меняя разметку.`

// rewriteFailedText is published in place of the rewritten post when the
// model API is down, unless SKIP_DEGRADED says otherwise.
const rewriteFailedText = "Произошла ошибка при обработке запроса."

const linkCaption = "SUBSCRIBE"

// completionClient is the slice of the Anthropic client the rewriter needs;
// an interface so tests can substitute a canned model.
type completionClient interface {
	CreateMessages(ctx context.Context, request anthropic.MessagesRequest) (anthropic.MessagesResponse, error)
}

// Rewriter turns a raw post into channel-ready text: one model call to
// paraphrase and redact, a second to compress, then the fixed subscription
// link. Two calls because the model does not reliably hit a hard character
// target in one pass.
type Rewriter struct {
	client      completionClient
	model       anthropic.Model
	maxTokens   int
	temperature float32
	linkBlock   string
}

func NewRewriter(client completionClient, cfg Config) *Rewriter {
	return &Rewriter{
		client:      client,
		model:       anthropic.Model(cfg.Model),
		maxTokens:   cfg.ModelMaxTokens,
		temperature: cfg.ModelTemperature,
		linkBlock:   fmt.Sprintf("\n\n<a href=\"%s\">%s</a>", cfg.ChannelURL, linkCaption),
	}
}

// Rewrite produces the final text for publication. hardCap, when positive,
// is the platform's maximum message length; the pre-link text is truncated
// markup-aware so the whole result fits. The returned bool reports whether
// either model call failed and the placeholder leaked into the result.
func (r *Rewriter) Rewrite(ctx context.Context, text string, hardCap int) (string, bool) {
	if text == "" {
		return "", false
	}

	degraded := false

	rewritten, err := r.complete(ctx, rewritePrompt, text)
	if err != nil {
		ErrorLogger.Printf("Rewrite call failed: %v", err)
		rewritten = rewriteFailedText
		degraded = true
	}

	compressed, err := r.complete(ctx, compressPrompt, rewritten)
	if err != nil {
		ErrorLogger.Printf("Compress call failed: %v", err)
		compressed = rewriteFailedText
		degraded = true
	}

	if hardCap > 0 {
		limit := hardCap - len([]rune(r.linkBlock)) - 2
		compressed = truncateHTML(compressed, limit)
	}

	return compressed + " " + r.linkBlock, degraded
}

func (r *Rewriter) complete(ctx context.Context, system, user string) (string, error) {
	temperature := r.temperature
	resp, err := r.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:  r.model,
		System: system,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(user),
		},
		MaxTokens:   r.maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("error creating model message: %w", err)
	}

	if len(resp.Content) == 0 || resp.Content[0].Type != anthropic.MessagesContentTypeText {
		return "", fmt.Errorf("unexpected response format from model")
	}

	return strings.TrimSpace(resp.Content[0].GetText()), nil
}
