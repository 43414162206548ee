package main

import (
	"context"
	"sync"
	"time"

	"github.com/go-telegram/bot/models"
)

// maxAlbumSize is Telegram's cap on media group items; a group that reaches
// it is flushed without waiting out the quiescence window.
const maxAlbumSize = 10

// albumAggregator buffers messages sharing a media group id and hands the
// complete set downstream once the group has been quiet for a full window.
// The timer resets on every arrival, so the flush handler fires exactly
// once per group, with the items in arrival order.
type albumAggregator struct {
	mu      sync.Mutex
	window  time.Duration
	flush   func(ctx context.Context, album []*models.Message)
	pending map[string]*albumEntry
}

type albumEntry struct {
	items []*models.Message
	timer *time.Timer
}

func newAlbumAggregator(window time.Duration, flush func(ctx context.Context, album []*models.Message)) *albumAggregator {
	return &albumAggregator{
		window:  window,
		flush:   flush,
		pending: make(map[string]*albumEntry),
	}
}

// Add buffers one album member. The context is retained for the eventual
// flush; with long polling it is the polling context and outlives the
// handler invocation that delivered the message.
func (a *albumAggregator) Add(ctx context.Context, msg *models.Message) {
	groupID := msg.MediaGroupID

	a.mu.Lock()
	entry, ok := a.pending[groupID]
	if !ok {
		entry = &albumEntry{}
		entry.timer = time.AfterFunc(a.window, func() { a.fire(ctx, groupID) })
		a.pending[groupID] = entry
	}
	entry.items = append(entry.items, msg)
	full := len(entry.items) >= maxAlbumSize
	if !full {
		entry.timer.Reset(a.window)
	} else {
		entry.timer.Stop()
	}
	a.mu.Unlock()

	if full {
		a.fire(ctx, groupID)
	}
}

// fire detaches the entry and invokes the downstream handler. Detaching
// under the lock keeps the flush single-shot even when the timer and a
// full-group flush race, and guarantees the buffer cannot outlive the
// group it belongs to.
func (a *albumAggregator) fire(ctx context.Context, groupID string) {
	a.mu.Lock()
	entry, ok := a.pending[groupID]
	delete(a.pending, groupID)
	a.mu.Unlock()

	if !ok || len(entry.items) == 0 {
		return
	}
	a.flush(ctx, entry.items)
}
