package main

import (
	"testing"
	"time"
)

// TestQuotaReserve verifies the daily ceiling: with a cap of 3, three
// reservations pass and the fourth is denied until the date rolls over.
func TestQuotaReserve(t *testing.T) {
	clock := &MockClock{currentTime: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	q := newQuotaTracker(3, clock)
	chatID := int64(42)

	for i := 0; i < 3; i++ {
		if !q.Reserve(chatID) {
			t.Errorf("Expected reservation %d to be allowed", i+1)
		}
	}

	if q.Reserve(chatID) {
		t.Error("Expected 4th reservation to be denied")
	}
	if got := q.Count(chatID); got != 3 {
		t.Errorf("Expected count 3 after denial, got %d", got)
	}

	// Next day the counter starts fresh.
	clock.Advance(24 * time.Hour)
	if !q.Reserve(chatID) {
		t.Error("Expected reservation to be allowed on the next day")
	}
	if got := q.Count(chatID); got != 1 {
		t.Errorf("Expected count 1 on the new day, got %d", got)
	}
}

func TestQuotaIsPerChat(t *testing.T) {
	clock := &MockClock{currentTime: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	q := newQuotaTracker(1, clock)

	if !q.Reserve(1) {
		t.Error("Expected first chat to be allowed")
	}
	if !q.Reserve(2) {
		t.Error("Expected second chat to be allowed independently")
	}
	if q.Reserve(1) {
		t.Error("Expected first chat to be denied at its own cap")
	}
}

// Old date entries must not accumulate: only today and yesterday survive.
func TestQuotaPrunesOldDates(t *testing.T) {
	clock := &MockClock{currentTime: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	q := newQuotaTracker(5, clock)
	chatID := int64(7)

	q.Reserve(chatID)
	clock.Advance(72 * time.Hour)
	q.Reserve(chatID)

	q.mu.Lock()
	entries := len(q.counts[chatID])
	q.mu.Unlock()

	if entries != 1 {
		t.Errorf("Expected stale dates to be pruned, found %d entries", entries)
	}
}

func TestQuotaZeroCapDeniesEverything(t *testing.T) {
	clock := &MockClock{currentTime: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	q := newQuotaTracker(0, clock)

	if q.Reserve(1) {
		t.Error("Expected reservation to be denied with a zero cap")
	}
}
