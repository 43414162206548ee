package main

import (
	"sync"
	"time"
)

const quotaDateFormat = "2006-01-02"

// quotaTracker enforces the per-chat daily repost ceiling. Counters live in
// memory, keyed by ISO date, so they roll over at midnight and start fresh
// on restart.
type quotaTracker struct {
	mu     sync.Mutex
	limit  int
	clock  Clock
	counts map[int64]map[string]int
}

func newQuotaTracker(limit int, clock Clock) *quotaTracker {
	return &quotaTracker{
		limit:  limit,
		clock:  clock,
		counts: make(map[int64]map[string]int),
	}
}

// Reserve checks today's count against the limit and claims one unit, as a
// single step under the lock. A reservation is never returned: a publish
// that later fails still consumed its unit.
func (q *quotaTracker) Reserve(chatID int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.clock.Now()
	today := now.Format(quotaDateFormat)

	days := q.counts[chatID]
	if days == nil {
		days = make(map[string]int)
		q.counts[chatID] = days
	}
	pruneOldDates(days, now)

	if days[today] >= q.limit {
		return false
	}
	days[today]++
	return true
}

// Count reports today's accepted reposts for the chat.
func (q *quotaTracker) Count(chatID int64) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.counts[chatID][q.clock.Now().Format(quotaDateFormat)]
}

// pruneOldDates drops everything older than yesterday so the per-chat map
// cannot grow with the calendar.
func pruneOldDates(days map[string]int, now time.Time) {
	today := now.Format(quotaDateFormat)
	yesterday := now.AddDate(0, 0, -1).Format(quotaDateFormat)
	for d := range days {
		if d != today && d != yesterday {
			delete(days, d)
		}
	}
}
