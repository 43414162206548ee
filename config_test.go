package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("TG_BOT_TOKEN", "token")
	t.Setenv("ANTHROPIC_API_KEY", "key")
	t.Setenv("CHANNEL_ID", "-1001234567890")
	t.Setenv("CHANNEL_URL", "https://t.me/testchannel")
	t.Setenv("ALLOWED_USERS", "1, 2,3")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := loadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "token", cfg.TelegramToken)
	assert.Equal(t, "-1001234567890", cfg.ChannelID)
	assert.Equal(t, []int64{1, 2, 3}, cfg.AllowedUsers)
	assert.Equal(t, 555, cfg.MaxDailyReposts)
	assert.Equal(t, "claude-3-5-sonnet-20240620", cfg.Model)
	assert.Equal(t, 500, cfg.ModelMaxTokens)
	assert.InDelta(t, 0.7, float64(cfg.ModelTemperature), 0.001)
	assert.Equal(t, 300*time.Millisecond, cfg.AlbumWindow)
	assert.Equal(t, 20, cfg.PublishPerMinute)
	assert.False(t, cfg.SkipDegraded)
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAX_DAILY_REPOSTS", "5")
	t.Setenv("ALBUM_WINDOW_MS", "100")
	t.Setenv("SKIP_DEGRADED", "true")

	cfg, err := loadConfig()
	assert.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxDailyReposts)
	assert.Equal(t, 100*time.Millisecond, cfg.AlbumWindow)
	assert.True(t, cfg.SkipDegraded)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	tests := []string{"TG_BOT_TOKEN", "ANTHROPIC_API_KEY", "CHANNEL_ID", "CHANNEL_URL"}

	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(key, "")

			_, err := loadConfig()
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), key)
			}
		})
	}
}

func TestLoadConfigEmptyAllowList(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ALLOWED_USERS", "")

	_, err := loadConfig()
	assert.Error(t, err)
}

func TestParseUserIDs(t *testing.T) {
	ids, err := parseUserIDs("416064234,1498695786, 6799175057")
	assert.NoError(t, err)
	assert.Equal(t, []int64{416064234, 1498695786, 6799175057}, ids)

	_, err = parseUserIDs("123,abc")
	assert.Error(t, err)

	ids, err = parseUserIDs("")
	assert.NoError(t, err)
	assert.Empty(t, ids)
}
