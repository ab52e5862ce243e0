package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone     = "Europe/Berlin"
	configPathEnv       = "TOOTBOT_CONFIG"
	accessTokenEnv      = "MASTODON_ACCESS_TOKEN"
	mastodonServerEnv   = "MASTODON_SERVER"
	databasePathEnv     = "TOOTBOT_DB"
	logLevelEnv         = "TOOTBOT_LOG_LEVEL"
	telegramTokenEnv    = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv   = "TELEGRAM_CHAT_ID"
	defaultUserAgent    = "TootBot/1.0 (https://chaos.social)"
	defaultVisibility   = "unlisted"
	defaultCachePath    = "/tmp/wikibot.cache"
	defaultFeedURL      = "https://de.wikipedia.org/w/api.php?action=featuredfeed&feed=onthisday&feedformat=atom"
	defaultSiteOrigin   = "https://de.wikipedia.org"
	defaultServer       = "https://chaos.social"
	defaultEphemerisURL = "https://ssd.jpl.nasa.gov/api/horizons.api"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Mastodon      MastodonConfig     `yaml:"mastodon"`
	Feed          FeedConfig         `yaml:"feed"`
	Cache         CacheConfig        `yaml:"cache"`
	Schedule      ScheduleConfig     `yaml:"schedule"`
	Ephemeris     EphemerisConfig    `yaml:"ephemeris"`
	Storage       StorageConfig      `yaml:"storage"`
	Notifications NotificationConfig `yaml:"notifications"`
}

// LoggingConfig selects the log level and an optional rotating log file.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMb"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

// MastodonConfig describes the publishing account.
type MastodonConfig struct {
	Server      string `yaml:"server"`
	AccessToken string `yaml:"accessToken"`
	Visibility  string `yaml:"visibility"`
}

// FeedConfig points at the "on this day" feed.
type FeedConfig struct {
	URL        string `yaml:"url"`
	SiteOrigin string `yaml:"siteOrigin"`
	UserAgent  string `yaml:"userAgent"`
}

// CacheConfig locates the daily feed item cache.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// ScheduleConfig maps hours of the day to feed entries.
type ScheduleConfig struct {
	Timezone string         `yaml:"timezone"`
	Hours    map[string]int `yaml:"hours"`
	location *time.Location
}

// Location resolves the schedule timezone string to a time.Location.
func (s ScheduleConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// HourMap converts the YAML hour keys to the integer schedule.
func (s ScheduleConfig) HourMap() (map[int]int, error) {
	result := make(map[int]int, len(s.Hours))
	for key, item := range s.Hours {
		hour, err := strconv.Atoi(key)
		if err != nil || hour < 0 || hour > 23 {
			return nil, fmt.Errorf("schedule: invalid hour %q", key)
		}
		if item < 0 {
			return nil, fmt.Errorf("schedule: negative item %d for hour %d", item, hour)
		}
		result[hour] = item
	}
	return result, nil
}

// EphemerisConfig defines how to contact the ephemeris service.
type EphemerisConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// StorageConfig locates the post history database.
type StorageConfig struct {
	DatabasePath string `yaml:"databasePath"`
}

// NotificationConfig encapsulates secondary channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to mirror posts.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// Enabled reports whether mirroring to Telegram is configured.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// Load reads YAML configuration from path (or $TOOTBOT_CONFIG when path is
// empty) and applies environment overrides. A missing or broken file falls
// back to defaults.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(accessTokenEnv); v != "" {
		c.Mastodon.AccessToken = v
	}

	if v := os.Getenv(mastodonServerEnv); v != "" {
		c.Mastodon.Server = v
	}

	if v := os.Getenv(databasePathEnv); v != "" {
		c.Storage.DatabasePath = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Schedule.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, err = time.LoadLocation(defaultTimezone)
		if err != nil {
			loc = time.Local
		}
	}
	c.Schedule.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.File != "" {
		base.Logging.File = override.Logging.File
	}
	if override.Logging.MaxSizeMB > 0 {
		base.Logging.MaxSizeMB = override.Logging.MaxSizeMB
	}
	if override.Logging.MaxBackups > 0 {
		base.Logging.MaxBackups = override.Logging.MaxBackups
	}
	if override.Logging.MaxAgeDays > 0 {
		base.Logging.MaxAgeDays = override.Logging.MaxAgeDays
	}

	if override.Mastodon.Server != "" {
		base.Mastodon.Server = override.Mastodon.Server
	}
	if override.Mastodon.AccessToken != "" {
		base.Mastodon.AccessToken = override.Mastodon.AccessToken
	}
	if override.Mastodon.Visibility != "" {
		base.Mastodon.Visibility = override.Mastodon.Visibility
	}

	if override.Feed.URL != "" {
		base.Feed.URL = override.Feed.URL
	}
	if override.Feed.SiteOrigin != "" {
		base.Feed.SiteOrigin = override.Feed.SiteOrigin
	}
	if override.Feed.UserAgent != "" {
		base.Feed.UserAgent = override.Feed.UserAgent
	}

	if override.Cache.Path != "" {
		base.Cache = override.Cache
	}

	if override.Schedule.Timezone != "" {
		base.Schedule.Timezone = override.Schedule.Timezone
	}
	if len(override.Schedule.Hours) > 0 {
		base.Schedule.Hours = override.Schedule.Hours
	}

	if override.Ephemeris.Endpoint != "" {
		base.Ephemeris = override.Ephemeris
	}

	if override.Storage.DatabasePath != "" {
		base.Storage = override.Storage
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging:  LoggingConfig{Level: "info", MaxSizeMB: 16, MaxBackups: 3, MaxAgeDays: 28},
		Mastodon: MastodonConfig{Server: defaultServer, Visibility: defaultVisibility},
		Feed: FeedConfig{
			URL:        defaultFeedURL,
			SiteOrigin: defaultSiteOrigin,
			UserAgent:  defaultUserAgent,
		},
		Cache: CacheConfig{Path: defaultCachePath},
		Schedule: ScheduleConfig{
			Timezone: defaultTimezone,
			Hours:    map[string]int{"8": 0, "10": 1, "12": 2, "14": 3, "16": 4},
		},
		Ephemeris: EphemerisConfig{Endpoint: defaultEphemerisURL},
		Storage:   StorageConfig{DatabasePath: defaultDatabasePath()},
	}
}

func defaultDatabasePath() string {
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return dir + "/tootbot/history.db"
	}
	return "tootbot-history.db"
}
