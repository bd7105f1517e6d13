package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type ConfigStruct struct {
	Audio   AudioConfig
	Storage StorageConfig
	View    ViewConfig
	Server  ServerConfig
	Logging LoggingConfig
	Sentry  SentryConfig
}

type AudioConfig struct {
	LoadTimeout time.Duration
	Preload     string // "metadata" or "none"
}

type StorageConfig struct {
	URL         string
	CatalogFile string
}

type ViewConfig struct {
	SplashDelay time.Duration
}

type ServerConfig struct {
	Port string
}

type LoggingConfig struct {
	Level log.Level
	File  string
}

type SentryConfig struct {
	DSN     string
	Release string
}

func (a *AudioConfig) PreloadMetadata() bool {
	return a.Preload == "metadata"
}

func (s *SentryConfig) IsEnabled() bool {
	return s.DSN != ""
}

var Config *ConfigStruct

func NewConfig() {
	config := &ConfigStruct{
		Audio: AudioConfig{
			LoadTimeout: getAudioLoadTimeout(),
			Preload:     getPreload(),
		},
		Storage: StorageConfig{
			URL:         getStoreURL(),
			CatalogFile: os.Getenv("CATALOG_FILE"),
		},
		View: ViewConfig{
			SplashDelay: getSplashDelay(),
		},
		Server: ServerConfig{
			Port: getPort(),
		},
		Logging: LoggingConfig{
			Level: getLogLevel(),
			File:  getLogFile(),
		},
		Sentry: SentryConfig{
			DSN:     os.Getenv("SENTRY_DSN"),
			Release: os.Getenv("RELEASE"),
		},
	}

	Config = config
}

func getSplashDelay() time.Duration {
	delayStr := os.Getenv("SPLASH_DELAY_MS")
	if delayStr == "" {
		return 1500 * time.Millisecond
	}
	delay, err := strconv.Atoi(delayStr)
	if err != nil || delay < 0 {
		return 1500 * time.Millisecond
	}
	if delay > 10000 {
		return 10 * time.Second
	}
	return time.Duration(delay) * time.Millisecond
}

func getAudioLoadTimeout() time.Duration {
	timeoutStr := os.Getenv("AUDIO_LOAD_TIMEOUT_SECONDS")
	if timeoutStr == "" {
		return 30 * time.Second
	}
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil || timeout <= 0 {
		return 30 * time.Second
	}
	if timeout > 120 {
		return 120 * time.Second // full tracks are buffered in memory, don't hang forever
	}
	return time.Duration(timeout) * time.Second
}

func getPreload() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("AUDIO_PRELOAD"))) {
	case "none":
		return "none"
	default:
		return "metadata"
	}
}

func getStoreURL() string {
	url := strings.TrimSpace(os.Getenv("STORE_URL"))
	if url == "" {
		return "sqlite://huti.db"
	}
	return url
}

func getPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		return "8080"
	}
	if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
		return "8080"
	}
	return port
}

func getLogLevel() log.Level {
	level, err := log.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func getLogFile() string {
	file := os.Getenv("LOG_FILE")
	if file == "" {
		return "huti.log"
	}
	return file
}
