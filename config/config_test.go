package config

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
)

func TestGetSplashDelay(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want time.Duration
	}{
		{"empty", "", 1500 * time.Millisecond},
		{"invalid", "soon", 1500 * time.Millisecond},
		{"negative", "-1", 1500 * time.Millisecond},
		{"zero", "0", 0},
		{"valid", "200", 200 * time.Millisecond},
		{"max", "10000", 10 * time.Second},
		{"over", "60000", 10 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SPLASH_DELAY_MS", tt.env)
			if got := getSplashDelay(); got != tt.want {
				t.Errorf("getSplashDelay() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestGetAudioLoadTimeout(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want time.Duration
	}{
		{"empty", "", 30 * time.Second},
		{"invalid", "abc", 30 * time.Second},
		{"zero", "0", 30 * time.Second},
		{"negative", "-5", 30 * time.Second},
		{"min", "1", time.Second},
		{"mid", "45", 45 * time.Second},
		{"max", "120", 120 * time.Second},
		{"over", "121", 120 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AUDIO_LOAD_TIMEOUT_SECONDS", tt.env)
			if got := getAudioLoadTimeout(); got != tt.want {
				t.Errorf("getAudioLoadTimeout() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestGetPreload(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"", "metadata"},
		{"metadata", "metadata"},
		{"none", "none"},
		{" NONE ", "none"},
		{"auto", "metadata"},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("AUDIO_PRELOAD", tt.env)
			if got := getPreload(); got != tt.want {
				t.Errorf("getPreload() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestGetStoreURL(t *testing.T) {
	t.Setenv("STORE_URL", "")
	if got := getStoreURL(); got != "sqlite://huti.db" {
		t.Errorf("getStoreURL() = %q; want default", got)
	}
	t.Setenv("STORE_URL", "bolt:///var/lib/huti/huti.bolt")
	if got := getStoreURL(); got != "bolt:///var/lib/huti/huti.bolt" {
		t.Errorf("getStoreURL() = %q", got)
	}
}

func TestGetPort(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"", "8080"},
		{"3000", "3000"},
		{"http", "8080"},
		{"0", "8080"},
		{"70000", "8080"},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("PORT", tt.env)
			if got := getPort(); got != tt.want {
				t.Errorf("getPort() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		env  string
		want log.Level
	}{
		{"", log.InfoLevel},
		{"debug", log.DebugLevel},
		{"trace", log.TraceLevel},
		{"loud", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)
			if got := getLogLevel(); got != tt.want {
				t.Errorf("getLogLevel() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestNewConfig(t *testing.T) {
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("CATALOG_FILE", "songs.json")
	t.Setenv("LOG_FILE", "")
	NewConfig()
	if Config == nil {
		t.Fatal("NewConfig() left Config nil")
	}
	if Config.Sentry.IsEnabled() {
		t.Error("Sentry should be disabled without a DSN")
	}
	if Config.Storage.CatalogFile != "songs.json" {
		t.Errorf("CatalogFile = %q", Config.Storage.CatalogFile)
	}
	if Config.Logging.File != "huti.log" {
		t.Errorf("Logging.File = %q; want huti.log", Config.Logging.File)
	}
}
