package redis

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{name: "defaults", config: NewRedisConfig()},
		{name: "empty host", config: NewRedisConfig().WithHost(""), wantErr: true},
		{name: "bad port", config: NewRedisConfig().WithPort(70000), wantErr: true},
		{name: "bad database", config: NewRedisConfig().WithDatabase(16), wantErr: true},
		{name: "negative ttl", config: NewRedisConfig().WithCacheTTL("weekly-stats", -time.Second), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTTLForFallsBackToDefault(t *testing.T) {
	config := NewRedisConfig().WithCacheTTL("weekly-stats", 5*time.Minute)

	if got := config.TTLFor("weekly-stats"); got != 5*time.Minute {
		t.Fatalf("TTLFor(weekly-stats) = %v", got)
	}
	if got := config.TTLFor("other"); got != config.DefaultCacheTTL {
		t.Fatalf("TTLFor(other) = %v, want %v", got, config.DefaultCacheTTL)
	}
}

func TestBuildCacheKey(t *testing.T) {
	if got := BuildCacheKey("weekly-stats", "user-1"); got != "weekly-stats::user-1" {
		t.Fatalf("BuildCacheKey = %q", got)
	}
	if got := BuildCacheKey("", "plain"); got != "plain" {
		t.Fatalf("BuildCacheKey without namespace = %q", got)
	}
}

func TestRateLimiterOptionsValidate(t *testing.T) {
	if err := NewRateLimiterOptions(0).Validate(); err == nil {
		t.Fatal("expected error for zero limit")
	}
	if err := NewRateLimiterOptions(10).WithWindow(time.Millisecond).Validate(); err == nil {
		t.Fatal("expected error for sub-second window")
	}
	if err := NewRateLimiterOptions(10).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewClientRejectsInvalidConfig(t *testing.T) {
	if _, err := NewClient(NewRedisConfig().WithPort(0)); err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestInfoField(t *testing.T) {
	info := "# Server\r\nredis_version:7.2.4\r\nredis_mode:standalone\r\n"
	if got := infoField(info, "redis_version"); got != "7.2.4" {
		t.Fatalf("infoField() = %q", got)
	}
	if got := infoField(info, "uptime_in_days"); got != "" {
		t.Fatalf("infoField() = %q, want empty", got)
	}
}
