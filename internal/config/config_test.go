package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("SIGNAL_REFRESH_SECS", "")
	t.Setenv("CACHE_TTL_SECS", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("API_KEY", "")

	cfg := Load()
	if cfg.RedisURL != "localhost:6379" {
		t.Fatalf("unexpected redis default: %s", cfg.RedisURL)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("unexpected port default: %s", cfg.HTTPPort)
	}
	if cfg.SignalRefreshSecs != 300 || cfg.CacheTTLSecs != 300 || cfg.BriefCacheSecs != 300 {
		t.Fatalf("unexpected interval defaults: %+v", cfg)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("unexpected model default: %s", cfg.OpenAIModel)
	}
	if cfg.AdvisorMaxHistory != 20 {
		t.Fatalf("unexpected history default: %d", cfg.AdvisorMaxHistory)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://cache:6379")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SIGNAL_REFRESH_SECS", "120")
	t.Setenv("CACHE_TTL_SECS", "60")
	t.Setenv("BRIEF_CACHE_SECS", "90")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("ADVISOR_MAX_HISTORY", "8")
	t.Setenv("API_KEY", "sekrit")

	cfg := Load()
	if cfg.RedisURL != "redis://cache:6379" || cfg.HTTPPort != "9090" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.SignalRefreshSecs != 120 || cfg.CacheTTLSecs != 60 || cfg.BriefCacheSecs != 90 {
		t.Fatalf("interval overrides not applied: %+v", cfg)
	}
	if cfg.OpenAIModel != "gpt-4o" || cfg.AdvisorMaxHistory != 8 || cfg.APIKey != "sekrit" {
		t.Fatalf("advisor overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsInvalidNumbers(t *testing.T) {
	t.Setenv("SIGNAL_REFRESH_SECS", "not-a-number")
	t.Setenv("CACHE_TTL_SECS", "-5")

	cfg := Load()
	if cfg.SignalRefreshSecs != 300 || cfg.CacheTTLSecs != 300 {
		t.Fatalf("invalid values should fall back to defaults: %+v", cfg)
	}
}
