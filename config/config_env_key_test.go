package config

import (
	"testing"
	"time"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"delivery": map[string]any{
			"topicId": "",
		},
		"captcha": map[string]any{
			"resendInterval": "30s",
			"sms": map[string]any{
				"ttl": "60s",
			},
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "DELIVERY_TOPICID", want: "delivery.topicId"},
		{envKey: "CAPTCHA_RESENDINTERVAL", want: "captcha.resendInterval"},
		{envKey: "CAPTCHA_SMS_TTL", want: "captcha.sms.ttl"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_FillsCodePolicies(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.Captcha.Length != defaultCodeLength {
		t.Fatalf("code length = %d, want %d", cfg.Captcha.Length, defaultCodeLength)
	}
	if cfg.Captcha.SMS.TTL != 60*time.Second {
		t.Fatalf("sms ttl = %s, want 60s", cfg.Captcha.SMS.TTL)
	}
	if cfg.Captcha.Email.TTL != 300*time.Second {
		t.Fatalf("email ttl = %s, want 300s", cfg.Captcha.Email.TTL)
	}
	if cfg.Cache.Driver != "memory" || cfg.Store.Driver != "memory" || cfg.Delivery.Provider != "log" {
		t.Fatalf("unexpected drivers: cache=%s store=%s delivery=%s", cfg.Cache.Driver, cfg.Store.Driver, cfg.Delivery.Provider)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing access secret")
	}

	cfg.SecretKey.Access = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Cache.Driver = "redis"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for redis without address")
	}
}
