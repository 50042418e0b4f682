package config

import "testing"

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"REDIS_HOST", "REDIS_PORT", "RABBITMQ_HOST", "RABBITMQ_PORT",
		"PORT", "SIM_MIN_INTERVAL", "SIM_MAX_INTERVAL", "JWT_SECRET",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Database.Host != "localhost" || cfg.Database.Port != 5432 {
		t.Errorf("database defaults = %s:%d", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.Redis.Port != 6379 {
		t.Errorf("redis port default = %d", cfg.Redis.Port)
	}
	if cfg.HTTP.Port != 3000 {
		t.Errorf("http port default = %d", cfg.HTTP.Port)
	}
	if cfg.Simulator.MinIntervalSeconds != 5 || cfg.Simulator.MaxIntervalSeconds != 60 {
		t.Errorf("simulator interval defaults = %d-%d",
			cfg.Simulator.MinIntervalSeconds, cfg.Simulator.MaxIntervalSeconds)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("PORT", "8080")
	t.Setenv("SIM_MIN_INTERVAL", "10")
	t.Setenv("SIM_MAX_INTERVAL", "30")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Database.Host != "db.internal" {
		t.Errorf("DB_HOST override ignored: %s", cfg.Database.Host)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("PORT override ignored: %d", cfg.HTTP.Port)
	}
	if cfg.Simulator.MinIntervalSeconds != 10 || cfg.Simulator.MaxIntervalSeconds != 30 {
		t.Errorf("simulator overrides ignored: %d-%d",
			cfg.Simulator.MinIntervalSeconds, cfg.Simulator.MaxIntervalSeconds)
	}
}

func TestLoadConfig_NonNumericEnvFallsBack(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.HTTP.Port != 3000 {
		t.Errorf("http port = %d, expected default on non-numeric value", cfg.HTTP.Port)
	}
}

func TestLoadConfig_RejectsBadIntervalBounds(t *testing.T) {
	tests := []struct {
		name     string
		min, max string
	}{
		{"zero minimum", "0", "60"},
		{"negative minimum", "-5", "60"},
		{"max below min", "30", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SIM_MIN_INTERVAL", tt.min)
			t.Setenv("SIM_MAX_INTERVAL", tt.max)

			if _, err := LoadConfig(); err == nil {
				t.Errorf("LoadConfig accepted interval bounds min=%s max=%s", tt.min, tt.max)
			}
		})
	}
}
