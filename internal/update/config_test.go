package update

import "testing"

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.WorkMinutes != 25 || cfg.ShortBreakMinutes != 5 || cfg.LongBreakMinutes != 15 {
		t.Fatalf("unexpected timer defaults: %+v", cfg)
	}
	if cfg.DueBuffer != 64 {
		t.Fatalf("unexpected due buffer default: %+v", cfg)
	}
	if cfg.UIStatePath != ".prodo_state.json" {
		t.Fatalf("unexpected state path default: %+v", cfg)
	}
	if cfg.DesktopNotifications {
		t.Fatal("expected desktop notifications off by default")
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("PRODO_DATA_DIR", "/tmp/prodo-test")
	t.Setenv("PRODO_DESKTOP_NOTIFICATIONS", "true")
	t.Setenv("PRODO_WORK_MINUTES", "30")
	t.Setenv("PRODO_SHORT_BREAK_MINUTES", "7")
	t.Setenv("PRODO_LONG_BREAK_MINUTES", "20")
	t.Setenv("PRODO_DUE_BUFFER", "128")
	t.Setenv("PRODO_STATE_FILE", "state/custom.json")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.DataDir != "/tmp/prodo-test" {
		t.Fatalf("unexpected data dir: %+v", cfg)
	}
	if !cfg.DesktopNotifications {
		t.Fatal("expected desktop notifications true from env")
	}
	if cfg.WorkMinutes != 30 || cfg.ShortBreakMinutes != 7 || cfg.LongBreakMinutes != 20 {
		t.Fatalf("unexpected timer config: %+v", cfg)
	}
	if cfg.DueBuffer != 128 {
		t.Fatalf("unexpected due buffer override: %+v", cfg)
	}
	if cfg.UIStatePath != "state/custom.json" {
		t.Fatalf("unexpected state path override: %+v", cfg)
	}
}

func TestRuntimeConfigIgnoresInvalidEnv(t *testing.T) {
	t.Setenv("PRODO_WORK_MINUTES", "not-a-number")
	t.Setenv("PRODO_DUE_BUFFER", "-5")
	t.Setenv("PRODO_DESKTOP_NOTIFICATIONS", "maybe")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.WorkMinutes != 25 || cfg.DueBuffer != 64 || cfg.DesktopNotifications {
		t.Fatalf("expected defaults to survive invalid env: %+v", cfg)
	}
}
