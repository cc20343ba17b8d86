package update

import (
	"os"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DataDir              string
	DesktopNotifications bool
	WorkMinutes          int
	ShortBreakMinutes    int
	LongBreakMinutes     int
	DueBuffer            int
	UIStatePath          string
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DesktopNotifications: false,
		WorkMinutes:          25,
		ShortBreakMinutes:    5,
		LongBreakMinutes:     15,
		DueBuffer:            64,
		UIStatePath:          ".prodo_state.json",
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("PRODO_DATA_DIR")); v != "" {
		cfg.DataDir = v
	}
	if v, ok := getEnvBool("PRODO_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("PRODO_WORK_MINUTES"); ok && v > 0 {
		cfg.WorkMinutes = v
	}
	if v, ok := getEnvInt("PRODO_SHORT_BREAK_MINUTES"); ok && v > 0 {
		cfg.ShortBreakMinutes = v
	}
	if v, ok := getEnvInt("PRODO_LONG_BREAK_MINUTES"); ok && v > 0 {
		cfg.LongBreakMinutes = v
	}
	if v, ok := getEnvInt("PRODO_DUE_BUFFER"); ok && v > 0 {
		cfg.DueBuffer = v
	}
	if v := strings.TrimSpace(os.Getenv("PRODO_STATE_FILE")); v != "" {
		cfg.UIStatePath = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
