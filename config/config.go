package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config gom cấu hình runtime từ biến môi trường (.env được đọc nếu có).
type Config struct {
	Port           string
	AllowedOrigins []string
	GeneratorURL   string
	EndpointFile   string
	SessionTTL     time.Duration
	Debug          bool
}

// Load đọc .env (nếu tồn tại) rồi lấy biến môi trường với default hợp lý.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:         getenv("PORT", "8080"),
		GeneratorURL: os.Getenv("GENERATOR_URL"),
		EndpointFile: getenv("ENDPOINT_FILE", defaultEndpointFile()),
		SessionTTL:   30 * time.Minute,
		Debug:        os.Getenv("DEBUG") == "1",
	}

	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{"http://localhost:5173"}
	}

	if raw := os.Getenv("SESSION_TTL_MINUTES"); raw != "" {
		if mins, err := strconv.Atoi(raw); err == nil && mins > 0 {
			cfg.SessionTTL = time.Duration(mins) * time.Minute
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultEndpointFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".survey-link-endpoint"
	}
	return home + "/.survey-link/endpoint"
}

// NewLogger dựng logger zap: production JSON mặc định, console khi DEBUG=1.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	c := zap.NewProductionConfig()
	c.DisableStacktrace = true
	return c.Build()
}
