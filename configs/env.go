package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MongoURI       string
	Database       string
	JWTSecret      string
	SessionTTL     time.Duration
	AdminEmails    []string
	PublicDir      string
	RequestTimeout time.Duration
	CORSOrigins    string
}

// Load reads configuration from the environment, loading .env first when present.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	cfg := Config{
		AppEnv:         get("APP_ENV", "dev"),
		HTTPAddr:       get("HTTP_ADDR", ":3000"),
		MongoURI:       get("MONGOURI", "mongodb://localhost:27017"),
		Database:       get("MONGO_DATABASE", "shopping_cart"),
		JWTSecret:      get("JWT_SECRET", ""),
		SessionTTL:     time.Duration(getInt("SESSION_TTL_HOURS", 720)) * time.Hour,
		AdminEmails:    getList("ADMIN_EMAILS"),
		PublicDir:      get("PUBLIC_DIR", "./public"),
		RequestTimeout: time.Duration(getInt("REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,
		CORSOrigins:    get("CORS_ORIGINS", "*"),
	}

	if cfg.JWTSecret == "" {
		if cfg.AppEnv != "dev" {
			log.Fatal("JWT_SECRET must be set")
		}
		log.Warn("JWT_SECRET not set, using development secret")
		cfg.JWTSecret = "dev-secret-change-me"
	}

	return cfg
}

// ImageDir is where uploaded product images are written.
func (c Config) ImageDir() string {
	return strings.TrimRight(c.PublicDir, "/") + "/images/product-images"
}

func get(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Warnf("invalid value for %s, using %d", key, def)
	}
	return def
}

func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
