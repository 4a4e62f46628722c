package config

import (
	"os"
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName  string
	Port     string
	Env      string
	Debug    bool
	LogLevel string

	// Cart persistence
	CartStorage   string // db, redis or memory
	CartKey       string
	SessionCookie string
	// Idle time before a session's cart leaves memory
	CartSessionTTL time.Duration

	// Checkout hand-off
	CheckoutPhone    string
	CheckoutBaseURL  string
	CheckoutGreeting string
	CheckoutClosing  string

	CatalogCacheTTL        time.Duration
	CatalogWarmSchedule    string
	CatalogReindexSchedule string

	ElasticsearchHost  string
	ElasticsearchIndex string
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:  GetEnv("APP_NAME", "Mixtape Era"),
			Port:     GetEnv("PORT", "8080"),
			Env:      GetEnv("APP_ENV", "dev"),
			Debug:    os.Getenv("DEBUG") == "true",
			LogLevel: GetEnv("LOG_LEVEL", "info"),

			CartStorage:    GetEnv("CART_STORAGE", "db"),
			CartKey:        GetEnv("CART_KEY", "mixtape-cart"),
			SessionCookie:  GetEnv("SESSION_COOKIE", "mixtape_session"),
			CartSessionTTL: getEnvDuration("CART_SESSION_TTL", 30*time.Minute),

			CheckoutPhone:    GetEnv("CHECKOUT_PHONE", "94721717874"),
			CheckoutBaseURL:  GetEnv("CHECKOUT_BASE_URL", "https://wa.me/"),
			CheckoutGreeting: GetEnv("CHECKOUT_GREETING", "Yo Mixtape Era! 📼 I want to secure these drops:"),
			CheckoutClosing:  GetEnv("CHECKOUT_CLOSING", "Let me know payment details!"),

			CatalogCacheTTL:        getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),
			CatalogWarmSchedule:    GetEnv("CRON_CATALOG_WARM", "@every 5m"),
			CatalogReindexSchedule: GetEnv("CRON_CATALOG_REINDEX", "@daily"),

			ElasticsearchHost:  os.Getenv("ELASTICSEARCH_HOST"),
			ElasticsearchIndex: GetEnv("ELASTICSEARCH_INDEX", "mixtape_products"),
		}
	})
}
