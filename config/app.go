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
	AppName string
	Port    string
	Env     string
	Debug   bool

	// Checkout pricing
	ShippingFlatRate float64
	TaxRatePercent   float64

	SessionTTL        time.Duration
	CartRetentionDays int
	CronInProcess     bool
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = fromEnv()
	})
}

// App returns AppConfig, loading it on first use.
func App() *Config {
	LoadAppConfig()
	return AppConfig
}

func fromEnv() *Config {
	return &Config{
		AppName:           GetEnv("APP_NAME", "ShopZone"),
		Port:              GetEnv("PORT", "8080"),
		Env:               GetEnv("APP_ENV", "development"),
		Debug:             os.Getenv("DEBUG") == "true",
		ShippingFlatRate:  getEnvFloat("SHIPPING_FLAT_RATE", 15),
		TaxRatePercent:    getEnvFloat("TAX_RATE_PERCENT", 8),
		SessionTTL:        getEnvDuration("SESSION_TTL", 24*time.Hour),
		CartRetentionDays: getEnvInt("CART_RETENTION_DAYS", 30),
		CronInProcess:     GetEnv("CRON_IN_PROCESS", "true") == "true",
	}
}
