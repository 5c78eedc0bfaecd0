package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppEnv  string

	CatalogBaseURL    string
	CatalogTimeout    time.Duration
	CatalogFetchLimit int

	DataDir string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	TaxRate       float64
	PageSize      int
	CheckoutDelay time.Duration
}

// UseSQLStore reports whether the Postgres-backed key-value store should be
// used instead of the file-backed default.
func (c *Config) UseSQLStore() bool {
	return c.DBHost != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intenv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func floatenv(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func durenvms(key string, defMs int) time.Duration {
	return time.Duration(intenv(key, defMs)) * time.Millisecond
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort: getenv("APP_PORT", "8080"),
		AppEnv:  getenv("APP_ENV", "development"),

		CatalogBaseURL:    getenv("CATALOG_BASE_URL", "https://dummyjson.com"),
		CatalogTimeout:    durenvms("CATALOG_TIMEOUT_MS", 5000),
		CatalogFetchLimit: intenv("CATALOG_FETCH_LIMIT", 100),

		DataDir: getenv("DATA_DIR", "data"),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),

		TaxRate:       floatenv("TAX_RATE", 0.10),
		PageSize:      intenv("PAGE_SIZE", 12),
		CheckoutDelay: durenvms("CHECKOUT_DELAY_MS", 1500),
	}
}
