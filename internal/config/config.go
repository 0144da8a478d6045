package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the places backend.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port the HTTP API listens on.
// - AllowedOrigins: Origins permitted by the CORS middleware ("*" allows any).
// - Geocoder: Settings for the address resolution pipeline.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env            string         // Env is the current environment: local, development, production.
	Port           int            // Port is the HTTP API server port.
	AllowedOrigins []string       // AllowedOrigins lists origins the CORS middleware accepts.
	Geocoder       GeocoderConfig // Geocoder holds address resolution settings.
	Database       PostgresConfig // Database holds the postgres database configuration.
}

// GeocoderConfig holds the settings of the address resolution pipeline.
type GeocoderConfig struct {
	ProviderType string // ProviderType specifies which geocoding provider to use (nominatim, google).
	APIKey       string // APIKey for accessing external services (required for Google).
	CountryCode  string // CountryCode the external search is biased to.
	City         string // City appended to qualified query variants.
	Country      string // Country appended to qualified query variants.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad loads the configuration from environment variables (with an
// optional .env file) and returns a Config struct. It panics on malformed
// values.
func MustLoad() *Config {
	_ = godotenv.Load()

	port, err := strconv.Atoi(setDefaultEnv("SAFARX_PORT", "5000"))
	if err != nil {
		panic("failed to parse port for API server from configuration")
	}

	origins := strings.Split(setDefaultEnv("SAFARX_ALLOWED_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &Config{
		Env:            setDefaultEnv("SAFARX_ENV", "production"),
		Port:           port,
		AllowedOrigins: origins,
		Geocoder: GeocoderConfig{
			ProviderType: setDefaultEnv("SAFARX_PROVIDER_TYPE", "nominatim"),
			APIKey:       os.Getenv("SAFARX_PROVIDER_KEY"),
			CountryCode:  setDefaultEnv("SAFARX_COUNTRY_CODE", "so"),
			City:         setDefaultEnv("SAFARX_CITY", "Mogadishu"),
			Country:      setDefaultEnv("SAFARX_COUNTRY", "Somalia"),
		},
		Database: PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     setDefaultEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
