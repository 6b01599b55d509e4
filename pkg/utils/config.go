package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Auth      AuthConfig
	OAuth     OAuthConfig
	Email     EmailConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Seed      SeedConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	FrontendURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
	Migrate  bool
}

type SessionConfig struct {
	ExpiryHours int
}

type AuthConfig struct {
	// AllowedDomain is the institutional email domain, without the "@".
	AllowedDomain string
	AdminEmails   []string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// Enabled reports whether Google login has been configured.
func (c OAuthConfig) Enabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type RateLimitConfig struct {
	// Rate uses the limiter formatted syntax, e.g. "20-M" for 20 requests per minute.
	Rate string
}

type CacheConfig struct {
	Size int
	TTL  time.Duration
}

type SeedConfig struct {
	Enabled       bool
	AdminEmail    string
	AdminPassword string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "mess-review")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("FRONTEND_URL", "http://localhost:5173")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MIGRATE", true)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("ALLOWED_EMAIL_DOMAIN", "pilani.bits-pilani.ac.in")
	viper.SetDefault("RATE_LIMIT", "30-M")
	viper.SetDefault("CACHE_SIZE", 256)
	viper.SetDefault("CACHE_TTL", "30s")
	viper.SetDefault("SEED_ENABLED", true)
	viper.SetDefault("SEED_ADMIN_EMAIL", "admin@pilani.bits-pilani.ac.in")

	// .env is optional, the process environment is enough in containers
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        viper.GetString("APP_NAME"),
			Port:        viper.GetString("PORT"),
			Debug:       viper.GetBool("DEBUG"),
			LogPath:     viper.GetString("LOG_PATH"),
			FrontendURL: viper.GetString("FRONTEND_URL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
			Migrate:  viper.GetBool("DB_MIGRATE"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Auth: AuthConfig{
			AllowedDomain: strings.TrimPrefix(viper.GetString("ALLOWED_EMAIL_DOMAIN"), "@"),
			AdminEmails:   splitList(viper.GetString("ADMIN_EMAILS")),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
			GoogleRedirectURL:  viper.GetString("GOOGLE_REDIRECT_URL"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		RateLimit: RateLimitConfig{
			Rate: viper.GetString("RATE_LIMIT"),
		},
		Cache: CacheConfig{
			Size: viper.GetInt("CACHE_SIZE"),
			TTL:  viper.GetDuration("CACHE_TTL"),
		},
		Seed: SeedConfig{
			Enabled:       viper.GetBool("SEED_ENABLED"),
			AdminEmail:    viper.GetString("SEED_ADMIN_EMAIL"),
			AdminPassword: viper.GetString("SEED_ADMIN_PASSWORD"),
		},
	}

	// the seeded admin always counts as an admin email
	if config.Seed.AdminEmail != "" && !config.Auth.IsAdminEmail(config.Seed.AdminEmail) {
		config.Auth.AdminEmails = append(config.Auth.AdminEmails, strings.ToLower(config.Seed.AdminEmail))
	}

	return config, nil
}

// IsAdminEmail reports whether email is listed as an administrator.
func (c AuthConfig) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, admin := range c.AdminEmails {
		if admin == email {
			return true
		}
	}
	return false
}

// IsInstitutionalEmail reports whether email belongs to the allowed domain.
func (c AuthConfig) IsInstitutionalEmail(email string) bool {
	if c.AllowedDomain == "" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(email)), "@"+strings.ToLower(c.AllowedDomain))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
