package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultSessionSecret = "secret"

type DatabaseConfig struct {
	Driver string
	URL    string

	// Used to assemble a MySQL DSN when URL is empty.
	User string
	Pass string
	Host string
	Port string
	Name string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type Config struct {
	Port     string
	Database DatabaseConfig
	Redis    RedisConfig

	SessionStore  string
	SessionSecret string
	SessionTTL    time.Duration

	StaticDir string
	UploadDir string

	LogLevel  string
	LogPretty bool

	RateLimitRPS   float64
	RateLimitBurst int

	// Take the client address from X-Forwarded-For / X-Real-IP. Only safe
	// behind a proxy that overwrites those headers.
	TrustProxyHeaders bool

	// Failed logins from one client before it is locked out for LoginBanDuration.
	LoginMaxFailures   int
	LoginFailureWindow time.Duration
	LoginBanDuration   time.Duration

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

// UsesDefaultSecret reports whether SESSION_SECRET was left at its insecure default.
func (c Config) UsesDefaultSecret() bool {
	return c.SessionSecret == defaultSessionSecret
}

// Load reads configuration from an optional .env file and the environment.
func Load() Config {
	envLoaded := godotenv.Load() == nil
	return fromViper(newViper(), envLoaded)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_USER", "")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_NAME", "c372_supermarketdb")
	v.SetDefault("SESSION_STORE", "redis")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_SECRET", defaultSessionSecret)
	v.SetDefault("SESSION_TTL", 7*24*time.Hour)
	v.SetDefault("STATIC_DIR", "public")
	v.SetDefault("UPLOAD_DIR", "public/images")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("RATE_LIMIT_RPS", 1.0)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	v.SetDefault("TRUST_PROXY_HEADERS", false)
	v.SetDefault("LOGIN_MAX_FAILURES", 5)
	v.SetDefault("LOGIN_FAILURE_WINDOW", 15*time.Minute)
	v.SetDefault("LOGIN_BAN_DURATION", 15*time.Minute)
	return v
}

func fromViper(v *viper.Viper, envLoaded bool) Config {
	return Config{
		Port: v.GetString("PORT"),
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("DB_DRIVER")),
			URL:    v.GetString("DATABASE_URL"),
			User:   v.GetString("DB_USER"),
			Pass:   v.GetString("DB_PASS"),
			Host:   v.GetString("DB_HOST"),
			Port:   v.GetString("DB_PORT"),
			Name:   v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		SessionStore:   strings.ToLower(v.GetString("SESSION_STORE")),
		SessionSecret:  v.GetString("SESSION_SECRET"),
		SessionTTL:     v.GetDuration("SESSION_TTL"),
		StaticDir:      v.GetString("STATIC_DIR"),
		UploadDir:      v.GetString("UPLOAD_DIR"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogPretty:      v.GetBool("LOG_PRETTY"),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),

		TrustProxyHeaders: v.GetBool("TRUST_PROXY_HEADERS"),

		LoginMaxFailures:   v.GetInt("LOGIN_MAX_FAILURES"),
		LoginFailureWindow: v.GetDuration("LOGIN_FAILURE_WINDOW"),
		LoginBanDuration:   v.GetDuration("LOGIN_BAN_DURATION"),

		EnvFileLoaded: envLoaded,
	}
}
