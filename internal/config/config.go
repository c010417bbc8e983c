package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// S3Config holds object storage settings for AWS S3 (or any endpoint speaking the S3 API).
type S3Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// StorageConfig selects the object storage driver.
// PublicBaseURL, when set, is used as the prefix of every public object URL
// (e.g. a CDN in front of the bucket).
type StorageConfig struct {
	Driver        string
	PublicBaseURL string
	MinIO         MinIOConfig
	S3            S3Config
}

// AuthConfig holds the single admin identity and session cookie settings.
type AuthConfig struct {
	AdminID           string
	AdminEmail        string
	AdminPasswordHash string
	SessionSecret     string
	SessionTTLHours   int
	CookieSecure      bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost           string
	SiteName          string
	Port              string
	Timezone          string
	LogMode           string
	UploadBodyLimitMB int
	Database          DatabaseConfig
	Storage           StorageConfig
	Auth              AuthConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:           getEnv("APP_HOST", "localhost:8080"),
		SiteName:          getEnv("SITE_NAME", "VOID"),
		Port:              getEnv("PORT", "8080"),
		Timezone:          getEnv("APP_TIMEZONE", "UTC"),
		LogMode:           getEnv("LOG_MODE", "production"),
		UploadBodyLimitMB: getEnvInt("UPLOAD_BODY_LIMIT_MB", 20),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Storage: StorageConfig{
			Driver:        getEnv("STORAGE_DRIVER", "minio"),
			PublicBaseURL: getEnv("STORAGE_PUBLIC_BASE_URL", ""),
			MinIO: MinIOConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", ""),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", "audio"),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
			S3: S3Config{
				Region:    getEnv("S3_REGION", ""),
				Bucket:    getEnv("S3_BUCKET", "audio"),
				AccessKey: getEnv("S3_ACCESS_KEY", ""),
				SecretKey: getEnv("S3_SECRET_KEY", ""),
				Endpoint:  getEnv("S3_ENDPOINT", ""),
			},
		},
		Auth: AuthConfig{
			AdminID:           getEnv("ADMIN_ID", ""),
			AdminEmail:        getEnv("ADMIN_EMAIL", ""),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			SessionSecret:     getEnv("SESSION_SECRET", ""),
			SessionTTLHours:   getEnvInt("SESSION_TTL_HOURS", 12),
			CookieSecure:      getEnvBool("SESSION_COOKIE_SECURE", true),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
