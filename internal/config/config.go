package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Log       LogConfig
	CORS      CORSConfig
	Storage   StorageConfig
	OCR       OCRConfig
	Extractor ExtractorConfig
	Auth      AuthConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StorageConfig holds file storage settings. Provider is "local" or "s3";
// either way uploads are staged on local disk so the parsing pipeline can
// hand file paths to poppler and tesseract.
type StorageConfig struct {
	Provider      string `mapstructure:"provider"`
	UploadDir     string `mapstructure:"upload_dir"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`

	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// OCRConfig holds the external-tool settings for the document parser.
type OCRConfig struct {
	Pdftoppm  string `mapstructure:"pdftoppm"`
	Tesseract string `mapstructure:"tesseract"`
	Language  string `mapstructure:"language"`
	DPI       int    `mapstructure:"dpi"`
	MaxPages  int    `mapstructure:"max_pages"`
}

// ExtractorConfig holds LLM field-extraction settings. This is the only
// credential the extraction pipeline ever sees.
type ExtractorConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// AuthConfig holds token-auth settings. An empty JWTSecret disables auth
// on mutating routes.
type AuthConfig struct {
	JWTSecret         string        `mapstructure:"jwt_secret"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	TokenExpiry       time.Duration `mapstructure:"token_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// Load reads configuration from environment variables with the INVOXD_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVOXD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "invoxd")
	v.SetDefault("db.password", "invoxd_secret")
	v.SetDefault("db.name", "invoxd_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Storage defaults
	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.upload_dir", "./uploads")
	v.SetDefault("storage.max_file_size_mb", 50)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "invoxd-uploads")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.presign_expiry", 3600)

	// OCR defaults
	v.SetDefault("ocr.pdftoppm", "pdftoppm")
	v.SetDefault("ocr.tesseract", "tesseract")
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.dpi", 300)
	v.SetDefault("ocr.max_pages", 0)

	// Extractor defaults
	v.SetDefault("extractor.api_key", "")
	v.SetDefault("extractor.model", "gpt-4o-mini")
	v.SetDefault("extractor.base_url", "https://api.openai.com/v1")
	v.SetDefault("extractor.timeout_secs", 120)

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.admin_password_hash", "")
	v.SetDefault("auth.token_expiry", "12h")
	v.SetDefault("auth.issuer", "invoxd")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "INVOXD_SERVER_PORT",
		"server.read_timeout":      "INVOXD_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "INVOXD_SERVER_WRITE_TIMEOUT",
		"server.environment":       "INVOXD_SERVER_ENVIRONMENT",
		"db.host":                  "INVOXD_DB_HOST",
		"db.port":                  "INVOXD_DB_PORT",
		"db.user":                  "INVOXD_DB_USER",
		"db.password":              "INVOXD_DB_PASSWORD",
		"db.name":                  "INVOXD_DB_NAME",
		"db.sslmode":               "INVOXD_DB_SSLMODE",
		"db.max_open":              "INVOXD_DB_MAX_OPEN",
		"db.max_idle":              "INVOXD_DB_MAX_IDLE",
		"log.level":                "INVOXD_LOG_LEVEL",
		"log.format":               "INVOXD_LOG_FORMAT",
		"cors.allowed_origins":     "INVOXD_CORS_ALLOWED_ORIGINS",
		"storage.provider":         "INVOXD_STORAGE_PROVIDER",
		"storage.upload_dir":       "INVOXD_STORAGE_UPLOAD_DIR",
		"storage.max_file_size_mb": "INVOXD_STORAGE_MAX_FILE_SIZE_MB",
		"storage.region":           "INVOXD_STORAGE_REGION",
		"storage.bucket":           "INVOXD_STORAGE_BUCKET",
		"storage.endpoint":         "INVOXD_STORAGE_ENDPOINT",
		"storage.access_key":       "INVOXD_STORAGE_ACCESS_KEY",
		"storage.secret_key":       "INVOXD_STORAGE_SECRET_KEY",
		"storage.presign_expiry":   "INVOXD_STORAGE_PRESIGN_EXPIRY",
		"ocr.pdftoppm":             "INVOXD_OCR_PDFTOPPM",
		"ocr.tesseract":            "INVOXD_OCR_TESSERACT",
		"ocr.language":             "INVOXD_OCR_LANGUAGE",
		"ocr.dpi":                  "INVOXD_OCR_DPI",
		"ocr.max_pages":            "INVOXD_OCR_MAX_PAGES",
		"extractor.api_key":        "INVOXD_EXTRACTOR_API_KEY",
		"extractor.model":          "INVOXD_EXTRACTOR_MODEL",
		"extractor.base_url":       "INVOXD_EXTRACTOR_BASE_URL",
		"extractor.timeout_secs":   "INVOXD_EXTRACTOR_TIMEOUT_SECS",
		"auth.jwt_secret":          "INVOXD_AUTH_JWT_SECRET",
		"auth.admin_password_hash": "INVOXD_AUTH_ADMIN_PASSWORD_HASH",
		"auth.token_expiry":        "INVOXD_AUTH_TOKEN_EXPIRY",
		"auth.issuer":              "INVOXD_AUTH_ISSUER",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVOXD_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVOXD_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Storage = StorageConfig{
		Provider:      v.GetString("storage.provider"),
		UploadDir:     v.GetString("storage.upload_dir"),
		MaxFileSizeMB: v.GetInt64("storage.max_file_size_mb"),
		Region:        v.GetString("storage.region"),
		Bucket:        v.GetString("storage.bucket"),
		Endpoint:      v.GetString("storage.endpoint"),
		AccessKey:     v.GetString("storage.access_key"),
		SecretKey:     v.GetString("storage.secret_key"),
		PresignExpiry: v.GetInt64("storage.presign_expiry"),
	}
	cfg.OCR = OCRConfig{
		Pdftoppm:  v.GetString("ocr.pdftoppm"),
		Tesseract: v.GetString("ocr.tesseract"),
		Language:  v.GetString("ocr.language"),
		DPI:       v.GetInt("ocr.dpi"),
		MaxPages:  v.GetInt("ocr.max_pages"),
	}
	cfg.Extractor = ExtractorConfig{
		APIKey:      v.GetString("extractor.api_key"),
		Model:       v.GetString("extractor.model"),
		BaseURL:     v.GetString("extractor.base_url"),
		TimeoutSecs: v.GetInt("extractor.timeout_secs"),
	}
	cfg.Auth = AuthConfig{
		JWTSecret:         v.GetString("auth.jwt_secret"),
		AdminPasswordHash: v.GetString("auth.admin_password_hash"),
		TokenExpiry:       v.GetDuration("auth.token_expiry"),
		Issuer:            v.GetString("auth.issuer"),
	}

	return cfg, nil
}
