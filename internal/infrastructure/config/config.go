package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"

	placeholderSecret = "change-me-to-a-long-random-secret"
	minSecretLength   = 32
)

// Config holds all configuration for the application
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Security SecurityConfig `mapstructure:"security"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	BodyLimit       string        `mapstructure:"body_limit"`
	StaticDir       string        `mapstructure:"static_dir"`
}

// DatabaseConfig holds database configuration.
// DSN, when set, takes precedence over the individual Postgres fields.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret    string        `mapstructure:"secret"`
	ExpiresIn time.Duration `mapstructure:"expires_in"`
	Issuer    string        `mapstructure:"issuer"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	CookieSecure       bool   `mapstructure:"cookie_secure"`
	BcryptCost         int    `mapstructure:"bcrypt_cost"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load loads configuration from defaults, an optional config file, .env and
// the environment, in increasing order of precedence.
func Load(configFile string) (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	bindEnvVars(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Matrix")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)

	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.body_limit", "1M")
	v.SetDefault("server.static_dir", "")

	// Database defaults
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "file:matrix.db?cache=shared")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "matrix")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", "5m")
	v.SetDefault("database.conn_max_idle_time", "30s")

	// JWT defaults
	v.SetDefault("jwt.secret", placeholderSecret)
	v.SetDefault("jwt.expires_in", "168h") // 7 days
	v.SetDefault("jwt.issuer", "matrix-api")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.filename", "")

	// Security defaults
	v.SetDefault("security.cors_allowed_origins", "http://localhost:5173")
	v.SetDefault("security.cookie_secure", false)
	v.SetDefault("security.bcrypt_cost", bcrypt.DefaultCost)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

func bindEnvVars(v *viper.Viper) {
	// App
	_ = v.BindEnv("app.name", "APP_NAME")
	_ = v.BindEnv("app.version", "APP_VERSION")
	_ = v.BindEnv("app.environment", "APP_ENVIRONMENT")
	_ = v.BindEnv("app.debug", "APP_DEBUG")

	// Server
	_ = v.BindEnv("server.port", "SERVER_PORT")
	_ = v.BindEnv("server.host", "SERVER_HOST")
	_ = v.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	_ = v.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")
	_ = v.BindEnv("server.idle_timeout", "SERVER_IDLE_TIMEOUT")
	_ = v.BindEnv("server.request_timeout", "SERVER_REQUEST_TIMEOUT")
	_ = v.BindEnv("server.shutdown_timeout", "SERVER_SHUTDOWN_TIMEOUT")
	_ = v.BindEnv("server.body_limit", "SERVER_BODY_LIMIT")
	_ = v.BindEnv("server.static_dir", "STATIC_DIR")

	// Database
	_ = v.BindEnv("database.driver", "DB_DRIVER")
	_ = v.BindEnv("database.dsn", "DB_DSN")
	_ = v.BindEnv("database.auto_migrate", "DB_AUTO_MIGRATE")
	_ = v.BindEnv("database.host", "DB_HOST")
	_ = v.BindEnv("database.port", "DB_PORT")
	_ = v.BindEnv("database.name", "DB_NAME")
	_ = v.BindEnv("database.user", "DB_USER")
	_ = v.BindEnv("database.password", "DB_PASSWORD")
	_ = v.BindEnv("database.ssl_mode", "DB_SSL_MODE")
	_ = v.BindEnv("database.max_open_conns", "DB_MAX_OPEN_CONNS")
	_ = v.BindEnv("database.max_idle_conns", "DB_MAX_IDLE_CONNS")
	_ = v.BindEnv("database.conn_max_lifetime", "DB_CONN_MAX_LIFETIME")
	_ = v.BindEnv("database.conn_max_idle_time", "DB_CONN_MAX_IDLE_TIME")

	// JWT
	_ = v.BindEnv("jwt.secret", "JWT_SECRET")
	_ = v.BindEnv("jwt.expires_in", "JWT_EXPIRES_IN")
	_ = v.BindEnv("jwt.issuer", "JWT_ISSUER")

	// Logger
	_ = v.BindEnv("logger.level", "LOG_LEVEL")
	_ = v.BindEnv("logger.format", "LOG_FORMAT")
	_ = v.BindEnv("logger.output", "LOG_OUTPUT")
	_ = v.BindEnv("logger.filename", "LOG_FILENAME")

	// Security
	_ = v.BindEnv("security.cors_allowed_origins", "CORS_ALLOWED_ORIGINS")
	_ = v.BindEnv("security.cookie_secure", "COOKIE_SECURE")
	_ = v.BindEnv("security.bcrypt_cost", "BCRYPT_COST")

	// Metrics
	_ = v.BindEnv("metrics.enabled", "ENABLE_METRICS")
	_ = v.BindEnv("metrics.path", "METRICS_PATH")
}

// Validate checks the loaded configuration for values the service cannot run with
func (cfg *Config) Validate() error {
	switch cfg.Database.Driver {
	case DriverPostgres:
		if cfg.Database.DSN == "" && (cfg.Database.Host == "" || cfg.Database.Name == "") {
			return fmt.Errorf("database host and name are required when no dsn is set")
		}
	case DriverSQLite:
		if cfg.Database.DSN == "" {
			return fmt.Errorf("database dsn is required for sqlite3")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if cfg.JWT.Secret == "" || cfg.JWT.Secret == placeholderSecret {
		return fmt.Errorf("JWT secret must be set and should not use default value")
	}

	if len(cfg.JWT.Secret) < minSecretLength {
		return fmt.Errorf("JWT secret must be at least %d bytes", minSecretLength)
	}

	if cfg.JWT.ExpiresIn <= 0 {
		return fmt.Errorf("JWT expiry must be positive")
	}

	if cfg.Security.BcryptCost < bcrypt.MinCost || cfg.Security.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if cfg.App.IsProduction() && !cfg.Security.CookieSecure {
		return fmt.Errorf("cookie_secure must be enabled in production")
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}

	return nil
}

// GetDSN returns the connection string for the configured driver
func (cfg *DatabaseConfig) GetDSN() string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
}

// Address returns the listen address of the HTTP server
func (cfg *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

// IsDevelopment returns true if the environment is development
func (cfg *AppConfig) IsDevelopment() bool {
	return cfg.Environment == "development"
}

// IsProduction returns true if the environment is production
func (cfg *AppConfig) IsProduction() bool {
	return cfg.Environment == "production"
}
