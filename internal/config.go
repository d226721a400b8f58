package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server          ServerConfig          `mapstructure:"http_server"`
	Database        DatabaseConfig        `mapstructure:"database"`
	Security        SecurityConfig        `mapstructure:"security"`
	EmployeeService EmployeeServiceConfig `mapstructure:"employee_service"`
	Console         ConsoleConfig         `mapstructure:"console"`
	Observability   ObservabilityConfig   `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig backs the session store. An empty Source keeps sessions in memory.
type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Source          string        `mapstructure:"source"`
}

type SecurityConfig struct {
	SessionCookieName string        `mapstructure:"session_cookie_name"`
	SessionTTL        time.Duration `mapstructure:"session_ttl"`
	SecureCookies     bool          `mapstructure:"secure_cookies"`
	// JWTSecret verifies hand-off tokens when set; otherwise claims are read unverified
	// and the upstream service stays the authority on the token.
	JWTSecret string `mapstructure:"jwt_secret"`
}

type EmployeeServiceConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	HealthPath string        `mapstructure:"health_path"`
}

type ConsoleConfig struct {
	IndexPath string `mapstructure:"index_path"`
	LoginPath string `mapstructure:"login_path"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- ENV -----------------

func LoadConfigFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:              getEnvAsInt("HTTP_PORT", 3000),
			BaseURL:           getEnv("HTTP_BASE_URL", ""),
			ReadHeaderTimeout: getEnvAsDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			IdleTimeout:       getEnvAsDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
			WriteTimeout:      getEnvAsDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			Source:          getEnv("DB_SOURCE", ""),
		},
		Security: SecurityConfig{
			SessionCookieName: getEnv("SESSION_COOKIE_NAME", "employee_admin_session"),
			SessionTTL:        getEnvAsDuration("SESSION_TTL", 8*time.Hour),
			SecureCookies:     getEnv("SESSION_SECURE_COOKIES", "true") == "true",
			JWTSecret:         getEnv("JWT_SECRET", ""),
		},
		EmployeeService: EmployeeServiceConfig{
			BaseURL:    getEnv("EMPLOYEE_SERVICE_URL", "http://localhost:8080"),
			Timeout:    getEnvAsDuration("EMPLOYEE_SERVICE_TIMEOUT", 8*time.Second),
			HealthPath: getEnv("EMPLOYEE_SERVICE_HEALTH_PATH", ""),
		},
		Console: ConsoleConfig{
			IndexPath: getEnv("CONSOLE_INDEX_PATH", "/"),
			LoginPath: getEnv("CONSOLE_LOGIN_PATH", "/login"),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
	return cfg
}

// ApplyDefaults fills the zero values a partial config.yml leaves behind.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = 5 * time.Second
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Security.SessionCookieName == "" {
		c.Security.SessionCookieName = "employee_admin_session"
	}
	if c.Security.SessionTTL == 0 {
		c.Security.SessionTTL = 8 * time.Hour
	}
	if c.EmployeeService.Timeout == 0 {
		c.EmployeeService.Timeout = 8 * time.Second
	}
	if c.Console.IndexPath == "" {
		c.Console.IndexPath = "/"
	}
	if c.Console.LoginPath == "" {
		c.Console.LoginPath = "/login"
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "debug"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "text"
	}
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if err := c.EmployeeService.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("employee service config: %v", err))
	}

	if err := c.Console.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("console config: %v", err))
	}

	if err := c.Observability.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Source == "" {
		return nil
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) Enabled() bool {
	return c.Source != ""
}

func (c *SecurityConfig) Validate() error {
	if c.SessionCookieName == "" {
		return errors.New("session_cookie_name is required")
	}
	if c.SessionTTL < time.Minute {
		return errors.New("session_ttl must be at least 1m")
	}
	if c.JWTSecret != "" && len(c.JWTSecret) < 32 {
		return errors.New("jwt_secret must be at least 32 characters")
	}
	return nil
}

func (c *EmployeeServiceConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be http or https, got %q", u.Scheme)
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}

func (c *ConsoleConfig) Validate() error {
	if !strings.HasPrefix(c.IndexPath, "/") || !strings.HasPrefix(c.LoginPath, "/") {
		return errors.New("index_path and login_path must be absolute paths")
	}
	return nil
}

func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown level %q", c.Level)
	}
	if c.Format != "json" && c.Format != "text" {
		return fmt.Errorf("unknown format %q", c.Format)
	}
	return nil
}
