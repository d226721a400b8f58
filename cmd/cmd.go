package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/frahmantamala/employee-admin/internal"
	sessionDatamodel "github.com/frahmantamala/employee-admin/internal/core/datamodel/session"
	"github.com/frahmantamala/employee-admin/internal/session"
	sessionPostgres "github.com/frahmantamala/employee-admin/internal/session/postgres"
	"github.com/frahmantamala/employee-admin/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "employee-admin",
	Short: "Employee Admin",
	Long:  `Admin console and tooling for the employee service.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*internal.Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	// Check if we're running in Docker environment
	if os.Getenv("APP_ENV") == "production" || os.Getenv("DOCKER_ENV") == "true" {
		// Load configuration from environment variables (Docker deployment)
		cfg := internal.LoadConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("error validating config from environment: %w", err)
		}
		return cfg, nil
	}

	// Load configuration from file (development)
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("ENV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}

	return &cfg, nil
}

func initLogger(cfg *internal.Config) *slog.Logger {
	logger.Init(os.Getenv("APP_ENV"),
		logger.WithLevel(cfg.Observability.Logging.Level),
		logger.WithFormat(cfg.Observability.Logging.Format),
	)
	return logger.LoggerWrapper()
}

// openSessionRepository picks postgres when a database is configured and the
// in-memory store otherwise. The returned func releases the connection.
func openSessionRepository(cfg *internal.Config, lg *slog.Logger) (session.RepositoryAPI, func() error, error) {
	if !cfg.Database.Enabled() {
		lg.Warn("no database configured, sessions are kept in memory")
		return session.NewMemoryRepository(), func() error { return nil }, nil
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	if !gormDB.Migrator().HasTable(&sessionDatamodel.ConsoleSession{}) {
		lg.Warn("console_sessions table missing, run the migrate command")
	}

	return sessionPostgres.NewSessionRepository(gormDB), db.Close, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory holding config.yml")

	rootCmd.AddCommand(httpServerCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
