package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Engine   EngineConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// EngineConfig holds the tunable knobs of the compliance scan engine.
// Statutory thresholds default to the current India values but are
// configuration, not hardcoded law.
type EngineConfig struct {
	PFWageCeiling        float64
	ESIGrossCeiling      float64
	AnnualIncomeTDSFloor float64
	SpikeMultiplier      float64
	BasicShareFloor      float64
	OvertimeDailyLimit   float64
	OvertimeMonthlyWarn  float64
	OvertimeMonthlyMax   float64
	DebounceDelay        time.Duration
	StateRulesPath       string
	ScanInterval         time.Duration
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "compliance_risk"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Engine configuration
	debounce, err := time.ParseDuration(getEnv("SCAN_DEBOUNCE_DELAY", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCAN_DEBOUNCE_DELAY: %w", err)
	}
	scanInterval, err := time.ParseDuration(getEnv("SCAN_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCAN_INTERVAL: %w", err)
	}

	config.Engine = EngineConfig{
		PFWageCeiling:        getEnvFloat("ENGINE_PF_WAGE_CEILING", 15000),
		ESIGrossCeiling:      getEnvFloat("ENGINE_ESI_GROSS_CEILING", 21000),
		AnnualIncomeTDSFloor: getEnvFloat("ENGINE_ANNUAL_INCOME_TDS_FLOOR", 1000000),
		SpikeMultiplier:      getEnvFloat("ENGINE_SALARY_SPIKE_MULTIPLIER", 1.3),
		BasicShareFloor:      getEnvFloat("ENGINE_BASIC_SHARE_FLOOR", 0.35),
		OvertimeDailyLimit:   getEnvFloat("ENGINE_OVERTIME_DAILY_LIMIT", 2),
		OvertimeMonthlyWarn:  getEnvFloat("ENGINE_OVERTIME_MONTHLY_WARN", 40),
		OvertimeMonthlyMax:   getEnvFloat("ENGINE_OVERTIME_MONTHLY_MAX", 50),
		DebounceDelay:        debounce,
		StateRulesPath:       getEnv("STATE_RULES_PATH", ""),
		ScanInterval:         scanInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Engine.OvertimeMonthlyWarn > c.Engine.OvertimeMonthlyMax {
		return fmt.Errorf("ENGINE_OVERTIME_MONTHLY_WARN must not exceed ENGINE_OVERTIME_MONTHLY_MAX")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %v", key, value, fallback)
		return fallback
	}
	return parsed
}
