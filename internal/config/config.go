package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST" validate:"required"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" validate:"duration"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET" validate:"required"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION" validate:"duration"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	// Portal holds the campus-specific settings: who the administrator is,
	// which school and departments exist, and how content is presented.
	Portal struct {
		AdminEmail            string   `yaml:"admin_email" env:"PORTAL_ADMIN_EMAIL" validate:"required"`
		AdminPassword         string   `yaml:"admin_password" env:"ADMIN_PASSWORD"`
		SchoolName            string   `yaml:"school_name" env:"PORTAL_SCHOOL_NAME"`
		Departments           []string `yaml:"departments" env:"PORTAL_DEPARTMENTS" validate:"min=1"`
		Timezone              string   `yaml:"timezone" env:"PORTAL_TIMEZONE"`
		PopularLimit          int      `yaml:"popular_limit" env:"PORTAL_POPULAR_LIMIT" validate:"gt=0"`
		NoticeMissingRedirect bool     `yaml:"notice_missing_redirect" env:"PORTAL_NOTICE_MISSING_REDIRECT"`
	} `yaml:"portal"`

	SMTP struct {
		Host      string `yaml:"host" env:"SMTP_HOST"`
		Port      int    `yaml:"port" env:"SMTP_PORT"`
		Username  string `yaml:"username" env:"SMTP_USERNAME"`
		Password  string `yaml:"password" env:"SMTP_PASSWORD"`
		FromName  string `yaml:"from_name" env:"SMTP_FROM_NAME"`
		FromEmail string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
		UseTLS    bool   `yaml:"use_tls" env:"SMTP_USE_TLS"`
	} `yaml:"smtp"`
}

// DefaultDepartments is the known department list used when none is configured.
var DefaultDepartments = []string{
	"컴퓨터공학과",
	"정보통신공학과",
	"전자공학과",
	"기계공학부",
	"화학공학부",
	"건축학부",
	"경영학과",
	"경제금융학부",
	"국어국문학과",
	"영어영문학과",
}

// LoadDotEnv loads variables from a .env file into the process environment.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(reflect.ValueOf(config)); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "camnote"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.Issuer = "camnote.app"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Portal defaults
	config.Portal.AdminEmail = "admin@example.com"
	config.Portal.SchoolName = "영남대학교"
	config.Portal.Departments = append([]string(nil), DefaultDepartments...)
	config.Portal.Timezone = "Asia/Seoul"
	config.Portal.PopularLimit = 5

	// SMTP defaults
	config.SMTP.Port = 587
	config.SMTP.FromName = "CamNote"
}

var configValidator = func() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		_, err := time.ParseDuration(fl.Field().String())
		return err == nil
	})
	return v
}()

var fieldLabels = map[string]string{
	"Config.Database.Host":             "database host",
	"Config.Database.ConnMaxLifetime":  "database connection max lifetime",
	"Config.JWT.Secret":                "JWT secret",
	"Config.JWT.AccessTokenExpiration": "JWT access token expiration",
	"Config.Portal.AdminEmail":         "portal admin email",
	"Config.Portal.Departments":        "department",
	"Config.Portal.PopularLimit":       "portal popular limit",
}

// validateConfig reports the first rule broken by the `validate` tags.
func validateConfig(config *Config) error {
	err := configValidator.Struct(config)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fe := verrs[0]
	label, ok := fieldLabels[fe.Namespace()]
	if !ok {
		label = fe.Namespace()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", label)
	case "duration":
		return fmt.Errorf("%s: invalid duration %q", label, fe.Value())
	case "min":
		return fmt.Errorf("at least one %s must be configured", label)
	case "gt":
		return fmt.Errorf("%s must be positive", label)
	}
	return fmt.Errorf("%s fails %s", label, fe.Tag())
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
