package config

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/glebarez/sqlite"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultSessionTTL is the login lifetime: 7 days.
const DefaultSessionTTL = 7 * 24 * time.Hour

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Auth     AuthConfig     `yaml:"auth"`
	Report   ReportConfig   `yaml:"report"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type ServerConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	AllowOrigins []string      `yaml:"allow_origins"`
}

// DatabaseConfig selects the storage backend. Driver "mysql" uses the
// Host/Port/User/Password/Name fields, "sqlite" uses Path.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Path     string `yaml:"path"`
}

type SessionConfig struct {
	// TTL is how long a login stays valid. Defaults to 168h (7 days); only
	// change it deliberately, clients assume a week.
	TTL           time.Duration `yaml:"ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type AuthConfig struct {
	BcryptCost    int    `yaml:"bcrypt_cost"`
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
}

type ReportConfig struct {
	// Timezone decides which calendar day a submission belongs to.
	Timezone string `yaml:"timezone"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         9871,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			AllowOrigins: []string{"*"},
		},
		Log:      LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
		Database: DatabaseConfig{Driver: "mysql", Host: "127.0.0.1", Port: 3306, Name: "daily_report", Path: "data/daily-report.db"},
		Session:  SessionConfig{TTL: DefaultSessionTTL, SweepInterval: time.Hour},
		Auth:     AuthConfig{BcryptCost: 10, AdminUsername: "admin"},
		Report:   ReportConfig{Timezone: "Local"},
	}
}

func Load(configFile string) *Config {
	c := Default()

	paths := []string{"etc/config-dev.yaml", "/etc/daily-report/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, c); err != nil {
				slog.Warn("config file ignored", "path", path, "err", err)
				c = Default()
			}
			break
		}
	}

	// .env is optional; values already in the environment win.
	_ = godotenv.Load()

	envOverride(&c.Database.Driver, "DB_DRIVER")
	envOverride(&c.Database.Host, "DB_HOST")
	envOverride(&c.Database.User, "DB_USER")
	envOverride(&c.Database.Password, "DB_PASS")
	envOverride(&c.Database.Name, "DB_NAME")
	envOverride(&c.Database.Path, "DB_PATH")
	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.Log.File, "LOG_FILE")
	envOverride(&c.Auth.AdminUsername, "ADMIN_USERNAME")
	envOverride(&c.Auth.AdminPassword, "ADMIN_PASSWORD")
	envOverride(&c.Report.Timezone, "REPORT_TIMEZONE")
	envOverrideInt(&c.Server.Port, "PORT")
	envOverrideInt(&c.Database.Port, "DB_PORT")
	envOverrideInt(&c.Auth.BcryptCost, "BCRYPT_COST")

	if c.Session.TTL != DefaultSessionTTL {
		slog.Warn("session ttl differs from the 7 day default", "ttl", c.Session.TTL.String())
	}
	return c
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// Location resolves the report timezone, falling back to time.Local.
func (c *Config) Location() *time.Location {
	if c.Report.Timezone == "" || c.Report.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) OpenGormDB() (*gorm.DB, error) {
	return c.Database.Open()
}

func (d DatabaseConfig) Open() (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	switch d.Driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(d.Path), gcfg)
	case "mysql", "":
		cfg := gomysql.NewConfig()
		cfg.User = d.User
		cfg.Passwd = d.Password
		cfg.Net = "tcp"
		cfg.Addr = fmt.Sprintf("%s:%d", d.Host, d.Port)
		cfg.DBName = d.Name
		cfg.ParseTime = true

		connector, err := gomysql.NewConnector(cfg)
		if err != nil {
			return nil, fmt.Errorf("create connector: %w", err)
		}
		sqlDB := sql.OpenDB(connector)
		if err := sqlDB.Ping(); err != nil {
			return nil, fmt.Errorf("ping db: %w", err)
		}
		return gorm.Open(mysql.New(mysql.Config{Conn: sqlDB}), gcfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", d.Driver)
	}
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
