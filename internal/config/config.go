package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr    string
	Port          string
	GinMode       string
	UploadDir     string
	UploadURLPath string
	MaxUploadMB   int
	AdminUsername string
	AdminPassword string

	Database DatabaseConfig
	Session  SessionConfig
	Redis    RedisConfig
	Log      LogConfig
	SMTP     SMTPConfig
}

// DatabaseConfig 描述数据库驱动与连接参数。
type DatabaseConfig struct {
	Driver string // sqlite | mysql
	Path   string
	MySQL  MySQLConfig
}

// MySQLConfig MySQL 连接参数
type MySQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// SessionConfig 会话 Cookie 配置
type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieSecure bool
}

// DefaultSessionSecret 仅用于本地开发，生产环境必须通过 SESSION_SECRET 覆盖。
const DefaultSessionSecret = "notary-dev-secret"

// UsesDefaultSecret reports whether cookies are signed with the built-in development key.
func (s SessionConfig) UsesDefaultSecret() bool {
	return s.Secret == DefaultSessionSecret
}

// RedisConfig 公共列表缓存所用的 Redis，Addr 为空时禁用缓存。
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// LogConfig 日志级别与滚动文件配置，File 为空时只输出到 stdout。
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// SMTPConfig 联系表单邮件发送配置，Host 为空时只记录日志。
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	Recipient string
}

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Load 从 .env 与环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(), nil
}

// FromEnv builds the configuration from the current process environment only.
func FromEnv() AppConfig {
	port := envString("PORT", "8080")

	listenAddr := envString("LISTEN_ADDR", "")
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	driver := strings.ToLower(envString("DATABASE_DRIVER", DriverSQLite))
	if driver != DriverMySQL {
		driver = DriverSQLite
	}

	return AppConfig{
		ListenAddr:    listenAddr,
		Port:          port,
		GinMode:       envString("GIN_MODE", "release"),
		UploadDir:     envString("UPLOAD_DIR", "web/static/uploads"),
		UploadURLPath: envString("UPLOAD_URL_PATH", "/static/uploads"),
		MaxUploadMB:   envInt("MAX_UPLOAD_MB", 8),
		AdminUsername: envString("ADMIN_USERNAME", ""),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"), // 密码不裁剪空白
		Database: DatabaseConfig{
			Driver: driver,
			Path:   envString("DATABASE_PATH", "notary.db"),
			MySQL: MySQLConfig{
				Host:     envString("MYSQL_HOST", "127.0.0.1"),
				Port:     envInt("MYSQL_PORT", 3306),
				User:     envString("MYSQL_USER", "root"),
				Password: envString("MYSQL_PASSWORD", ""),
				Database: envString("MYSQL_DATABASE", "notary"),
			},
		},
		Session: SessionConfig{
			Secret:       envString("SESSION_SECRET", DefaultSessionSecret),
			TTL:          envDuration("SESSION_TTL", 12*time.Hour),
			CookieSecure: envBool("COOKIE_SECURE", false),
		},
		Redis: RedisConfig{
			Addr:     envString("REDIS_ADDR", ""),
			Password: envString("REDIS_PASSWORD", ""),
			DB:       envInt("REDIS_DB", 0),
			TTL:      envDuration("CACHE_TTL", 5*time.Minute),
		},
		Log: LogConfig{
			Level:      envString("LOG_LEVEL", "info"),
			File:       envString("LOG_FILE", ""),
			MaxSizeMB:  envInt("LOG_MAX_SIZE_MB", 50),
			MaxBackups: envInt("LOG_MAX_BACKUPS", 7),
			MaxAgeDays: envInt("LOG_MAX_AGE_DAYS", 30),
		},
		SMTP: SMTPConfig{
			Host:      envString("SMTP_HOST", ""),
			Port:      envInt("SMTP_PORT", 587),
			Username:  envString("SMTP_USERNAME", ""),
			Password:  envString("SMTP_PASSWORD", ""),
			From:      envString("SMTP_FROM", ""),
			Recipient: envString("CONTACT_RECIPIENT", ""),
		},
	}
}

func envString(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envInt(key string, fallback int) int {
	raw := envString(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envBool(key string, fallback bool) bool {
	raw := envString(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := envString(key, "")
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
