package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host" yaml:"host"`
	Port           int      `mapstructure:"port" yaml:"port"`
	Mode           string   `mapstructure:"mode" yaml:"mode"`
	BaseURL        string   `mapstructure:"base_url" yaml:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ShutdownTimeout falls back to 10s when unset.
func (s *ServerConfig) ShutdownTimeout() time.Duration {
	if s.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver" yaml:"driver"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"-"`
	Database string `mapstructure:"database" yaml:"database"`
	// Path is the sqlite file. Empty keeps the database in memory.
	Path            string `mapstructure:"path" yaml:"path"`
	SSLMode         string `mapstructure:"sslmode" yaml:"sslmode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case DriverPostgres:
		sslmode := d.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslmode)
	case DriverSQLite:
		if d.Path == "" {
			return "file::memory:?cache=shared"
		}
		return d.Path
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
}

// MigrateURL is the database URL golang-migrate expects.
func (d *DatabaseConfig) MigrateURL() string {
	switch d.Driver {
	case DriverPostgres:
		sslmode := d.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s", d.Username, d.Password, d.Host, d.Port, d.Database, sslmode)
	case DriverSQLite:
		return "sqlite3://" + d.GetDSN()
	default:
		return fmt.Sprintf("mysql://%s:%s@tcp(%s:%d)/%s?multiStatements=true", d.Username, d.Password, d.Host, d.Port, d.Database)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
}

type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost" yaml:"bcrypt_cost"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret" yaml:"-"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes" yaml:"access_exp_minutes"`
	Issuer           string `mapstructure:"issuer" yaml:"issuer"`
}

func (j JWTConfig) AccessTTL() time.Duration {
	return time.Duration(j.AccessExpMinutes) * time.Minute
}

type AuthConfig struct {
	Password PasswordConfig `mapstructure:"password" yaml:"password"`
	JWT      JWTConfig      `mapstructure:"jwt" yaml:"jwt"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Password string `mapstructure:"password" yaml:"-"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type BootstrapConfig struct {
	DataDir       string `mapstructure:"data_dir" yaml:"data_dir"`
	AssetDir      string `mapstructure:"asset_dir" yaml:"asset_dir"`
	AdminUsername string `mapstructure:"admin_username" yaml:"admin_username"`
	AdminPassword string `mapstructure:"admin_password" yaml:"-"`
	AdminEmail    string `mapstructure:"admin_email" yaml:"admin_email"`
	// AppVersion overrides the build version, mainly for testing upgrades.
	AppVersion string `mapstructure:"app_version" yaml:"app_version"`
}

type WechatPayConfig struct {
	AppID          string `mapstructure:"appid" yaml:"appid"`
	MchID          string `mapstructure:"mchid" yaml:"mchid"`
	SerialNo       string `mapstructure:"serial_no" yaml:"serial_no"`
	PrivateKeyPath string `mapstructure:"private_key_path" yaml:"private_key_path"`
	APIv3Key       string `mapstructure:"apiv3_key" yaml:"-"`
	NotifyURL      string `mapstructure:"notify_url" yaml:"notify_url"`
}

func (w WechatPayConfig) Enabled() bool {
	return w.AppID != "" && w.MchID != "" && w.PrivateKeyPath != ""
}

type AlipayConfig struct {
	AppID      string `mapstructure:"appid" yaml:"appid"`
	PrivateKey string `mapstructure:"private_key" yaml:"-"`
	PublicKey  string `mapstructure:"public_key" yaml:"-"`
	Production bool   `mapstructure:"production" yaml:"production"`
	NotifyURL  string `mapstructure:"notify_url" yaml:"notify_url"`
}

func (a AlipayConfig) Enabled() bool {
	return a.AppID != "" && a.PrivateKey != ""
}

type PaymentConfig struct {
	TimeoutSeconds int             `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Wechat         WechatPayConfig `mapstructure:"wechat" yaml:"wechat"`
	Alipay         AlipayConfig    `mapstructure:"alipay" yaml:"alipay"`
	// Mock registers an in-process gateway for every method that has no
	// real one configured.
	Mock bool `mapstructure:"mock" yaml:"mock"`
}

func (p PaymentConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// Package center cache drivers.
const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

type CacheConfig struct {
	Driver     string `mapstructure:"driver" yaml:"driver"`
	TTLSeconds int    `mapstructure:"ttl_seconds" yaml:"ttl_seconds"`
}

func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type EmailConfig struct {
	SMTPHost       string `mapstructure:"smtp_host" yaml:"smtp_host"`
	SMTPPort       int    `mapstructure:"smtp_port" yaml:"smtp_port"`
	SMTPUser       string `mapstructure:"smtp_user" yaml:"smtp_user"`
	SMTPPassword   string `mapstructure:"smtp_password" yaml:"-"`
	FromAddress    string `mapstructure:"from_address" yaml:"from_address"`
	FromName       string `mapstructure:"from_name" yaml:"from_name"`
	RefundNotifyTo string `mapstructure:"refund_notify_to" yaml:"refund_notify_to"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps" yaml:"rps"`
	Burst int     `mapstructure:"burst" yaml:"burst"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}
