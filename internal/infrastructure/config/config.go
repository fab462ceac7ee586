package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/buildingai/cozepkg/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server" yaml:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth" yaml:"auth"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis" yaml:"redis"`
	Bootstrap sharedConfig.BootstrapConfig `mapstructure:"bootstrap" yaml:"bootstrap"`
	Payment   sharedConfig.PaymentConfig   `mapstructure:"payment" yaml:"payment"`
	Cache     sharedConfig.CacheConfig     `mapstructure:"cache" yaml:"cache"`
	Email     sharedConfig.EmailConfig     `mapstructure:"email" yaml:"email"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"ratelimit" yaml:"ratelimit"`
	Metrics   sharedConfig.MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`
	Timezone  string                       `mapstructure:"timezone" yaml:"timezone"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml and COZEPKG_* environment variables. A
// missing config file is not an error; defaults and the environment apply.
func Load(env string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("COZEPKG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case sharedConfig.DriverMySQL, sharedConfig.DriverPostgres, sharedConfig.DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Cache.Driver {
	case sharedConfig.CacheDriverMemory, sharedConfig.CacheDriverRedis:
	default:
		return fmt.Errorf("unsupported cache driver %q", c.Cache.Driver)
	}
	if c.Auth.JWT.Secret == "" {
		return fmt.Errorf("auth.jwt.secret must be set")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("timezone", "Asia/Shanghai")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	// Database defaults
	v.SetDefault("database.driver", sharedConfig.DriverMySQL)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "cozepkg")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	v.SetDefault("auth.password.bcrypt_cost", 12)
	v.SetDefault("auth.jwt.secret", "change-me-in-production")
	v.SetDefault("auth.jwt.access_exp_minutes", 120)
	v.SetDefault("auth.jwt.issuer", "cozepkg")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Bootstrap defaults
	v.SetDefault("bootstrap.data_dir", "data")
	v.SetDefault("bootstrap.asset_dir", "")
	v.SetDefault("bootstrap.admin_username", "admin")
	v.SetDefault("bootstrap.admin_email", "admin@example.com")

	// Payment defaults
	v.SetDefault("payment.timeout_seconds", 10)
	v.SetDefault("payment.mock", false)

	// Cache defaults
	v.SetDefault("cache.driver", sharedConfig.CacheDriverMemory)
	v.SetDefault("cache.ttl_seconds", 300)

	// Email defaults
	v.SetDefault("email.smtp_host", "localhost")
	v.SetDefault("email.smtp_port", 1025)
	v.SetDefault("email.from_address", "noreply@cozepkg.local")
	v.SetDefault("email.from_name", "Coze Package")

	v.SetDefault("ratelimit.rps", 10)
	v.SetDefault("ratelimit.burst", 20)
	v.SetDefault("metrics.enabled", true)
}
