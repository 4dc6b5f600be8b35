package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Messaging MessagingConfig `mapstructure:"messaging"`
	Ranking   RankingConfig   `mapstructure:"ranking"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	// gin mode: debug, release or test
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	// mysql, postgres or sqlite
	Driver       string        `mapstructure:"driver"`
	DSN          string        `mapstructure:"dsn"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

type LogConfig struct {
	Level          string `mapstructure:"level"`
	ProductionMode bool   `mapstructure:"production_mode"`
	// 为空时只输出到stderr
	File string `mapstructure:"file"`
}

type CacheConfig struct {
	// redis or none
	Provider string        `mapstructure:"provider"`
	TTL      time.Duration `mapstructure:"ttl"`
	Redis    RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MessagingConfig struct {
	// kafka, log or none
	Provider string      `mapstructure:"provider"`
	Kafka    KafkaConfig `mapstructure:"kafka"`
}

type KafkaConfig struct {
	Brokers     []string `mapstructure:"brokers"`
	TopicPrefix string   `mapstructure:"topic_prefix"`
}

type RankingConfig struct {
	MaxK int `mapstructure:"max_k"`
}

var GlobalConfig Config

// Dir 返回项目根目录下的 config 目录
func Dir() string {
	_, b, _, _ := runtime.Caller(0)
	basepath := filepath.Dir(filepath.Dir(filepath.Dir(b)))
	return filepath.Join(basepath, "config")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8001")
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.query_timeout", 5*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("cache.provider", "none")
	v.SetDefault("cache.ttl", 30*time.Second)
	v.SetDefault("messaging.provider", "none")
	v.SetDefault("messaging.kafka.topic_prefix", "fileshare")
	v.SetDefault("ranking.max_k", 10)
}

// Load 读取 <dir>/<name>.yaml，FILESHARE_* 环境变量可以覆盖其中的值，例如 FILESHARE_DATABASE_DSN
func Load(dir, name string) (*Config, error) {
	// .env 文件是可选的
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("FILESHARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Ranking.MaxK < 1 {
		return fmt.Errorf("ranking.max_k must be positive, got %d", c.Ranking.MaxK)
	}
	return nil
}

func Init() error {
	cfg, err := Load(Dir(), "config")
	if err != nil {
		return err
	}
	GlobalConfig = *cfg
	return nil
}

// 测试用的配置文件
func InitTest() error {
	cfg, err := Load(Dir(), "config.test")
	if err != nil {
		return err
	}
	GlobalConfig = *cfg
	return nil
}
