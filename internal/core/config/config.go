package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type Auth struct {
	Mode        string // fixed | jwt
	FixedUserID string
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLSec   int    `mapstructure:"ttlSec"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Upload struct {
	Backend  string // local | s3
	Dir      string
	MaxBytes int64
}

type S3 struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
}

type RabbitMQ struct {
	URL      string
	Exchange string
}

type Limits struct {
	RPS           float64
	Burst         int
	PerIP         bool // true 时每个客户端 IP 独立令牌桶
	MaxConcurrent int64
	MaxBodyBytes  int64
	TimeoutSec    int
}

type Policy struct {
	OwnerOnlyDelete   bool
	CascadeUserDelete bool
}

type Config struct {
	App      App
	Log      Log
	Auth     Auth
	JWT      JWT
	DB       DB
	Redis    Redis `mapstructure:"redis"`
	Upload   Upload
	S3       S3
	RabbitMQ RabbitMQ
	Limits   Limits
	Policy   Policy
}

// DefaultFixedUserID 未接入鉴权时使用的调用者
const DefaultFixedUserID = "6863bbc8eb627a884f678c38"

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "wtwr-api")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 3001)
	v.SetDefault("app.http.readTimeoutSec", 10)
	v.SetDefault("app.http.writeTimeoutSec", 15)
	v.SetDefault("app.http.idleTimeoutSec", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.filename", "logs/app.log")
	v.SetDefault("log.file.maxSizeMB", 100)
	v.SetDefault("log.file.maxBackups", 7)
	v.SetDefault("log.file.maxAgeDays", 30)

	v.SetDefault("auth.mode", "fixed")
	v.SetDefault("auth.fixedUserId", DefaultFixedUserID)
	v.SetDefault("jwt.issuer", "wtwr-api")
	v.SetDefault("jwt.accessTokenTTLMin", 60)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "wtwr.db")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 10)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.autoMigrate", true)
	v.SetDefault("db.logLevel", "warn")

	v.SetDefault("redis.ttlSec", 30)

	v.SetDefault("upload.backend", "local")
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.maxBytes", 5<<20)
	v.SetDefault("s3.region", "us-east-1")

	v.SetDefault("rabbitmq.exchange", "wtwr.items")

	v.SetDefault("limits.rps", 200)
	v.SetDefault("limits.burst", 400)
	v.SetDefault("limits.perIP", false)
	v.SetDefault("limits.maxConcurrent", 300)
	v.SetDefault("limits.maxBodyBytes", 16<<20)
	v.SetDefault("limits.timeoutSec", 10)

	v.SetDefault("policy.ownerOnlyDelete", false)
	v.SetDefault("policy.cascadeUserDelete", false)
}

// Load 读取 yaml + APP_ 前缀环境变量；path 为空时取 CONFIG_PATH
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	switch c.Auth.Mode {
	case "fixed":
		if c.Auth.FixedUserID == "" {
			return fmt.Errorf("config: auth.fixedUserId is empty")
		}
	case "jwt":
		if c.JWT.Secret == "" {
			return fmt.Errorf("config: jwt.secret is required when auth.mode=jwt")
		}
	default:
		return fmt.Errorf("config: unknown auth.mode %q", c.Auth.Mode)
	}
	switch c.Upload.Backend {
	case "local", "s3":
	default:
		return fmt.Errorf("config: unknown upload.backend %q", c.Upload.Backend)
	}
	if c.Upload.Backend == "s3" && c.S3.Bucket == "" {
		return fmt.Errorf("config: s3.bucket is required when upload.backend=s3")
	}
	return nil
}
