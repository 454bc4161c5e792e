package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Endpoint    string
	AccessKey   string
	SecretKey   string
	BucketMedia string
	UseSSL      bool
	Region      string
}

type SecurityConfig struct {
	JWTSecret        string
	TokenTTL         time.Duration
	RememberTokenTTL time.Duration
	ResetTokenTTL    time.Duration
	VerifyTokenTTL   time.Duration
	LoginMaxAttempts int
	LoginWindow      time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type UploadsConfig struct {
	MaxSizeBytes int64
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Storage          StorageConfig
	Security         SecurityConfig
	SMTP             SMTPConfig
	Uploads          UploadsConfig
	ClientBaseURL    string
	AdminBaseURL     string
	ContactEmail     string
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("CHANTIERPRO")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("postgres.maxopen", 30)
	v.SetDefault("postgres.maxidle", 10)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.bucketmedia", "chantierpro-media")
	v.SetDefault("storage.usessl", false)
	v.SetDefault("storage.region", "us-east-1")

	v.SetDefault("security.tokenttl", "24h")
	v.SetDefault("security.remembertokenttl", "720h") // 30 days
	v.SetDefault("security.resettokenttl", "5m")
	v.SetDefault("security.verifytokenttl", "24h")
	v.SetDefault("security.loginmaxattempts", 10)
	v.SetDefault("security.loginwindow", "15m")

	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.from", "no-reply@chantierpro.ca")

	v.SetDefault("uploads.maxsizebytes", 10<<20)

	v.SetDefault("clientbaseurl", "http://localhost:3000")
	v.SetDefault("adminbaseurl", "http://localhost:3001")
	v.SetDefault("contactemail", "info@chantierpro.ca")
}
