package config

import (
	"log"
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

type Rotate struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int `mapstructure:"max_size_mb"`
	MaxBackups int `mapstructure:"max_backups"`
	MaxAgeDays int `mapstructure:"max_age_days"`
	Compress   bool
}

type Log struct {
	Level  string
	JSON   bool
	Rotate Rotate
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int `mapstructure:"access_token_ttl_min"`
}

// Storage 聚合快照的落盘方式：file（单文件）或 redis（固定 key）
type Storage struct {
	Driver string // "file" | "redis"
	Path   string // file 驱动的文件路径
	Key    string // redis 驱动的 key，空则用默认
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Gemini 内容生成 API；ApiKey 为空时全部任务走离线兜底
type Gemini struct {
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	Model      string
	TimeoutSec int `mapstructure:"timeout_sec"`
}

type Config struct {
	App     App
	Log     Log
	JWT     JWT
	Storage Storage
	Redis   Redis  `mapstructure:"redis"`
	Gemini  Gemini `mapstructure:"gemini"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "agri-connect")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 10)
	v.SetDefault("app.http.writetimeoutsec", 20)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("jwt.secret", "dev-secret-change-me")
	v.SetDefault("jwt.issuer", "agri-connect")
	v.SetDefault("jwt.access_token_ttl_min", 720)
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.path", "data/agri_connect.json")
	v.SetDefault("redis.addr", "")
	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("gemini.timeout_sec", 30)
}

// Load 配置文件可缺省：缺省时全部走默认值 + APP_ 环境变量覆盖
func Load(path string) *Config {
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
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			log.Printf("config file %s not found, using defaults", path)
		} else {
			log.Fatalf("read config: %v", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}
