package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Wallet WalletConfig `mapstructure:"wallet"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Redis  RedisConfig  `mapstructure:"redis"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	HttpPort string `mapstructure:"http_port"`
	LogLevel string `mapstructure:"log_level"`
}

type WalletConfig struct {
	DefaultCoin  string `mapstructure:"default_coin"`
	Account      uint32 `mapstructure:"account"`
	MnemonicBits int    `mapstructure:"mnemonic_bits"`
	Passphrase   string `mapstructure:"passphrase"` // BIP-39 密码，通常通过环境变量 WALLET_PASSPHRASE 传入
	Keystore     string `mapstructure:"keystore"`   // 加密助记词文件路径
}

// CacheConfig 控制只读派生结果 (xpub -> 地址) 的内存缓存
type CacheConfig struct {
	Driver          string        `mapstructure:"driver"` // memory | redis | multilevel
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

var Global Config

// Init 加载配置到 Global，找不到配置文件时使用默认值和环境变量
func Init() {
	cfg, err := Load("")
	if err != nil {
		log.Fatalf("Fatal error config file: %s \n", err)
	}
	Global = *cfg
	log.Printf("Configuration loaded successfully. Env: %s", Global.App.Env)
}

// Load 读取配置。file 为空时在 . 和 ./config 下查找 config.yaml
func Load(file string) (*Config, error) {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config") // name of config file (without extension)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// 环境变量设置: app.http_port -> APP_HTTP_PORT
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Printf("Warning: Config file not found, using defaults and environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.http_port", "8080")
	v.SetDefault("app.log_level", "")

	v.SetDefault("wallet.default_coin", "BTC")
	v.SetDefault("wallet.account", 0)
	v.SetDefault("wallet.mnemonic_bits", 256)
	v.SetDefault("wallet.passphrase", "")
	v.SetDefault("wallet.keystore", "")

	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.cleanup_interval", 30*time.Minute)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "hdwallet:")
}
