package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Supplier SupplierConfig `yaml:"supplier"`
	DB       DBConfig       `yaml:"db"`
	Redis    RedisConfig    `yaml:"redis"`
	Cache    CacheConfig    `yaml:"cache"`
	Markup   MarkupConfig   `yaml:"markup"`
	Auth     AuthConfig     `yaml:"auth"`
}

type HTTPConfig struct {
	Port string `yaml:"port" env:"PORT" env-default:"8080"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type SupplierConfig struct {
	BaseURL string        `yaml:"base_url" env:"SUPPLIER_BASE_URL"`
	APIKey  string        `yaml:"api_key" env:"SUPPLIER_API_KEY"`
	Timeout time.Duration `yaml:"timeout" env:"SUPPLIER_TIMEOUT" env-default:"30s"`
}

type DBConfig struct {
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env:"DB_NAME"`
}

// Enabled reports whether a rules database is configured at all; without one
// the service prices with no markup.
func (c DBConfig) Enabled() bool {
	return c.Host != ""
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s", c.User, c.Password, c.Host, c.Port, c.Name)
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled" env:"CACHE_ENABLED" env-default:"true"`
	TTL     time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"5m"`
}

type MarkupConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl" env:"MARKUP_CACHE_TTL" env-default:"10m"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		var cfg Config
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			panic("cannot read config from environment: " + err.Error())
		}
		return &cfg
	}
	return MustLoadByPath(path)
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read the config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
