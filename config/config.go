package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	Mongo   MongoConfig   `yaml:"mongo"`
	Site    SiteConfig    `yaml:"site"`
	Assets  AssetsConfig  `yaml:"assets"`
	Block   BlockConfig   `yaml:"block"`
	Nonce   NonceConfig   `yaml:"nonce"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type MongoConfig struct {
	URI    string `yaml:"uri"`
	DBName string `yaml:"db_name"`
}

// SiteConfig 는 퍼머링크/ajax URL 생성과 날짜 표시 형식에 사용되는 사이트 정보다.
type SiteConfig struct {
	URL           string `yaml:"url"`
	AdminAjaxPath string `yaml:"admin_ajax_path"`
	// DateFormat 은 Go time layout 이다. (예: "January 2, 2006")
	DateFormat string `yaml:"date_format"`
	Timezone   string `yaml:"timezone"`
}

// AssetsConfig points at the plugin asset tree. Dir is used for file
// modification times, BaseURL for the URLs handed to the browser.
type AssetsConfig struct {
	Dir     string `yaml:"dir"`
	BaseURL string `yaml:"base_url"`
}

type BlockConfig struct {
	DefaultTitle string `yaml:"default_title"`
	// EscapeTitle 가 false 이면 제목 heading 을 escape 없이 그대로 출력한다. (레거시 동작)
	EscapeTitle bool `yaml:"escape_title"`
}

type NonceConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	config = c
}

// Parse decodes a yaml document, fills defaults and applies environment
// overrides.
func Parse(data []byte) (*AppConfig, error) {
	var c AppConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	c.applyEnv()
	return &c, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Mongo.DBName == "" {
		c.Mongo.DBName = "morefrom"
	}
	if c.Site.AdminAjaxPath == "" {
		c.Site.AdminAjaxPath = "/admin-ajax"
	}
	if c.Site.DateFormat == "" {
		c.Site.DateFormat = "January 2, 2006"
	}
	if c.Site.Timezone == "" {
		c.Site.Timezone = "UTC"
	}
	if c.Assets.Dir == "" {
		c.Assets.Dir = "."
	}
	if c.Block.DefaultTitle == "" {
		c.Block.DefaultTitle = "More From"
	}
	if c.Nonce.TTL <= 0 {
		c.Nonce.TTL = 12 * time.Hour
	}
}

func (c *AppConfig) applyEnv() {
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("NONCE_SECRET"); v != "" {
		c.Nonce.Secret = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Location returns the site timezone, falling back to UTC.
func (s SiteConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
