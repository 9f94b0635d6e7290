package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	JWT struct {
		Secret     string `yaml:"secret"`
		TTL        int    `yaml:"ttl"`         // access token lifetime, minutes
		RefreshTTL int    `yaml:"refresh_ttl"` // refresh token lifetime, hours
	} `yaml:"jwt"`

	Storage struct {
		Type      string `yaml:"type"`       // local, s3
		BasePath  string `yaml:"base_path"`  // for local storage
		BaseURL   string `yaml:"base_url"`   // public URL base (local)
		Bucket    string `yaml:"bucket"`     // for S3
		Region    string `yaml:"region"`     // for S3
		AccessKey string `yaml:"access_key"` // for S3
		SecretKey string `yaml:"secret_key"` // for S3
		Endpoint  string `yaml:"endpoint"`   // custom S3 endpoint
		URLExpiry int    `yaml:"url_expiry"` // presigned URL lifetime, hours
	} `yaml:"storage"`

	Providers struct {
		ElevenLabsAPIKey string `yaml:"elevenlabs_api_key"`
		OpenAIAPIKey     string `yaml:"openai_api_key"`
		OpenAIModel      string `yaml:"openai_model"`
		DidAPIKey        string `yaml:"did_api_key"`
		HeygenAPIKey     string `yaml:"heygen_api_key"`
		AvatarVariant    string `yaml:"avatar_variant"` // did, heygen
		TimeoutSeconds   int    `yaml:"timeout_seconds"`
	} `yaml:"providers"`
}

var AppConfig *Config

// RequestTimeout returns the per-call deadline for outbound provider calls.
func (c *Config) RequestTimeout() time.Duration {
	if c.Providers.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Providers.TimeoutSeconds) * time.Second
}

// URLExpiry returns how long presigned object URLs stay valid.
func (c *Config) URLExpiry() time.Duration {
	if c.Storage.URLExpiry <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(c.Storage.URLExpiry) * time.Hour
}

// LoadConfig reads config.yaml, then lets environment variables override
// the sensitive values. A .env file is loaded first when present.
func LoadConfig() {
	_ = godotenv.Load()

	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	AppConfig = &cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		cfg.Server.Port, _ = strconv.Atoi(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		cfg.Storage.Bucket = v
	}
	if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
		cfg.Storage.AccessKey = v
	}
	if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
		cfg.Storage.SecretKey = v
	}
	if v := os.Getenv("ELEVENLABS_API_KEY"); v != "" {
		cfg.Providers.ElevenLabsAPIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Providers.OpenAIAPIKey = v
	}
	if v := os.Getenv("DID_API_KEY"); v != "" {
		cfg.Providers.DidAPIKey = v
	}
	if v := os.Getenv("HEYGEN_API_KEY"); v != "" {
		cfg.Providers.HeygenAPIKey = v
	}
	if v := os.Getenv("AVATAR_VARIANT"); v != "" {
		cfg.Providers.AvatarVariant = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.JWT.RefreshTTL == 0 {
		cfg.JWT.RefreshTTL = 24 * 14
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
		cfg.Storage.BasePath = "./uploads"
		cfg.Storage.BaseURL = "/api/v1/files"
	}
	if cfg.Providers.OpenAIModel == "" {
		cfg.Providers.OpenAIModel = "gpt-4o-mini"
	}
	if cfg.Providers.AvatarVariant == "" {
		cfg.Providers.AvatarVariant = "did"
	}
}
