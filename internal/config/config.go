package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Sandbox  SandboxConfig  `mapstructure:"sandbox"`
	Document DocumentConfig `mapstructure:"document"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes"`
}

type GeminiConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	DefaultModel    string        `mapstructure:"default_model"`
	CatalogTimeout  time.Duration `mapstructure:"catalog_timeout"`
	GenerateTimeout time.Duration `mapstructure:"generate_timeout"`
}

type SandboxConfig struct {
	PythonBin string        `mapstructure:"python_bin"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type DocumentConfig struct {
	Title            string  `mapstructure:"title"`
	ImageWidthInches float64 `mapstructure:"image_width_inches"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvPrefix("SCAN2DOC")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// config file wins; fall back to the environment variable
	if cfg.Gemini.APIKey == "" {
		if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
			cfg.Gemini.APIKey = apiKey
		}
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Gemini.BaseURL == "" {
		cfg.Gemini.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Gemini.DefaultModel == "" {
		cfg.Gemini.DefaultModel = "gemini-1.5-flash-latest"
	}
	if cfg.Gemini.CatalogTimeout <= 0 {
		cfg.Gemini.CatalogTimeout = 10 * time.Second
	}
	if cfg.Gemini.GenerateTimeout <= 0 {
		cfg.Gemini.GenerateTimeout = 120 * time.Second
	}
	if cfg.Sandbox.PythonBin == "" {
		cfg.Sandbox.PythonBin = "python3"
	}
	if cfg.Sandbox.Timeout <= 0 {
		cfg.Sandbox.Timeout = 30 * time.Second
	}
	if cfg.Document.Title == "" {
		cfg.Document.Title = "Smart OCR Conversion"
	}
	if cfg.Document.ImageWidthInches <= 0 {
		cfg.Document.ImageWidthInches = 5
	}
}
