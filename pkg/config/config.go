package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Market struct {
		BaseURL        string        `yaml:"base_url"`
		APIKey         string        `yaml:"api_key"`
		DefaultSymbol  string        `yaml:"default_symbol"`
		Symbols        []string      `yaml:"symbols"`
		LookbackYears  int           `yaml:"lookback_years"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
		CacheTTL       time.Duration `yaml:"cache_ttl"`
		QuoteInterval  time.Duration `yaml:"quote_interval"`
		AllowSimulated bool          `yaml:"allow_simulated"`
	} `yaml:"market"`
	Defaults struct {
		MarginRate    float64 `yaml:"margin_rate"`
		HedgeRatio    float64 `yaml:"hedge_ratio"`
		CostPrice     float64 `yaml:"cost_price"`
		Inventory     float64 `yaml:"inventory"`
		MaxCostPrice  float64 `yaml:"max_cost_price"`
		MaxInventory  float64 `yaml:"max_inventory"`
		SpotReference float64 `yaml:"spot_reference"`
	} `yaml:"defaults"`
	Auth struct {
		BcryptCost   int           `yaml:"bcrypt_cost"`
		SessionTTL   time.Duration `yaml:"session_ttl"`
		ResetCodeTTL time.Duration `yaml:"reset_code_ttl"`
	} `yaml:"auth"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`
	ClickHouse struct {
		Enabled      bool          `yaml:"enabled"`
		Host         string        `yaml:"host"`
		Port         int           `yaml:"port"`
		Database     string        `yaml:"database"`
		User         string        `yaml:"user"`
		Password     string        `yaml:"password"`
		UseHTTP      bool          `yaml:"use_http"`
		AsyncInsert  bool          `yaml:"async_insert"`
		WaitForAsync bool          `yaml:"wait_for_async_insert"`
		DialTimeout  time.Duration `yaml:"dial_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		MaxAttempts  int           `yaml:"max_attempts"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"kafka"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("MARKET_BASE_URL"); v != "" {
		c.Market.BaseURL = v
	}
	if v := os.Getenv("MARKET_API_KEY"); v != "" {
		c.Market.APIKey = v
	}
	if v := os.Getenv("MARKET_SYMBOLS"); v != "" {
		c.Market.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.SQLite.Path = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.Market.DefaultSymbol == "" {
		c.Market.DefaultSymbol = "LC0"
	}
	if c.Market.LookbackYears <= 0 {
		c.Market.LookbackYears = 1
	}
	if c.Market.RequestTimeout <= 0 {
		c.Market.RequestTimeout = 15 * time.Second
	}
	if c.Market.CacheTTL <= 0 {
		c.Market.CacheTTL = 30 * time.Minute
	}
	if c.Market.QuoteInterval <= 0 {
		c.Market.QuoteInterval = 10 * time.Second
	}
	if c.Defaults.MarginRate <= 0 {
		c.Defaults.MarginRate = 0.15
	}
	if c.Defaults.HedgeRatio <= 0 {
		c.Defaults.HedgeRatio = 0.8
	}
	if c.Defaults.CostPrice <= 0 {
		c.Defaults.CostPrice = 100000
	}
	if c.Defaults.Inventory <= 0 {
		c.Defaults.Inventory = 100
	}
	if c.Defaults.MaxCostPrice <= 0 {
		c.Defaults.MaxCostPrice = 500000
	}
	if c.Defaults.MaxInventory <= 0 {
		c.Defaults.MaxInventory = 10000
	}
	if c.Defaults.SpotReference <= 0 {
		c.Defaults.SpotReference = 235000
	}
	if c.Auth.SessionTTL <= 0 {
		c.Auth.SessionTTL = 24 * time.Hour
	}
	if c.Auth.ResetCodeTTL <= 0 {
		c.Auth.ResetCodeTTL = time.Hour
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Market.BaseURL == "" && !c.Market.AllowSimulated {
		return fmt.Errorf("market.base_url is required unless market.allow_simulated is set")
	}
	if c.SQLite.Path == "" {
		return fmt.Errorf("sqlite.path is required")
	}
	if c.Defaults.MarginRate <= 0 || c.Defaults.MarginRate >= 1 {
		return fmt.Errorf("defaults.margin_rate must be in (0,1), got %v", c.Defaults.MarginRate)
	}
	if c.Defaults.HedgeRatio < 0 || c.Defaults.HedgeRatio > 1 {
		return fmt.Errorf("defaults.hedge_ratio must be in [0,1], got %v", c.Defaults.HedgeRatio)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.ClickHouse.Enabled && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required when clickhouse is enabled")
	}
	return nil
}
