package configloader

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"crypto_dashboard/internal/domain/entity"
)

// ConfigPathEnv overrides the config file path passed to the binaries.
const ConfigPathEnv = "CONFIG_PATH"

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port                   string   `yaml:"port"`
	Mode                   string   `yaml:"mode"` // gin mode: debug | release | test
	ShutdownTimeoutSeconds int      `yaml:"shutdownTimeoutSeconds"`
	AllowedOrigins         []string `yaml:"allowedOrigins"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// CoinCapConfig holds CoinCap API specific configurations.
type CoinCapConfig struct {
	APIKey               string  `yaml:"apiKey"`
	BaseURL              string  `yaml:"baseURL"`
	AssetsLimit          int     `yaml:"assetsLimit"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RequestsPerSecond    float64 `yaml:"requestsPerSecond"`
}

// AlternativeConfig holds Alternative.me API specific configurations.
type AlternativeConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RequestsPerSecond    float64 `yaml:"requestsPerSecond"`
}

// DEXScreenerConfig holds DEXScreener API specific configurations.
type DEXScreenerConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RequestsPerSecond    float64 `yaml:"requestsPerSecond"`
}

// TokenPriceServiceConfig holds configuration for the TokenPriceService.
type TokenPriceServiceConfig struct {
	TokensDir                string   `yaml:"tokensDir"`
	TrackedNetworks          []string `yaml:"trackedNetworks"`
	MaxTokensPerBatchRequest int      `yaml:"maxTokensPerBatchRequest"`
	CacheTTLMinutes          int      `yaml:"cacheTTLMinutes"`
	RequestTimeoutMillis     int64    `yaml:"requestTimeoutMillis"`
}

// MarketConfig holds caching and refresh settings for market data.
type MarketConfig struct {
	CacheTTLSeconds        int `yaml:"cacheTTLSeconds"`
	RefreshIntervalSeconds int `yaml:"refreshIntervalSeconds"`
	MoversLimit            int `yaml:"moversLimit"`
}

// PortfolioConfig selects where holdings come from.
type PortfolioConfig struct {
	Source       string `yaml:"source"` // fixture | onchain
	HoldingsFile string `yaml:"holdingsFile"`
	HistoryDays  int    `yaml:"historyDays"`
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	MaxConcurrentRoutines int `yaml:"max_concurrent_routines"`
	RPCCallTimeoutSeconds int `yaml:"rpc_call_timeout_seconds"`
}

// SeriesConfig tunes the synthetic chart series.
type SeriesConfig struct {
	DailyNoise    float64 `yaml:"dailyNoise"`
	IntradayNoise float64 `yaml:"intradayNoise"`
	GasHistoryHrs int     `yaml:"gasHistoryHours"`
}

// SwaggerConfig controls the API docs endpoint.
type SwaggerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	SpecPath string `yaml:"specPath"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server        ServerConfig            `yaml:"server"`
	Logging       LoggingConfig           `yaml:"logging"`
	CoinCap       CoinCapConfig           `yaml:"coinCap"`
	Alternative   AlternativeConfig       `yaml:"alternative"`
	DEXScreener   DEXScreenerConfig       `yaml:"dexScreener"`
	TokenPriceSvc TokenPriceServiceConfig `yaml:"tokenPriceService"`
	Market        MarketConfig            `yaml:"market"`
	Portfolio     PortfolioConfig         `yaml:"portfolio"`
	Performance   PerformanceConfig       `yaml:"performance"`
	Series        SeriesConfig            `yaml:"series"`
	Swagger       SwaggerConfig           `yaml:"swagger"`
	GasProfiles   []entity.GasProfile     `yaml:"gasProfiles"`
}

// ResolvePath returns $CONFIG_PATH when set, otherwise fallback.
func ResolvePath(fallback string) string {
	if p := strings.TrimSpace(os.Getenv(ConfigPathEnv)); p != "" {
		return p
	}
	return fallback
}

// Load reads the YAML configuration file from the given path and unmarshals it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Server.ShutdownTimeoutSeconds <= 0 {
		cfg.Server.ShutdownTimeoutSeconds = 5
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Performance.MaxConcurrentRoutines <= 0 {
		cfg.Performance.MaxConcurrentRoutines = 10
	}
	if cfg.Performance.RPCCallTimeoutSeconds <= 0 {
		cfg.Performance.RPCCallTimeoutSeconds = 10
	}

	if cfg.CoinCap.BaseURL == "" {
		cfg.CoinCap.BaseURL = "https://api.coincap.io/v2"
	}
	if cfg.CoinCap.AssetsLimit <= 0 {
		cfg.CoinCap.AssetsLimit = 20
	}
	if cfg.CoinCap.RequestTimeoutMillis <= 0 {
		cfg.CoinCap.RequestTimeoutMillis = 10000
	}
	if cfg.CoinCap.RequestsPerSecond <= 0 {
		cfg.CoinCap.RequestsPerSecond = 2
	}
	// API ключ CoinCap опционален: без него действуют публичные лимиты.

	if cfg.Alternative.BaseURL == "" {
		cfg.Alternative.BaseURL = "https://api.alternative.me"
	}
	if cfg.Alternative.RequestTimeoutMillis <= 0 {
		cfg.Alternative.RequestTimeoutMillis = 10000
	}
	if cfg.Alternative.RequestsPerSecond <= 0 {
		cfg.Alternative.RequestsPerSecond = 1
	}

	if cfg.DEXScreener.BaseURL == "" {
		cfg.DEXScreener.BaseURL = "https://api.dexscreener.com"
	}
	if cfg.DEXScreener.RequestTimeoutMillis <= 0 {
		cfg.DEXScreener.RequestTimeoutMillis = 10000
	}
	if cfg.DEXScreener.RequestsPerSecond <= 0 {
		cfg.DEXScreener.RequestsPerSecond = 5
	}

	if cfg.TokenPriceSvc.TokensDir == "" {
		cfg.TokenPriceSvc.TokensDir = "data/tokens"
	}
	if cfg.TokenPriceSvc.MaxTokensPerBatchRequest <= 0 {
		cfg.TokenPriceSvc.MaxTokensPerBatchRequest = 30 // DEXScreener limit
	}
	if cfg.TokenPriceSvc.CacheTTLMinutes <= 0 {
		cfg.TokenPriceSvc.CacheTTLMinutes = 60
	}
	if cfg.TokenPriceSvc.RequestTimeoutMillis <= 0 {
		cfg.TokenPriceSvc.RequestTimeoutMillis = cfg.DEXScreener.RequestTimeoutMillis
	}

	if cfg.Market.CacheTTLSeconds <= 0 {
		cfg.Market.CacheTTLSeconds = 60
	}
	if cfg.Market.RefreshIntervalSeconds <= 0 {
		cfg.Market.RefreshIntervalSeconds = 60
	}
	if cfg.Market.MoversLimit <= 0 {
		cfg.Market.MoversLimit = 3
	}

	if cfg.Portfolio.Source == "" {
		cfg.Portfolio.Source = "fixture"
	}
	if cfg.Portfolio.HoldingsFile == "" {
		cfg.Portfolio.HoldingsFile = "data/holdings.yaml"
	}
	if cfg.Portfolio.HistoryDays <= 0 {
		cfg.Portfolio.HistoryDays = 30
	}

	if cfg.Series.GasHistoryHrs <= 0 {
		cfg.Series.GasHistoryHrs = 24
	}

	if cfg.Swagger.SpecPath == "" {
		cfg.Swagger.SpecPath = "./docs/swagger.yaml"
	}
}

func validate(cfg *Config) error {
	switch cfg.Portfolio.Source {
	case "fixture", "onchain":
	default:
		return fmt.Errorf("portfolio.source must be fixture or onchain, got %q", cfg.Portfolio.Source)
	}

	seen := make(map[entity.ChainID]struct{}, len(cfg.GasProfiles))
	for _, p := range cfg.GasProfiles {
		if p.Network == "" {
			return fmt.Errorf("gas profile %q has no network", p.Name)
		}
		if _, dup := seen[p.Network]; dup {
			return fmt.Errorf("duplicate gas profile for network %s", p.Network)
		}
		seen[p.Network] = struct{}{}
	}
	return nil
}
