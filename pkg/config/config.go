package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Game     GameConfig     `mapstructure:"game"`
	Ranking  RankingConfig  `mapstructure:"ranking"`
	Airdrop  AirdropConfig  `mapstructure:"airdrop"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// AuthConfig contains wallet verification and session token settings
type AuthConfig struct {
	JWTSecret   string        `mapstructure:"jwt_secret"`
	JWTIssuer   string        `mapstructure:"jwt_issuer"`
	JWTAudience string        `mapstructure:"jwt_audience"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`

	// MessageMaxAge is the freshness window for signed login messages.
	MessageMaxAge time.Duration `mapstructure:"message_max_age"`
	// TimestampPattern extracts the Unix-ms timestamp embedded in the
	// signed message. The first capture group must be the timestamp.
	TimestampPattern string `mapstructure:"timestamp_pattern"`

	DefaultLanguage string `mapstructure:"default_language"`
}

// GameConfig contains score bounds and streak bonus tunables
type GameConfig struct {
	MinScore          int `mapstructure:"min_score"`
	MaxScore          int `mapstructure:"max_score"`
	StreakWindow      int `mapstructure:"streak_window"`
	StreakBonusPerWin int `mapstructure:"streak_bonus_per_win"`
	StreakBonusMax    int `mapstructure:"streak_bonus_max"`
}

// RankingConfig contains leaderboard computation settings
type RankingConfig struct {
	MinScore      int           `mapstructure:"min_score"`
	AirdropTopN   int           `mapstructure:"airdrop_top_n"`
	DefaultLimit  int           `mapstructure:"default_limit"`
	MaxLimit      int           `mapstructure:"max_limit"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
	TopCacheTTL   time.Duration `mapstructure:"top_cache_ttl"`
	UserCacheTTL  time.Duration `mapstructure:"user_cache_ttl"`
	MaxConcurrent int           `mapstructure:"max_concurrent"`
	Languages     []string      `mapstructure:"languages"`
}

// AirdropConfig contains payout execution settings
type AirdropConfig struct {
	BatchSize     int    `mapstructure:"batch_size"`
	RPCURL        string `mapstructure:"rpc_url"`
	ChainID       int64  `mapstructure:"chain_id"`
	TokenAddress  string `mapstructure:"token_address"`
	TokenDecimals int32  `mapstructure:"token_decimals"`
	SenderKey     string `mapstructure:"sender_key"`
	GasLimit      uint64 `mapstructure:"gas_limit"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("server.request_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.database", "arcade")

	// Auth defaults
	viper.SetDefault("auth.jwt_issuer", "arcade-backend")
	viper.SetDefault("auth.jwt_audience", "arcade-clients")
	viper.SetDefault("auth.token_ttl", "24h")
	viper.SetDefault("auth.message_max_age", "5m")
	viper.SetDefault("auth.timestamp_pattern", `Timestamp:\s*(\d{13})`)
	viper.SetDefault("auth.default_language", "en")

	// Game defaults
	viper.SetDefault("game.min_score", 0)
	viper.SetDefault("game.max_score", 1000)
	viper.SetDefault("game.streak_window", 10)
	viper.SetDefault("game.streak_bonus_per_win", 10)
	viper.SetDefault("game.streak_bonus_max", 50)

	// Ranking defaults
	viper.SetDefault("ranking.min_score", 1)
	viper.SetDefault("ranking.airdrop_top_n", 5)
	viper.SetDefault("ranking.default_limit", 50)
	viper.SetDefault("ranking.max_limit", 100)
	viper.SetDefault("ranking.cache_ttl", "5m")
	viper.SetDefault("ranking.top_cache_ttl", "5m")
	viper.SetDefault("ranking.user_cache_ttl", "60s")
	viper.SetDefault("ranking.max_concurrent", 10)
	viper.SetDefault("ranking.languages", []string{"en", "ko", "ja", "zh", "es"})

	// Airdrop defaults
	viper.SetDefault("airdrop.batch_size", 50)
	viper.SetDefault("airdrop.chain_id", 1)
	viper.SetDefault("airdrop.token_decimals", 18)
	viper.SetDefault("airdrop.gas_limit", 100000)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output_path", "stdout")
}

func validate(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if config.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if _, err := regexp.Compile(config.Auth.TimestampPattern); err != nil {
		return fmt.Errorf("auth.timestamp_pattern is not a valid regexp: %w", err)
	}
	if config.Game.MinScore > config.Game.MaxScore {
		return fmt.Errorf("game.min_score must not exceed game.max_score")
	}
	if len(config.Ranking.Languages) == 0 {
		return fmt.Errorf("ranking.languages must not be empty")
	}
	return nil
}
