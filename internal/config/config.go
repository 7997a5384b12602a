package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

// Front-ends.
const (
	UITerminal = "terminal"
	UITelegram = "telegram"
)

// Reference data sources.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds application configuration loaded from files, flags and environment variables.
type Config struct {
	Env      string   `mapstructure:"env"`      // current application environment (local, dev, production etc)
	UI       string   `mapstructure:"ui"`       // front-end: terminal or telegram
	Data     Data     `mapstructure:"data"`     // reference data section
	Wheel    Wheel    `mapstructure:"wheel"`    // category wheel section
	Telegram Telegram `mapstructure:"telegram"` // telegram front-end section
	DB       DB       `mapstructure:"database"` // database configuration section
	Log      Log      `mapstructure:"log"`      // logging section
}

// Log contains logging parameters.
type Log struct {
	File string `mapstructure:"file"` // log destination for the terminal front-end
}

// LogFile returns the log destination of the terminal front-end.
func (c *Config) LogFile() string {
	if c.Log.File == "" {
		return "spin-quiz.log"
	}
	return c.Log.File
}

// Data selects where questions and phrases come from.
type Data struct {
	Source string `mapstructure:"source"` // embedded, file or postgres
	Path   string `mapstructure:"path"`   // JSON catalog path for the file source
}

// Wheel contains the spin tunables.
type Wheel struct {
	MinSpins      int           `mapstructure:"min_spins"`      // fewest whole turns per spin
	MaxSpins      int           `mapstructure:"max_spins"`      // most whole turns per spin
	Duration      time.Duration `mapstructure:"duration"`       // spin animation length
	FrameInterval time.Duration `mapstructure:"frame_interval"` // delay between frames
	Easing        string        `mapstructure:"easing"`         // linear, ease-out or ease-in-out
	SpinBonus     int           `mapstructure:"spin_bonus"`     // points credited when the wheel settles
}

// Telegram contains the bot front-end parameters.
type Telegram struct {
	APIToken    string `mapstructure:"-"`             // bot token loaded from environment
	OwnerChatID int64  `mapstructure:"owner_chat_id"` // the only chat allowed to play
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from the .env file, command line flags,
// config files and environment variables, in increasing priority for the
// environment and flags.
func Load(args []string) (*Config, error) {
	// A missing .env is fine, the environment may be set elsewhere.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("ui", UITerminal)
	v.SetDefault("data.source", SourceEmbedded)
	v.SetDefault("data.path", "config/catalog.json")
	v.SetDefault("wheel.min_spins", 5)
	v.SetDefault("wheel.max_spins", 9)
	v.SetDefault("wheel.duration", "3s")
	v.SetDefault("wheel.frame_interval", "50ms")
	v.SetDefault("wheel.easing", "ease-out")
	v.SetDefault("wheel.spin_bonus", 0)
	v.SetDefault("telegram.owner_chat_id", 0)
	v.SetDefault("database.max_connections", 4)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("log.file", "spin-quiz.log")

	// Command line flags override everything else.
	flags := pflag.NewFlagSet("spin-quiz", pflag.ContinueOnError)
	configFile := flags.String("config", "", "path to a config file")
	flags.String("ui", UITerminal, "front-end: terminal or telegram")
	flags.String("data-source", SourceEmbedded, "reference data source: embedded, file or postgres")
	flags.String("data-path", "", "JSON catalog path for the file source")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}
	_ = v.BindPFlag("ui", flags.Lookup("ui"))
	_ = v.BindPFlag("data.source", flags.Lookup("data-source"))
	_ = v.BindPFlag("data.path", flags.Lookup("data-path"))

	if *configFile != "" {
		v.SetConfigFile(*configFile)
	}

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.Telegram.APIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges and the secrets required by the chosen
// front-end and data source.
func (c *Config) Validate() error {
	switch c.UI {
	case UITerminal:
	case UITelegram:
		if c.Telegram.APIToken == "" {
			return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
		}
		if c.Telegram.OwnerChatID == 0 {
			return fmt.Errorf("%w: telegram.owner_chat_id is required", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown ui %q", ErrInvalidConfig, c.UI)
	}

	switch c.Data.Source {
	case SourceEmbedded:
	case SourceFile:
		if c.Data.Path == "" {
			return fmt.Errorf("%w: data.path is required for the file source", ErrInvalidConfig)
		}
	case SourcePostgres:
		if c.DB.URL == "" {
			return fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	default:
		return fmt.Errorf("%w: unknown data source %q", ErrInvalidConfig, c.Data.Source)
	}

	w := c.Wheel
	switch {
	case w.MinSpins < 0 || w.MaxSpins < w.MinSpins:
		return fmt.Errorf("%w: wheel spins range [%d, %d]", ErrInvalidConfig, w.MinSpins, w.MaxSpins)
	case w.Duration < 0:
		return fmt.Errorf("%w: negative wheel duration", ErrInvalidConfig)
	case w.FrameInterval <= 0:
		return fmt.Errorf("%w: wheel frame interval must be positive", ErrInvalidConfig)
	case w.SpinBonus < 0:
		return fmt.Errorf("%w: negative spin bonus", ErrInvalidConfig)
	}

	switch w.Easing {
	case "linear", "ease-out", "ease-in-out":
	default:
		return fmt.Errorf("%w: unknown wheel easing %q", ErrInvalidConfig, w.Easing)
	}

	return nil
}
