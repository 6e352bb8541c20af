// Package config loads runtime settings from a .env file, an optional config
// file and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Storage drivers.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMinio    = "minio"
)

// Setting keys. Viper matches them case-insensitively against the environment.
const (
	KeyAppEnv          = "APP_ENV"
	KeyLogLevel        = "LOG_LEVEL"
	KeyHTTPAddr        = "HTTP_ADDR"
	KeyStorageDriver   = "STORAGE_DRIVER"
	KeyDataDir         = "DATA_DIR"
	KeySQLitePath      = "SQLITE_PATH"
	KeyPostgresDSN     = "POSTGRES_DSN"
	KeyMinioEndpoint   = "MINIO_ENDPOINT"
	KeyMinioAccessKey  = "MINIO_ACCESS_KEY"
	KeyMinioSecretKey  = "MINIO_SECRET_KEY"
	KeyMinioBucket     = "MINIO_BUCKET"
	KeyMinioUseSSL     = "MINIO_USE_SSL"
	KeyMinioRegion     = "MINIO_REGION"
	KeySpotifyBaseURL  = "SPOTIFY_API_BASE_URL"
	KeySpotifyTokenURL = "SPOTIFY_TOKEN_URL"
	KeySpotifyToken    = "SPOTIFY_TOKEN"
	KeySpotifyClientID = "SPOTIFY_CLIENT_ID"
	KeySpotifySecret   = "SPOTIFY_CLIENT_SECRET"
	KeySpotifyRetries  = "SPOTIFY_MAX_RETRIES"
	KeySpotifyBackoff  = "SPOTIFY_RETRY_BACKOFF_MS"
	KeySpotifyRPS      = "SPOTIFY_RATE_LIMIT_RPS"
	KeySpotifyTimeout  = "SPOTIFY_TIMEOUT"
	KeyFeatureWorkers  = "FEATURE_WORKERS"
	KeyConfigFile      = "CONFIG_FILE"
)

var environments = []string{"development", "staging", "production"}

// Config holds all runtime settings.
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	Spotify SpotifyConfig
	// Workers bounds concurrent audio-feature batches per request.
	Workers int
}

// AppConfig holds environment and logging settings.
type AppConfig struct {
	Environment string
	LogLevel    string
}

// HTTPConfig holds server settings.
type HTTPConfig struct {
	Addr string
}

// StorageConfig selects and configures the snapshot store.
type StorageConfig struct {
	Driver      string
	DataDir     string
	SQLitePath  string
	PostgresDSN string
	Minio       MinioConfig
}

// MinioConfig holds object store settings.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
}

// SpotifyConfig holds audio-feature provider settings. The provider is
// optional; it is enabled when a token or client credentials are present.
type SpotifyConfig struct {
	BaseURL      string
	TokenURL     string
	Token        string
	ClientID     string
	ClientSecret string
	MaxRetries   int
	RetryBackoff time.Duration
	RateLimitRPS float64
	Timeout      time.Duration
}

// Enabled reports whether any provider credentials are configured.
func (s SpotifyConfig) Enabled() bool {
	return s.Token != "" || (s.ClientID != "" && s.ClientSecret != "")
}

// Options controls where settings are read from.
type Options struct {
	// EnvFile is loaded before the environment is read. Missing files are ignored.
	EnvFile string
	// ConfigFile overrides CONFIG_FILE.
	ConfigFile string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAppEnv, "development")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyHTTPAddr, ":8080")
	v.SetDefault(KeyStorageDriver, DriverFile)
	v.SetDefault(KeyDataDir, "data")
	v.SetDefault(KeySQLitePath, "data/snapshots.db")
	v.SetDefault(KeyMinioBucket, "snapshots")
	v.SetDefault(KeyMinioUseSSL, false)
	v.SetDefault(KeySpotifyBaseURL, "https://api.spotify.com/v1")
	v.SetDefault(KeySpotifyTokenURL, "https://accounts.spotify.com/api/token")
	v.SetDefault(KeySpotifyRetries, 3)
	v.SetDefault(KeySpotifyBackoff, 500)
	v.SetDefault(KeySpotifyRPS, 10.0)
	v.SetDefault(KeySpotifyTimeout, 10*time.Second)
	v.SetDefault(KeyFeatureWorkers, 4)
}

// Load reads settings into a validated Config. Flags bound to v before the
// call take precedence over the environment, which takes precedence over the
// config file and the defaults.
func Load(v *viper.Viper, opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", opts.EnvFile, err)
		}
	}

	SetDefaults(v)
	v.AutomaticEnv()
	// The token variable name used by earlier deployments.
	if err := v.BindEnv(KeySpotifyToken, KeySpotifyToken, "token"); err != nil {
		return nil, fmt.Errorf("config: bind %s: %w", KeySpotifyToken, err)
	}

	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = os.Getenv(KeyConfigFile)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Environment: v.GetString(KeyAppEnv),
			LogLevel:    v.GetString(KeyLogLevel),
		},
		HTTP: HTTPConfig{Addr: v.GetString(KeyHTTPAddr)},
		Storage: StorageConfig{
			Driver:      v.GetString(KeyStorageDriver),
			DataDir:     v.GetString(KeyDataDir),
			SQLitePath:  v.GetString(KeySQLitePath),
			PostgresDSN: v.GetString(KeyPostgresDSN),
			Minio: MinioConfig{
				Endpoint:  v.GetString(KeyMinioEndpoint),
				AccessKey: v.GetString(KeyMinioAccessKey),
				SecretKey: v.GetString(KeyMinioSecretKey),
				Bucket:    v.GetString(KeyMinioBucket),
				UseSSL:    v.GetBool(KeyMinioUseSSL),
				Region:    v.GetString(KeyMinioRegion),
			},
		},
		Spotify: SpotifyConfig{
			BaseURL:      v.GetString(KeySpotifyBaseURL),
			TokenURL:     v.GetString(KeySpotifyTokenURL),
			Token:        v.GetString(KeySpotifyToken),
			ClientID:     v.GetString(KeySpotifyClientID),
			ClientSecret: v.GetString(KeySpotifySecret),
			MaxRetries:   v.GetInt(KeySpotifyRetries),
			RetryBackoff: time.Duration(v.GetInt(KeySpotifyBackoff)) * time.Millisecond,
			RateLimitRPS: v.GetFloat64(KeySpotifyRPS),
			Timeout:      v.GetDuration(KeySpotifyTimeout),
		},
		Workers: v.GetInt(KeyFeatureWorkers),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(environments, c.App.Environment) {
		errs = append(errs, fmt.Errorf("%s must be one of %v, got %q", KeyAppEnv, environments, c.App.Environment))
	}
	if _, err := zapcore.ParseLevel(c.App.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyLogLevel, err))
	}

	switch c.Storage.Driver {
	case DriverFile:
		if c.Storage.DataDir == "" {
			errs = append(errs, fmt.Errorf("%s is required for the %s driver", KeyDataDir, DriverFile))
		}
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, fmt.Errorf("%s is required for the %s driver", KeySQLitePath, DriverSQLite))
		}
	case DriverPostgres:
		if c.Storage.PostgresDSN == "" {
			errs = append(errs, fmt.Errorf("%s is required for the %s driver", KeyPostgresDSN, DriverPostgres))
		}
	case DriverMinio:
		m := c.Storage.Minio
		if m.Endpoint == "" || m.Bucket == "" || m.AccessKey == "" || m.SecretKey == "" {
			errs = append(errs, fmt.Errorf("%s, %s, %s and %s are required for the %s driver",
				KeyMinioEndpoint, KeyMinioBucket, KeyMinioAccessKey, KeyMinioSecretKey, DriverMinio))
		}
	default:
		errs = append(errs, fmt.Errorf("%s must be one of file, sqlite, postgres, minio, got %q", KeyStorageDriver, c.Storage.Driver))
	}

	if c.Spotify.MaxRetries < 1 {
		errs = append(errs, fmt.Errorf("%s must be at least 1", KeySpotifyRetries))
	}
	if c.Spotify.RateLimitRPS < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeySpotifyRPS))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("%s must be at least 1", KeyFeatureWorkers))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
