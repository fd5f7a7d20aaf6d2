package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// Placeholder values shipped in .env.example. A config still carrying one of
// these is treated the same as a missing value.
var placeholderValues = map[string]bool{
	"your-api-key-here":  true,
	"your-sheet-id-here": true,
	"changeme":           true,
}

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Sheets holds the Google Sheets data source configuration.
	Sheets SheetsConfig `mapstructure:",squash"`

	// Refresh holds the background refresh settings.
	Refresh RefreshConfig `mapstructure:",squash"`

	// Redis holds the optional snapshot cache settings.
	Redis RedisConfig `mapstructure:",squash"`

	// Proxy holds the optional egress proxy settings.
	Proxy ProxyConfig `mapstructure:",squash"`
}

// SheetsConfig holds the credentials and location of the claims spreadsheet.
type SheetsConfig struct {
	// APIKey is the Google Sheets API key.
	APIKey string `mapstructure:"SHEETS_API_KEY" required:"true"`
	// SpreadsheetID identifies the spreadsheet holding the claims registry.
	SpreadsheetID string `mapstructure:"SHEETS_SPREADSHEET_ID" required:"true"`
	// Range selects the sheet and cell range to read, including the sheet name.
	Range string `mapstructure:"SHEETS_RANGE" default:"REGISTRO DE RECLAMOS R28!A2:O"`
}

// RefreshConfig holds the polling settings for the claims store.
type RefreshConfig struct {
	// IntervalSeconds is the fixed period between refresh cycles.
	IntervalSeconds int `mapstructure:"REFRESH_INTERVAL_SECONDS" default:"30"`
}

// RedisConfig holds the optional Redis snapshot cache settings.
type RedisConfig struct {
	// URL is the Redis connection URL. Empty disables the snapshot cache.
	URL string `mapstructure:"REDIS_URL"`
	// SnapshotTTLSeconds is the snapshot expiry. 0 means no expiration.
	SnapshotTTLSeconds int `mapstructure:"SNAPSHOT_TTL_SECONDS" default:"0"`
}

// ProxyConfig holds optional egress proxy settings for outbound HTTP.
type ProxyConfig struct {
	// Enabled turns the egress proxy on.
	Enabled bool `mapstructure:"PROXY_ENABLED" default:"false"`
	// Hostname is the proxy host.
	Hostname string `mapstructure:"PROXY_HOSTNAME"`
	// Port is the proxy port.
	Port int `mapstructure:"PROXY_PORT"`
	// Username is the proxy auth user.
	Username string `mapstructure:"PROXY_USERNAME"`
	// Password is the proxy auth password.
	Password string `mapstructure:"PROXY_PASSWORD"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero,
// non-placeholder values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" {
			value := val.Field(i)
			key := field.Tag.Get("mapstructure")
			if isZero(value) {
				return fmt.Errorf("missing required configuration: %s", key)
			}
			if value.Kind() == reflect.String && placeholderValues[strings.ToLower(value.String())] {
				return fmt.Errorf("configuration %s still has its placeholder value", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
