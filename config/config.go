package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	BackendREST = "rest"
	BackendSDK  = "sdk"
)

type Config struct {
	APIKey       string        `mapstructure:"gemini_api_key"`
	Model        string        `mapstructure:"gemini_model"`
	BaseURL      string        `mapstructure:"gemini_base_url"`
	APIVersion   string        `mapstructure:"gemini_api_version"`
	Backend      string        `mapstructure:"gemini_backend"`
	PingInterval time.Duration `mapstructure:"upstream_ping_interval"`
	ListenAddr   string        `mapstructure:"listen_addr"`
	LogLevel     string        `mapstructure:"log_level"`
	Debug        bool          `mapstructure:"debug"`
}

var (
	initOnce sync.Once
	current  *Config
	loadErr  error
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.5-flash-preview-09-2025")
	v.SetDefault("gemini_base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("gemini_api_version", "v1beta")
	v.SetDefault("gemini_backend", BackendREST)
	v.SetDefault("upstream_ping_interval", "15s")
	v.SetDefault("listen_addr", ":7458")
	v.SetDefault("log_level", "info")
	v.SetDefault("debug", false)
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		panic(fmt.Sprintf("invalid default configuration: %s", err))
	}
	return cfg
}

// Load reads the configuration from the environment and an optional
// config.yaml in the working directory.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	} else {
		log.Infof("loaded config file %s", v.ConfigFileUsed())
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate does not check APIKey; a missing key is reported per request.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Model, validation.Required),
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.APIVersion, validation.Required),
		validation.Field(&c.Backend, validation.Required, validation.In(BackendREST, BackendSDK)),
		validation.Field(&c.PingInterval, validation.Min(time.Duration(0))),
		validation.Field(&c.LogLevel, validation.By(func(value interface{}) error {
			_, err := log.ParseLevel(value.(string))
			return err
		})),
	)
}

// Init loads the process-wide configuration and sets up logging. It is
// safe to call from every entrypoint; only the first call has effect.
// When loading fails the defaults are used and the failure is kept for Err,
// so that serverless entrypoints can still answer requests.
func Init() {
	initOnce.Do(func() {
		log.SetOutput(os.Stdout)
		log.SetFormatter(&log.TextFormatter{
			DisableColors:   runtime.GOOS == "windows",
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
		cfg, err := Load()
		if err != nil {
			log.Errorf("invalid configuration, falling back to defaults: %s", err)
			loadErr = err
			cfg = Defaults()
		}
		current = cfg
		log.SetLevel(GetLogLevel())
		if cfg.APIKey == "" {
			log.Warn("GEMINI_API_KEY is not set, generation requests will fail")
		}
	})
}

// ReadConfig returns the configuration loaded by Init. The returned value
// must be treated as read-only.
func ReadConfig() *Config {
	Init()
	return current
}

// Err returns the error that made Init fall back to the defaults.
func Err() error {
	Init()
	return loadErr
}

func GetLogLevel() log.Level {
	if current == nil {
		return log.InfoLevel
	}
	level, err := log.ParseLevel(current.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func GetIsDebug() bool {
	return current != nil && current.Debug
}
