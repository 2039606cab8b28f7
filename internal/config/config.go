package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jmehdipour/lead-gateway/internal/dispatcher"
	"github.com/jmehdipour/lead-gateway/internal/model"
)

//go:embed defaults.yaml
var defaults []byte

const EnvPrefix = "LEADGW"

// ---- Root ----

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	Log       LogConfig       `mapstructure:"log"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Provider  string          `mapstructure:"provider" validate:"omitempty,oneof=twilio meta"`
	Twilio    TwilioConfig    `mapstructure:"twilio"`
	Meta      MetaConfig      `mapstructure:"meta"`
	Address   AddressConfig   `mapstructure:"address"`
	Message   MessageConfig   `mapstructure:"message"`
}

// ---- Leaf structs ----

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	AllowedOrigin   string        `mapstructure:"allowed_origin"`
	BodyLimit       string        `mapstructure:"body_limit"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

type LogConfig struct {
	Level    string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Encoding string `mapstructure:"encoding" validate:"omitempty,oneof=json console"`
}

type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db" validate:"gte=0"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

type RateLimitConfig struct {
	Max    int           `mapstructure:"max" validate:"gte=0"`
	Window time.Duration `mapstructure:"window" validate:"required_with=Max"`
}

// Credentials are optional here: a missing one fails the dispatch, not the boot.
type TwilioConfig struct {
	AccountSID string        `mapstructure:"account_sid"`
	AuthToken  string        `mapstructure:"auth_token"`
	From       string        `mapstructure:"from"`
	To         string        `mapstructure:"to"`
	BaseURL    string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type MetaConfig struct {
	Token      string        `mapstructure:"token"`
	PhoneID    string        `mapstructure:"phone_id"`
	To         string        `mapstructure:"to"`
	BaseURL    string        `mapstructure:"base_url" validate:"omitempty,url"`
	APIVersion string        `mapstructure:"api_version"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type AddressConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type MessageConfig struct {
	Timezone string `mapstructure:"timezone" validate:"omitempty,timezone"`
}

// Load reads embedded defaults, merges user YAML (if provided), and applies env overrides (LEADGW_*).
func Load(path string) (Config, error) {
	v := viper.New()

	// embedded defaults
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	}

	// env override (LEADGW_TWILIO_AUTH_TOKEN -> twilio.auth_token)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the struct tags.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Location resolves message.timezone; empty means UTC.
func (c Config) Location() (*time.Location, error) {
	if c.Message.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Message.Timezone)
}

// Dispatcher maps the provider sections onto dispatcher.Config.
func (c Config) Dispatcher() dispatcher.Config {
	provider, _ := model.ParseProvider(c.Provider)

	return dispatcher.Config{
		Provider: provider,
		Twilio: dispatcher.TwilioConfig{
			AccountSID: c.Twilio.AccountSID,
			AuthToken:  c.Twilio.AuthToken,
			From:       c.Twilio.From,
			To:         c.Twilio.To,
			BaseURL:    c.Twilio.BaseURL,
			Timeout:    c.Twilio.Timeout,
		},
		Meta: dispatcher.MetaConfig{
			Token:      c.Meta.Token,
			PhoneID:    c.Meta.PhoneID,
			To:         c.Meta.To,
			BaseURL:    c.Meta.BaseURL,
			APIVersion: c.Meta.APIVersion,
			Timeout:    c.Meta.Timeout,
		},
	}
}
