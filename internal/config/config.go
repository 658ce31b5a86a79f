// Package config loads runtime configuration from the closed set of
// environment variables spec §6 defines, via viper. There is no config
// file: every setting is env-only, mirroring the teacher's config layer
// narrowed to this module's ambient surface.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds every externally supplied setting the module reads.
type Config struct {
	DBPath        string
	HIBPAPIKey    string
	DehashedAPIKey string
	DehashedEmail string
	CaptchaAPIKey string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	AlertEmail    string
}

// Load reads the environment into a Config, applying the one documented
// default (SMTP_PORT=587) and requiring DIGITAL_FOOTPRINT_DB_PATH.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("smtp_port", 587)

	bind := []string{
		"digital_footprint_db_path",
		"hibp_api_key",
		"dehashed_api_key",
		"dehashed_email",
		"captcha_api_key",
		"smtp_host",
		"smtp_port",
		"smtp_user",
		"smtp_password",
		"alert_email",
	}
	for _, key := range bind {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	dbPath := v.GetString("digital_footprint_db_path")
	if dbPath == "" {
		return nil, fmt.Errorf("DIGITAL_FOOTPRINT_DB_PATH is required")
	}

	return &Config{
		DBPath:         dbPath,
		HIBPAPIKey:     v.GetString("hibp_api_key"),
		DehashedAPIKey: v.GetString("dehashed_api_key"),
		DehashedEmail:  v.GetString("dehashed_email"),
		CaptchaAPIKey:  v.GetString("captcha_api_key"),
		SMTPHost:       v.GetString("smtp_host"),
		SMTPPort:       v.GetInt("smtp_port"),
		SMTPUser:       v.GetString("smtp_user"),
		SMTPPassword:   v.GetString("smtp_password"),
		AlertEmail:     v.GetString("alert_email"),
	}, nil
}

// HasHIBP reports whether breach scanning against HIBP is configured.
func (c *Config) HasHIBP() bool { return c.HIBPAPIKey != "" }

// HasDehashed reports whether breach scanning against DeHashed is configured.
func (c *Config) HasDehashed() bool { return c.DehashedAPIKey != "" && c.DehashedEmail != "" }

// HasSMTP reports whether email-based removal requests and alerts can be sent.
func (c *Config) HasSMTP() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPassword != "" && c.AlertEmail != ""
}

// HasCaptchaSolver reports whether a CAPTCHA-solver API key is configured.
// No remover consults it: a web-form removal that detects a CAPTCHA always
// ends with the captcha_required outcome.
func (c *Config) HasCaptchaSolver() bool { return c.CaptchaAPIKey != "" }
