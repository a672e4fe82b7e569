package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no path is given.
const DefaultConfigFile = "cityreport.yaml"

// Load builds the configuration from defaults, an optional YAML file, a .env
// file and finally the process environment. Later sources win.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	file := FindConfigFile(path)
	if path != "" && file == "" {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if file != "" {
		if err := loadFile(cfg, file); err != nil {
			return nil, err
		}
	}

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile resolves the config file to use:
// the explicit path, ./cityreport.yaml, then the XDG config directory.
// It returns "" when none exists.
func FindConfigFile(path string) string {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	candidate := filepath.Join(XDGConfigDir(), "config.yaml")
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // operator supplied path
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Port, "PORT")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.DemoOTP, "DEMO_OTP")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	setString(&cfg.R2.AccountID, "CLOUDFLARE_ACCOUNT_ID")
	setString(&cfg.R2.AccessKeyID, "CLOUDFLARE_ACCESS_KEY_ID")
	setString(&cfg.R2.SecretAccessKey, "CLOUDFLARE_SECRET_ACCESS_KEY")
	setString(&cfg.R2.BucketName, "CLOUDFLARE_BUCKET_NAME")
	setString(&cfg.R2.PublicURL, "CLOUDFLARE_PUBLIC_URL")

	durations := []struct {
		dst *time.Duration
		key string
	}{
		{&cfg.OTPSendDelay, "OTP_SEND_DELAY"},
		{&cfg.OTPVerifyDelay, "OTP_VERIFY_DELAY"},
		{&cfg.SubmitDelay, "SUBMIT_DELAY"},
		{&cfg.ResendCooldown, "OTP_RESEND_COOLDOWN"},
		{&cfg.SessionTTL, "SESSION_TTL"},
		{&cfg.ChallengeTTL, "CHALLENGE_TTL"},
		{&cfg.DraftTTL, "DRAFT_TTL"},
	}
	var errs []error
	for _, d := range durations {
		if err := setDuration(d.dst, d.key); err != nil {
			errs = append(errs, err)
		}
	}
	if v := os.Getenv("MAX_PHOTO_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("MAX_PHOTO_BYTES: %w", err))
		} else {
			cfg.MaxPhotoBytes = n
		}
	}
	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
