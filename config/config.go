package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// AppName names the config directory and the default config file.
const AppName = "cityreport"

// Default values used by NewConfig.
const (
	DefaultPort           = "8080"
	DefaultDemoOTP        = "123456"
	DefaultOTPSendDelay   = 1500 * time.Millisecond
	DefaultOTPVerifyDelay = 1500 * time.Millisecond
	DefaultSubmitDelay    = 2 * time.Second
	DefaultResendCooldown = 60 * time.Second
	DefaultSessionTTL     = 7 * 24 * time.Hour
	DefaultChallengeTTL   = time.Duration(0)
	DefaultMaxPhotoBytes  = int64(32 << 20)
	DefaultDraftTTL       = 30 * time.Minute
	DefaultLogLevel       = "info"
)

type R2Config struct {
	AccountID       string `yaml:"account_id"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	BucketName      string `yaml:"bucket_name"`
	PublicURL       string `yaml:"public_url"`
	Region          string `yaml:"region"`
}

// Enabled reports whether any R2 credential was provided.
func (r R2Config) Enabled() bool {
	return r.AccountID != "" || r.AccessKeyID != "" || r.SecretAccessKey != "" || r.BucketName != ""
}

func (r R2Config) complete() bool {
	return r.AccountID != "" && r.AccessKeyID != "" && r.SecretAccessKey != "" && r.BucketName != ""
}

// Config holds everything the server needs at startup.
type Config struct {
	Port      string `yaml:"port"`
	JWTSecret string `yaml:"jwt_secret"`

	// DemoOTP is the only code the verification step accepts.
	DemoOTP string `yaml:"demo_otp"`

	OTPSendDelay   time.Duration `yaml:"otp_send_delay"`
	OTPVerifyDelay time.Duration `yaml:"otp_verify_delay"`
	SubmitDelay    time.Duration `yaml:"submit_delay"`
	ResendCooldown time.Duration `yaml:"resend_cooldown"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
	DraftTTL       time.Duration `yaml:"draft_ttl"`

	// ChallengeTTL is how long an OTP challenge may sit idle before it is
	// dropped. Zero keeps it until the code is entered.
	ChallengeTTL time.Duration `yaml:"challenge_ttl"`

	// MaxPhotoBytes caps a single photo upload.
	MaxPhotoBytes int64 `yaml:"max_photo_bytes"`

	// DatabaseURL selects the postgres report repository. Empty keeps the
	// in-memory sample reports.
	DatabaseURL string `yaml:"database_url"`

	R2       R2Config `yaml:"r2"`
	LogLevel string   `yaml:"log_level"`
}

func NewConfig() *Config {
	return &Config{
		Port:           DefaultPort,
		DemoOTP:        DefaultDemoOTP,
		OTPSendDelay:   DefaultOTPSendDelay,
		OTPVerifyDelay: DefaultOTPVerifyDelay,
		SubmitDelay:    DefaultSubmitDelay,
		ResendCooldown: DefaultResendCooldown,
		SessionTTL:     DefaultSessionTTL,
		ChallengeTTL:   DefaultChallengeTTL,
		DraftTTL:       DefaultDraftTTL,
		MaxPhotoBytes:  DefaultMaxPhotoBytes,
		R2:             R2Config{Region: "auto"},
		LogLevel:       DefaultLogLevel,
	}
}

// XDGConfigDir returns the per-user config directory, e.g. ~/.config/cityreport.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate returns the first problem found in c.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if len(c.DemoOTP) != 6 {
		return ErrInvalidDemoOTP
	}
	if c.OTPSendDelay < 0 || c.OTPVerifyDelay < 0 || c.SubmitDelay < 0 {
		return ErrNegativeDelay
	}
	if c.ResendCooldown <= 0 {
		return ErrInvalidResendCooldown
	}
	if c.SessionTTL <= 0 {
		return ErrInvalidSessionTTL
	}
	if c.ChallengeTTL < 0 {
		return ErrInvalidChallengeTTL
	}
	if c.DraftTTL <= 0 {
		return ErrInvalidDraftTTL
	}
	if c.MaxPhotoBytes <= 0 {
		return ErrInvalidMaxPhotoBytes
	}
	if c.R2.Enabled() && !c.R2.complete() {
		return ErrIncompleteR2Config
	}
	return nil
}
