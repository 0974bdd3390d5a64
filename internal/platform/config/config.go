package config

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

const googleTokenURI = "https://oauth2.googleapis.com/token"

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080" validate:"required,numeric"`
	GinMode  string `env:"GIN_MODE" envDefault:"release" validate:"oneof=debug release test"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	FirebaseProjectID    string `env:"FIREBASE_PROJECT_ID" validate:"required"`
	FirebaseCredsBase64  string `env:"FIREBASE_CREDS_BASE64"`
	FirebaseCredsFile    string `env:"FIREBASE_CREDS_FILE"`
	FirebasePrivateKeyID string `env:"FIREBASE_PRIVATE_KEY_ID"`
	FirebasePrivateKey   string `env:"FIREBASE_PRIVATE_KEY"`
	FirebaseClientEmail  string `env:"FIREBASE_CLIENT_EMAIL" validate:"omitempty,email"`
	FirebaseClientID     string `env:"FIREBASE_CLIENT_ID"`

	OrdersCollection string        `env:"ORDERS_COLLECTION" envDefault:"pedidos" validate:"required"`
	FetchTimeout     time.Duration `env:"FETCH_TIMEOUT" envDefault:"2m" validate:"gt=0"`

	ReportTitle    string `env:"REPORT_TITLE" envDefault:"Sales Report"`
	ReportTopItems int    `env:"REPORT_TOP_ITEMS" envDefault:"5" validate:"min=1"`
	OutputDir      string `env:"REPORT_OUTPUT_DIR" envDefault:"." validate:"required"`
	PDFName        string `env:"REPORT_PDF_NAME" envDefault:"sales_report.pdf" validate:"required"`
	WorkbookName   string `env:"REPORT_XLSX_NAME" envDefault:"sales_report.xlsx" validate:"required"`
}

// Load reads the process environment into a Config with sensible defaults.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom is Load over an explicit environment instead of the process one.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.trim()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) trim() {
	for _, s := range []*string{
		&c.Port, &c.GinMode, &c.LogLevel, &c.AllowedOrigins,
		&c.FirebaseProjectID, &c.FirebaseCredsBase64, &c.FirebaseCredsFile,
		&c.FirebasePrivateKeyID, &c.FirebaseClientEmail, &c.FirebaseClientID,
		&c.OrdersCollection, &c.OutputDir, &c.PDFName, &c.WorkbookName,
	} {
		*s = strings.TrimSpace(*s)
	}
}

// Validate ensures required fields are present and well formed.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.FirebaseCredsBase64 == "" && c.FirebaseCredsFile == "" && !c.hasInlineCredentials() {
		return errors.New("provide FIREBASE_CREDS_BASE64, FIREBASE_CREDS_FILE or FIREBASE_PRIVATE_KEY with FIREBASE_CLIENT_EMAIL for Firestore auth")
	}
	return nil
}

func (c Config) hasInlineCredentials() bool {
	return strings.TrimSpace(c.FirebasePrivateKey) != "" && c.FirebaseClientEmail != ""
}

// FirebaseCredentialsJSON returns the service account JSON bytes and the source used.
func (c Config) FirebaseCredentialsJSON() ([]byte, string, error) {
	if c.FirebaseCredsBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(c.FirebaseCredsBase64)
		if err != nil {
			return nil, "base64", fmt.Errorf("decode FIREBASE_CREDS_BASE64: %w", err)
		}
		return decoded, "base64", nil
	}
	if c.FirebaseCredsFile != "" {
		data, err := os.ReadFile(c.FirebaseCredsFile)
		if err != nil {
			return nil, "file", fmt.Errorf("read FIREBASE_CREDS_FILE: %w", err)
		}
		return data, "file", nil
	}
	if c.hasInlineCredentials() {
		data, err := json.Marshal(serviceAccount{
			Type:         "service_account",
			ProjectID:    c.FirebaseProjectID,
			PrivateKeyID: c.FirebasePrivateKeyID,
			PrivateKey:   strings.ReplaceAll(c.FirebasePrivateKey, `\n`, "\n"),
			ClientEmail:  c.FirebaseClientEmail,
			ClientID:     c.FirebaseClientID,
			TokenURI:     googleTokenURI,
		})
		if err != nil {
			return nil, "env", fmt.Errorf("encode service account: %w", err)
		}
		return data, "env", nil
	}
	return nil, "", errors.New("no firebase credentials found")
}

type serviceAccount struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	ClientID     string `json:"client_id"`
	TokenURI     string `json:"token_uri"`
}
