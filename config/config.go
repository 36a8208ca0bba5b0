package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Jeffail/gabs/v2"
)

const (
	DefaultMaxCharacters     = 10
	DefaultHashCost          = 12
	DefaultTokenExpiry       = 24 * time.Hour
	DefaultTokenIssuer       = "pokeelite-api"
	DefaultTemplateCharacter = "Pokemon Trainer Sample"
	DefaultServerName        = "PokeElite"

	minSigningKeyLength = 32
)

type Config struct {
	Version      string
	Port         string
	ServerName   string
	AllowOrigins string

	DBDriver    string
	Dsn         string
	AutoMigrate bool

	PremiumDaysDefault      int
	MaxCharactersPerAccount int
	HashCost                int
	TemplateCharacter       string

	TokenSigningKey string
	TokenExpiry     time.Duration
	TokenIssuer     string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
}

// EmailEnabled reports whether an SMTP relay was configured.
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != ""
}

func Read(path string) (*Config, error) {
	parsed, err := gabs.ParseJSONFile(path)
	if err != nil {
		return nil, err
	}
	return parse(parsed)
}

func Parse(data []byte) (*Config, error) {
	parsed, err := gabs.ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return parse(parsed)
}

func parse(parsed *gabs.Container) (*Config, error) {
	cfg := &Config{}
	var err error

	if cfg.Dsn, err = requiredString(parsed, "db.dsn"); err != nil {
		return nil, err
	}
	if cfg.Port, err = requiredString(parsed, "port"); err != nil {
		return nil, err
	}
	if cfg.TokenSigningKey, err = requiredString(parsed, "token.signing_key"); err != nil {
		return nil, err
	}
	if len(cfg.TokenSigningKey) < minSigningKeyLength {
		return nil, fmt.Errorf("token.signing_key must be at least %d bytes", minSigningKeyLength)
	}

	if cfg.Version, err = optionalString(parsed, "version", "dev"); err != nil {
		return nil, err
	}
	if cfg.ServerName, err = optionalString(parsed, "server_name", DefaultServerName); err != nil {
		return nil, err
	}
	if cfg.AllowOrigins, err = optionalString(parsed, "allow_origins", "*"); err != nil {
		return nil, err
	}
	if cfg.DBDriver, err = optionalString(parsed, "db.driver", "mysql"); err != nil {
		return nil, err
	}
	if cfg.DBDriver != "mysql" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("unsupported db.driver %q", cfg.DBDriver)
	}
	if cfg.AutoMigrate, err = optionalBool(parsed, "db.auto_migrate", false); err != nil {
		return nil, err
	}

	if cfg.PremiumDaysDefault, err = optionalInt(parsed, "premium_days_default", 0); err != nil {
		return nil, err
	}
	if cfg.PremiumDaysDefault < 0 {
		return nil, errors.New("premium_days_default can't be negative")
	}
	if cfg.MaxCharactersPerAccount, err = optionalInt(parsed, "max_characters_per_account", DefaultMaxCharacters); err != nil {
		return nil, err
	}
	if cfg.MaxCharactersPerAccount < 1 {
		return nil, errors.New("max_characters_per_account must be at least 1")
	}
	if cfg.HashCost, err = optionalInt(parsed, "hash_cost", DefaultHashCost); err != nil {
		return nil, err
	}
	if cfg.TemplateCharacter, err = optionalString(parsed, "template_character", DefaultTemplateCharacter); err != nil {
		return nil, err
	}

	expiry, err := optionalString(parsed, "token.expiry", DefaultTokenExpiry.String())
	if err != nil {
		return nil, err
	}
	if cfg.TokenExpiry, err = time.ParseDuration(expiry); err != nil {
		return nil, fmt.Errorf("error parsing token.expiry: %w", err)
	}
	if cfg.TokenExpiry <= 0 {
		return nil, errors.New("token.expiry must be positive")
	}
	if cfg.TokenIssuer, err = optionalString(parsed, "token.issuer", DefaultTokenIssuer); err != nil {
		return nil, err
	}

	// the email block is optional; without a host notifications are disabled
	if parsed.ExistsP("email.smtp_host") {
		if cfg.SMTPHost, err = requiredString(parsed, "email.smtp_host"); err != nil {
			return nil, err
		}
		if cfg.SMTPPort, err = optionalInt(parsed, "email.smtp_port", 465); err != nil {
			return nil, err
		}
		if cfg.SMTPUser, err = optionalString(parsed, "email.smtp_user", ""); err != nil {
			return nil, err
		}
		if cfg.SMTPPassword, err = optionalString(parsed, "email.smtp_password", ""); err != nil {
			return nil, err
		}
		if cfg.SMTPFrom, err = requiredString(parsed, "email.smtp_from"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func requiredString(parsed *gabs.Container, path string) (string, error) {
	value, ok := parsed.Path(path).Data().(string)
	if !ok || value == "" {
		return "", fmt.Errorf("error %s cast to string", path)
	}
	return value, nil
}

func optionalString(parsed *gabs.Container, path string, def string) (string, error) {
	if !parsed.ExistsP(path) {
		return def, nil
	}
	value, ok := parsed.Path(path).Data().(string)
	if !ok {
		return "", fmt.Errorf("error %s cast to string", path)
	}
	return value, nil
}

func optionalInt(parsed *gabs.Container, path string, def int) (int, error) {
	if !parsed.ExistsP(path) {
		return def, nil
	}
	// gabs decodes every JSON number as float64
	value, ok := parsed.Path(path).Data().(float64)
	if !ok || value != float64(int(value)) {
		return 0, fmt.Errorf("error %s cast to int", path)
	}
	return int(value), nil
}

func optionalBool(parsed *gabs.Container, path string, def bool) (bool, error) {
	if !parsed.ExistsP(path) {
		return def, nil
	}
	value, ok := parsed.Path(path).Data().(bool)
	if !ok {
		return false, fmt.Errorf("error %s cast to bool", path)
	}
	return value, nil
}
