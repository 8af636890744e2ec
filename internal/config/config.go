// Package config loads runtime configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreS3       = "s3"
)

// Config is the process configuration.
type Config struct {
	Addr    string `env:"BODYCOMP_ADDR" envDefault:":8080"`
	WebDir  string `env:"BODYCOMP_WEB_DIR" envDefault:"web"`
	Store   string `env:"BODYCOMP_STORE" envDefault:"file"`
	DataDir string `env:"BODYCOMP_DATA_DIR" envDefault:"data"`

	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"BODYCOMP_SQLITE_PATH" envDefault:"data/bodycomp.db"`
	S3          S3     `envPrefix:"BODYCOMP_S3_"`

	StrictDerivation bool `env:"BODYCOMP_STRICT_DERIVATION"`
	MetricsEnabled   bool `env:"BODYCOMP_METRICS" envDefault:"true"`

	AuthDisabled      bool   `env:"BODYCOMP_AUTH_DISABLED"`
	OwnerUsername     string `env:"BODYCOMP_OWNER_USERNAME"`
	OwnerPasswordHash string `env:"BODYCOMP_OWNER_PASSWORD_HASH"`
	OIDC              OIDC   `envPrefix:"BODYCOMP_OIDC_"`

	TrustForwardAuth bool     `env:"BODYCOMP_TRUST_FORWARD_AUTH"`
	TrustedProxies   []string `env:"BODYCOMP_TRUSTED_PROXIES" envSeparator:","`
}

// S3 configures the s3 store.
type S3 struct {
	Bucket          string `env:"BUCKET"`
	Region          string `env:"REGION" envDefault:"us-east-1"`
	Prefix          string `env:"PREFIX"`
	Endpoint        string `env:"ENDPOINT"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	PathStyle       bool   `env:"PATH_STYLE"`
}

// OIDC configures single sign-on. SSO is enabled when Issuer is set.
type OIDC struct {
	Issuer       string `env:"ISSUER"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"`
}

// Enabled reports whether SSO is configured.
func (o OIDC) Enabled() bool { return o.Issuer != "" }

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given environment instead of the process one.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the selected backends have what they need.
func (c Config) Validate() error {
	var errs []error
	switch c.Store {
	case StoreMemory:
	case StoreFile:
		if c.DataDir == "" {
			errs = append(errs, errors.New("BODYCOMP_DATA_DIR is required for the file store"))
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("BODYCOMP_SQLITE_PATH is required for the sqlite store"))
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	case StoreS3:
		if c.S3.Bucket == "" {
			errs = append(errs, errors.New("BODYCOMP_S3_BUCKET is required for the s3 store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store %q", c.Store))
	}
	if c.OIDC.Enabled() && (c.OIDC.ClientID == "" || c.OIDC.RedirectURL == "") {
		errs = append(errs, errors.New("BODYCOMP_OIDC_CLIENT_ID and BODYCOMP_OIDC_REDIRECT_URL are required with BODYCOMP_OIDC_ISSUER"))
	}
	if _, err := c.ProxyPrefixes(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ProxyPrefixes parses TrustedProxies. Entries are CIDR prefixes or single
// addresses.
func (c Config) ProxyPrefixes() ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, raw := range c.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if p, err := netip.ParsePrefix(raw); err == nil {
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("BODYCOMP_TRUSTED_PROXIES: invalid entry %q", raw)
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}
