package config

import (
	"strings"
	"testing"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.WebDir != "web" || cfg.Store != StoreFile || cfg.DataDir != "data" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.MetricsEnabled || cfg.StrictDerivation || cfg.AuthDisabled {
		t.Errorf("unexpected default flags: %+v", cfg)
	}
	if cfg.S3.Region != "us-east-1" {
		t.Errorf("S3.Region = %q", cfg.S3.Region)
	}
	if cfg.OIDC.Enabled() {
		t.Error("OIDC enabled without issuer")
	}
	if cfg.TrustForwardAuth {
		t.Error("forward auth trusted by default")
	}
}

func TestLoadFrom_TrustedProxies(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"BODYCOMP_TRUST_FORWARD_AUTH": "true",
		"BODYCOMP_TRUSTED_PROXIES":    "10.0.0.0/8, 192.168.1.5,fd00::/8",
	})
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if !cfg.TrustForwardAuth {
		t.Error("TrustForwardAuth not set")
	}
	prefixes, err := cfg.ProxyPrefixes()
	if err != nil {
		t.Fatalf("ProxyPrefixes: %v", err)
	}
	want := []string{"10.0.0.0/8", "192.168.1.5/32", "fd00::/8"}
	if len(prefixes) != len(want) {
		t.Fatalf("got %v, want %v", prefixes, want)
	}
	for i, p := range prefixes {
		if p.String() != want[i] {
			t.Errorf("prefix %d = %s, want %s", i, p, want[i])
		}
	}
}

func TestLoadFrom_Values(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"BODYCOMP_STORE":             "s3",
		"BODYCOMP_S3_BUCKET":         "tracker",
		"BODYCOMP_S3_ENDPOINT":       "http://minio:9000",
		"BODYCOMP_S3_PATH_STYLE":     "true",
		"BODYCOMP_STRICT_DERIVATION": "true",
		"BODYCOMP_OWNER_USERNAME":    "me@example.com",
		"BODYCOMP_OIDC_ISSUER":       "https://auth.example.com",
		"BODYCOMP_OIDC_CLIENT_ID":    "bodycomp",
		"BODYCOMP_OIDC_REDIRECT_URL": "https://bodycomp.example.com/api/sso/callback",
	})
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Store != StoreS3 || cfg.S3.Bucket != "tracker" || !cfg.S3.PathStyle || cfg.S3.Endpoint != "http://minio:9000" {
		t.Errorf("unexpected s3 config: %+v", cfg.S3)
	}
	if !cfg.StrictDerivation {
		t.Error("StrictDerivation not set")
	}
	if !cfg.OIDC.Enabled() || cfg.OIDC.ClientID != "bodycomp" {
		t.Errorf("unexpected oidc config: %+v", cfg.OIDC)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		want    string
	}{
		{"unknown store", map[string]string{"BODYCOMP_STORE": "redis"}, "unknown store"},
		{"postgres without url", map[string]string{"BODYCOMP_STORE": "postgres"}, "DATABASE_URL"},
		{"s3 without bucket", map[string]string{"BODYCOMP_STORE": "s3"}, "BODYCOMP_S3_BUCKET"},
		{"oidc without client", map[string]string{"BODYCOMP_OIDC_ISSUER": "https://auth"}, "BODYCOMP_OIDC_CLIENT_ID"},
		{"bad proxy", map[string]string{"BODYCOMP_TRUSTED_PROXIES": "not-an-ip"}, "BODYCOMP_TRUSTED_PROXIES"},
		{"bad bool", map[string]string{"BODYCOMP_AUTH_DISABLED": "maybe"}, "parse env"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFrom(tc.environ)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}
