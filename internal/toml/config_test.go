package toml

import (
	"os"
	"path/filepath"
	"testing"
)

const simpleConfig = `
debug = true
watchconfig = true

[directory]
  host = "ldap.example.com"
  binddnformat = "uid={{user id}},dc=example,dc=com"
  basedn = "dc=example,dc=com"
  presenterfilter = "(&(uid={{user id}})(memberOf=presenters))"
  clientfilter = "(uid={{user id}})"

[api]
  enabled = true
  listen = "0.0.0.0:5358"

[[users]]
  name = "admin"
  passsha256 = "6478579e37aff45f013e14eeb30b3cc56c72ccdc310123bcdf53e0333e3f416a"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dirauth.cfg")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewConfigSimple(t *testing.T) {
	cfg, err := NewConfig(false, writeConfig(t, simpleConfig), map[string]interface{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Directory.Host != "ldap.example.com" {
		t.Fatalf("unexpected host: %q", cfg.Directory.Host)
	}
	if !cfg.Debug || !cfg.WatchConfig {
		t.Fatal("top-level flags not decoded")
	}
	if len(cfg.Users) != 1 || cfg.Users[0].Name != "admin" {
		t.Fatalf("users not decoded: %+v", cfg.Users)
	}
}

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig(false, writeConfig(t, simpleConfig), map[string]interface{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Directory.NameAttr != "cn" {
		t.Fatalf("unexpected name attribute default: %q", cfg.Directory.NameAttr)
	}
	if cfg.Directory.MailAttr != "mail" {
		t.Fatalf("unexpected mail attribute default: %q", cfg.Directory.MailAttr)
	}
	if cfg.Directory.Timeout != 10 {
		t.Fatalf("unexpected timeout default: %d", cfg.Directory.Timeout)
	}
}

func TestNewConfigListenOverride(t *testing.T) {
	cfg, err := NewConfig(false, writeConfig(t, simpleConfig), map[string]interface{}{
		"--listen": "127.0.0.1:9000",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.Listen != "127.0.0.1:9000" {
		t.Fatalf("flag did not override listen address: %q", cfg.API.Listen)
	}
}

func TestNewConfigDirectoryOverride(t *testing.T) {
	cfg, err := NewConfig(false, writeConfig(t, simpleConfig), map[string]interface{}{
		"--directory": "other.example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Directory.Host != "other.example.com" {
		t.Fatalf("flag did not override directory host: %q", cfg.Directory.Host)
	}
}

func TestNewConfigMissingFile(t *testing.T) {
	if _, err := NewConfig(false, "/does/not/exist.cfg", map[string]interface{}{}); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestNewConfigIncompleteDirectoryIsNotFatal(t *testing.T) {
	const incomplete = `
[api]
  enabled = true
  listen = "0.0.0.0:5358"
`
	// a half-configured directory section only fails a config check run
	if _, err := NewConfig(false, writeConfig(t, incomplete), map[string]interface{}{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewConfig(true, writeConfig(t, incomplete), map[string]interface{}{}); err == nil {
		t.Fatal("expected a config check run to fail")
	}
}

func TestNewConfigTLSRequiresCertAndKey(t *testing.T) {
	const tlsNoCert = `
[directory]
  host = "ldap.example.com"
  binddnformat = "uid={{user id}},dc=example,dc=com"
  basedn = "dc=example,dc=com"
  presenterfilter = "(uid={{user id}})"
  clientfilter = "(uid={{user id}})"

[api]
  enabled = true
  listen = "0.0.0.0:5358"
  tls = true
`
	if _, err := NewConfig(false, writeConfig(t, tlsNoCert), map[string]interface{}{}); err == nil {
		t.Fatal("expected an error for TLS without cert and key")
	}
}

func TestNewConfigDirectoryMerge(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "10-base.cfg"), []byte(`
debug = true

[api]
  enabled = true
  listen = "0.0.0.0:5358"
`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "20-directory.cfg"), []byte(`
[directory]
  host = "ldap.example.com"
  binddnformat = "uid={{user id}},dc=example,dc=com"
  basedn = "dc=example,dc=com"
  presenterfilter = "(uid={{user id}})"
  clientfilter = "(uid={{user id}})"
`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewConfig(false, dir, map[string]interface{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Debug {
		t.Fatal("base fragment not merged")
	}
	if cfg.Directory.Host != "ldap.example.com" {
		t.Fatalf("directory fragment not merged: %q", cfg.Directory.Host)
	}
}
