package config

import (
	"os"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 0},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_PageSizeOrdering(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Search:   SearchConfig{DefaultPageSize: 200, MaxPageSize: 100},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for default page size above max")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("ReadTimeoutSec = %d, want 10", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Storage.KeyPrefix != "sukhan:" {
		t.Errorf("KeyPrefix = %q, want sukhan:", cfg.Storage.KeyPrefix)
	}
	if cfg.Suggest.RetrievalTimeoutSec != 3 {
		t.Errorf("RetrievalTimeoutSec = %d, want 3", cfg.Suggest.RetrievalTimeoutSec)
	}
	if cfg.Search.DefaultPageSize != 20 || cfg.Search.MaxPageSize != 100 {
		t.Errorf("pagination defaults = %d/%d, want 20/100",
			cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		Storage: StorageConfig{KeyPrefix: "poetry:"},
		Search:  SearchConfig{DefaultPageSize: 5, MaxPageSize: 50},
	}
	cfg.ApplyDefaults()

	if cfg.Storage.KeyPrefix != "poetry:" {
		t.Errorf("KeyPrefix = %q, want poetry:", cfg.Storage.KeyPrefix)
	}
	if cfg.Search.DefaultPageSize != 5 {
		t.Errorf("DefaultPageSize = %d, want 5", cfg.Search.DefaultPageSize)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SUKHAN_TEST_PASSWORD", "s3cret")

	in := []byte("password: ${SUKHAN_TEST_PASSWORD}\nprefix: ${SUKHAN_TEST_MISSING:-sukhan:}\n")
	out := string(expandEnvVars(in))

	want := "password: s3cret\nprefix: sukhan:\n"
	if out != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", out, want)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	os.Setenv("ENV", "prod")
	defer os.Unsetenv("ENV")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}
