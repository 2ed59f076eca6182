package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", ""},
		{"1234", "****"},
		{"12345678", "********"},
		{"123456789", "1234*6789"},
		{"hf_abcdefghijkl", "hf_a*******ijkl"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := MaskAPIKey(tt.key); got != tt.want {
				t.Errorf("MaskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio", "config.yaml")

	cfg, err := LoadConfigWithPath("studio", path)
	if err != nil {
		t.Fatalf("LoadConfigWithPath: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	err = cfg.AddContext("prod", &Context{
		APIKey:         "hf_secret",
		Timeout:        30,
		Models:         Models{Image: "black-forest-labs/FLUX.1-schnell"},
		Speech:         SpeechConfig{Lang: "ar"},
		CaptionBackend: CaptionBackendGemini,
		Storage:        StorageConfig{S3Bucket: "studio-tmp", S3Region: "eu-west-1"},
		HistoryDir:     "~/studio-history",
	})
	if err != nil {
		t.Fatalf("AddContext: %v", err)
	}
	if cfg.CurrentContext != "prod" {
		t.Errorf("CurrentContext = %q, want first context to become current", cfg.CurrentContext)
	}
	if err := cfg.AddContext("dev", &Context{}); err != nil {
		t.Fatalf("AddContext: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config perm = %o, want 600", perm)
	}

	cfg, err = LoadConfigWithPath("studio", path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, err := cfg.ResolveContext("")
	if err != nil {
		t.Fatalf("ResolveContext: %v", err)
	}
	if got.Name != "prod" || got.APIKey != "hf_secret" {
		t.Errorf("context = %+v", got)
	}
	if got.Models.Image != "black-forest-labs/FLUX.1-schnell" || got.Speech.Lang != "ar" {
		t.Errorf("nested settings lost: %+v", got)
	}
	if got.Storage.S3Bucket != "studio-tmp" {
		t.Errorf("Storage = %+v", got.Storage)
	}
	if got.TimeoutDuration() != 30*time.Second {
		t.Errorf("TimeoutDuration = %v, want 30s", got.TimeoutDuration())
	}

	if names := cfg.ListContexts(); strings.Join(names, ",") != "dev,prod" {
		t.Errorf("ListContexts = %v", names)
	}

	if err := cfg.UseContext("dev"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.DeleteContext("dev"); err != nil {
		t.Fatal(err)
	}
	if cfg.CurrentContext != "" {
		t.Errorf("CurrentContext = %q after deleting it", cfg.CurrentContext)
	}
	if err := cfg.UseContext("missing"); err == nil {
		t.Error("UseContext(missing) succeeded")
	}
}

func TestResolveContextFromEnv(t *testing.T) {
	cfg, err := LoadConfigWithPath("studio", filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv(TokenEnv, "")
	if _, err := cfg.ResolveContext(""); err == nil {
		t.Fatal("expected error without context or token")
	}

	t.Setenv(TokenEnv, "hf_env")
	ctx, err := cfg.ResolveContext("")
	if err != nil {
		t.Fatalf("ResolveContext: %v", err)
	}
	if ctx.Token() != "hf_env" {
		t.Errorf("Token = %q, want %q", ctx.Token(), "hf_env")
	}

	ctx.APIKey = "hf_file"
	if ctx.Token() != "hf_file" {
		t.Errorf("Token = %q, want api_key to win", ctx.Token())
	}
}

func TestPaths(t *testing.T) {
	p := &Paths{AppName: "studio", HomeDir: "/home/u"}
	if got := p.ConfigFile(); got != filepath.Join("/home/u", ".giztoy", "studio", "config.yaml") {
		t.Errorf("ConfigFile = %q", got)
	}
	if got := p.DataPath("history"); got != filepath.Join("/home/u", ".giztoy", "studio", "data", "history") {
		t.Errorf("DataPath = %q", got)
	}
	if got := p.ExpandHome("~/x"); got != filepath.Join("/home/u", "x") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := p.ExpandHome("/abs"); got != "/abs" {
		t.Errorf("ExpandHome(/abs) = %q", got)
	}
}
