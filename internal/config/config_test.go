package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/Todamie/moodle-xml-to-txt/internal/render"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load(newViper())

	if !cfg.IncludeAllAnswers {
		t.Error("expected IncludeAllAnswers=true by default")
	}
	if cfg.Labels != render.LabelLetter {
		t.Errorf("Labels = %q, want letter", cfg.Labels)
	}
	if cfg.ImageWidth != render.DefaultImageWidth {
		t.Errorf("ImageWidth = %v, want %v", cfg.ImageWidth, render.DefaultImageWidth)
	}
	if cfg.Port != "8090" {
		t.Errorf("Port = %q, want 8090", cfg.Port)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.StatsWindow != time.Hour {
		t.Errorf("StatsWindow = %v", cfg.StatsWindow)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("MOODLE2DOC_LABELS", "Plus")
	t.Setenv("MOODLE2DOC_ALL_ANSWERS", "false")
	t.Setenv("MOODLE2DOC_ENCODING", "windows-1251")
	t.Setenv("MOODLE2DOC_API_KEY", "secret")
	t.Setenv("MOODLE2DOC_STATS_WINDOW", "5m")

	cfg := Load(newViper())
	if cfg.Labels != render.LabelPlus {
		t.Errorf("Labels = %q, want plus", cfg.Labels)
	}
	if cfg.IncludeAllAnswers {
		t.Error("expected IncludeAllAnswers=false from env")
	}
	if cfg.Encoding != "windows-1251" {
		t.Errorf("Encoding = %q", cfg.Encoding)
	}
	if cfg.APIKey != "secret" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.StatsWindow != 5*time.Minute {
		t.Errorf("StatsWindow = %v", cfg.StatsWindow)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moodle2doc.yaml")
	content := "labels: prose\nimage_width: 3.5\nout_dir: /tmp/out\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig: %v", err)
	}

	cfg := Load(v)
	if cfg.Labels != render.LabelProse {
		t.Errorf("Labels = %q, want prose", cfg.Labels)
	}
	if cfg.ImageWidth != 3.5 {
		t.Errorf("ImageWidth = %v, want 3.5", cfg.ImageWidth)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
}

func TestLoadFallsBackOnBadNumbers(t *testing.T) {
	v := newViper()
	v.Set(KeyImageWidth, -2)
	v.Set(KeyMaxUploadBytes, 0)
	v.Set(KeyPort, "")

	cfg := Load(v)
	if cfg.ImageWidth != render.DefaultImageWidth {
		t.Errorf("ImageWidth = %v", cfg.ImageWidth)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.Port != "8090" {
		t.Errorf("Port = %q", cfg.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"ok", func(*Config) {}, nil},
		{"bad labels", func(c *Config) { c.Labels = "roman" }, render.ErrUnknownLabelStyle},
		{"bad encoding", func(c *Config) { c.Encoding = "klingon" }, render.ErrUnknownEncoding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load(newViper())
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConvertOptions(t *testing.T) {
	v := newViper()
	v.Set(KeyAllAnswers, false)
	v.Set(KeyLabels, "prose")
	v.Set(KeyOutDir, "out")
	v.Set(KeyScratchDir, "scratch")

	opts := Load(v).ConvertOptions()
	if opts.Extract.IncludeAllAnswers {
		t.Error("expected IncludeAllAnswers=false")
	}
	if opts.Labels != render.LabelProse || opts.OutputDir != "out" || opts.ScratchRoot != "scratch" {
		t.Errorf("unexpected options: %+v", opts)
	}
	if opts.ImageWidth != render.DefaultImageWidth {
		t.Errorf("ImageWidth = %v", opts.ImageWidth)
	}
}
