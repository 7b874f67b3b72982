package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Todamie/moodle-xml-to-txt/internal/extract"
	"github.com/Todamie/moodle-xml-to-txt/internal/pipeline"
	"github.com/Todamie/moodle-xml-to-txt/internal/render"
)

// EnvPrefix is prepended to every environment override, e.g. MOODLE2DOC_LABELS.
const EnvPrefix = "MOODLE2DOC"

// Keys shared by the config file, the environment and the command-line flags.
const (
	KeyAllAnswers     = "all_answers"
	KeyLabels         = "labels"
	KeyImageWidth     = "image_width"
	KeyEncoding       = "encoding"
	KeyOutDir         = "out_dir"
	KeyScratchDir     = "scratch_dir"
	KeyPort           = "port"
	KeyAPIKey         = "api_key"
	KeyMaxUploadBytes = "max_upload_bytes"
	KeyStatsWindow    = "stats_window"
)

const (
	defaultPort           = "8090"
	defaultMaxUploadBytes = 52428800 // 50MB
	defaultStatsWindow    = time.Hour
)

type Config struct {
	// Conversion
	IncludeAllAnswers bool
	Labels            render.LabelStyle
	ImageWidth        float64 // Inches
	Encoding          string
	OutputDir         string
	ScratchDir        string

	// HTTP service
	Port           string
	APIKey         string
	MaxUploadBytes int64
	StatsWindow    time.Duration
}

// SetDefaults registers the built-in value of every key on v and enables
// environment overrides.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAllAnswers, true)
	v.SetDefault(KeyLabels, string(render.LabelLetter))
	v.SetDefault(KeyImageWidth, render.DefaultImageWidth)
	v.SetDefault(KeyEncoding, "utf-8")
	v.SetDefault(KeyOutDir, "")
	v.SetDefault(KeyScratchDir, "")
	v.SetDefault(KeyPort, defaultPort)
	v.SetDefault(KeyAPIKey, "")
	v.SetDefault(KeyMaxUploadBytes, defaultMaxUploadBytes)
	v.SetDefault(KeyStatsWindow, defaultStatsWindow)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads the effective configuration from v. Out-of-range numbers fall
// back to their defaults; unknown label styles are left for Validate.
func Load(v *viper.Viper) Config {
	cfg := Config{
		IncludeAllAnswers: v.GetBool(KeyAllAnswers),
		Labels:            render.LabelStyle(strings.ToLower(strings.TrimSpace(v.GetString(KeyLabels)))),
		ImageWidth:        v.GetFloat64(KeyImageWidth),
		Encoding:          strings.TrimSpace(v.GetString(KeyEncoding)),
		OutputDir:         v.GetString(KeyOutDir),
		ScratchDir:        v.GetString(KeyScratchDir),

		Port:           v.GetString(KeyPort),
		APIKey:         v.GetString(KeyAPIKey),
		MaxUploadBytes: v.GetInt64(KeyMaxUploadBytes),
		StatsWindow:    v.GetDuration(KeyStatsWindow),
	}

	if cfg.Labels == "" {
		cfg.Labels = render.LabelLetter
	}
	if cfg.ImageWidth <= 0 {
		cfg.ImageWidth = render.DefaultImageWidth
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = defaultStatsWindow
	}

	return cfg
}

func (c Config) Validate() error {
	if _, err := render.ParseLabelStyle(string(c.Labels)); err != nil {
		return fmt.Errorf("%s: %w", KeyLabels, err)
	}
	if _, err := render.LookupEncoding(c.Encoding); err != nil {
		return fmt.Errorf("%s: %w", KeyEncoding, err)
	}
	return nil
}

// ConvertOptions maps the conversion settings onto pipeline options.
func (c Config) ConvertOptions() pipeline.Options {
	return pipeline.Options{
		Extract:     extract.Options{IncludeAllAnswers: c.IncludeAllAnswers},
		Labels:      c.Labels,
		ImageWidth:  c.ImageWidth,
		Encoding:    c.Encoding,
		OutputDir:   c.OutputDir,
		ScratchRoot: c.ScratchDir,
	}
}
