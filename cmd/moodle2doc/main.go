// Package main is the entry point for the moodle2doc CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Todamie/moodle-xml-to-txt/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the moodle2doc CLI.
var rootCmd = &cobra.Command{
	Use:   "moodle2doc",
	Short: "Convert Moodle XML question banks to text or .docx",
	Long: `moodle2doc reads Moodle XML quiz exports and writes a readable listing of
every question with its answers. Banks without pictures become flat .txt
files; banks that reference images become .docx documents with the embedded
pictures placed inline.

Settings come from flags, MOODLE2DOC_* environment variables and an optional
moodle2doc.yaml file, in that order of precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./moodle2doc.yaml or ~/.config/moodle2doc/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every conversion step")
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("moodle2doc")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "moodle2doc"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintln(os.Stderr, "Config file not read:", err)
	}
}

// loadConfig returns the validated configuration for a command.
func loadConfig() (config.Config, error) {
	cfg := config.Load(viper.GetViper())
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return cfg, nil
}

// cliLogger writes human-readable logs to stderr. Only warnings and errors
// are shown unless --verbose is set.
func cliLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCodeFor(err))
	}
}
