package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Todamie/moodle-xml-to-txt/internal/config"
	"github.com/Todamie/moodle-xml-to-txt/internal/pipeline"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert Moodle XML banks to .txt or .docx",
	Long: `Convert writes one output file next to each input (or into --out-dir).
A bank whose questions or answers reference images becomes a .docx with the
embedded pictures inline; any other bank becomes a .txt listing.

With no arguments every .xml file in the current directory is converted.
A file that fails does not stop the others. The exit status is 0 when all
files converted, 2 when only some did and 1 when none did.`,
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.Bool("all-answers", true, "list every answer; when false keep only correct answers")
	f.String("labels", "letter", "answer labels: letter, plus or prose")
	f.String("out-dir", "", "directory for output files (default: next to each input)")
	f.String("encoding", "utf-8", "text output encoding, e.g. windows-1251")
	f.Float64("image-width", 4.0, "width of embedded pictures in inches")

	viper.BindPFlag(config.KeyAllAnswers, f.Lookup("all-answers"))
	viper.BindPFlag(config.KeyLabels, f.Lookup("labels"))
	viper.BindPFlag(config.KeyOutDir, f.Lookup("out-dir"))
	viper.BindPFlag(config.KeyEncoding, f.Lookup("encoding"))
	viper.BindPFlag(config.KeyImageWidth, f.Lookup("image-width"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths, err = pipeline.Discover(".")
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return ErrNoInput
		}
	}

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	conv := pipeline.NewConverter(cfg.ConvertOptions(), cliLogger(cmd), nil)
	result := conv.ConvertBatch(paths, cmd.OutOrStdout())

	switch {
	case result.AllFailed():
		return fmt.Errorf("%w (%d of %d)", ErrAllFailed, result.Failed, result.Total())
	case result.HasFailures():
		return fmt.Errorf("%w (%d of %d)", ErrPartial, result.Failed, result.Total())
	}
	return nil
}
