package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/Todamie/moodle-xml-to-txt/internal/extract"
	"github.com/Todamie/moodle-xml-to-txt/internal/pipeline"
	"github.com/Todamie/moodle-xml-to-txt/internal/render"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.xml>",
	Short: "Print the extracted questions as YAML or JSON",
	Long: `Inspect parses a bank and prints what convert would see: the cleaned
question text, each answer with its fraction and correctness, and the output
mode the bank would get. Nothing is written to disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringP("format", "f", "yaml", "output format: yaml or json")

	rootCmd.AddCommand(inspectCmd)
}

// inspection is the document printed by inspect.
type inspection struct {
	Title     string                   `json:"title" yaml:"title"`
	Mode      string                   `json:"mode" yaml:"mode"`
	Questions []extract.QuestionRecord `json:"questions" yaml:"questions"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(format)
	if format != "yaml" && format != "json" {
		return fmt.Errorf("%w: unknown format %q (want yaml or json)", ErrUsage, format)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", pipeline.ErrRead, err)
	}
	defer f.Close()

	conv := pipeline.NewConverter(cfg.ConvertOptions(), cliLogger(cmd), nil)
	tree, records, err := conv.Parse(f, args[0])
	if err != nil {
		return err
	}
	if records == nil {
		records = []extract.QuestionRecord{}
	}

	return writeInspection(cmd.OutOrStdout(), format, inspection{
		Title:     tree.Title,
		Mode:      render.Select(records).String(),
		Questions: records,
	})
}

func writeInspection(w io.Writer, format string, in inspection) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(in)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(in); err != nil {
		return err
	}
	return enc.Close()
}
