package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

// Output formats for extract.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var extractFormat string

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Show the fields found in a document",
	Long: `Reads a .txt, .pdf or .docx deal summary and prints the order-form
fields recognised from its "Label - Value" lines, without starting a form.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(extractCmd)
}

// extractReport is the machine-readable extract output.
type extractReport struct {
	File    string           `json:"file" yaml:"file"`
	Fields  []extractedField `json:"fields" yaml:"fields"`
	Skipped []skippedField   `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

type extractedField struct {
	Field      string `json:"field" yaml:"field"`
	Value      string `json:"value" yaml:"value"`
	Raw        string `json:"raw" yaml:"raw"`
	Label      string `json:"label" yaml:"label"`
	Line       int    `json:"line" yaml:"line"`
	Confidence string `json:"confidence" yaml:"confidence"`
}

type skippedField struct {
	Field  string `json:"field" yaml:"field"`
	Raw    string `json:"raw" yaml:"raw"`
	Line   int    `json:"line" yaml:"line"`
	Reason string `json:"reason" yaml:"reason"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	if extractionService == nil {
		return errors.New("extraction service not configured")
	}

	switch extractFormat {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q (use text, json or yaml)", extractFormat)
	}

	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	result, err := extractionService.ExtractFile(cmd.Context(), path, content)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	report := newExtractReport(filepath.Base(path), result.Extraction)
	switch extractFormat {
	case formatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
	case formatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Print(string(data))
	default:
		outputExtractText(cmd, report)
	}
	return nil
}

func newExtractReport(file string, result domain.ExtractionResult) extractReport {
	report := extractReport{File: file, Fields: make([]extractedField, 0, result.Len())}
	for _, e := range result.Entries {
		report.Fields = append(report.Fields, extractedField{
			Field:      e.Field,
			Value:      e.Value.String(),
			Raw:        e.Raw,
			Label:      e.Label,
			Line:       e.Line,
			Confidence: string(e.Confidence),
		})
	}
	for _, s := range result.Skipped {
		report.Skipped = append(report.Skipped, skippedField(s))
	}
	return report
}

func outputExtractText(cmd *cobra.Command, report extractReport) {
	if len(report.Fields) == 0 {
		cmd.Printf("No fields found in %s.\n", report.File)
	} else {
		cmd.Printf("Found %d fields in %s:\n\n", len(report.Fields), report.File)
		for _, f := range report.Fields {
			cmd.Printf("  %-26s %s\n", f.Field, f.Value)
			cmd.Printf("  %-26s line %d %q (%s)\n", "", f.Line, f.Label, f.Confidence)
		}
	}

	if len(report.Skipped) > 0 {
		cmd.Println()
		cmd.Println("Skipped:")
		for _, s := range report.Skipped {
			cmd.Printf("  %-26s line %d: %s\n", s.Field, s.Line, s.Reason)
		}
	}
}
