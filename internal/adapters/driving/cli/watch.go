package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/orderform-cli/internal/adapters/driven/watcher"
	"github.com/custodia-labs/orderform-cli/internal/core/services"
)

var (
	watchFormat   string
	watchReport   bool
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Extract fields from documents as they arrive in a directory",
	Long: `Watches a directory for new or changed deal summaries (.txt, .pdf, .docx)
and prints the order-form fields found in each one. With --report, a
<name>.fields.json file is written next to every document.

Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", formatText, "output format: text, json or yaml")
	watchCmd.Flags().BoolVar(&watchReport, "report", false, "write <name>.fields.json next to each document")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "quiet period before a changed file is read")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if extractionService == nil {
		return errors.New("extraction service not configured")
	}
	switch watchFormat {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q (use text, json or yaml)", watchFormat)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir := args[0]
	w := watcher.New(dir, services.SupportedExtensions()).WithDebounce(watchDebounce)
	paths, err := w.Watch(ctx)
	if err != nil {
		return err
	}
	defer w.Close()

	cmd.PrintErrf("Watching %s for documents (Ctrl+C to stop)\n", dir)
	for path := range paths {
		if err := processDocument(ctx, cmd, path); err != nil {
			cmd.PrintErrf("%s: %v\n", filepath.Base(path), err)
		}
	}
	return nil
}

// processDocument extracts fields from one arrived document.
func processDocument(ctx context.Context, cmd *cobra.Command, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	result, err := extractionService.ExtractFile(ctx, path, content)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	report := newExtractReport(filepath.Base(path), result.Extraction)
	switch watchFormat {
	case formatJSON:
		data, err := json.Marshal(report)
		if err != nil {
			return err
		}
		cmd.Println(string(data))
	case formatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		cmd.Print("---\n" + string(data))
	default:
		outputExtractText(cmd, report)
		cmd.Println()
	}

	if watchReport {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		out := reportPath(path)
		if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil { //nolint:gosec // reports sit beside the shared document
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

// reportPath returns deal.pdf -> deal.fields.json in the same directory.
// The .json extension keeps reports out of the watched set.
func reportPath(doc string) string {
	ext := filepath.Ext(doc)
	return doc[:len(doc)-len(ext)] + ".fields.json"
}
