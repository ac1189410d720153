package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driving"
	"github.com/custodia-labs/orderform-cli/internal/logger"
)

// stdoutPath makes generate and new write the form to stdout.
const stdoutPath = "-"

// newSession opens a session in the requested format, falling back to the
// configured default when format is empty.
func newSession(format string) (driving.OrderSession, error) {
	if sessionFactory == nil {
		return nil, errors.New("session factory not configured")
	}
	f, err := resolveFormat(format)
	if err != nil {
		return nil, err
	}
	return sessionFactory.NewSession(f)
}

func resolveFormat(flag string) (domain.OutputFormat, error) {
	flag = strings.ToLower(strings.TrimSpace(flag))
	if flag == "" {
		if settingsService != nil {
			if settings, err := settingsService.Get(); err == nil {
				return settings.Output.Format, nil
			}
		}
		return domain.OutputFormatPDF, nil
	}
	f := domain.OutputFormat(flag)
	if !f.IsValid() {
		return "", fmt.Errorf("unknown output format %q (use pdf or text)", flag)
	}
	return f, nil
}

// importInto reads path and merges the fields found into unset fields.
func importInto(cmd *cobra.Command, session driving.OrderSession, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	result, err := session.ImportDocument(cmd.Context(), path, content)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	cmd.PrintErrf("Imported %s: %d fields found, %d filled\n",
		filepath.Base(path), result.Extraction.Len(), len(result.Merged))
	for _, s := range result.Extraction.Skipped {
		cmd.PrintErrf("  skipped %s (line %d): %s\n", s.Field, s.Line, s.Reason)
	}
	return nil
}

// advanceToFinal walks the wizard forward, stopping at the first step that
// does not validate.
func advanceToFinal(session driving.OrderSession) error {
	for !session.Step().IsLast() {
		if err := session.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// outputPath decides where the rendered form goes. An empty out uses the
// configured output directory and the suggested file name; an existing
// directory receives the suggested file name.
func outputPath(session driving.OrderSession, out string) string {
	if out == "" {
		dir := ""
		if settingsService != nil {
			if settings, err := settingsService.Get(); err == nil {
				dir = settings.Output.Directory
			}
		}
		return filepath.Join(dir, session.OutputFilename())
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, session.OutputFilename())
	}
	return out
}

// writeForm renders the session into memory first so a failed render never
// leaves a partial file behind.
func writeForm(ctx context.Context, cmd *cobra.Command, session driving.OrderSession, out string) error {
	var buf bytes.Buffer
	form, err := session.Generate(ctx, &buf)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	if out == stdoutPath {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	path := outputPath(session, out)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	cmd.Printf("Wrote %s\n", path)
	cmd.Printf("  %d services, total %s\n", len(form.LineItems), domain.FormatMoney(form.Computed.GrandTotal))
	recordHistory(ctx, cmd, form, session.Format(), path)
	return nil
}

// recordHistory logs the saved form. A history failure never fails the
// command: the form is already on disk.
func recordHistory(ctx context.Context, cmd *cobra.Command, form *domain.OrderForm, format domain.OutputFormat, path string) {
	if historyService == nil {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	record, err := historyService.Record(ctx, form, format, path)
	if err != nil {
		cmd.PrintErrf("warning: form not added to history: %v\n", err)
		return
	}
	logger.Debug("history record %s", record.ID)
}
