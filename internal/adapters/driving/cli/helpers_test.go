package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderform-cli/internal/adapters/driven/watcher"
	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

// setupTestServices wires in-memory services that write text forms into a
// temporary directory, and restores the globals when the test ends.
func setupTestServices(t *testing.T) (*Services, string) {
	t.Helper()

	svc, err := NewServices(Options{Ephemeral: true})
	require.NoError(t, err)

	outDir := t.TempDir()
	require.NoError(t, svc.Settings.SetOutputDirectory(outDir))
	require.NoError(t, svc.Settings.SetOutputFormat(domain.OutputFormatText))

	useServices(svc)
	t.Cleanup(func() {
		schema = nil
		extractionService = nil
		settingsService = nil
		sessionFactory = nil
		historyService = nil
		servicesReady = false
	})
	return svc, outDir
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags clears flag values left over from earlier commands.
func resetFlags() {
	extractFormat = formatText
	newFrom, newOut, newFormat = "", "", ""
	generateAnswers, generateFrom, generateOut, generateFormat = "", "", "", ""
	historyLimit, historyFormat = 20, formatText
	watchFormat, watchReport, watchDebounce = formatText, false, watcher.DefaultDebounce
	versionShort = false
}

// withStdin feeds input to prompts as if it were typed.
func withStdin(t *testing.T, input string, interactive bool) {
	t.Helper()
	origIn, origTerm := stdin, isTerminal
	stdin = strings.NewReader(input)
	isTerminal = func() bool { return interactive }
	t.Cleanup(func() {
		stdin = origIn
		isTerminal = origTerm
	})
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// singleFile returns the contents of the only file in dir.
func singleFile(t *testing.T, dir string) (string, string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	f, err := os.Open(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return entries[0].Name(), string(data)
}

const dealSummary = `Deal summary
Customer Name: Acme Corp
Primary Contact: Jane Doe
Primary Contact Email: jane@acme.com
Billing Email: ap@acme.com
Ship To Address: 1 Main St, Springfield
Opportunity Type: New Logo
Start Date: 2024-03-01
Subscription Term: 24 months
Payment Method - AWS Billing
AWS Billing ID: 1234-5678
`
