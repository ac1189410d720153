package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for a writer goroutine and a reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testCommand(ctx context.Context, out *syncBuffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(ctx)
	cmd.SetOut(out)
	cmd.SetErr(out)
	return cmd
}

func TestReportPath(t *testing.T) {
	assert.Equal(t, filepath.Join("in", "deal.fields.json"), reportPath(filepath.Join("in", "deal.pdf")))
	assert.Equal(t, "notes.v2.fields.json", reportPath("notes.v2.txt"))
}

func TestProcessDocument_Text(t *testing.T) {
	setupTestServices(t)
	resetFlags()
	t.Cleanup(resetFlags)
	doc := writeFile(t, "deal.txt", dealSummary)
	var out syncBuffer

	err := processDocument(context.Background(), testCommand(context.Background(), &out), doc)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Found 10 fields in deal.txt")
	assert.NoFileExists(t, reportPath(doc))
}

func TestProcessDocument_JSONWithReport(t *testing.T) {
	setupTestServices(t)
	resetFlags()
	t.Cleanup(resetFlags)
	watchFormat = formatJSON
	watchReport = true
	doc := writeFile(t, "deal.txt", dealSummary)
	var out syncBuffer

	err := processDocument(context.Background(), testCommand(context.Background(), &out), doc)

	require.NoError(t, err)
	var line extractReport
	require.NoError(t, json.Unmarshal([]byte(out.String()), &line))
	assert.Len(t, line.Fields, 10)

	data, err := os.ReadFile(reportPath(doc))
	require.NoError(t, err)
	var report extractReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "deal.txt", report.File)
	assert.Equal(t, "customer_name", report.Fields[0].Field)
}

func TestProcessDocument_Unreadable(t *testing.T) {
	setupTestServices(t)
	var out syncBuffer

	err := processDocument(context.Background(), testCommand(context.Background(), &out), filepath.Join(t.TempDir(), "gone.txt"))

	assert.Error(t, err)
}

func TestRunWatch_ExtractsArrivingDocuments(t *testing.T) {
	setupTestServices(t)
	resetFlags()
	t.Cleanup(resetFlags)
	watchDebounce = 50 * time.Millisecond
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- runWatch(testCommand(ctx, &out), []string{dir}) }()

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("Watching"))
	}, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deal.txt"), []byte(dealSummary), 0o644))

	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("Found 10 fields in deal.txt"))
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestRunWatch_Errors(t *testing.T) {
	setupTestServices(t)
	resetFlags()
	t.Cleanup(resetFlags)

	_, err := execute(t, "watch", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	_, err = execute(t, "watch", "--format", "csv", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")

	extractionService = nil
	var out syncBuffer
	assert.Error(t, runWatch(testCommand(context.Background(), &out), []string{t.TempDir()}))
}
