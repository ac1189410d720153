package postprocessors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

// mockProcessor is a test processor that applies a fixed transformation.
type mockProcessor struct {
	name string
	fn   func(string) string
	err  error
}

func (m *mockProcessor) Name() string {
	return m.name
}

func (m *mockProcessor) Process(_ context.Context, content string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.fn != nil {
		return m.fn(content), nil
	}
	return content, nil
}

func TestNewPipeline(t *testing.T) {
	p := NewPipeline()
	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}
	if p.Len() != 0 {
		t.Errorf("expected 0 processors, got %d", p.Len())
	}
}

func TestPipeline_Add(t *testing.T) {
	p := NewPipeline()
	p.Add(&mockProcessor{name: "test"})

	if p.Len() != 1 {
		t.Errorf("expected 1 processor, got %d", p.Len())
	}
	if got := p.Names(); len(got) != 1 || got[0] != "test" {
		t.Errorf("unexpected names: %v", got)
	}
}

func TestPipeline_Process_NilDocument(t *testing.T) {
	_, err := NewPipeline().Process(context.Background(), nil)
	if err == nil {
		t.Error("expected error for nil document")
	}
}

func TestPipeline_Process_EmptyPipeline(t *testing.T) {
	doc := &domain.Document{Content: "Customer Name: Acme"}

	got, err := NewPipeline().Process(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != doc.Content {
		t.Errorf("expected content unchanged, got %q", got)
	}
}

func TestPipeline_Process_RunsInOrder(t *testing.T) {
	p := NewPipeline(
		&mockProcessor{name: "upper", fn: strings.ToUpper},
		&mockProcessor{name: "suffix", fn: func(s string) string { return s + "!" }},
	)
	doc := &domain.Document{Content: "term"}

	got, err := p.Process(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "TERM!" {
		t.Errorf("expected TERM!, got %q", got)
	}
	if doc.Content != "term" {
		t.Error("document content should not be modified")
	}
}

func TestPipeline_Process_ProcessorError(t *testing.T) {
	boom := errors.New("boom")
	p := NewPipeline(&mockProcessor{name: "broken", err: boom})

	_, err := p.Process(context.Background(), &domain.Document{Content: "x"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if !strings.Contains(err.Error(), "processor broken") {
		t.Errorf("expected processor name in error, got %q", err.Error())
	}
}

func TestBuildPipeline_SkipsUnknown(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	cfg := domain.PipelineConfig{Processors: []string{"collapse", "chunker", "linetrim"}}
	p := BuildPipeline(r, cfg)

	names := p.Names()
	if len(names) != 2 || names[0] != "collapse" || names[1] != "linetrim" {
		t.Errorf("unexpected processors: %v", names)
	}
}

func TestBuildPipeline_Defaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	p := BuildPipeline(r, domain.DefaultPipelineConfig())

	doc := &domain.Document{Content: "  Customer   Name:  Acme  \n\n\n\n\tTerm:\t24 "}
	got, err := p.Process(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Customer Name: Acme\n\nTerm: 24"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestBuildPipeline_ProcessorConfig(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	cfg := domain.PipelineConfig{
		Processors: []string{"collapse"},
		ProcessorConfigs: map[string]map[string]any{
			"collapse": {"max_blank_lines": int64(0)},
		},
	}

	got, err := BuildPipeline(r, cfg).Process(context.Background(), &domain.Document{Content: "a\n\nb"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a\nb" {
		t.Errorf("expected blank lines removed, got %q", got)
	}
}
