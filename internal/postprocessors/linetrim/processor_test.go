package linetrim

import (
	"context"
	"testing"
)

func TestNew(t *testing.T) {
	if p := New(); !p.leading {
		t.Error("expected leading trim by default")
	}
	if p := New(WithLeading(false)); p.leading {
		t.Error("expected leading trim disabled")
	}
}

func TestProcessor_Name(t *testing.T) {
	if got := New().Name(); got != "linetrim" {
		t.Errorf("expected name linetrim, got %q", got)
	}
}

func TestProcessor_Process(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		content string
		want    string
	}{
		{
			name:    "empty",
			content: "",
			want:    "",
		},
		{
			name:    "trailing and leading",
			content: "  Customer Name: Acme  \n\tTerm: 12\t\r\n",
			want:    "Customer Name: Acme\nTerm: 12\n",
		},
		{
			name:    "non-breaking spaces",
			content: "\u00a0PO Number: 7\u00a0",
			want:    "PO Number: 7",
		},
		{
			name:    "keep leading",
			opts:    []Option{WithLeading(false)},
			content: "  Term: 12  ",
			want:    "  Term: 12",
		},
		{
			name:    "blank lines kept",
			content: "a\n   \nb",
			want:    "a\n\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.opts...).Process(context.Background(), tt.content)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
