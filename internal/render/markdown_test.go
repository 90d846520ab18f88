package render

import (
	"strings"
	"testing"
)

func TestMarkdownRendersAndSanitizes(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		contains   []string
		notContain []string
	}{
		{
			name:     "heading and table",
			input:    "# Custas\n\n| Ato | Valor |\n|---|---|\n| Procuração | 100 |",
			contains: []string{"<h1", "Custas", "<table>", "Procuração"},
		},
		{
			name:       "script removed",
			input:      "Olá <script>alert(1)</script>",
			contains:   []string{"Olá"},
			notContain: []string{"<script", "alert(1)"},
		},
		{
			name:     "allowed map embed",
			input:    `<iframe src="https://www.google.com/maps/embed?pb=abc" loading="lazy"></iframe>`,
			contains: []string{`<iframe src="https://www.google.com/maps/embed?pb=abc"`},
		},
		{
			name:       "foreign iframe stripped",
			input:      `<iframe src="https://evil.example/embed"></iframe>`,
			notContain: []string{"evil.example"},
		},
		{
			name:     "external links open in new tab",
			input:    "[TJ-RJ](https://tjrj.jus.br)",
			contains: []string{`href="https://tjrj.jus.br"`, `target="_blank"`, "noreferrer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Markdown(tt.input)
			if err != nil {
				t.Fatalf("Markdown returned error: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Fatalf("expected %q in %q", want, got)
				}
			}
			for _, unwanted := range tt.notContain {
				if strings.Contains(got, unwanted) {
					t.Fatalf("did not expect %q in %q", unwanted, got)
				}
			}
		})
	}
}

func TestMarkdownEmptyInput(t *testing.T) {
	got, err := Markdown("  \n ")
	if err != nil {
		t.Fatalf("Markdown returned error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
