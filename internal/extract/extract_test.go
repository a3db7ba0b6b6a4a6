package extract

import (
	"context"
	"strings"
	"testing"
)

func TestExtractTextFromBytes_UnsupportedExtension(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
	}{
		{"plain text", "resume.txt"},
		{"no extension", "resume"},
		{"image", "photo.png"},
		{"markdown", "resume.md"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractTextFromBytes(context.Background(), []byte("some bytes"), tt.fileName)
			if err != nil {
				t.Fatalf("unsupported extension should not error, got %v", err)
			}
			if text != "" {
				t.Fatalf("unsupported extension should yield empty text, got %q", text)
			}
		})
	}
}

func TestExtractTextFromBytes_ExtensionCaseInsensitive(t *testing.T) {
	// Garbage bytes with a .PDF extension must reach the PDF path and fail
	// there instead of being silently skipped as unsupported.
	_, err := ExtractTextFromBytes(context.Background(), []byte("not a pdf"), "Resume.PDF")
	if err == nil {
		t.Fatal("expected pdf parse error for garbage bytes")
	}
}

func TestExtractTextFromBytes_InvalidDocx(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("not a zip archive"), "resume.docx")
	if err == nil {
		t.Fatal("expected docx parse error for garbage bytes")
	}

	_, err = ExtractTextFromBytes(context.Background(), nil, "resume.docx")
	if err == nil {
		t.Fatal("expected error for empty docx data")
	}
}

func TestExtractTextFromBytes_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ExtractTextFromBytes(ctx, []byte{}, "resume.pdf")
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestStripDocxXML(t *testing.T) {
	raw := `<w:document><w:body><w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p><w:p><w:r><w:t>Go engineer</w:t></w:r></w:p></w:body></w:document>`
	got := stripDocxXML(raw)
	if !strings.Contains(got, "Jane Doe") || !strings.Contains(got, "Go engineer") {
		t.Fatalf("stripped text missing content: %q", got)
	}
	if !strings.Contains(got, "Jane Doe\n") {
		t.Fatalf("expected newline after paragraph, got %q", got)
	}
}
