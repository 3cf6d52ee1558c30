package extract

import (
	"context"
	"strings"
	"testing"
)

func TestExtractTextFromBytes_PlainText(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), []byte("pH: 6.8\n"), "text/plain; charset=utf-8", "report.txt")
	if err != nil {
		t.Fatalf("extract plain text: %v", err)
	}
	if text != "pH: 6.8\n" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractTextFromBytes_OctetStreamFallsBackToExtension(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), []byte("Nitrogen (N): 120"), "application/octet-stream", "report.txt")
	if err != nil {
		t.Fatalf("expected txt extension to map to text/plain, got error: %v", err)
	}
	if text != "Nitrogen (N): 120" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractTextFromBytes_UnsupportedMime(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("GIF89a"), "image/gif", "pic.gif")
	if err == nil {
		t.Fatal("expected unsupported mime error for image")
	}
	if !strings.Contains(err.Error(), "unsupported mime type") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractTextFromBytes_MalformedPDF(t *testing.T) {
	if _, err := ExtractTextFromBytes(context.Background(), []byte("not a pdf"), "application/pdf", "report.pdf"); err == nil {
		t.Fatal("expected error for malformed pdf")
	}
}

func TestIsImage(t *testing.T) {
	if !IsImage("image/jpeg") || !IsImage("IMAGE/PNG") {
		t.Fatal("expected image mime types to be detected")
	}
	if IsImage("application/pdf") {
		t.Fatal("pdf is not an image")
	}
}
