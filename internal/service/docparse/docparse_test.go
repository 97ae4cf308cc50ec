package docparse

import "testing"

func TestExtractTextPlain(t *testing.T) {
	got, err := ExtractText([]byte("  경력 요약\n백엔드 5년  "), "resume.txt")
	if err != nil {
		t.Fatalf("ExtractText err: %v", err)
	}
	if got != "경력 요약\n백엔드 5년" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractTextEmpty(t *testing.T) {
	if _, err := ExtractText(nil, "resume.txt"); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestExtractTextInvalidPDF(t *testing.T) {
	if _, err := ExtractText([]byte("not a pdf"), "resume.pdf"); err == nil {
		t.Fatal("expected error for malformed pdf")
	}
}
