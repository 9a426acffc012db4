package util

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{in: "test.txt", want: "test.txt"},
		{in: "  statement 2024.pdf ", want: "statement 2024.pdf"},
		{in: "../../etc/passwd", want: "passwd"},
		{in: `C:\Users\me\report.docx`, want: "report.docx"},
		{in: "bad\x00name.csv", want: "badname.csv"},
		{in: "..", err: true},
		{in: "dir/", err: true},
		{in: "   ", err: true},
	}
	for _, tt := range tests {
		got, err := SanitizeFileName(tt.in)
		if tt.err {
			if !errors.Is(err, ErrInvalidFileName) {
				t.Fatalf("SanitizeFileName(%q): expected ErrInvalidFileName, got %q, %v", tt.in, got, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("SanitizeFileName(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestSanitizeFileNameTruncates(t *testing.T) {
	got, err := SanitizeFileName(strings.Repeat("a", 300) + ".txt")
	if err != nil {
		t.Fatalf("SanitizeFileName: %v", err)
	}
	if len(got) != maxFileNameLen {
		t.Fatalf("expected %d characters, got %d", maxFileNameLen, len(got))
	}
}
