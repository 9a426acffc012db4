package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseEnvLine(t *testing.T) {
	tests := []struct {
		line    string
		key     string
		val     string
		ignored bool
	}{
		{line: "S3_BUCKET=wealthmgr-documents", key: "S3_BUCKET", val: "wealthmgr-documents"},
		{line: `export OPENAI_API_KEY="sk-test"`, key: "OPENAI_API_KEY", val: "sk-test"},
		{line: "PUBLIC_BASE_URL='http://localhost:8080'", key: "PUBLIC_BASE_URL", val: "http://localhost:8080"},
		{line: "QUEUE=local # in-process", key: "QUEUE", val: "local"},
		{line: `LLM_MODEL="gpt #4"`, key: "LLM_MODEL", val: "gpt #4"},
		{line: "# comment", ignored: true},
		{line: "   ", ignored: true},
		{line: "NOVALUE", ignored: true},
		{line: "=orphan", ignored: true},
	}
	for _, tt := range tests {
		key, val, ok := parseEnvLine(tt.line)
		if ok == tt.ignored {
			t.Fatalf("parseEnvLine(%q) ok=%v", tt.line, ok)
		}
		if !tt.ignored && (key != tt.key || val != tt.val) {
			t.Fatalf("parseEnvLine(%q) = %q, %q", tt.line, key, val)
		}
	}
}

func TestLoadEnvFilesKeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "WEALTH_TEST_FROM_FILE=file\nWEALTH_TEST_PRESET=file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("WEALTH_TEST_PRESET", "shell")
	t.Setenv("WEALTH_TEST_FROM_FILE", "")
	os.Unsetenv("WEALTH_TEST_FROM_FILE")

	loaded := loadEnvFiles(filepath.Join(dir, "missing.env"), path)
	if len(loaded) != 1 || loaded[0] != path {
		t.Fatalf("unexpected loaded files %v", loaded)
	}
	if got := os.Getenv("WEALTH_TEST_FROM_FILE"); got != "file" {
		t.Fatalf("expected value from file, got %q", got)
	}
	if got := os.Getenv("WEALTH_TEST_PRESET"); got != "shell" {
		t.Fatalf("existing env should win, got %q", got)
	}
}
