package documents

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestURLBuilder(t *testing.T) {
	signer := signingStore{fakeStore: newFakeStore()}
	failing := signingStore{fakeStore: newFakeStore(), err: errors.New("no credentials")}

	tests := []struct {
		name    string
		builder URLBuilder
		want    string
	}{
		{
			name:    "signed",
			builder: URLBuilder{Signer: signer, Expiry: time.Hour, Mode: URLModeSigned},
			want:    "https://bucket.example.com/abc.pdf?X-Amz-Expires=1h0m0s",
		},
		{
			name:    "signed default expiry",
			builder: URLBuilder{Signer: signer},
			want:    "https://bucket.example.com/abc.pdf?X-Amz-Expires=1h0m0s",
		},
		{
			name:    "proxy mode ignores signer",
			builder: URLBuilder{Signer: signer, Mode: URLModeProxy, BaseURL: "https://api.example.com/"},
			want:    "https://api.example.com/api/v1/files/abc.pdf",
		},
		{
			name:    "sign failure falls back to proxy",
			builder: URLBuilder{Signer: failing, BaseURL: "https://api.example.com"},
			want:    "https://api.example.com/api/v1/files/abc.pdf",
		},
		{
			name:    "no signer relative proxy",
			builder: URLBuilder{},
			want:    "/api/v1/files/abc.pdf",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.builder.URL(context.Background(), "abc.pdf"); got != tt.want {
				t.Fatalf("URL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProxyURLEscapesKey(t *testing.T) {
	got := URLBuilder{}.ProxyURL("uploads/a b.pdf")
	if !strings.HasSuffix(got, "/files/uploads%2Fa%20b.pdf") {
		t.Fatalf("unexpected escaped url %q", got)
	}
}

func TestURLEmptyKey(t *testing.T) {
	if got := (URLBuilder{}).URL(context.Background(), ""); got != "" {
		t.Fatalf("expected empty url, got %q", got)
	}
}
