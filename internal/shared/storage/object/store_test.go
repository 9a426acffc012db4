package object

import "testing"

func TestJoinKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "abc.pdf", want: "abc.pdf"},
		{name: "simple prefix", prefix: "documents", key: "abc.pdf", want: "documents/abc.pdf"},
		{name: "prefix trailing slash", prefix: "documents/", key: "abc.pdf", want: "documents/abc.pdf"},
		{name: "prefix and key slashes", prefix: "/documents/", key: "/abc.pdf", want: "documents/abc.pdf"},
		{name: "nested prefix", prefix: "prod/documents", key: "abc.pdf", want: "prod/documents/abc.pdf"},
		{name: "whitespace prefix", prefix: "  ", key: "abc.pdf", want: "abc.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := JoinKey(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("JoinKey(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}
