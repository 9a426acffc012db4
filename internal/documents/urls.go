package documents

import (
	"context"
	"net/url"
	"strings"
	"time"

	"wealth-backend/internal/shared/storage/object"
	"wealth-backend/internal/shared/telemetry"
)

const (
	URLModeSigned = "signed"
	URLModeProxy  = "proxy"

	defaultURLExpiry = time.Hour
)

// URLBuilder computes access URLs for stored documents. URLs are never persisted.
type URLBuilder struct {
	// Signer is nil when the store cannot presign (the local store).
	Signer  object.URLSigner
	Expiry  time.Duration
	BaseURL string
	Mode    string
}

// URL returns a presigned link in signed mode, falling back to the proxy route
// when the store cannot sign or signing fails.
func (b URLBuilder) URL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	if b.Mode != URLModeProxy && b.Signer != nil {
		expiry := b.Expiry
		if expiry <= 0 {
			expiry = defaultURLExpiry
		}
		signed, err := b.Signer.SignedURL(ctx, key, expiry)
		if err == nil && signed != "" {
			return signed
		}
		if err != nil {
			telemetry.Warn("documents.url.sign_failed", map[string]any{
				"object_key": key,
				"request_id": telemetry.RequestIDFromContext(ctx),
				"error":      err.Error(),
			})
		}
	}
	return b.ProxyURL(key)
}

// ProxyURL is the download route served by this API.
func (b URLBuilder) ProxyURL(key string) string {
	return strings.TrimRight(b.BaseURL, "/") + "/api/v1/files/" + url.PathEscape(key)
}
