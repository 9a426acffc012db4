package analyses

import "errors"

var (
	// ErrDocumentNotFound means the job references a document that no longer exists.
	// Redelivering such a job cannot succeed.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrInvalidJob means the job has no document id.
	ErrInvalidJob = errors.New("invalid analysis job")

	errLoadContent = errors.New("load content")
)

// Error codes stored in the failed analysis payload.
const (
	ErrorCodeUnsupportedContent = "unsupported_content"
	ErrorCodeTimeout            = "analysis_timeout"
	ErrorCodeUnavailable        = "analysis_unavailable"
	ErrorCodeUnusableResponse   = "unusable_response"
	ErrorCodeContentMissing     = "content_missing"
	ErrorCodeStorage            = "storage_error"
	ErrorCodeInternal           = "internal_error"
)
