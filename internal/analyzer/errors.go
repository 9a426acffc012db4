package analyzer

import "errors"

var (
	// ErrUnavailable means the LLM could not be reached or refused the request.
	ErrUnavailable = errors.New("analysis service unavailable")
	// ErrUnusableResponse means the LLM answered but the reply held no usable summary.
	ErrUnusableResponse = errors.New("analysis response unusable")
	// ErrUnsupportedContent means no text could be extracted from the document.
	ErrUnsupportedContent = errors.New("document content unsupported")
)
