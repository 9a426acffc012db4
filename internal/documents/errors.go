package documents

import "errors"

var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidInput = errors.New("invalid input")
	// ErrAnalysisFinal is returned when finishing an analysis that already reached a terminal status.
	ErrAnalysisFinal = errors.New("document analysis already final")
)
