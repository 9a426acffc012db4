package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"wealth-backend/internal/analyzer"
	"wealth-backend/internal/documents"
	"wealth-backend/internal/networth"
	"wealth-backend/internal/shared/metrics"
	"wealth-backend/internal/shared/storage/object"
	"wealth-backend/internal/shared/telemetry"
)

// Analyzer produces a financial summary from document bytes.
type Analyzer interface {
	Analyze(ctx context.Context, content []byte, contentType, fileName string) (*analyzer.Summary, error)
}

// SnapshotRecorder stores a net-worth snapshot derived from a document.
type SnapshotRecorder interface {
	Record(ctx context.Context, value decimal.Decimal, date time.Time, documentID string) (networth.Snapshot, error)
}

// Job is one queued analysis request.
type Job struct {
	DocumentID  string
	ObjectKey   string
	ContentType string
	FileName    string
	// Content is optional; when empty the bytes are read from the object store.
	Content   []byte
	RequestID string
}

// Service runs document analyses and records their outcome.
type Service struct {
	Docs     documents.DocumentsRepo
	Store    object.ObjectStore
	Analyzer Analyzer
	NetWorth SnapshotRecorder
	// Timeout bounds the analyzer call; zero means no limit.
	Timeout time.Duration
}

// ProcessJob analyzes one document and writes its terminal status.
//
// Analysis failures are absorbed into a failed status and nil is returned. A
// non-nil error means the outcome could not be recorded (the document is still
// pending) or the document does not exist (ErrDocumentNotFound).
func (s *Service) ProcessJob(ctx context.Context, job Job) (err error) {
	if strings.TrimSpace(job.DocumentID) == "" {
		return ErrInvalidJob
	}
	ctx = telemetry.WithRequestID(ctx, job.RequestID)

	doc, err := s.Docs.GetByID(ctx, job.DocumentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrDocumentNotFound, job.DocumentID)
		}
		return fmt.Errorf("document lookup: %w", err)
	}
	if doc.Status.IsTerminal() {
		metrics.IncAnalysisSkipped()
		telemetry.Info("analysis.skipped", map[string]any{
			"request_id":  job.RequestID,
			"document_id": doc.ID,
			"status":      string(doc.Status),
		})
		return nil
	}

	startedAt := time.Now()
	metrics.IncAnalysisStarted()
	telemetry.Info("analysis.status", map[string]any{
		"request_id":  job.RequestID,
		"document_id": doc.ID,
		"status":      "started",
	})

	defer func() {
		if r := recover(); r != nil {
			err = s.fail(ctx, doc, fmt.Errorf("panic: %v", r), startedAt)
		}
	}()

	content, err := s.loadContent(ctx, doc, job)
	if err != nil {
		return s.fail(ctx, doc, err, startedAt)
	}

	contentType := firstNonEmpty(job.ContentType, doc.Type)
	fileName := firstNonEmpty(job.FileName, doc.Name)

	analyzeCtx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		analyzeCtx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	summary, err := s.Analyzer.Analyze(analyzeCtx, content, contentType, fileName)
	if err != nil {
		return s.fail(ctx, doc, err, startedAt)
	}
	return s.complete(ctx, doc, summary, startedAt)
}

func (s *Service) loadContent(ctx context.Context, doc documents.Document, job Job) ([]byte, error) {
	if len(job.Content) > 0 {
		return job.Content, nil
	}
	if s.Store == nil {
		return nil, fmt.Errorf("%w: object store not configured", errLoadContent)
	}
	key := firstNonEmpty(doc.ObjectKey, job.ObjectKey)
	content, err := object.Get(ctx, s.Store, key)
	if err != nil {
		return nil, fmt.Errorf("%w key=%s: %w", errLoadContent, key, err)
	}
	return content, nil
}

func (s *Service) complete(ctx context.Context, doc documents.Document, summary *analyzer.Summary, startedAt time.Time) error {
	result, err := json.Marshal(summary.Result())
	if err != nil {
		return s.fail(ctx, doc, fmt.Errorf("encode result: %w", err), startedAt)
	}

	// Final writes must land even if the job context was cancelled meanwhile.
	writeCtx := context.WithoutCancel(ctx)
	if err := s.Docs.FinishAnalysis(writeCtx, doc.ID, documents.StatusCompleted, result); err != nil {
		if errors.Is(err, documents.ErrAnalysisFinal) {
			metrics.IncAnalysisSkipped()
			telemetry.Warn("analysis.already_final", map[string]any{
				"request_id":  telemetry.RequestIDFromContext(ctx),
				"document_id": doc.ID,
			})
			return nil
		}
		return fmt.Errorf("record completed analysis: %w", err)
	}

	durationMs := elapsedMs(startedAt)
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(durationMs)
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        telemetry.RequestIDFromContext(ctx),
		"document_id":       doc.ID,
		"status":            string(documents.StatusCompleted),
		"status_transition": "pending->completed",
		"duration_ms":       durationMs,
	})

	if summary.TotalValue == nil || summary.Date == nil {
		return nil
	}
	if _, err := s.NetWorth.Record(writeCtx, *summary.TotalValue, *summary.Date, doc.ID); err != nil {
		telemetry.Error("analysis.snapshot.failed", map[string]any{
			"request_id":  telemetry.RequestIDFromContext(ctx),
			"document_id": doc.ID,
			"error":       err.Error(),
		})
	}
	return nil
}

// fail records the failed status. It returns an error only when that write fails.
func (s *Service) fail(ctx context.Context, doc documents.Document, cause error, startedAt time.Time) error {
	code := classifyFailure(cause)
	msg := sanitizeError(cause)
	payload, err := json.Marshal(map[string]string{
		"error":      msg,
		"error_code": code,
	})
	if err != nil {
		return err
	}

	if err := s.Docs.FinishAnalysis(context.WithoutCancel(ctx), doc.ID, documents.StatusFailed, payload); err != nil {
		if errors.Is(err, documents.ErrAnalysisFinal) {
			metrics.IncAnalysisSkipped()
			return nil
		}
		telemetry.Error("analysis.fail.write_failed", map[string]any{
			"request_id":  telemetry.RequestIDFromContext(ctx),
			"document_id": doc.ID,
			"error":       err.Error(),
			"cause":       msg,
		})
		return fmt.Errorf("record failed analysis: %w", err)
	}

	durationMs := elapsedMs(startedAt)
	metrics.IncAnalysisFailed()
	metrics.ObserveAnalysisDurationMs(durationMs)
	telemetry.Warn("analysis.status", map[string]any{
		"request_id":        telemetry.RequestIDFromContext(ctx),
		"document_id":       doc.ID,
		"status":            string(documents.StatusFailed),
		"status_transition": "pending->failed",
		"error_code":        code,
		"error":             msg,
		"duration_ms":       durationMs,
	})
	return nil
}

func classifyFailure(err error) string {
	switch {
	case err == nil:
		return ErrorCodeInternal
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorCodeTimeout
	case errors.Is(err, analyzer.ErrUnsupportedContent):
		return ErrorCodeUnsupportedContent
	case errors.Is(err, analyzer.ErrUnusableResponse):
		return ErrorCodeUnusableResponse
	case errors.Is(err, analyzer.ErrUnavailable):
		return ErrorCodeUnavailable
	case errors.Is(err, object.ErrNotFound):
		return ErrorCodeContentMissing
	case errors.Is(err, errLoadContent):
		return ErrorCodeStorage
	default:
		return ErrorCodeInternal
	}
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}

func elapsedMs(startedAt time.Time) float64 {
	return float64(time.Since(startedAt).Microseconds()) / 1000.0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
