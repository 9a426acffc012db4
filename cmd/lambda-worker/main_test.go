package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"wealth-backend/internal/analyses"
	"wealth-backend/internal/queue"
)

type scriptedProcessor struct {
	errs map[string]error
}

func (p scriptedProcessor) ProcessJob(ctx context.Context, job analyses.Job) error {
	return p.errs[job.DocumentID]
}

func body(t *testing.T, documentID string) string {
	t.Helper()
	b, err := queue.EncodeMessage(queue.NewMessage(documentID, documentID+".pdf", "application/pdf", "s.pdf", ""))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return string(b)
}

func TestHandleBatchReportsOnlyRetryableFailures(t *testing.T) {
	proc := scriptedProcessor{errs: map[string]error{
		"doc-retry": errors.New("database unavailable"),
		"doc-gone":  fmt.Errorf("%w: doc-gone", analyses.ErrDocumentNotFound),
	}}
	event := events.SQSEvent{Records: []events.SQSMessage{
		{MessageId: "m-ok", Body: body(t, "doc-ok")},
		{MessageId: "m-retry", Body: body(t, "doc-retry")},
		{MessageId: "m-gone", Body: body(t, "doc-gone")},
		{MessageId: "m-bad", Body: "{not json"},
	}}

	resp := handleBatch(context.Background(), proc, event)

	if len(resp.BatchItemFailures) != 1 || resp.BatchItemFailures[0].ItemIdentifier != "m-retry" {
		t.Fatalf("unexpected failures %+v", resp.BatchItemFailures)
	}
}
