package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSQS struct {
	sent []*sqs.SendMessageInput
	err  error
}

func (f *fakeSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	return &sqs.ReceiveMessageOutput{}, nil
}

func (f *fakeSQS) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	return &sqs.DeleteMessageOutput{}, nil
}

func TestSQSClientSend(t *testing.T) {
	api := &fakeSQS{}
	client := NewSQSClientWithAPI(api, "http://localhost:4566/000000000000/analysis")

	msg := NewMessage("doc-1", "key.txt", "text/plain", "a.txt", "req-1")
	if err := client.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(api.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(api.sent))
	}
	if aws.ToString(api.sent[0].QueueUrl) != "http://localhost:4566/000000000000/analysis" {
		t.Fatalf("unexpected queue url %q", aws.ToString(api.sent[0].QueueUrl))
	}
	decoded, err := DecodeMessage([]byte(aws.ToString(api.sent[0].MessageBody)))
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if decoded.DocumentID != "doc-1" || decoded.ObjectKey != "key.txt" {
		t.Fatalf("unexpected body %+v", decoded)
	}
}

func TestSQSClientSendError(t *testing.T) {
	boom := errors.New("boom")
	client := NewSQSClientWithAPI(&fakeSQS{err: boom}, "q")
	if err := client.Send(context.Background(), Message{DocumentID: "d"}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestNewSQSClientRequiresURL(t *testing.T) {
	if _, err := NewSQSClient(context.Background(), "us-east-1", " ", ""); err == nil {
		t.Fatal("expected error for empty queue url")
	}
}
