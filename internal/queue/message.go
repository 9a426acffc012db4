package queue

import (
	"encoding/json"
	"time"
)

// CurrentVersion is stamped on every message this build produces.
const CurrentVersion = 1

// Message asks a worker to analyze one document.
type Message struct {
	DocumentID  string `json:"documentId"`
	ObjectKey   string `json:"objectKey"`
	ContentType string `json:"contentType,omitempty"`
	FileName    string `json:"fileName,omitempty"`
	// Content carries the raw bytes when small enough; otherwise the worker reads ObjectKey.
	Content    []byte `json:"content,omitempty"`
	RequestID  string `json:"requestId,omitempty"`
	EnqueuedAt string `json:"enqueuedAt"`
	Version    int    `json:"version"`
}

// NewMessage builds a message stamped with the current time and version.
func NewMessage(documentID, objectKey, contentType, fileName, requestID string) Message {
	return Message{
		DocumentID:  documentID,
		ObjectKey:   objectKey,
		ContentType: contentType,
		FileName:    fileName,
		RequestID:   requestID,
		EnqueuedAt:  time.Now().UTC().Format(time.RFC3339),
		Version:     CurrentVersion,
	}
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
