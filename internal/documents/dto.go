package documents

import (
	"encoding/json"
	"time"
)

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Size           int64           `json:"size"`
	S3Key          string          `json:"s3_key"`
	AnalysisStatus Status          `json:"analysis_status"`
	AnalysisResult json.RawMessage `json:"analysis_result"`
	URL            string          `json:"url"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func toResponse(doc Document, url string) DocumentResponse {
	result := doc.Result
	if len(result) == 0 {
		result = json.RawMessage("null")
	}
	return DocumentResponse{
		ID:             doc.ID,
		Name:           doc.Name,
		Type:           doc.Type,
		Size:           doc.Size,
		S3Key:          doc.ObjectKey,
		AnalysisStatus: doc.Status,
		AnalysisResult: result,
		URL:            url,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}
