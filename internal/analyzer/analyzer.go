package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"wealth-backend/internal/extract"
	"wealth-backend/internal/llm"
)

// MaxPromptChars bounds the document text sent to the LLM.
const MaxPromptChars = 4000

// Analyzer turns a stored document into a financial Summary through one LLM call.
type Analyzer struct {
	client   llm.Client
	maxChars int
}

// New returns an Analyzer backed by client.
func New(client llm.Client) *Analyzer {
	if client == nil {
		client = llm.PlaceholderClient{}
	}
	return &Analyzer{client: client, maxChars: MaxPromptChars}
}

// Analyze extracts text from content, asks the LLM for a summary and normalizes it.
// Every failure wraps one of ErrUnsupportedContent, ErrUnavailable or ErrUnusableResponse.
func (a *Analyzer) Analyze(ctx context.Context, content []byte, contentType, fileName string) (*Summary, error) {
	text, err := extract.Text(ctx, content, contentType, fileName)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedContent, err)
	}
	text = extract.TruncateRunes(text, a.maxChars)

	reply, err := a.client.Complete(ctx, llm.Request{
		System: systemPrompt,
		Prompt: buildPrompt(text),
		JSON:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	summary, err := parseReply(reply)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnusableResponse, err)
	}
	summary.SourceDocument = contentType
	return summary, nil
}

func parseReply(reply string) (*Summary, error) {
	object, ok := firstJSONObject(reply)
	if !ok {
		return nil, fmt.Errorf("no JSON object in reply")
	}

	dec := json.NewDecoder(strings.NewReader(object))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	if err := summarySchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("reply does not match schema: %w", err)
	}

	total, err := parseAmount(raw["total_assets"])
	if err != nil {
		return nil, fmt.Errorf("total_assets: %w", err)
	}
	date, err := parseDate(raw["valuation_date"])
	if err != nil {
		return nil, err
	}
	netWorth, err := parseAmount(raw["net_worth"])
	if err != nil {
		return nil, fmt.Errorf("net_worth: %w", err)
	}

	return &Summary{
		TotalValue:  total,
		Date:        date,
		NetWorth:    netWorth,
		Assets:      parseItems(raw["assets"]),
		Liabilities: parseItems(raw["liabilities"]),
		RawAnalysis: raw,
	}, nil
}
