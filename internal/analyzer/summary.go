package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Item is one asset or liability line.
type Item struct {
	Type        string
	Value       *decimal.Decimal
	Description string
}

// Summary is the normalized analysis of one document.
type Summary struct {
	TotalValue     *decimal.Decimal
	Date           *time.Time
	NetWorth       *decimal.Decimal
	Assets         []Item
	Liabilities    []Item
	SourceDocument string
	RawAnalysis    map[string]any
}

// Result renders the summary as the JSON payload stored on the document.
func (s *Summary) Result() map[string]any {
	out := map[string]any{
		"total_value":     amountJSON(s.TotalValue),
		"date":            nil,
		"net_worth":       amountJSON(s.NetWorth),
		"assets":          itemsJSON(s.Assets),
		"liabilities":     itemsJSON(s.Liabilities),
		"source_document": s.SourceDocument,
		"raw_analysis":    s.RawAnalysis,
	}
	if s.Date != nil {
		out["date"] = s.Date.Format(dateLayout)
	}
	return out
}

func amountJSON(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return json.Number(d.String())
}

func itemsJSON(items []Item) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		out = append(out, map[string]any{
			"type":        it.Type,
			"value":       amountJSON(it.Value),
			"description": it.Description,
		})
	}
	return out
}

func parseAmount(v any) (*decimal.Decimal, error) {
	var raw string
	switch t := v.(type) {
	case nil:
		return nil, nil
	case json.Number:
		raw = t.String()
	case string:
		raw = strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(t))
		if raw == "" {
			return nil, nil
		}
	default:
		return nil, fmt.Errorf("amount has type %T", v)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("amount %q: %w", raw, err)
	}
	return &d, nil
}

func parseDate(v any) (*time.Time, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			return nil, nil
		}
		parsed, err := time.Parse(dateLayout, trimmed)
		if err != nil {
			return nil, fmt.Errorf("valuation_date %q: %w", trimmed, err)
		}
		return &parsed, nil
	default:
		return nil, fmt.Errorf("valuation_date has type %T", v)
	}
}

// parseItems is lenient: a line whose value cannot be read keeps a nil value.
func parseItems(v any) []Item {
	list, _ := v.([]any)
	items := make([]Item, 0, len(list))
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		it := Item{
			Type:        stringField(obj, "type"),
			Description: stringField(obj, "description"),
		}
		if value, err := parseAmount(obj["value"]); err == nil {
			it.Value = value
		}
		items = append(items, it)
	}
	return items
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}
