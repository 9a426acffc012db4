package analyzer

import "strings"

const systemPrompt = "You are a financial document analyzer. Extract and structure financial data in JSON format. Be precise with numerical values and dates."

const promptTemplate = `Analyze this financial document and extract the information in the following JSON structure:
{
  "total_assets": number,
  "valuation_date": "YYYY-MM-DD",
  "assets": [
    {"type": string, "value": number, "description": string}
  ],
  "liabilities": [
    {"type": string, "value": number, "description": string}
  ],
  "net_worth": number
}

"type" names the category, for example "Real Estate", "Stocks" or "Cash" for assets and "Mortgage" or "Credit Card" for liabilities.
"net_worth" is total assets minus total liabilities.
Format all numerical values as plain numbers without currency symbols.
Format dates as YYYY-MM-DD.
If a field cannot be determined, use null.
Return only the JSON object.

Document content:
`

func buildPrompt(text string) string {
	var b strings.Builder
	b.Grow(len(promptTemplate) + len(text))
	b.WriteString(promptTemplate)
	b.WriteString(text)
	return b.String()
}
