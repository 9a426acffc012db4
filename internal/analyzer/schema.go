package analyzer

import "github.com/santhosh-tekuri/jsonschema/v5"

const summarySchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "total_assets": {"$ref": "#/definitions/amount"},
    "valuation_date": {"type": ["string", "null"]},
    "net_worth": {"$ref": "#/definitions/amount"},
    "assets": {"$ref": "#/definitions/items"},
    "liabilities": {"$ref": "#/definitions/items"}
  },
  "definitions": {
    "amount": {"type": ["number", "string", "null"]},
    "items": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "type": {"type": ["string", "null"]},
          "value": {"$ref": "#/definitions/amount"},
          "description": {"type": ["string", "null"]}
        }
      }
    }
  }
}`

var summarySchema = jsonschema.MustCompileString("summary.json", summarySchemaJSON)
