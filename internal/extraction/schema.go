package extraction

// factSheetSchema is the JSON Schema every extraction response must satisfy
// before it is trusted as a typed FactSheet. Every field is required so the
// model cannot silently drop one; "not mentioned" is expressed as null (or an
// empty list), never by omission.
const factSheetSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "FactSheet",
  "type": "object",
  "additionalProperties": false,
  "required": [
    "years_experience",
    "skills",
    "industries",
    "is_founder",
    "leadership_experience",
    "recent_promotion",
    "sold_to_finance",
    "quota_attainment",
    "communication_signal"
  ],
  "properties": {
    "years_experience": {
      "type": ["number", "null"],
      "minimum": 0
    },
    "skills": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "industries": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "is_founder": {"type": ["boolean", "null"]},
    "leadership_experience": {"type": ["boolean", "null"]},
    "recent_promotion": {"type": ["boolean", "null"]},
    "sold_to_finance": {"type": ["boolean", "null"]},
    "quota_attainment": {
      "type": ["number", "null"],
      "minimum": 0
    },
    "communication_signal": {
      "type": ["string", "null"],
      "enum": ["strong", "moderate", "weak", null]
    }
  }
}`

// FactSheetSchema returns the JSON Schema for extraction output.
func FactSheetSchema() string {
	return factSheetSchema
}
