package briefing

// briefingSchema is the JSON Schema every briefing response must satisfy
// before it is trusted. Evidence fields carry a minimum length so the model
// cannot emit unsupported claims; severity is held to the known enum.
const briefingSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Briefing",
  "type": "object",
  "additionalProperties": false,
  "required": [
    "tldr",
    "overall_fit_score",
    "strengths",
    "concerns",
    "skill_matches",
    "suggested_questions"
  ],
  "properties": {
    "tldr": {"type": "string", "minLength": 1},
    "overall_fit_score": {"type": "integer", "minimum": 0, "maximum": 100},
    "strengths": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["claim", "evidence"],
        "properties": {
          "claim": {"type": "string", "minLength": 1},
          "evidence": {"type": "string", "minLength": 1},
          "verification_suggestion": {"type": "string"}
        }
      }
    },
    "concerns": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["claim", "evidence", "severity"],
        "properties": {
          "claim": {"type": "string", "minLength": 1},
          "evidence": {"type": "string", "minLength": 1},
          "suggested_question": {"type": "string"},
          "severity": {"type": "string", "enum": ["low", "medium", "high"]}
        }
      }
    },
    "skill_matches": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["skill", "is_match"],
        "properties": {
          "skill": {"type": "string", "minLength": 1},
          "required_level": {"type": "string"},
          "candidate_level": {"type": "string"},
          "is_match": {"type": "boolean"}
        }
      }
    },
    "suggested_questions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["question"],
        "properties": {
          "question": {"type": "string", "minLength": 1},
          "category": {"type": "string"},
          "purpose": {"type": "string"},
          "follow_up": {"type": "string"}
        }
      }
    }
  }
}`

// BriefingSchema returns the JSON Schema for briefing output.
func BriefingSchema() string {
	return briefingSchema
}
