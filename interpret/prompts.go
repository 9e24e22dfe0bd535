package interpret

import "fmt"

const extractionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "budget_max":   {"type": ["number", "null"]},
    "capacity_min": {"type": ["integer", "null"]},
    "location":     {"type": ["string", "null"]},
    "food_type":    {"type": ["string", "null"]},
    "event_type":   {"type": ["string", "null"]},
    "venue_type":   {"type": ["string", "null"]}
  },
  "required": ["budget_max", "capacity_min", "location", "food_type", "event_type", "venue_type"],
  "additionalProperties": false
}`

const extractionPromptTemplate = `Extract structured event-planning search parameters from the query below and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- budget_max is the maximum total spend in dollars, e.g. "under $3000" -> 3000. Use null if the query names no budget.
- capacity_min is the expected guest count, e.g. "for 150 guests" -> 150. Use null if no guest count is mentioned.
- location is a city, neighborhood, or region name, lowercase. Use null if absent.
- food_type is a cuisine or food style like "seafood", "bbq", "vegan". Use null if absent.
- event_type is the occasion like "wedding", "corporate retreat", "birthday". Use null if absent.
- venue_type is a venue style like "rooftop", "barn", "ballroom", "garden". Use null if absent.
- Use null for anything not explicitly stated or clearly implied. Do not guess.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "seafood catering under $3000 for 150 guests"
Output:
{"budget_max": 3000, "capacity_min": 150, "location": null, "food_type": "seafood", "event_type": null, "venue_type": null}

Example:
Input: "rooftop wedding venue in austin"
Output:
{"budget_max": null, "capacity_min": null, "location": "austin", "food_type": null, "event_type": "wedding", "venue_type": "rooftop"}

Example (nothing extractable):
Input: "something fun"
Output:
{"budget_max": null, "capacity_min": null, "location": null, "food_type": null, "event_type": null, "venue_type": null}

Query: %q`

const expansionPromptTemplate = `You expand event-planning search queries with related vocabulary.

Given the query below, respond with 8 to 12 space-separated related terms: synonyms, related concepts,
and event-industry vocabulary. Respond with the terms only, lowercase, on a single line. No punctuation,
no numbering, no explanation, and do not repeat the query itself.

Example:
Query: "rooftop wedding venue"
Response: terrace skyline ceremony reception outdoor panoramic elegant celebration banquet view

Query: %q`

const variantsPromptTemplate = `You rephrase event-planning search queries for multi-query retrieval.

Given the query below, respond with a JSON array of exactly 3 alternate phrasings of the same search
intent. Each phrasing must be 3 to 6 words. Output ONLY the JSON array: no preamble, no explanation,
no keys, no trailing text.

Example:
Query: "seafood catering under $3000 for 150 guests"
Response: ["affordable seafood event catering", "seafood caterer large party", "budget ocean fare catering"]

Query: %q`

// buildExtractionPrompt creates the parameter-extraction prompt for a query.
func buildExtractionPrompt(query string) string {
	return fmt.Sprintf(extractionPromptTemplate, extractionResponseSchema, query)
}

// buildExpansionPrompt creates the query-expansion prompt for a query.
func buildExpansionPrompt(query string) string {
	return fmt.Sprintf(expansionPromptTemplate, query)
}

// buildVariantsPrompt creates the variant-generation prompt for a query.
func buildVariantsPrompt(query string) string {
	return fmt.Sprintf(variantsPromptTemplate, query)
}
