package ai

import (
	"encoding/json"
	"strconv"
	"strings"

	"saina/internal/modules/session"
)

// normalizeIntent maps raw model output to an intent. Anything that is not
// exactly "flight" or "hotel" after cleanup degrades to IntentUnknown.
func normalizeIntent(raw string) session.Intent {
	token := strings.ToLower(strings.TrimSpace(cleanJSONString(raw)))
	token = strings.Trim(token, `"'.`)
	switch token {
	case "flight":
		return session.IntentFlight
	case "hotel":
		return session.IntentHotel
	default:
		return session.IntentUnknown
	}
}

// parseSlotRecord validates the model's structured output against the slot
// schema. The parse is field-tolerant: a field that is missing, null, or of
// the wrong shape is treated as absent, never as an error. A payload that is
// not a JSON object at all yields an empty patch.
func parseSlotRecord(raw string) session.SlotPatch {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleanJSONString(raw)), &fields); err != nil {
		return session.SlotPatch{}
	}

	return session.SlotPatch{
		Origin:       stringField(fields, "from"),
		Destination:  stringField(fields, "to"),
		TravelDate:   stringField(fields, "date"),
		Adults:       countField(fields, "adults"),
		Children:     countField(fields, "children"),
		Infants:      countField(fields, "infants"),
		ContactName:  stringField(fields, "name"),
		ContactPhone: stringField(fields, "phone"),
	}
}

func stringField(fields map[string]json.RawMessage, key string) *string {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return nil
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// countField accepts a non-negative integer, given either as a JSON number
// or as a numeric string (models do both).
func countField(fields map[string]json.RawMessage, key string) *int {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil
		}
		n = parsed
	}
	if n < 0 {
		return nil
	}
	return &n
}

// isNull reports whether a raw JSON value is the null literal, which
// json.Unmarshal would otherwise silently map to a zero value.
func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
