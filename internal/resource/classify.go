package resource

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// Classify turns raw hub output for a descriptor into a success payload or a
// typed error. The hub has no typed error contract: it answers with either a
// JSON document or a plain-English sentence, and renders "definitely absent
// entity" and "query matched zero rows" with the same phrasing. Recovering
// that distinction from wording plus the descriptor's singular/collection
// nature is the documented contract of this function, not an incidental
// heuristic.
func Classify(d Descriptor, output string) (json.RawMessage, *Error) {
	if gjson.Valid(output) {
		// Singular alternate-key lookups fold both "not found" and upstream
		// failures into a found:false document, distinguished only by the
		// wording of the embedded error message.
		if d.Kind.alternateKeyLookup() && gjson.Get(output, "found").Type == gjson.False {
			message := "Resource not found"
			if errField := gjson.Get(output, "error"); errField.Type == gjson.String {
				message = errField.Str
			}
			return nil, classifyFoundFalse(message)
		}

		// Any other JSON document is the success payload, passed through
		// byte-for-byte with no reshaping.
		return json.RawMessage(output), nil
	}

	lowered := strings.ToLower(output)

	if strings.HasPrefix(lowered, "invalid") || strings.Contains(lowered, "missing ") {
		return nil, InvalidParams(output)
	}

	if strings.HasPrefix(lowered, "error") {
		return nil, Internal(output)
	}

	if strings.HasPrefix(lowered, "no ") || strings.Contains(lowered, " not found") {
		if d.Kind.Singular() {
			return nil, NotFound(output)
		}
		return EmptyCollection(d), nil
	}

	// Unclassifiable hub text is never silently treated as success.
	return nil, Internal(output)
}

// classifyFoundFalse maps the message embedded in a found:false document to
// an error kind: a leading "error" word signals an upstream failure.
func classifyFoundFalse(message string) *Error {
	lowered := strings.ToLower(strings.TrimSpace(message))
	if strings.HasPrefix(lowered, "error") {
		return Internal(message)
	}
	return NotFound(message)
}
