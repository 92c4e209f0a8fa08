package resource

import "encoding/json"

// EmptyCollection synthesizes the payload a collection lookup returns when
// the hub reported zero rows as prose. Each shape reproduces the exact key
// set of that kind's non-empty response, with the collection field emptied
// and the cardinality field zeroed, so consumers see one schema regardless
// of result count. Kinds with no collection shape fall back to an empty
// object.
func EmptyCollection(d Descriptor) json.RawMessage {
	var payload any

	switch d.Kind {
	case KindVerificationsByFid:
		payload = map[string]any{
			"fid": d.Fid, "count": 0, "verifications": []any{},
		}
	case KindAllVerificationMessagesByFid:
		// The original time-range filters are echoed back, null when absent.
		payload = map[string]any{
			"fid":           d.Fid,
			"count":         0,
			"start_time":    d.StartTime,
			"end_time":      d.EndTime,
			"verifications": []any{},
		}
	case KindCastsByFid, KindCastsByMention:
		payload = map[string]any{
			"fid": d.Fid, "count": 0, "casts": []any{},
		}
	case KindCastsByParent:
		payload = map[string]any{
			"parent": map[string]any{"fid": d.Fid, "hash": d.Hash},
			"count":  0, "replies": []any{},
		}
	case KindCastsByParentURL:
		payload = map[string]any{
			"parent_url": d.URL, "count": 0, "replies": []any{},
		}
	case KindReactionsByFid:
		payload = map[string]any{
			"fid": d.Fid, "count": 0, "reactions": []any{},
		}
	case KindReactionsByTargetCast:
		payload = map[string]any{
			"target_cast": map[string]any{"fid": d.Fid, "hash": d.Hash},
			"count":       0, "reactions": []any{},
		}
	case KindReactionsByTargetURL:
		payload = map[string]any{
			"target_url": d.URL, "count": 0, "reactions": []any{},
		}
	case KindLinksByFid:
		payload = map[string]any{
			"fid": d.Fid, "count": 0, "links": []any{},
		}
	case KindLinksByTarget:
		payload = map[string]any{
			"target_fid": d.Fid, "count": 0, "links": []any{},
		}
	case KindLinkCompactStateByFid:
		payload = map[string]any{
			"fid": d.Fid, "count": 0, "compact_links": []any{},
		}
	case KindUsernameProofsByFid:
		payload = map[string]any{
			"fid": d.Fid, "count": 0, "proofs": []any{},
		}
	default:
		payload = map[string]any{}
	}

	// Marshaling a map of scalars and empty slices cannot fail.
	raw, _ := json.Marshal(payload)
	return raw
}
