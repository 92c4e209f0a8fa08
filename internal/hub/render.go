package hub

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// The hub's output contract is loose: success is a JSON document, absence
// is a plain-English sentence, and singular alternate-key lookups report
// absence inside a found:false document. These helpers render all three
// forms; the REST layer classifies them downstream.

// Cast is one cast row as read from the replicated hub schema
type Cast struct {
	Fid        uint64
	Hash       []byte
	Text       string
	Timestamp  uint64
	ParentFid  *uint64
	ParentHash []byte
	ParentURL  *string
}

// Reaction is one reaction row
type Reaction struct {
	Fid            uint64
	Type           string
	TargetCastFid  *uint64
	TargetCastHash []byte
	TargetURL      *string
	Timestamp      uint64
}

// Link is one link row
type Link struct {
	Fid       uint64
	TargetFid uint64
	Type      string
	Timestamp uint64
}

// Verification is one verification row
type Verification struct {
	Fid       uint64
	Address   []byte
	Protocol  string
	Type      string
	Timestamp uint64
}

// VerificationMessage is one add/remove verification message row
type VerificationMessage struct {
	Fid       uint64
	Address   []byte
	Action    string
	Timestamp uint64
}

// UsernameProof is one username proof row
type UsernameProof struct {
	Name      string
	Fid       uint64
	Type      string
	Owner     []byte
	Timestamp uint64
}

// UserProfile is the merged user_data rows for one FID
type UserProfile struct {
	Fid         uint64
	Username    *string
	DisplayName *string
	Bio         *string
	Pfp         *string
	URL         *string
}

// hexHash renders hash bytes in the 0x-prefixed form the hub uses
func hexHash(hash []byte) string {
	return "0x" + hex.EncodeToString(hash)
}

// renderJSON marshals a payload map into the hub's raw output form
func renderJSON(payload any) string {
	raw, err := json.Marshal(payload)
	if err != nil {
		// Payload maps hold only scalars, slices, and maps; reaching this
		// means a programming error upstream of rendering.
		return fmt.Sprintf("Error: failed to render output: %v", err)
	}
	return string(raw)
}

// notFoundJSON renders the found:false document used by singular
// alternate-key lookups
func notFoundJSON(fields map[string]any, message string) string {
	payload := map[string]any{"found": false, "error": message}
	for name, value := range fields {
		payload[name] = value
	}
	return renderJSON(payload)
}

func (p UserProfile) payload() map[string]any {
	payload := map[string]any{"fid": p.Fid}
	setIfPresent := func(key string, value *string) {
		if value != nil && *value != "" {
			payload[key] = *value
		}
	}
	setIfPresent("username", p.Username)
	setIfPresent("display_name", p.DisplayName)
	setIfPresent("bio", p.Bio)
	setIfPresent("pfp", p.Pfp)
	setIfPresent("url", p.URL)
	return payload
}

func (c Cast) payload() map[string]any {
	payload := map[string]any{
		"fid":       c.Fid,
		"hash":      hexHash(c.Hash),
		"text":      c.Text,
		"timestamp": c.Timestamp,
	}
	if c.ParentFid != nil && len(c.ParentHash) > 0 {
		payload["parent"] = map[string]any{
			"fid":  *c.ParentFid,
			"hash": hexHash(c.ParentHash),
		}
	}
	if c.ParentURL != nil {
		payload["parent_url"] = *c.ParentURL
	}
	return payload
}

func (r Reaction) payload() map[string]any {
	payload := map[string]any{
		"fid":           r.Fid,
		"reaction_type": r.Type,
		"timestamp":     r.Timestamp,
	}
	if r.TargetCastFid != nil && len(r.TargetCastHash) > 0 {
		payload["target_cast"] = map[string]any{
			"fid":  *r.TargetCastFid,
			"hash": hexHash(r.TargetCastHash),
		}
	}
	if r.TargetURL != nil {
		payload["target_url"] = *r.TargetURL
	}
	return payload
}

func (l Link) payload() map[string]any {
	return map[string]any{
		"fid":        l.Fid,
		"target_fid": l.TargetFid,
		"type":       l.Type,
		"timestamp":  l.Timestamp,
	}
}

func (v Verification) payload() map[string]any {
	return map[string]any{
		"fid":       v.Fid,
		"address":   hexHash(v.Address),
		"protocol":  v.Protocol,
		"type":      v.Type,
		"timestamp": v.Timestamp,
	}
}

func (m VerificationMessage) payload() map[string]any {
	return map[string]any{
		"fid":       m.Fid,
		"address":   hexHash(m.Address),
		"action":    m.Action,
		"timestamp": m.Timestamp,
	}
}

func (p UsernameProof) payload() map[string]any {
	return map[string]any{
		"name":      p.Name,
		"fid":       p.Fid,
		"type":      p.Type,
		"owner":     hexHash(p.Owner),
		"timestamp": p.Timestamp,
	}
}

// castsPayload renders the {fid, count, casts} collection shape
func castsPayload(fid uint64, casts []Cast) string {
	items := make([]any, 0, len(casts))
	for _, c := range casts {
		items = append(items, c.payload())
	}
	return renderJSON(map[string]any{"fid": fid, "count": len(items), "casts": items})
}

// repliesByParentPayload renders the {parent, count, replies} shape
func repliesByParentPayload(fid uint64, hash string, replies []Cast) string {
	items := make([]any, 0, len(replies))
	for _, c := range replies {
		items = append(items, c.payload())
	}
	return renderJSON(map[string]any{
		"parent":  map[string]any{"fid": fid, "hash": hash},
		"count":   len(items),
		"replies": items,
	})
}

// repliesByURLPayload renders the {parent_url, count, replies} shape
func repliesByURLPayload(url string, replies []Cast) string {
	items := make([]any, 0, len(replies))
	for _, c := range replies {
		items = append(items, c.payload())
	}
	return renderJSON(map[string]any{
		"parent_url": url,
		"count":      len(items),
		"replies":    items,
	})
}

// reactionsPayload renders a reaction collection under the given key set
func reactionsPayload(fields map[string]any, reactions []Reaction) string {
	items := make([]any, 0, len(reactions))
	for _, r := range reactions {
		items = append(items, r.payload())
	}
	payload := map[string]any{"count": len(items), "reactions": items}
	for name, value := range fields {
		payload[name] = value
	}
	return renderJSON(payload)
}

// linksPayload renders a link collection under the given key set
func linksPayload(fields map[string]any, links []Link) string {
	items := make([]any, 0, len(links))
	for _, l := range links {
		items = append(items, l.payload())
	}
	payload := map[string]any{"count": len(items), "links": items}
	for name, value := range fields {
		payload[name] = value
	}
	return renderJSON(payload)
}

// verificationsPayload renders the {fid, count, verifications} shape
func verificationsPayload(fid uint64, verifications []Verification) string {
	items := make([]any, 0, len(verifications))
	for _, v := range verifications {
		items = append(items, v.payload())
	}
	return renderJSON(map[string]any{"fid": fid, "count": len(items), "verifications": items})
}

// verificationMessagesPayload renders the time-bounded message listing,
// echoing the original range filters (null when absent)
func verificationMessagesPayload(fid uint64, startTime, endTime *uint64, messages []VerificationMessage) string {
	items := make([]any, 0, len(messages))
	for _, m := range messages {
		items = append(items, m.payload())
	}
	return renderJSON(map[string]any{
		"fid":           fid,
		"count":         len(items),
		"start_time":    startTime,
		"end_time":      endTime,
		"verifications": items,
	})
}

// proofsPayload renders the {fid, count, proofs} shape
func proofsPayload(fid uint64, proofs []UsernameProof) string {
	items := make([]any, 0, len(proofs))
	for _, p := range proofs {
		items = append(items, p.payload())
	}
	return renderJSON(map[string]any{"fid": fid, "count": len(items), "proofs": items})
}

// compactLinksPayload renders the {fid, count, compact_links} shape
func compactLinksPayload(fid uint64, links []Link) string {
	items := make([]any, 0, len(links))
	for _, l := range links {
		items = append(items, map[string]any{
			"target_fid": l.TargetFid,
			"state":      l.Type,
		})
	}
	return renderJSON(map[string]any{"fid": fid, "count": len(items), "compact_links": items})
}
