package api

import (
	"net/http"
	"sync"
)

// openAPIOnce builds the OpenAPI document a single time; the route table is
// fixed at compile time so there is nothing to regenerate per request.
var (
	openAPIOnce sync.Once
	openAPIDoc  map[string]any
)

// GetOpenAPI handles GET /api/v1/openapi.json
func GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	openAPIOnce.Do(func() {
		openAPIDoc = buildOpenAPI()
	})
	writeJSON(w, http.StatusOK, openAPIDoc)
}

type paramSpec struct {
	name        string
	in          string
	typ         string
	required    bool
	description string
}

func pathParam(name, typ, description string) paramSpec {
	return paramSpec{name: name, in: "path", typ: typ, required: true, description: description}
}

func queryParam(name, typ, description string) paramSpec {
	return paramSpec{name: name, in: "query", typ: typ, description: description}
}

var limitParam = queryParam("limit", "integer", "Max number of records")

// operation builds one GET operation: a tag, summary, parameter list, the
// 200 response schema reference, and the error envelope responses.
func operation(tag, summary, responseRef string, canMiss bool, params ...paramSpec) map[string]any {
	parameters := make([]any, 0, len(params))
	for _, p := range params {
		parameters = append(parameters, map[string]any{
			"name":        p.name,
			"in":          p.in,
			"required":    p.required,
			"description": p.description,
			"schema":      map[string]any{"type": p.typ},
		})
	}

	responses := map[string]any{
		"200": map[string]any{
			"description": summary,
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": responseRef},
				},
			},
		},
		"400": errorResponse("Invalid request parameters"),
		"500": errorResponse("Internal server error"),
	}
	if canMiss {
		responses["404"] = errorResponse("Resource not found")
	}

	return map[string]any{
		"get": map[string]any{
			"tags":       []any{tag},
			"summary":    summary,
			"parameters": parameters,
			"responses":  responses,
		},
	}
}

func errorResponse(description string) map[string]any {
	return map[string]any{
		"description": description,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorEnvelope"},
			},
		},
	}
}

// collectionSchema describes the uniform {key-set, count, items} response of
// a collection resource
func collectionSchema(itemsField string, extra map[string]any) map[string]any {
	properties := map[string]any{
		"count":    map[string]any{"type": "integer"},
		itemsField: map[string]any{"type": "array", "items": map[string]any{"type": "object"}},
	}
	for name, schema := range extra {
		properties[name] = schema
	}
	return map[string]any{"type": "object", "properties": properties}
}

func buildOpenAPI() map[string]any {
	fidProp := map[string]any{"type": "integer", "format": "uint64"}
	stringProp := map[string]any{"type": "string"}

	schemas := map[string]any{
		"ErrorEnvelope": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"error": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"code":    map[string]any{"type": "string", "enum": []any{"invalid_params", "not_found", "internal_error"}},
						"message": stringProp,
					},
				},
			},
		},
		"UserProfileResponse": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"fid":          fidProp,
				"username":     stringProp,
				"display_name": stringProp,
				"bio":          stringProp,
				"pfp":          stringProp,
				"url":          stringProp,
			},
		},
		"VerificationsResponse": collectionSchema("verifications", map[string]any{"fid": fidProp}),
		"VerificationByAddressResponse": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"fid": fidProp, "address": stringProp,
				"found":        map[string]any{"type": "boolean"},
				"verification": map[string]any{"type": "object"},
			},
		},
		"AllVerificationMessagesResponse": collectionSchema("verifications", map[string]any{
			"fid":        fidProp,
			"start_time": map[string]any{"type": "integer", "nullable": true},
			"end_time":   map[string]any{"type": "integer", "nullable": true},
		}),
		"CastSummary": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"fid": fidProp, "hash": stringProp,
				"timestamp": map[string]any{"type": "integer"},
				"text":      stringProp,
			},
		},
		"CastListResponse":          collectionSchema("casts", map[string]any{"fid": fidProp}),
		"CastRepliesByParentResponse": collectionSchema("replies", map[string]any{
			"parent": map[string]any{"type": "object", "properties": map[string]any{"fid": fidProp, "hash": stringProp}},
		}),
		"CastRepliesByURLResponse": collectionSchema("replies", map[string]any{"parent_url": stringProp}),
		"ConversationResponse": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"fid": fidProp, "hash": stringProp,
				"conversation": map[string]any{"type": "object"},
			},
		},
		"ReactionsByFidResponse": collectionSchema("reactions", map[string]any{"fid": fidProp}),
		"ReactionsByTargetCastResponse": collectionSchema("reactions", map[string]any{
			"target_cast": map[string]any{"type": "object", "properties": map[string]any{"fid": fidProp, "hash": stringProp}},
		}),
		"ReactionsByTargetURLResponse": collectionSchema("reactions", map[string]any{"target_url": stringProp}),
		"LinksByFidResponse":           collectionSchema("links", map[string]any{"fid": fidProp}),
		"LinksByTargetResponse":        collectionSchema("links", map[string]any{"target_fid": fidProp}),
		"LinkCompactStateResponse":     collectionSchema("compact_links", map[string]any{"fid": fidProp}),
		"UsernameProof": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name": stringProp, "type": stringProp, "fid": fidProp,
				"timestamp": map[string]any{"type": "integer"},
				"owner":     stringProp,
			},
		},
		"UsernameProofByNameResponse": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name": stringProp, "found": map[string]any{"type": "boolean"},
				"type": stringProp, "fid": fidProp, "owner": stringProp,
			},
		},
		"UsernameProofsByFidResponse": collectionSchema("proofs", map[string]any{"fid": fidProp}),
	}

	fid := pathParam("fid", "integer", "Farcaster ID")
	hash := pathParam("hash", "string", "Cast hash (hex, with or without 0x)")
	ref := func(name string) string { return "#/components/schemas/" + name }

	paths := map[string]any{
		"/api/v1/users/{fid}": operation("users", "User profile by FID",
			ref("UserProfileResponse"), true, fid),
		"/api/v1/users/by-username/{username}": operation("users", "User profile by username",
			ref("UserProfileResponse"), true,
			pathParam("username", "string", "Farcaster username")),
		"/api/v1/verifications/{fid}": operation("verifications", "Verifications by FID",
			ref("VerificationsResponse"), false, fid, limitParam),
		"/api/v1/verifications/{fid}/{address}": operation("verifications", "Verification by FID and address",
			ref("VerificationByAddressResponse"), true, fid,
			pathParam("address", "string", "Address in hex format (with or without 0x prefix)")),
		"/api/v1/verifications/all-by-fid/{fid}": operation("verifications", "All verification messages by FID",
			ref("AllVerificationMessagesResponse"), false, fid, limitParam,
			queryParam("start_time", "integer", "Filter records at or after this timestamp"),
			queryParam("end_time", "integer", "Filter records at or before this timestamp")),
		"/api/v1/casts/{fid}/{hash}": operation("casts", "Cast by FID and hash",
			ref("CastSummary"), true, fid, hash),
		"/api/v1/casts/by-fid/{fid}": operation("casts", "Recent casts by FID",
			ref("CastListResponse"), false, fid, limitParam),
		"/api/v1/casts/by-mention/{fid}": operation("casts", "Casts mentioning a FID",
			ref("CastListResponse"), false, fid, limitParam),
		"/api/v1/casts/by-parent/{fid}/{hash}": operation("casts", "Replies to a parent cast",
			ref("CastRepliesByParentResponse"), false, fid, hash, limitParam),
		"/api/v1/casts/by-parent-url": operation("casts", "Replies to a parent URL",
			ref("CastRepliesByURLResponse"), false,
			queryParam("url", "string", "Parent URL to match"), limitParam),
		"/api/v1/conversations/{fid}/{hash}": operation("conversations", "Conversation thread",
			ref("ConversationResponse"), true, fid, hash,
			queryParam("recursive", "boolean", "Include nested replies"),
			queryParam("max_depth", "integer", "Maximum nested reply depth"), limitParam),
		"/api/v1/reactions/by-fid/{fid}": operation("reactions", "Reactions by FID",
			ref("ReactionsByFidResponse"), false, fid, limitParam),
		"/api/v1/reactions/by-target-cast/{fid}/{hash}": operation("reactions", "Reactions for a target cast",
			ref("ReactionsByTargetCastResponse"), false, fid, hash, limitParam),
		"/api/v1/reactions/by-target-url": operation("reactions", "Reactions for a target URL",
			ref("ReactionsByTargetURLResponse"), false,
			queryParam("url", "string", "Target URL"), limitParam),
		"/api/v1/links/by-fid/{fid}": operation("links", "Links by FID",
			ref("LinksByFidResponse"), false, fid, limitParam),
		"/api/v1/links/by-target/{fid}": operation("links", "Links by target FID",
			ref("LinksByTargetResponse"), false, fid, limitParam),
		"/api/v1/links/compact-state/{fid}": operation("links", "Compact link state by FID",
			ref("LinkCompactStateResponse"), false, fid),
		"/api/v1/username-proofs/by-name/{name}": operation("username-proofs", "Username proof by name",
			ref("UsernameProofByNameResponse"), true,
			pathParam("name", "string", "Username to lookup (e.g. alice, vitalik.eth)")),
		"/api/v1/username-proofs/{fid}": operation("username-proofs", "Username proofs by FID",
			ref("UsernameProofsByFidResponse"), false, fid),
		"/api/v1/openapi.json": map[string]any{
			"get": map[string]any{
				"tags":    []any{"meta"},
				"summary": "Generated OpenAPI specification document",
				"responses": map[string]any{
					"200": map[string]any{"description": "OpenAPI document"},
				},
			},
		},
	}

	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       "hubgate REST API",
			"description": "Read-only Farcaster social-graph and content lookups",
			"version":     "1.0.0",
		},
		"paths": paths,
		"components": map[string]any{
			"schemas": schemas,
		},
	}
}
