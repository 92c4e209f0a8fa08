package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubgate/hubgate/internal/resource"
)

// capturingReader records the descriptor and options of the last read and
// replies with a fixed payload or error
type capturingReader struct {
	payload    string
	err        error
	called     bool
	descriptor resource.Descriptor
	options    resource.ReadOptions
}

func (r *capturingReader) ReadResource(ctx context.Context, d resource.Descriptor, opts resource.ReadOptions) (json.RawMessage, error) {
	r.called = true
	r.descriptor = d
	r.options = opts
	if r.err != nil {
		return nil, r.err
	}
	return json.RawMessage(r.payload), nil
}

func newTestRouter(reader Reader) http.Handler {
	return NewRouter(RouterConfig{Reader: reader, MaxLimit: 100})
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var envelope ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestRouteDescriptorMapping(t *testing.T) {
	start, end := uint64(100), uint64(200)

	tests := []struct {
		name string
		path string
		want resource.Descriptor
	}{
		{
			name: "user by fid",
			path: "/api/v1/users/42",
			want: resource.UserByFid(42),
		},
		{
			name: "user by username",
			path: "/api/v1/users/by-username/alice",
			want: resource.UserByUsername("alice"),
		},
		{
			name: "verifications by fid",
			path: "/api/v1/verifications/42",
			want: resource.VerificationsByFid(42),
		},
		{
			name: "verification by address",
			path: "/api/v1/verifications/42/0x91aa",
			want: resource.VerificationByAddress(42, "0x91aa"),
		},
		{
			name: "all verification messages",
			path: "/api/v1/verifications/all-by-fid/42",
			want: resource.AllVerificationMessagesByFid(42, nil, nil),
		},
		{
			name: "all verification messages with range",
			path: "/api/v1/verifications/all-by-fid/42?start_time=100&end_time=200",
			want: resource.AllVerificationMessagesByFid(42, &start, &end),
		},
		{
			name: "cast",
			path: "/api/v1/casts/42/0a1b2c",
			want: resource.Cast(42, "0a1b2c"),
		},
		{
			name: "conversation",
			path: "/api/v1/conversations/42/0a1b2c",
			want: resource.Conversation(42, "0a1b2c"),
		},
		{
			name: "casts by fid",
			path: "/api/v1/casts/by-fid/42",
			want: resource.CastsByFid(42),
		},
		{
			name: "casts by mention",
			path: "/api/v1/casts/by-mention/42",
			want: resource.CastsByMention(42),
		},
		{
			name: "casts by parent",
			path: "/api/v1/casts/by-parent/42/0a1b2c",
			want: resource.CastsByParent(42, "0a1b2c"),
		},
		{
			name: "casts by parent url",
			path: "/api/v1/casts/by-parent-url?url=https://example.com/topic",
			want: resource.CastsByParentURL("https://example.com/topic"),
		},
		{
			name: "reactions by fid",
			path: "/api/v1/reactions/by-fid/42",
			want: resource.ReactionsByFid(42),
		},
		{
			name: "reactions by target cast",
			path: "/api/v1/reactions/by-target-cast/42/0a1b2c",
			want: resource.ReactionsByTargetCast(42, "0a1b2c"),
		},
		{
			name: "reactions by target url",
			path: "/api/v1/reactions/by-target-url?url=https://example.com",
			want: resource.ReactionsByTargetURL("https://example.com"),
		},
		{
			name: "links by fid",
			path: "/api/v1/links/by-fid/42",
			want: resource.LinksByFid(42),
		},
		{
			name: "links by target",
			path: "/api/v1/links/by-target/42",
			want: resource.LinksByTarget(42),
		},
		{
			name: "link compact state",
			path: "/api/v1/links/compact-state/42",
			want: resource.LinkCompactStateByFid(42),
		},
		{
			name: "username proof by name",
			path: "/api/v1/username-proofs/by-name/alice.eth",
			want: resource.UsernameProofByName("alice.eth"),
		},
		{
			name: "username proofs by fid",
			path: "/api/v1/username-proofs/42",
			want: resource.UsernameProofsByFid(42),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &capturingReader{payload: `{}`}
			rec := get(t, newTestRouter(reader), tt.path)

			require.True(t, reader.called, "reader was not invoked")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, reader.descriptor)
		})
	}
}

func TestSuccessResponsePassesPayloadThrough(t *testing.T) {
	payload := `{"fid": 42,  "username": "alice"}`
	reader := &capturingReader{payload: payload}

	rec := get(t, newTestRouter(reader), "/api/v1/users/42")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, payload, rec.Body.String())
}

func TestInvalidPathParameters(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		wantMessage string
	}{
		{
			name:        "non-numeric fid",
			path:        "/api/v1/users/abc",
			wantMessage: "Invalid parameters: Invalid fid: abc",
		},
		{
			name:        "negative fid",
			path:        "/api/v1/casts/by-fid/-1",
			wantMessage: "Invalid parameters: Invalid fid: -1",
		},
		{
			name:        "malformed cast hash",
			path:        "/api/v1/casts/42/zz",
			wantMessage: "Invalid parameters: Invalid hash format: zz",
		},
		{
			name:        "empty address",
			path:        "/api/v1/verifications/42/0x",
			wantMessage: "Invalid parameters: Invalid address format: empty address",
		},
		{
			name:        "malformed address",
			path:        "/api/v1/verifications/42/nothex",
			wantMessage: "Invalid parameters: Invalid address format: nothex",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &capturingReader{payload: `{}`}
			rec := get(t, newTestRouter(reader), tt.path)

			assert.False(t, reader.called, "reader must not run on invalid input")
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			envelope := decodeError(t, rec)
			assert.Equal(t, "invalid_params", envelope.Error.Code)
			assert.Equal(t, tt.wantMessage, envelope.Error.Message)
		})
	}
}

func TestInvalidQueryParameters(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		wantMessage string
	}{
		{
			name:        "zero limit",
			path:        "/api/v1/casts/by-fid/42?limit=0",
			wantMessage: "Invalid parameters: limit must be greater than 0",
		},
		{
			name:        "missing url",
			path:        "/api/v1/casts/by-parent-url",
			wantMessage: "Invalid parameters: Missing required query parameter: url",
		},
		{
			name:        "missing url on reactions",
			path:        "/api/v1/reactions/by-target-url",
			wantMessage: "Invalid parameters: Missing required query parameter: url",
		},
		{
			name:        "inverted time range",
			path:        "/api/v1/verifications/all-by-fid/42?start_time=200&end_time=100",
			wantMessage: "Invalid parameters: start_time must be less than or equal to end_time",
		},
		{
			name:        "zero max depth",
			path:        "/api/v1/conversations/42/0a1b?max_depth=0",
			wantMessage: "Invalid parameters: max_depth must be greater than 0",
		},
		{
			name:        "bad recursive flag",
			path:        "/api/v1/conversations/42/0a1b?recursive=maybe",
			wantMessage: "Invalid parameters: Invalid boolean value: maybe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &capturingReader{payload: `{}`}
			rec := get(t, newTestRouter(reader), tt.path)

			assert.False(t, reader.called, "reader must not run on invalid input")
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			envelope := decodeError(t, rec)
			assert.Equal(t, "invalid_params", envelope.Error.Code)
			assert.Equal(t, tt.wantMessage, envelope.Error.Message)
		})
	}
}

func TestLimitNormalization(t *testing.T) {
	t.Run("absent applies default", func(t *testing.T) {
		reader := &capturingReader{payload: `{}`}
		get(t, newTestRouter(reader), "/api/v1/casts/by-fid/42")

		require.NotNil(t, reader.options.Limit)
		assert.Equal(t, DefaultLimit, *reader.options.Limit)
	})

	t.Run("above ceiling clamps", func(t *testing.T) {
		reader := &capturingReader{payload: `{}`}
		get(t, newTestRouter(reader), "/api/v1/casts/by-fid/42?limit=999")

		require.NotNil(t, reader.options.Limit)
		assert.Equal(t, 100, *reader.options.Limit)
	})

	t.Run("in range passes through", func(t *testing.T) {
		reader := &capturingReader{payload: `{}`}
		get(t, newTestRouter(reader), "/api/v1/casts/by-fid/42?limit=25")

		require.NotNil(t, reader.options.Limit)
		assert.Equal(t, 25, *reader.options.Limit)
	})
}

// Conversation knobs stay unset in the options when the caller omits them;
// the reader applies its own defaults downstream.
func TestConversationOptionsLeftUnsetByDefault(t *testing.T) {
	reader := &capturingReader{payload: `{}`}
	get(t, newTestRouter(reader), "/api/v1/conversations/42/0a1b")

	require.NotNil(t, reader.options.Limit)
	assert.Equal(t, DefaultLimit, *reader.options.Limit)
	assert.Nil(t, reader.options.Recursive)
	assert.Nil(t, reader.options.MaxDepth)
}

func TestConversationOptionsPassedThrough(t *testing.T) {
	reader := &capturingReader{payload: `{}`}
	get(t, newTestRouter(reader), "/api/v1/conversations/42/0a1b?recursive=false&max_depth=2&limit=3")

	require.NotNil(t, reader.options.Recursive)
	assert.False(t, *reader.options.Recursive)
	require.NotNil(t, reader.options.MaxDepth)
	assert.Equal(t, 2, *reader.options.MaxDepth)
	require.NotNil(t, reader.options.Limit)
	assert.Equal(t, 3, *reader.options.Limit)
}

func TestReaderErrorsMapToEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found",
			err:        resource.NotFound("Username not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "internal",
			err:        resource.Internal("upstream timeout"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &capturingReader{err: tt.err}
			rec := get(t, newTestRouter(reader), "/api/v1/users/by-username/ghost")

			assert.Equal(t, tt.wantStatus, rec.Code)
			envelope := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}

func TestUnknownRouteReturnsJSONEnvelope(t *testing.T) {
	reader := &capturingReader{payload: `{}`}
	rec := get(t, newTestRouter(reader), "/api/v1/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	envelope := decodeError(t, rec)
	assert.Equal(t, "not_found", envelope.Error.Code)
}

func TestDocsRouteGatedByConfig(t *testing.T) {
	reader := &capturingReader{payload: `{}`}

	disabled := NewRouter(RouterConfig{Reader: reader, MaxLimit: 100})
	rec := get(t, disabled, "/docs")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	enabled := NewRouter(RouterConfig{Reader: reader, MaxLimit: 100, EnableDocs: true})
	rec = get(t, enabled, "/docs")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/openapi.json")
}
