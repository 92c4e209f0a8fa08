package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint64) *uint64 { return &v }

func TestClassifyValidJSONPassesThroughUnchanged(t *testing.T) {
	tests := []struct {
		name       string
		descriptor Descriptor
		output     string
	}{
		{
			name:       "object",
			descriptor: UserByFid(2),
			output:     `{"fid":2,"username":"alice","display_name":"Alice"}`,
		},
		{
			name:       "nested object",
			descriptor: Conversation(4, "0abc"),
			output:     `{"fid":4,"hash":"0abc","conversation":{"root":{"fid":4}}}`,
		},
		{
			name:       "array",
			descriptor: CastsByFid(2),
			output:     `[{"fid":2},{"fid":2}]`,
		},
		{
			name:       "scalar",
			descriptor: LinkCompactStateByFid(2),
			output:     `42`,
		},
		{
			name:       "object with unusual whitespace",
			descriptor: CastsByFid(2),
			output:     "{\n  \"fid\": 2,\n  \"count\": 1\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := Classify(tt.descriptor, tt.output)
			require.Nil(t, err)
			// Pass-through must be byte-for-byte, not re-encoded.
			assert.Equal(t, tt.output, string(payload))
		})
	}
}

func TestClassifyFoundFalseNotFound(t *testing.T) {
	payload, err := Classify(
		UserByUsername("ghost"),
		`{"username":"ghost","found":false,"error":"Username not found"}`,
	)

	require.Nil(t, payload)
	require.NotNil(t, err)
	assert.Equal(t, ErrNotFound, err.Kind)
	assert.Equal(t, "Username not found", err.Message)
}

func TestClassifyFoundFalseUpstreamFailure(t *testing.T) {
	payload, err := Classify(
		UserByUsername("alice"),
		`{"username":"alice","found":false,"error":"Error: upstream timeout"}`,
	)

	require.Nil(t, payload)
	require.NotNil(t, err)
	assert.Equal(t, ErrInternal, err.Kind)
	assert.Equal(t, "Error: upstream timeout", err.Message)
}

func TestClassifyFoundFalseWithoutErrorField(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{name: "absent", output: `{"name":"ghost","found":false}`},
		{name: "non-string", output: `{"name":"ghost","found":false,"error":42}`},
		{name: "null", output: `{"name":"ghost","found":false,"error":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(UsernameProofByName("ghost"), tt.output)
			require.NotNil(t, err)
			assert.Equal(t, ErrNotFound, err.Kind)
			assert.Equal(t, "Resource not found", err.Message)
		})
	}
}

func TestClassifyFoundTruePassesThrough(t *testing.T) {
	output := `{"fid":2,"address":"0x91","found":true,"verification":{"protocol":"ethereum"}}`

	payload, err := Classify(VerificationByAddress(2, "0x91"), output)

	require.Nil(t, err)
	assert.Equal(t, output, string(payload))
}

// found:false is only meaningful for alternate-key lookups; on any other
// kind it is an ordinary document field.
func TestClassifyFoundFalseIgnoredForPrimaryKeyLookup(t *testing.T) {
	output := `{"fid":2,"found":false}`

	payload, err := Classify(UserByFid(2), output)

	require.Nil(t, err)
	assert.Equal(t, output, string(payload))
}

func TestClassifyInvalidText(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{name: "leading invalid", output: "Invalid fid: abc"},
		{name: "leading invalid lowercase", output: "invalid hash format: zz"},
		{name: "contains missing", output: "Query rejected: missing url parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := Classify(CastsByFid(2), tt.output)
			require.Nil(t, payload)
			require.NotNil(t, err)
			assert.Equal(t, ErrInvalidParams, err.Kind)
			assert.Equal(t, tt.output, err.Message)
		})
	}
}

func TestClassifyErrorText(t *testing.T) {
	payload, err := Classify(UserByFid(2), "Error: database connection lost")

	require.Nil(t, payload)
	require.NotNil(t, err)
	assert.Equal(t, ErrInternal, err.Kind)
	assert.Equal(t, "Error: database connection lost", err.Message)
}

func TestClassifyNotFoundTextSingular(t *testing.T) {
	tests := []struct {
		name       string
		descriptor Descriptor
		output     string
	}{
		{
			name:       "user by fid",
			descriptor: UserByFid(42),
			output:     "No user data found for FID 42",
		},
		{
			name:       "cast",
			descriptor: Cast(2, "0abc"),
			output:     "No cast found with hash 0abc for FID 2",
		},
		{
			name:       "conversation",
			descriptor: Conversation(2, "0abc"),
			output:     "No cast found with hash 0abc for FID 2",
		},
		{
			name:       "contains not found",
			descriptor: UserByFid(42),
			output:     "the requested entity was not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := Classify(tt.descriptor, tt.output)
			require.Nil(t, payload)
			require.NotNil(t, err)
			assert.Equal(t, ErrNotFound, err.Kind)
			assert.Equal(t, tt.output, err.Message)
		})
	}
}

func TestClassifyNotFoundTextCollection(t *testing.T) {
	tests := []struct {
		name       string
		descriptor Descriptor
		output     string
		want       string
	}{
		{
			name:       "casts by fid",
			descriptor: CastsByFid(42),
			output:     "No casts found for FID 42",
			want:       `{"fid":42,"count":0,"casts":[]}`,
		},
		{
			name:       "casts by mention",
			descriptor: CastsByMention(7),
			output:     "No casts found mentioning FID 7",
			want:       `{"fid":7,"count":0,"casts":[]}`,
		},
		{
			name:       "casts by parent",
			descriptor: CastsByParent(2, "0abc"),
			output:     "No replies found for cast 0abc from FID 2",
			want:       `{"parent":{"fid":2,"hash":"0abc"},"count":0,"replies":[]}`,
		},
		{
			name:       "casts by parent url",
			descriptor: CastsByParentURL("https://example.com/topic"),
			output:     "No replies found for parent URL https://example.com/topic",
			want:       `{"parent_url":"https://example.com/topic","count":0,"replies":[]}`,
		},
		{
			name:       "reactions by fid",
			descriptor: ReactionsByFid(42),
			output:     "No reactions found for FID 42",
			want:       `{"fid":42,"count":0,"reactions":[]}`,
		},
		{
			name:       "reactions by target cast",
			descriptor: ReactionsByTargetCast(2, "0abc"),
			output:     "No reactions found for cast 0abc from FID 2",
			want:       `{"target_cast":{"fid":2,"hash":"0abc"},"count":0,"reactions":[]}`,
		},
		{
			name:       "reactions by target url",
			descriptor: ReactionsByTargetURL("https://example.com"),
			output:     "No reactions found for target URL https://example.com",
			want:       `{"target_url":"https://example.com","count":0,"reactions":[]}`,
		},
		{
			name:       "links by fid",
			descriptor: LinksByFid(42),
			output:     "No links found for FID 42",
			want:       `{"fid":42,"count":0,"links":[]}`,
		},
		{
			name:       "links by target",
			descriptor: LinksByTarget(42),
			output:     "No links found targeting FID 42",
			want:       `{"target_fid":42,"count":0,"links":[]}`,
		},
		{
			name:       "link compact state",
			descriptor: LinkCompactStateByFid(42),
			output:     "No link state found for FID 42",
			want:       `{"fid":42,"count":0,"compact_links":[]}`,
		},
		{
			name:       "verifications by fid",
			descriptor: VerificationsByFid(42),
			output:     "No verifications found for FID 42",
			want:       `{"fid":42,"count":0,"verifications":[]}`,
		},
		{
			name:       "username proofs by fid",
			descriptor: UsernameProofsByFid(42),
			output:     "No username proofs found for FID 42",
			want:       `{"fid":42,"count":0,"proofs":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := Classify(tt.descriptor, tt.output)
			require.Nil(t, err)
			assert.JSONEq(t, tt.want, string(payload))
		})
	}
}

func TestClassifyVerificationMessagesEchoesTimeRange(t *testing.T) {
	t.Run("range absent", func(t *testing.T) {
		d := AllVerificationMessagesByFid(42, nil, nil)
		payload, err := Classify(d, "No verification messages found for FID 42")
		require.Nil(t, err)
		assert.JSONEq(t,
			`{"fid":42,"count":0,"start_time":null,"end_time":null,"verifications":[]}`,
			string(payload))
	})

	t.Run("range present", func(t *testing.T) {
		d := AllVerificationMessagesByFid(42, uintPtr(100), uintPtr(200))
		payload, err := Classify(d, "No verification messages found for FID 42 between timestamps 100 and 200")
		require.Nil(t, err)
		assert.JSONEq(t,
			`{"fid":42,"count":0,"start_time":100,"end_time":200,"verifications":[]}`,
			string(payload))
	})
}

func TestClassifyUnrecognizedTextIsInternal(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{name: "free text", output: "something unexpected happened"},
		{name: "empty string", output: ""},
		{name: "truncated json", output: `{"fid":2,`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := Classify(CastsByFid(2), tt.output)
			require.Nil(t, payload)
			require.NotNil(t, err)
			assert.Equal(t, ErrInternal, err.Kind)
		})
	}
}
