// Package resource defines the closed set of read-only hub lookups the
// gateway can serve, and the classification of raw hub output into typed
// results. A Descriptor plus ReadOptions fully determines what to fetch;
// Classify turns whatever the hub returned into a stable payload or error.
package resource

// Kind identifies one of the supported lookup queries.
type Kind int

const (
	// KindUserByFid looks up a single user profile by FID
	KindUserByFid Kind = iota
	// KindUserByUsername looks up a single user profile by username
	KindUserByUsername
	// KindVerificationsByFid lists current verifications for a FID
	KindVerificationsByFid
	// KindVerificationByAddress looks up one verification by FID and address
	KindVerificationByAddress
	// KindAllVerificationMessagesByFid lists add/remove verification messages
	KindAllVerificationMessagesByFid
	// KindCast looks up a single cast by FID and hash
	KindCast
	// KindConversation looks up a conversation thread rooted at a cast
	KindConversation
	// KindCastsByFid lists recent casts authored by a FID
	KindCastsByFid
	// KindCastsByMention lists casts mentioning a FID
	KindCastsByMention
	// KindCastsByParent lists replies to a parent cast
	KindCastsByParent
	// KindCastsByParentURL lists replies to a parent URL
	KindCastsByParentURL
	// KindReactionsByFid lists reactions authored by a FID
	KindReactionsByFid
	// KindReactionsByTargetCast lists reactions on a target cast
	KindReactionsByTargetCast
	// KindReactionsByTargetURL lists reactions on a target URL
	KindReactionsByTargetURL
	// KindLinksByFid lists links originating from a FID
	KindLinksByFid
	// KindLinksByTarget lists links pointing at a FID
	KindLinksByTarget
	// KindLinkCompactStateByFid returns the compacted link state for a FID
	KindLinkCompactStateByFid
	// KindUsernameProofByName looks up a single username proof by name
	KindUsernameProofByName
	// KindUsernameProofsByFid lists username proofs for a FID
	KindUsernameProofsByFid
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindUserByFid:
		return "user_by_fid"
	case KindUserByUsername:
		return "user_by_username"
	case KindVerificationsByFid:
		return "verifications_by_fid"
	case KindVerificationByAddress:
		return "verification_by_address"
	case KindAllVerificationMessagesByFid:
		return "all_verification_messages_by_fid"
	case KindCast:
		return "cast"
	case KindConversation:
		return "conversation"
	case KindCastsByFid:
		return "casts_by_fid"
	case KindCastsByMention:
		return "casts_by_mention"
	case KindCastsByParent:
		return "casts_by_parent"
	case KindCastsByParentURL:
		return "casts_by_parent_url"
	case KindReactionsByFid:
		return "reactions_by_fid"
	case KindReactionsByTargetCast:
		return "reactions_by_target_cast"
	case KindReactionsByTargetURL:
		return "reactions_by_target_url"
	case KindLinksByFid:
		return "links_by_fid"
	case KindLinksByTarget:
		return "links_by_target"
	case KindLinkCompactStateByFid:
		return "link_compact_state_by_fid"
	case KindUsernameProofByName:
		return "username_proof_by_name"
	case KindUsernameProofsByFid:
		return "username_proofs_by_fid"
	default:
		return "unknown"
	}
}

// Singular reports whether the kind identifies at most one entity. Singular
// kinds turn "not found" hub text into a NotFound error; collection kinds
// turn it into an empty-collection payload instead.
func (k Kind) Singular() bool {
	switch k {
	case KindUserByFid, KindUserByUsername, KindVerificationByAddress,
		KindCast, KindConversation, KindUsernameProofByName:
		return true
	default:
		return false
	}
}

// alternateKeyLookup reports whether the kind is a singular lookup by an
// alternate key. Only these lookups can receive the hub's found:false JSON
// shape, which embeds both "not found" and upstream-failure signals.
func (k Kind) alternateKeyLookup() bool {
	switch k {
	case KindUserByUsername, KindVerificationByAddress, KindUsernameProofByName:
		return true
	default:
		return false
	}
}

// Descriptor is the fully-resolved description of one lookup: a kind plus
// the identifying parameters for that kind. Only the fields relevant to the
// kind are set; construct descriptors through the per-kind constructors.
// Descriptors are immutable value types with structural equality.
type Descriptor struct {
	Kind Kind

	Fid      uint64
	Username string
	Address  string
	Hash     string
	URL      string
	Name     string

	// Optional time-range filters, used by all-verification-messages only
	StartTime *uint64
	EndTime   *uint64
}

// UserByFid describes a user profile lookup by FID
func UserByFid(fid uint64) Descriptor {
	return Descriptor{Kind: KindUserByFid, Fid: fid}
}

// UserByUsername describes a user profile lookup by username
func UserByUsername(username string) Descriptor {
	return Descriptor{Kind: KindUserByUsername, Username: username}
}

// VerificationsByFid describes a verification listing for a FID
func VerificationsByFid(fid uint64) Descriptor {
	return Descriptor{Kind: KindVerificationsByFid, Fid: fid}
}

// VerificationByAddress describes a single verification lookup
func VerificationByAddress(fid uint64, address string) Descriptor {
	return Descriptor{Kind: KindVerificationByAddress, Fid: fid, Address: address}
}

// AllVerificationMessagesByFid describes a verification message listing,
// optionally bounded by a timestamp range
func AllVerificationMessagesByFid(fid uint64, startTime, endTime *uint64) Descriptor {
	return Descriptor{
		Kind:      KindAllVerificationMessagesByFid,
		Fid:       fid,
		StartTime: startTime,
		EndTime:   endTime,
	}
}

// Cast describes a single cast lookup by FID and hash
func Cast(fid uint64, hash string) Descriptor {
	return Descriptor{Kind: KindCast, Fid: fid, Hash: hash}
}

// Conversation describes a conversation thread lookup rooted at a cast
func Conversation(fid uint64, hash string) Descriptor {
	return Descriptor{Kind: KindConversation, Fid: fid, Hash: hash}
}

// CastsByFid describes a cast listing for an author FID
func CastsByFid(fid uint64) Descriptor {
	return Descriptor{Kind: KindCastsByFid, Fid: fid}
}

// CastsByMention describes a cast listing mentioning a FID
func CastsByMention(fid uint64) Descriptor {
	return Descriptor{Kind: KindCastsByMention, Fid: fid}
}

// CastsByParent describes a reply listing under a parent cast
func CastsByParent(fid uint64, hash string) Descriptor {
	return Descriptor{Kind: KindCastsByParent, Fid: fid, Hash: hash}
}

// CastsByParentURL describes a reply listing under a parent URL
func CastsByParentURL(url string) Descriptor {
	return Descriptor{Kind: KindCastsByParentURL, URL: url}
}

// ReactionsByFid describes a reaction listing for an author FID
func ReactionsByFid(fid uint64) Descriptor {
	return Descriptor{Kind: KindReactionsByFid, Fid: fid}
}

// ReactionsByTargetCast describes a reaction listing for a target cast
func ReactionsByTargetCast(fid uint64, hash string) Descriptor {
	return Descriptor{Kind: KindReactionsByTargetCast, Fid: fid, Hash: hash}
}

// ReactionsByTargetURL describes a reaction listing for a target URL
func ReactionsByTargetURL(url string) Descriptor {
	return Descriptor{Kind: KindReactionsByTargetURL, URL: url}
}

// LinksByFid describes a link listing originating from a FID
func LinksByFid(fid uint64) Descriptor {
	return Descriptor{Kind: KindLinksByFid, Fid: fid}
}

// LinksByTarget describes a link listing pointing at a FID
func LinksByTarget(fid uint64) Descriptor {
	return Descriptor{Kind: KindLinksByTarget, Fid: fid}
}

// LinkCompactStateByFid describes a compact link state lookup for a FID
func LinkCompactStateByFid(fid uint64) Descriptor {
	return Descriptor{Kind: KindLinkCompactStateByFid, Fid: fid}
}

// UsernameProofByName describes a username proof lookup by name
func UsernameProofByName(name string) Descriptor {
	return Descriptor{Kind: KindUsernameProofByName, Name: name}
}

// UsernameProofsByFid describes a username proof listing for a FID
func UsernameProofsByFid(fid uint64) Descriptor {
	return Descriptor{Kind: KindUsernameProofsByFid, Fid: fid}
}

// ReadOptions bundles the optional knobs a caller may set on a lookup.
// A nil field means "apply the resource-specific default downstream", not
// "omit the behavior". When set, Limit and MaxDepth must be at least 1.
type ReadOptions struct {
	Limit     *int
	Recursive *bool
	MaxDepth  *int
}
