// Package hub talks to the upstream hub data service. The service has no
// typed response contract: every lookup returns a raw string holding either
// a JSON document or a plain-English sentence. Callers are expected to
// classify that output; this package never reshapes it.
package hub

import "context"

// Service is the set of named lookup operations the hub exposes, one per
// resource kind. Implementations must be safe for concurrent use; all
// methods return the hub's raw output verbatim. A non-nil error means the
// lookup itself failed (connectivity, query error), not that the resource
// was absent; absence is reported inside the output string.
type Service interface {
	GetUserByFid(ctx context.Context, fid uint64) (string, error)
	GetUserByUsername(ctx context.Context, username string) (string, error)

	GetVerificationsByFid(ctx context.Context, fid uint64, limit int) (string, error)
	GetVerification(ctx context.Context, fid uint64, address string) (string, error)
	GetAllVerificationMessagesByFid(ctx context.Context, fid uint64, limit int, startTime, endTime *uint64) (string, error)

	GetCast(ctx context.Context, fid uint64, hash string) (string, error)
	GetConversation(ctx context.Context, fid uint64, hash string, recursive bool, maxDepth, limit int) (string, error)
	GetCastsByFid(ctx context.Context, fid uint64, limit int) (string, error)
	GetCastsByMention(ctx context.Context, fid uint64, limit int) (string, error)
	GetCastsByParent(ctx context.Context, fid uint64, hash string, limit int) (string, error)
	GetCastsByParentURL(ctx context.Context, url string, limit int) (string, error)

	GetReactionsByFid(ctx context.Context, fid uint64, limit int) (string, error)
	GetReactionsByTargetCast(ctx context.Context, fid uint64, targetHash []byte, limit int) (string, error)
	GetReactionsByTargetURL(ctx context.Context, url string, limit int) (string, error)

	GetLinksByFid(ctx context.Context, fid uint64, linkType string, limit int) (string, error)
	GetLinksByTarget(ctx context.Context, fid uint64, linkType string, limit int) (string, error)
	GetLinkCompactStateByFid(ctx context.Context, fid uint64) (string, error)

	GetUsernameProof(ctx context.Context, name string) (string, error)
	GetUsernameProofsByFid(ctx context.Context, fid uint64) (string, error)
}
