package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hubgate/hubgate/internal/hub"
	"github.com/hubgate/hubgate/internal/resource"
)

const (
	// defaultLinkType is the relationship type link queries default to
	defaultLinkType = "follow"
	// defaultConversationDepth bounds conversation recursion when the
	// caller does not set max_depth
	defaultConversationDepth = 5
	// defaultConversationRecursive includes nested replies unless the
	// caller opts out
	defaultConversationRecursive = true
)

// Reader is the single-operation contract the binding layer depends on:
// descriptor plus options in, classified JSON payload or typed error out.
// Implementations must not mutate shared state and must be safely callable
// from concurrently handled requests.
type Reader interface {
	ReadResource(ctx context.Context, d resource.Descriptor, opts resource.ReadOptions) (json.RawMessage, error)
}

// HubReader is the production Reader. It dispatches a descriptor to the
// matching hub lookup, injecting resource-specific defaults into absent
// option fields, then classifies the hub's raw output.
type HubReader struct {
	service hub.Service
}

// NewHubReader creates a Reader backed by the given hub service
func NewHubReader(service hub.Service) *HubReader {
	return &HubReader{service: service}
}

// ReadResource implements Reader
func (r *HubReader) ReadResource(ctx context.Context, d resource.Descriptor, opts resource.ReadOptions) (json.RawMessage, error) {
	limit := DefaultLimit
	if opts.Limit != nil {
		limit = *opts.Limit
	}

	output, err := r.fetch(ctx, d, opts, limit)
	if err != nil {
		if readErr, ok := resource.AsError(err); ok {
			return nil, readErr
		}
		return nil, resource.Internal(err.Error())
	}

	payload, classifyErr := resource.Classify(d, output)
	if classifyErr != nil {
		return nil, classifyErr
	}
	return payload, nil
}

// fetch invokes the hub lookup matching the descriptor kind
func (r *HubReader) fetch(ctx context.Context, d resource.Descriptor, opts resource.ReadOptions, limit int) (string, error) {
	switch d.Kind {
	case resource.KindUserByFid:
		return r.service.GetUserByFid(ctx, d.Fid)
	case resource.KindUserByUsername:
		return r.service.GetUserByUsername(ctx, d.Username)
	case resource.KindVerificationsByFid:
		return r.service.GetVerificationsByFid(ctx, d.Fid, limit)
	case resource.KindVerificationByAddress:
		return r.service.GetVerification(ctx, d.Fid, d.Address)
	case resource.KindAllVerificationMessagesByFid:
		return r.service.GetAllVerificationMessagesByFid(ctx, d.Fid, limit, d.StartTime, d.EndTime)
	case resource.KindCast:
		return r.service.GetCast(ctx, d.Fid, d.Hash)
	case resource.KindConversation:
		recursive := defaultConversationRecursive
		if opts.Recursive != nil {
			recursive = *opts.Recursive
		}
		maxDepth := defaultConversationDepth
		if opts.MaxDepth != nil {
			maxDepth = *opts.MaxDepth
		}
		return r.service.GetConversation(ctx, d.Fid, d.Hash, recursive, maxDepth, limit)
	case resource.KindCastsByFid:
		return r.service.GetCastsByFid(ctx, d.Fid, limit)
	case resource.KindCastsByMention:
		return r.service.GetCastsByMention(ctx, d.Fid, limit)
	case resource.KindCastsByParent:
		return r.service.GetCastsByParent(ctx, d.Fid, d.Hash, limit)
	case resource.KindCastsByParentURL:
		return r.service.GetCastsByParentURL(ctx, d.URL, limit)
	case resource.KindReactionsByFid:
		return r.service.GetReactionsByFid(ctx, d.Fid, limit)
	case resource.KindReactionsByTargetCast:
		targetHash, err := parseHashBytes(d.Hash)
		if err != nil {
			return "", err
		}
		return r.service.GetReactionsByTargetCast(ctx, d.Fid, targetHash, limit)
	case resource.KindReactionsByTargetURL:
		return r.service.GetReactionsByTargetURL(ctx, d.URL, limit)
	case resource.KindLinksByFid:
		return r.service.GetLinksByFid(ctx, d.Fid, defaultLinkType, limit)
	case resource.KindLinksByTarget:
		return r.service.GetLinksByTarget(ctx, d.Fid, defaultLinkType, limit)
	case resource.KindLinkCompactStateByFid:
		return r.service.GetLinkCompactStateByFid(ctx, d.Fid)
	case resource.KindUsernameProofByName:
		return r.service.GetUsernameProof(ctx, d.Name)
	case resource.KindUsernameProofsByFid:
		return r.service.GetUsernameProofsByFid(ctx, d.Fid)
	default:
		return "", fmt.Errorf("unsupported resource kind: %s", d.Kind)
	}
}
