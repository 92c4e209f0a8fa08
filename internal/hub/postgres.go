package hub

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresService reads the replicated hub schema directly. It is the
// production Service implementation; one instance is shared read-only
// across all in-flight requests, with the pool handling connection
// concurrency.
type PostgresService struct {
	pool *pgxpool.Pool
}

// NewPostgresService creates a Service backed by the given connection pool
func NewPostgresService(pool *pgxpool.Pool) *PostgresService {
	return &PostgresService{pool: pool}
}

// user_data row types, as stored by the hub
const (
	userDataPfp         = 1
	userDataDisplayName = 2
	userDataBio         = 3
	userDataURL         = 5
	userDataUsername    = 6
)

// GetUserByFid implements Service
func (s *PostgresService) GetUserByFid(ctx context.Context, fid uint64) (string, error) {
	profile, found, err := s.loadProfile(ctx, fid)
	if err != nil {
		return "", err
	}
	if !found {
		return fmt.Sprintf("No user data found for FID %d", fid), nil
	}
	return renderJSON(profile.payload()), nil
}

// GetUserByUsername implements Service
func (s *PostgresService) GetUserByUsername(ctx context.Context, username string) (string, error) {
	var fid int64
	err := s.pool.QueryRow(ctx,
		`SELECT fid FROM user_data WHERE type = $1 AND value = $2 ORDER BY timestamp DESC LIMIT 1`,
		userDataUsername, username,
	).Scan(&fid)
	if errors.Is(err, pgx.ErrNoRows) {
		return notFoundJSON(map[string]any{"username": username}, "Username not found"), nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup username %q: %w", username, err)
	}

	profile, found, err := s.loadProfile(ctx, uint64(fid))
	if err != nil {
		return "", err
	}
	if !found {
		return notFoundJSON(map[string]any{"username": username}, "Username not found"), nil
	}
	return renderJSON(profile.payload()), nil
}

// loadProfile merges the user_data rows for a FID into one profile
func (s *PostgresService) loadProfile(ctx context.Context, fid uint64) (UserProfile, bool, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT type, value FROM user_data WHERE fid = $1`, int64(fid))
	if err != nil {
		return UserProfile{}, false, fmt.Errorf("load profile for FID %d: %w", fid, err)
	}
	defer rows.Close()

	profile := UserProfile{Fid: fid}
	found := false
	for rows.Next() {
		var rowType int16
		var value string
		if err := rows.Scan(&rowType, &value); err != nil {
			return UserProfile{}, false, fmt.Errorf("scan profile row: %w", err)
		}
		found = true
		v := value
		switch rowType {
		case userDataUsername:
			profile.Username = &v
		case userDataDisplayName:
			profile.DisplayName = &v
		case userDataBio:
			profile.Bio = &v
		case userDataPfp:
			profile.Pfp = &v
		case userDataURL:
			profile.URL = &v
		}
	}
	if err := rows.Err(); err != nil {
		return UserProfile{}, false, fmt.Errorf("read profile rows: %w", err)
	}
	return profile, found, nil
}

// GetVerificationsByFid implements Service
func (s *PostgresService) GetVerificationsByFid(ctx context.Context, fid uint64, limit int) (string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT address, protocol, type, timestamp
		   FROM verifications
		  WHERE fid = $1 AND deleted_at IS NULL
		  ORDER BY timestamp DESC
		  LIMIT $2`,
		int64(fid), limit)
	if err != nil {
		return "", fmt.Errorf("query verifications for FID %d: %w", fid, err)
	}
	defer rows.Close()

	var verifications []Verification
	for rows.Next() {
		v := Verification{Fid: fid}
		var ts int64
		if err := rows.Scan(&v.Address, &v.Protocol, &v.Type, &ts); err != nil {
			return "", fmt.Errorf("scan verification row: %w", err)
		}
		v.Timestamp = uint64(ts)
		verifications = append(verifications, v)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("read verification rows: %w", err)
	}

	if len(verifications) == 0 {
		return fmt.Sprintf("No verifications found for FID %d", fid), nil
	}
	return verificationsPayload(fid, verifications), nil
}

// GetVerification implements Service
func (s *PostgresService) GetVerification(ctx context.Context, fid uint64, address string) (string, error) {
	decoded, err := hex.DecodeString(strings.TrimPrefix(address, "0x"))
	if err != nil {
		return fmt.Sprintf("Invalid address format: %s", address), nil
	}

	v := Verification{Fid: fid, Address: decoded}
	var ts int64
	err = s.pool.QueryRow(ctx,
		`SELECT protocol, type, timestamp
		   FROM verifications
		  WHERE fid = $1 AND address = $2 AND deleted_at IS NULL`,
		int64(fid), decoded,
	).Scan(&v.Protocol, &v.Type, &ts)
	if errors.Is(err, pgx.ErrNoRows) {
		return notFoundJSON(
			map[string]any{"fid": fid, "address": address},
			"Verification not found",
		), nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup verification for FID %d: %w", fid, err)
	}
	v.Timestamp = uint64(ts)

	return renderJSON(map[string]any{
		"fid":          fid,
		"address":      address,
		"found":        true,
		"verification": v.payload(),
	}), nil
}

// GetAllVerificationMessagesByFid implements Service
func (s *PostgresService) GetAllVerificationMessagesByFid(ctx context.Context, fid uint64, limit int, startTime, endTime *uint64) (string, error) {
	query := `SELECT address, action, timestamp
	            FROM verification_messages
	           WHERE fid = $1`
	args := []any{int64(fid)}
	if startTime != nil {
		args = append(args, int64(*startTime))
		query += fmt.Sprintf(" AND timestamp >= $%d", len(args))
	}
	if endTime != nil {
		args = append(args, int64(*endTime))
		query += fmt.Sprintf(" AND timestamp <= $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY timestamp DESC LIMIT $%d", len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return "", fmt.Errorf("query verification messages for FID %d: %w", fid, err)
	}
	defer rows.Close()

	var messages []VerificationMessage
	for rows.Next() {
		m := VerificationMessage{Fid: fid}
		var ts int64
		if err := rows.Scan(&m.Address, &m.Action, &ts); err != nil {
			return "", fmt.Errorf("scan verification message row: %w", err)
		}
		m.Timestamp = uint64(ts)
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("read verification message rows: %w", err)
	}

	if len(messages) == 0 {
		if startTime != nil && endTime != nil {
			return fmt.Sprintf(
				"No verification messages found for FID %d between timestamps %d and %d",
				fid, *startTime, *endTime,
			), nil
		}
		return fmt.Sprintf("No verification messages found for FID %d", fid), nil
	}
	return verificationMessagesPayload(fid, startTime, endTime, messages), nil
}

// castColumns is the select list shared by every cast query
const castColumns = `fid, hash, text, timestamp, parent_fid, parent_hash, parent_url`

// scanCasts drains a cast result set
func scanCasts(rows pgx.Rows) ([]Cast, error) {
	defer rows.Close()

	var casts []Cast
	for rows.Next() {
		var c Cast
		var fid, ts int64
		var parentFid *int64
		if err := rows.Scan(&fid, &c.Hash, &c.Text, &ts, &parentFid, &c.ParentHash, &c.ParentURL); err != nil {
			return nil, fmt.Errorf("scan cast row: %w", err)
		}
		c.Fid = uint64(fid)
		c.Timestamp = uint64(ts)
		if parentFid != nil {
			pf := uint64(*parentFid)
			c.ParentFid = &pf
		}
		casts = append(casts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read cast rows: %w", err)
	}
	return casts, nil
}

// loadCast fetches one cast by FID and hash
func (s *PostgresService) loadCast(ctx context.Context, fid uint64, hash []byte) (Cast, bool, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+castColumns+` FROM casts
		  WHERE fid = $1 AND hash = $2 AND deleted_at IS NULL`,
		int64(fid), hash)
	if err != nil {
		return Cast{}, false, fmt.Errorf("query cast for FID %d: %w", fid, err)
	}

	casts, err := scanCasts(rows)
	if err != nil {
		return Cast{}, false, err
	}
	if len(casts) == 0 {
		return Cast{}, false, nil
	}
	return casts[0], true, nil
}

// GetCast implements Service
func (s *PostgresService) GetCast(ctx context.Context, fid uint64, hash string) (string, error) {
	decoded, err := hex.DecodeString(strings.TrimPrefix(hash, "0x"))
	if err != nil {
		return fmt.Sprintf("Invalid hash format: %s", hash), nil
	}

	cast, found, err := s.loadCast(ctx, fid, decoded)
	if err != nil {
		return "", err
	}
	if !found {
		return fmt.Sprintf("No cast found with hash %s for FID %d", hash, fid), nil
	}
	return renderJSON(cast.payload()), nil
}

// GetConversation implements Service
func (s *PostgresService) GetConversation(ctx context.Context, fid uint64, hash string, recursive bool, maxDepth, limit int) (string, error) {
	decoded, err := hex.DecodeString(strings.TrimPrefix(hash, "0x"))
	if err != nil {
		return fmt.Sprintf("Invalid hash format: %s", hash), nil
	}

	root, found, err := s.loadCast(ctx, fid, decoded)
	if err != nil {
		return "", err
	}
	if !found {
		return fmt.Sprintf("No cast found with hash %s for FID %d", hash, fid), nil
	}

	depth := maxDepth
	if !recursive {
		depth = 1
	}
	replies, err := s.loadReplies(ctx, root, depth, limit)
	if err != nil {
		return "", err
	}

	return renderJSON(map[string]any{
		"fid":  fid,
		"hash": hash,
		"conversation": map[string]any{
			"root":    root.payload(),
			"replies": replies,
		},
	}), nil
}

// loadReplies walks the reply tree under a cast, bounded by depth and by
// limit replies per level
func (s *PostgresService) loadReplies(ctx context.Context, parent Cast, depth, limit int) ([]any, error) {
	if depth <= 0 {
		return []any{}, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+castColumns+` FROM casts
		  WHERE parent_fid = $1 AND parent_hash = $2 AND deleted_at IS NULL
		  ORDER BY timestamp ASC
		  LIMIT $3`,
		int64(parent.Fid), parent.Hash, limit)
	if err != nil {
		return nil, fmt.Errorf("query replies for FID %d: %w", parent.Fid, err)
	}

	casts, err := scanCasts(rows)
	if err != nil {
		return nil, err
	}

	replies := make([]any, 0, len(casts))
	for _, c := range casts {
		nested, err := s.loadReplies(ctx, c, depth-1, limit)
		if err != nil {
			return nil, err
		}
		entry := c.payload()
		entry["replies"] = nested
		replies = append(replies, entry)
	}
	return replies, nil
}

// GetCastsByFid implements Service
func (s *PostgresService) GetCastsByFid(ctx context.Context, fid uint64, limit int) (string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+castColumns+` FROM casts
		  WHERE fid = $1 AND deleted_at IS NULL
		  ORDER BY timestamp DESC
		  LIMIT $2`,
		int64(fid), limit)
	if err != nil {
		return "", fmt.Errorf("query casts for FID %d: %w", fid, err)
	}

	casts, err := scanCasts(rows)
	if err != nil {
		return "", err
	}
	if len(casts) == 0 {
		return fmt.Sprintf("No casts found for FID %d", fid), nil
	}
	return castsPayload(fid, casts), nil
}

// GetCastsByMention implements Service
func (s *PostgresService) GetCastsByMention(ctx context.Context, fid uint64, limit int) (string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT c.fid, c.hash, c.text, c.timestamp, c.parent_fid, c.parent_hash, c.parent_url
		   FROM casts c
		   JOIN cast_mentions m ON m.cast_fid = c.fid AND m.cast_hash = c.hash
		  WHERE m.mention_fid = $1 AND c.deleted_at IS NULL
		  ORDER BY c.timestamp DESC
		  LIMIT $2`,
		int64(fid), limit)
	if err != nil {
		return "", fmt.Errorf("query casts mentioning FID %d: %w", fid, err)
	}

	casts, err := scanCasts(rows)
	if err != nil {
		return "", err
	}
	if len(casts) == 0 {
		return fmt.Sprintf("No casts found mentioning FID %d", fid), nil
	}
	return castsPayload(fid, casts), nil
}

// GetCastsByParent implements Service
func (s *PostgresService) GetCastsByParent(ctx context.Context, fid uint64, hash string, limit int) (string, error) {
	decoded, err := hex.DecodeString(strings.TrimPrefix(hash, "0x"))
	if err != nil {
		return fmt.Sprintf("Invalid hash format: %s", hash), nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+castColumns+` FROM casts
		  WHERE parent_fid = $1 AND parent_hash = $2 AND deleted_at IS NULL
		  ORDER BY timestamp ASC
		  LIMIT $3`,
		int64(fid), decoded, limit)
	if err != nil {
		return "", fmt.Errorf("query replies to cast %s: %w", hash, err)
	}

	casts, err := scanCasts(rows)
	if err != nil {
		return "", err
	}
	if len(casts) == 0 {
		return fmt.Sprintf("No replies found for cast %s from FID %d", hash, fid), nil
	}
	return repliesByParentPayload(fid, hash, casts), nil
}

// GetCastsByParentURL implements Service
func (s *PostgresService) GetCastsByParentURL(ctx context.Context, url string, limit int) (string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+castColumns+` FROM casts
		  WHERE parent_url = $1 AND deleted_at IS NULL
		  ORDER BY timestamp ASC
		  LIMIT $2`,
		url, limit)
	if err != nil {
		return "", fmt.Errorf("query replies to URL %s: %w", url, err)
	}

	casts, err := scanCasts(rows)
	if err != nil {
		return "", err
	}
	if len(casts) == 0 {
		return fmt.Sprintf("No replies found for parent URL %s", url), nil
	}
	return repliesByURLPayload(url, casts), nil
}

// reactionColumns is the select list shared by every reaction query
const reactionColumns = `fid, type, target_cast_fid, target_cast_hash, target_url, timestamp`

// scanReactions drains a reaction result set
func scanReactions(rows pgx.Rows) ([]Reaction, error) {
	defer rows.Close()

	var reactions []Reaction
	for rows.Next() {
		var r Reaction
		var fid, ts int64
		var targetFid *int64
		if err := rows.Scan(&fid, &r.Type, &targetFid, &r.TargetCastHash, &r.TargetURL, &ts); err != nil {
			return nil, fmt.Errorf("scan reaction row: %w", err)
		}
		r.Fid = uint64(fid)
		r.Timestamp = uint64(ts)
		if targetFid != nil {
			tf := uint64(*targetFid)
			r.TargetCastFid = &tf
		}
		reactions = append(reactions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read reaction rows: %w", err)
	}
	return reactions, nil
}

// GetReactionsByFid implements Service
func (s *PostgresService) GetReactionsByFid(ctx context.Context, fid uint64, limit int) (string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+reactionColumns+` FROM reactions
		  WHERE fid = $1 AND deleted_at IS NULL
		  ORDER BY timestamp DESC
		  LIMIT $2`,
		int64(fid), limit)
	if err != nil {
		return "", fmt.Errorf("query reactions for FID %d: %w", fid, err)
	}

	reactions, err := scanReactions(rows)
	if err != nil {
		return "", err
	}
	if len(reactions) == 0 {
		return fmt.Sprintf("No reactions found for FID %d", fid), nil
	}
	return reactionsPayload(map[string]any{"fid": fid}, reactions), nil
}

// GetReactionsByTargetCast implements Service
func (s *PostgresService) GetReactionsByTargetCast(ctx context.Context, fid uint64, targetHash []byte, limit int) (string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+reactionColumns+` FROM reactions
		  WHERE target_cast_fid = $1 AND target_cast_hash = $2 AND deleted_at IS NULL
		  ORDER BY timestamp DESC
		  LIMIT $3`,
		int64(fid), targetHash, limit)
	if err != nil {
		return "", fmt.Errorf("query reactions for target cast of FID %d: %w", fid, err)
	}

	reactions, err := scanReactions(rows)
	if err != nil {
		return "", err
	}
	if len(reactions) == 0 {
		return fmt.Sprintf("No reactions found for cast %s from FID %d", hexHash(targetHash), fid), nil
	}
	return reactionsPayload(map[string]any{
		"target_cast": map[string]any{"fid": fid, "hash": hexHash(targetHash)},
	}, reactions), nil
}

// GetReactionsByTargetURL implements Service
func (s *PostgresService) GetReactionsByTargetURL(ctx context.Context, url string, limit int) (string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+reactionColumns+` FROM reactions
		  WHERE target_url = $1 AND deleted_at IS NULL
		  ORDER BY timestamp DESC
		  LIMIT $2`,
		url, limit)
	if err != nil {
		return "", fmt.Errorf("query reactions for URL %s: %w", url, err)
	}

	reactions, err := scanReactions(rows)
	if err != nil {
		return "", err
	}
	if len(reactions) == 0 {
		return fmt.Sprintf("No reactions found for target URL %s", url), nil
	}
	return reactionsPayload(map[string]any{"target_url": url}, reactions), nil
}

// scanLinks drains a link result set
func scanLinks(rows pgx.Rows) ([]Link, error) {
	defer rows.Close()

	var links []Link
	for rows.Next() {
		var l Link
		var fid, targetFid, ts int64
		if err := rows.Scan(&fid, &targetFid, &l.Type, &ts); err != nil {
			return nil, fmt.Errorf("scan link row: %w", err)
		}
		l.Fid = uint64(fid)
		l.TargetFid = uint64(targetFid)
		l.Timestamp = uint64(ts)
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read link rows: %w", err)
	}
	return links, nil
}

// GetLinksByFid implements Service
func (s *PostgresService) GetLinksByFid(ctx context.Context, fid uint64, linkType string, limit int) (string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT fid, target_fid, type, timestamp FROM links
		  WHERE fid = $1 AND type = $2 AND deleted_at IS NULL
		  ORDER BY timestamp DESC
		  LIMIT $3`,
		int64(fid), linkType, limit)
	if err != nil {
		return "", fmt.Errorf("query links for FID %d: %w", fid, err)
	}

	links, err := scanLinks(rows)
	if err != nil {
		return "", err
	}
	if len(links) == 0 {
		return fmt.Sprintf("No links found for FID %d", fid), nil
	}
	return linksPayload(map[string]any{"fid": fid}, links), nil
}

// GetLinksByTarget implements Service
func (s *PostgresService) GetLinksByTarget(ctx context.Context, fid uint64, linkType string, limit int) (string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT fid, target_fid, type, timestamp FROM links
		  WHERE target_fid = $1 AND type = $2 AND deleted_at IS NULL
		  ORDER BY timestamp DESC
		  LIMIT $3`,
		int64(fid), linkType, limit)
	if err != nil {
		return "", fmt.Errorf("query links targeting FID %d: %w", fid, err)
	}

	links, err := scanLinks(rows)
	if err != nil {
		return "", err
	}
	if len(links) == 0 {
		return fmt.Sprintf("No links found targeting FID %d", fid), nil
	}
	return linksPayload(map[string]any{"target_fid": fid}, links), nil
}

// GetLinkCompactStateByFid implements Service
func (s *PostgresService) GetLinkCompactStateByFid(ctx context.Context, fid uint64) (string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT ON (target_fid) fid, target_fid, type, timestamp
		   FROM links
		  WHERE fid = $1 AND deleted_at IS NULL
		  ORDER BY target_fid, timestamp DESC`,
		int64(fid))
	if err != nil {
		return "", fmt.Errorf("query link state for FID %d: %w", fid, err)
	}

	links, err := scanLinks(rows)
	if err != nil {
		return "", err
	}
	if len(links) == 0 {
		return fmt.Sprintf("No link state found for FID %d", fid), nil
	}
	return compactLinksPayload(fid, links), nil
}

// GetUsernameProof implements Service
func (s *PostgresService) GetUsernameProof(ctx context.Context, name string) (string, error) {
	p := UsernameProof{Name: name}
	var fid, ts int64
	err := s.pool.QueryRow(ctx,
		`SELECT fid, type, owner, timestamp
		   FROM username_proofs
		  WHERE name = $1
		  ORDER BY timestamp DESC
		  LIMIT 1`,
		name,
	).Scan(&fid, &p.Type, &p.Owner, &ts)
	if errors.Is(err, pgx.ErrNoRows) {
		return notFoundJSON(map[string]any{"name": name}, "Username proof not found"), nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup username proof %q: %w", name, err)
	}
	p.Fid = uint64(fid)
	p.Timestamp = uint64(ts)

	return renderJSON(map[string]any{
		"name":      p.Name,
		"found":     true,
		"type":      p.Type,
		"fid":       p.Fid,
		"timestamp": p.Timestamp,
		"owner":     hexHash(p.Owner),
	}), nil
}

// GetUsernameProofsByFid implements Service
func (s *PostgresService) GetUsernameProofsByFid(ctx context.Context, fid uint64) (string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT name, type, owner, timestamp
		   FROM username_proofs
		  WHERE fid = $1
		  ORDER BY timestamp DESC`,
		int64(fid))
	if err != nil {
		return "", fmt.Errorf("query username proofs for FID %d: %w", fid, err)
	}
	defer rows.Close()

	var proofs []UsernameProof
	for rows.Next() {
		p := UsernameProof{Fid: fid}
		var ts int64
		if err := rows.Scan(&p.Name, &p.Type, &p.Owner, &ts); err != nil {
			return "", fmt.Errorf("scan username proof row: %w", err)
		}
		p.Timestamp = uint64(ts)
		proofs = append(proofs, p)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("read username proof rows: %w", err)
	}

	if len(proofs) == 0 {
		return fmt.Sprintf("No username proofs found for FID %d", fid), nil
	}
	return proofsPayload(fid, proofs), nil
}
