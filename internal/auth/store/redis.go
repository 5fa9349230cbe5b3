package store

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/allisson/journal/internal/auth/domain"
	apperrors "github.com/allisson/journal/internal/errors"
)

// casScript atomically rotates the refresh nonce and marks the old nonce as
// used with a TTL. Both effects land in the same script execution, so a loser
// of the rotation race can never observe the swap without the used marker.
const casScript = `
local cur = redis.call('GET', KEYS[1])
if cur == ARGV[1] then
    redis.call('SET', KEYS[1], ARGV[2])
    redis.call('SET', KEYS[2], 1)
    redis.call('EXPIRE', KEYS[2], ARGV[3])
    return 1
else
    return 0
end
`

// revokeAllScript reads the user's session index, marks every member revoked
// and deletes the index key in one atomic step. Reading the set inside the
// script means a session indexed while the sweep runs is either fully swept
// or left indexed for the next one, never dropped unrevoked and unindexed.
const revokeAllScript = `
local sessions = redis.call('SMEMBERS', KEYS[1])
for i = 1, #sessions do
    redis.call('SET', 'revoked:session:' .. sessions[i], 1)
end
redis.call('DEL', KEYS[1])
return #sessions
`

// redisClient is the subset of go-redis used by RedisStore. *redis.Client
// satisfies it; tests substitute a fake to exercise error paths without a
// server.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	SAdd(ctx context.Context, key string, members ...any) *redis.IntCmd
	SRem(ctx context.Context, key string, members ...any) *redis.IntCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	EvalSha(ctx context.Context, sha string, keys []string, args ...any) *redis.Cmd
	Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
	ScriptLoad(ctx context.Context, script string) *redis.StringCmd
}

// RedisStore is a RevocationStore backed by a shared Redis instance.
type RedisStore struct {
	client       redisClient
	usedNonceTTL time.Duration

	// casSHA caches the SCRIPT LOAD result for the CAS script. Cleared on
	// NOSCRIPT so the next call reloads.
	casMu  sync.Mutex
	casSHA string

	scriptLoads atomic.Int64
}

// NewRedisStore creates a RedisStore from a Redis URL
// (e.g. redis://:password@host:6379/0).
//
// When preloadScript is set, the CAS script is loaded at construction so the
// first rotation avoids a NOSCRIPT round trip. Preload failures are ignored;
// the script loads lazily on first use instead.
func NewRedisStore(url string, usedNonceTTL time.Duration, preloadScript bool) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse redis url")
	}

	store := NewRedisStoreWithClient(redis.NewClient(opts), usedNonceTTL)

	if preloadScript {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = store.loadScript(ctx)
	}

	return store, nil
}

// NewRedisStoreWithClient creates a RedisStore on an existing client.
func NewRedisStoreWithClient(client redisClient, usedNonceTTL time.Duration) *RedisStore {
	return &RedisStore{
		client:       client,
		usedNonceTTL: usedNonceTTL,
	}
}

// ScriptLoads returns how many times the CAS script was loaded (SCRIPT LOAD).
// Exposed so tests can assert EVALSHA caching behavior.
func (s *RedisStore) ScriptLoads() int64 {
	return s.scriptLoads.Load()
}

func wrapStoreErr(err error) error {
	return apperrors.Wrap(domain.ErrStoreUnavailable, err.Error())
}

func sessionRevokedKey(sessionID string) string {
	return "revoked:session:" + sessionID
}

func minGenerationKey(userID int64) string {
	return fmt.Sprintf("min_generation:%d", userID)
}

func refreshNonceKey(sessionID string) string {
	return "session_refresh_nonce:" + sessionID
}

func usedNonceKey(sessionID, nonce string) string {
	return "used_refresh_nonce:" + sessionID + ":" + nonce
}

func userSessionsKey(userID int64) string {
	return fmt.Sprintf("user_sessions:%d", userID)
}

func sessionMetaKey(sessionID string) string {
	return "session:meta:" + sessionID
}

// IsRevoked reports whether the session has been revoked.
func (s *RedisStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionRevokedKey(sessionID)).Result()
	if err != nil {
		return false, wrapStoreErr(err)
	}
	return n > 0, nil
}

// Revoke marks the session revoked.
func (s *RedisStore) Revoke(ctx context.Context, sessionID string) error {
	if err := s.client.Set(ctx, sessionRevokedKey(sessionID), 1, 0).Err(); err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

// GetMinGeneration returns the user's minimum accepted token generation.
func (s *RedisStore) GetMinGeneration(ctx context.Context, userID int64) (int64, error) {
	val, err := s.client.Get(ctx, minGenerationKey(userID)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, wrapStoreErr(err)
	}

	generation, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, wrapStoreErr(err)
	}
	return generation, nil
}

// SetMinGeneration records the user's minimum accepted token generation.
func (s *RedisStore) SetMinGeneration(ctx context.Context, userID int64, generation int64) error {
	if err := s.client.Set(ctx, minGenerationKey(userID), generation, 0).Err(); err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

// BumpMinGeneration increments the user's minimum accepted token generation
// with a single INCR, so concurrent bumps serialize in Redis and the counter
// never moves backwards.
func (s *RedisStore) BumpMinGeneration(ctx context.Context, userID int64) (int64, error) {
	generation, err := s.client.Incr(ctx, minGenerationKey(userID)).Result()
	if err != nil {
		return 0, wrapStoreErr(err)
	}
	return generation, nil
}

// GetRefreshNonce returns the session's current refresh nonce.
func (s *RedisStore) GetRefreshNonce(ctx context.Context, sessionID string) (string, error) {
	val, err := s.client.Get(ctx, refreshNonceKey(sessionID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", wrapStoreErr(err)
	}
	return val, nil
}

// SetRefreshNonce unconditionally sets the session's refresh nonce.
func (s *RedisStore) SetRefreshNonce(ctx context.Context, sessionID, nonce string) error {
	if err := s.client.Set(ctx, refreshNonceKey(sessionID), nonce, 0).Err(); err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

// CompareAndSwapRefreshNonce executes the CAS script via EVALSHA with a cached
// SHA. On NOSCRIPT the script is reloaded and the call retried exactly once.
func (s *RedisStore) CompareAndSwapRefreshNonce(
	ctx context.Context,
	sessionID, expected, newNonce string,
) (bool, error) {
	keys := []string{refreshNonceKey(sessionID), usedNonceKey(sessionID, expected)}
	args := []any{expected, newNonce, int64(s.usedNonceTTL.Seconds())}

	sha, err := s.cachedSHA(ctx)
	if err != nil {
		return false, err
	}

	result, err := s.client.EvalSha(ctx, sha, keys, args...).Int64()
	if err != nil && redis.HasErrorPrefix(err, "NOSCRIPT") {
		// Another Redis instance, or a SCRIPT FLUSH. Reload and retry once.
		s.clearSHA()
		sha, err = s.cachedSHA(ctx)
		if err != nil {
			return false, err
		}
		result, err = s.client.EvalSha(ctx, sha, keys, args...).Int64()
	}
	if err != nil {
		return false, wrapStoreErr(err)
	}

	return result == 1, nil
}

// cachedSHA returns the cached CAS script SHA, loading the script on miss.
func (s *RedisStore) cachedSHA(ctx context.Context) (string, error) {
	s.casMu.Lock()
	sha := s.casSHA
	s.casMu.Unlock()

	if sha != "" {
		return sha, nil
	}
	return s.loadScript(ctx)
}

func (s *RedisStore) clearSHA() {
	s.casMu.Lock()
	s.casSHA = ""
	s.casMu.Unlock()
}

// loadScript loads the CAS script into Redis and caches its SHA.
func (s *RedisStore) loadScript(ctx context.Context) (string, error) {
	sha, err := s.client.ScriptLoad(ctx, casScript).Result()
	if err != nil {
		return "", wrapStoreErr(err)
	}

	s.scriptLoads.Add(1)

	s.casMu.Lock()
	s.casSHA = sha
	s.casMu.Unlock()

	return sha, nil
}

// MarkNonceUsed records that a nonce has been consumed for the session.
func (s *RedisStore) MarkNonceUsed(ctx context.Context, sessionID, nonce string) error {
	key := usedNonceKey(sessionID, nonce)
	if err := s.client.Set(ctx, key, 1, s.usedNonceTTL).Err(); err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

// IsNonceUsed reports whether the nonce was already consumed for the session.
func (s *RedisStore) IsNonceUsed(ctx context.Context, sessionID, nonce string) (bool, error) {
	n, err := s.client.Exists(ctx, usedNonceKey(sessionID, nonce)).Result()
	if err != nil {
		return false, wrapStoreErr(err)
	}
	return n > 0, nil
}

// AddSessionForUser indexes a session under its user.
func (s *RedisStore) AddSessionForUser(ctx context.Context, userID int64, sessionID string) error {
	if err := s.client.SAdd(ctx, userSessionsKey(userID), sessionID).Err(); err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

// RemoveSessionForUser removes a session from the user's index.
func (s *RedisStore) RemoveSessionForUser(ctx context.Context, userID int64, sessionID string) error {
	if err := s.client.SRem(ctx, userSessionsKey(userID), sessionID).Err(); err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

// ListSessionsForUser returns the ids of the user's indexed sessions.
func (s *RedisStore) ListSessionsForUser(ctx context.Context, userID int64) ([]string, error) {
	sessions, err := s.client.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return sessions, nil
}

// ListSessionsWithState returns the user's sessions with metadata and flags.
func (s *RedisStore) ListSessionsWithState(ctx context.Context, userID int64) ([]SessionState, error) {
	sessions, err := s.ListSessionsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	states := make([]SessionState, 0, len(sessions))
	for _, sid := range sessions {
		state, err := s.GetSessionMetadata(ctx, sid)
		if err != nil {
			return nil, err
		}
		if state == nil {
			state = &SessionState{
				SessionMetadata: domain.SessionMetadata{SessionID: sid, UserID: userID},
			}
			revoked, err := s.IsRevoked(ctx, sid)
			if err != nil {
				return nil, err
			}
			state.Revoked = revoked
		}
		states = append(states, *state)
	}
	return states, nil
}

// SetSessionMetadata records session metadata and indexes the session.
func (s *RedisStore) SetSessionMetadata(ctx context.Context, meta domain.SessionMetadata) error {
	if err := s.AddSessionForUser(ctx, meta.UserID, meta.SessionID); err != nil {
		return err
	}

	err := s.client.HSet(ctx, sessionMetaKey(meta.SessionID),
		"user_id", meta.UserID,
		"user_agent", meta.UserAgent,
		"ip", meta.IP,
		"created_at", meta.CreatedAt.Unix(),
	).Err()
	if err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

// GetSessionMetadata returns the session's state, or nil when unknown.
func (s *RedisStore) GetSessionMetadata(ctx context.Context, sessionID string) (*SessionState, error) {
	fields, err := s.client.HGetAll(ctx, sessionMetaKey(sessionID)).Result()
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	userID, _ := strconv.ParseInt(fields["user_id"], 10, 64)
	createdAt, _ := strconv.ParseInt(fields["created_at"], 10, 64)

	revoked, err := s.IsRevoked(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &SessionState{
		SessionMetadata: domain.SessionMetadata{
			SessionID: sessionID,
			UserID:    userID,
			UserAgent: fields["user_agent"],
			IP:        fields["ip"],
			CreatedAt: time.Unix(createdAt, 0).UTC(),
		},
		Revoked: revoked,
	}, nil
}

// DeleteSessionMetadata removes the session's metadata.
func (s *RedisStore) DeleteSessionMetadata(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionMetaKey(sessionID)).Err(); err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

// RevokeAllForUser marks every indexed session revoked and clears the index.
// The index is read inside the script, so the whole sweep is atomic over the
// set as it exists when the script runs.
func (s *RedisStore) RevokeAllForUser(ctx context.Context, userID int64) error {
	key := userSessionsKey(userID)

	if err := s.client.Eval(ctx, revokeAllScript, []string{key}).Err(); err != nil {
		return wrapStoreErr(err)
	}
	return nil
}
