package services

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps server-side sessions in Redis. The session ID handed to
// the client is HMAC-signed with the session key so a forged cookie never
// reaches Redis.
type SessionStore struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, secret string, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, secret: []byte(secret), ttl: ttl}
}

func (s *SessionStore) key(sessionID string) string {
	return "session:" + sessionID
}

func (s *SessionStore) sign(sessionID string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(sessionID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Create opens a session for the user and returns the signed session token
// to be set as a cookie value.
func (s *SessionStore) Create(ctx context.Context, userID string) (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	sessionID := hex.EncodeToString(raw)

	if err := s.client.Set(ctx, s.key(sessionID), userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return sessionID + "." + s.sign(sessionID), nil
}

// Resolve validates a signed session token and returns the user ID of the
// active session, or an error when the session is missing or tampered with.
func (s *SessionStore) Resolve(ctx context.Context, token string) (string, error) {
	sessionID, sig, ok := splitSessionToken(token)
	if !ok {
		return "", fmt.Errorf("malformed session token")
	}
	if !hmac.Equal([]byte(s.sign(sessionID)), []byte(sig)) {
		return "", fmt.Errorf("session signature mismatch")
	}

	userID, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("session expired")
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Destroy deletes the session referenced by a signed session token. Invalid
// tokens are ignored.
func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	sessionID, _, ok := splitSessionToken(token)
	if !ok {
		return nil
	}
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

func splitSessionToken(token string) (sessionID, sig string, ok bool) {
	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			return token[:i], token[i+1:], i > 0 && i < len(token)-1
		}
	}
	return "", "", false
}
