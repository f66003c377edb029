package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionTTL = 7 * 24 * time.Hour

// SessionStore maps bearer tokens to user ids.
type SessionStore interface {
	Create(ctx context.Context, userID string) (string, error)
	Lookup(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

type redisSessions struct {
	client *redis.Client
}

// NewSessionStore returns a redis-backed session store.
func NewSessionStore(client *redis.Client) SessionStore {
	return &redisSessions{client: client}
}

func (s *redisSessions) Create(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, sessionKey(token), userID, sessionTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *redisSessions) Lookup(ctx context.Context, token string) (string, error) {
	return s.client.Get(ctx, sessionKey(token)).Result()
}

func (s *redisSessions) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

func sessionKey(token string) string {
	return "session:" + token
}

type contextKey string

const userIDKey contextKey = "user_id"

// requireAuth resolves the bearer token to a user id and stores it in
// the request context. Everything behind it is scoped to that owner.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		userID, err := s.sessions.Lookup(r.Context(), token)
		if err != nil || userID == "" {
			respondError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUserID returns the authenticated user id placed by requireAuth.
func currentUserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}
