// Package turncache caches the per-session conversational turn context used
// by the pipeline's context stages. Entries are encrypted at rest in Redis.
package turncache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/interviewly/interview-service/internal/core/cache"
	"github.com/interviewly/interview-service/internal/pkg/encryption"
)

const (
	// DefaultTurnContextTTL is the default TTL for a cached turn context.
	DefaultTurnContextTTL = 30 * time.Minute

	// DefaultMaxTurns is the default number of turns kept in the context
	// window.
	DefaultMaxTurns = 30
)

// Turn is one conversational exchange within a phase.
type Turn struct {
	Role      string    `json:"role"`
	Phase     string    `json:"phase"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// TurnContext is the cached conversational state of one session: the recent
// turn window plus the orchestration hints the context stages read and write.
type TurnContext struct {
	SessionID   string                 `json:"sessionId"`
	CandidateID string                 `json:"candidateId"`
	Phase       string                 `json:"phase"`
	Turns       []Turn                 `json:"turns"`
	Metrics     map[string]interface{} `json:"metrics,omitempty"`
	NextPhase   string                 `json:"nextPhase,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// Service caches turn contexts keyed by session.
type Service interface {
	// GetContext retrieves a turn context, or nil if absent. Stale entries
	// that fail to decrypt or decode are dropped silently.
	GetContext(ctx context.Context, sessionID string) (*TurnContext, error)

	// SetContext stores a turn context with the configured TTL.
	SetContext(ctx context.Context, tc *TurnContext) error

	// AppendTurns appends turns to an existing context, trimming the oldest
	// beyond the window limit.
	AppendTurns(ctx context.Context, sessionID string, turns ...Turn) error

	// DeleteContext removes a session's turn context.
	DeleteContext(ctx context.Context, sessionID string) error
}

type service struct {
	cacheClient cache.Client
	encryptor   encryption.Encryptor
	ttl         time.Duration
	maxTurns    int
}

// Config holds the configuration for the turn cache service.
type Config struct {
	CacheClient cache.Client
	Encryptor   encryption.Encryptor
	TTL         time.Duration
	MaxTurns    int
}

// NewService creates a new turn cache service.
func NewService(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.CacheClient == nil {
		return nil, fmt.Errorf("cache client is required")
	}
	if cfg.Encryptor == nil {
		return nil, fmt.Errorf("encryptor is required")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTurnContextTTL
	}
	maxTurns := cfg.MaxTurns
	if maxTurns == 0 {
		maxTurns = DefaultMaxTurns
	}

	return &service{
		cacheClient: cfg.CacheClient,
		encryptor:   cfg.Encryptor,
		ttl:         ttl,
		maxTurns:    maxTurns,
	}, nil
}

// GetContext retrieves a turn context from cache. An entry that fails to
// decrypt (key rotated) or to decode (corrupted) is deleted and reported as
// absent so callers rebuild it from the session document.
func (s *service) GetContext(ctx context.Context, sessionID string) (*TurnContext, error) {
	key := cacheKey(sessionID)

	encrypted, err := s.cacheClient.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get turn context from cache: %w", err)
	}
	if encrypted == nil {
		return nil, nil
	}

	decrypted, err := s.encryptor.Decrypt(string(encrypted))
	if err != nil {
		_, _ = s.cacheClient.Delete(ctx, key)
		return nil, nil
	}

	var tc TurnContext
	if err := json.Unmarshal(decrypted, &tc); err != nil {
		_, _ = s.cacheClient.Delete(ctx, key)
		return nil, nil
	}
	return &tc, nil
}

// SetContext stores a turn context in cache.
func (s *service) SetContext(ctx context.Context, tc *TurnContext) error {
	if tc == nil {
		return fmt.Errorf("turn context is required")
	}
	if tc.SessionID == "" {
		return fmt.Errorf("session id is required")
	}

	tc.UpdatedAt = time.Now().UTC()
	if tc.CreatedAt.IsZero() {
		tc.CreatedAt = tc.UpdatedAt
	}

	data, err := json.Marshal(tc)
	if err != nil {
		return fmt.Errorf("failed to marshal turn context: %w", err)
	}

	encrypted, err := s.encryptor.Encrypt(data)
	if err != nil {
		return fmt.Errorf("failed to encrypt turn context: %w", err)
	}

	if err := s.cacheClient.Set(ctx, cacheKey(tc.SessionID), []byte(encrypted), s.ttl); err != nil {
		return fmt.Errorf("failed to store turn context in cache: %w", err)
	}
	return nil
}

// AppendTurns appends turns to an existing context, dropping the oldest
// entries beyond the window limit.
func (s *service) AppendTurns(ctx context.Context, sessionID string, turns ...Turn) error {
	tc, err := s.GetContext(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to get turn context for update: %w", err)
	}
	if tc == nil {
		return fmt.Errorf("turn context not found")
	}

	tc.Turns = append(tc.Turns, turns...)
	if len(tc.Turns) > s.maxTurns {
		excess := len(tc.Turns) - s.maxTurns
		tc.Turns = tc.Turns[excess:]
	}

	return s.SetContext(ctx, tc)
}

// DeleteContext removes a session's turn context from cache.
func (s *service) DeleteContext(ctx context.Context, sessionID string) error {
	if _, err := s.cacheClient.Delete(ctx, cacheKey(sessionID)); err != nil {
		return fmt.Errorf("failed to delete turn context: %w", err)
	}
	return nil
}

func cacheKey(sessionID string) string {
	return "turns:" + sessionID
}

// NewTurnContext creates a fresh turn context for a session.
func NewTurnContext(sessionID, candidateID, phase string) *TurnContext {
	now := time.Now().UTC()
	return &TurnContext{
		SessionID:   sessionID,
		CandidateID: candidateID,
		Phase:       phase,
		Turns:       []Turn{},
		Metrics:     map[string]interface{}{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
