// internal/app/store/ratelimit/store.go
package ratelimit

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Attempt tracks contact-form submissions for one limiter key (client IP).
type Attempt struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Key          string             `bson:"key"`           // Normalized limiter key (lowercase)
	AttemptCount int                `bson:"attempt_count"` // Submissions in current window
	WindowStart  time.Time          `bson:"window_start"`  // When the current counting window started
	BlockedUntil *time.Time         `bson:"blocked_until"` // Block expiry time (nil if not blocked)
	LastAttempt  time.Time          `bson:"last_attempt"`  // Most recent attempt (for TTL cleanup)
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

// Store throttles public contact-form submissions per client IP.
// State lives in Mongo so limits hold across restarts and replicas.
type Store struct {
	c             *mongo.Collection
	maxAttempts   int
	window        time.Duration
	blockDuration time.Duration
}

// New creates a rate limit Store with the given configuration.
func New(db *mongo.Database, maxAttempts int, window, block time.Duration) *Store {
	return &Store{
		c:             db.Collection("rate_limits"),
		maxAttempts:   maxAttempts,
		window:        window,
		blockDuration: block,
	}
}

// normalizeKey lowercases and trims the limiter key.
func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// CheckAllowed reports whether the key may submit right now.
// Returns:
//   - allowed: true if the submission should be processed
//   - remaining: submissions left before the block (-1 if blocked)
//   - blockedUntil: when the block expires (nil if not blocked)
func (s *Store) CheckAllowed(ctx context.Context, key string) (allowed bool, remaining int, blockedUntil *time.Time) {
	key = normalizeKey(key)
	now := time.Now()

	var attempt Attempt
	err := s.c.FindOne(ctx, bson.M{"key": key}).Decode(&attempt)
	if err == mongo.ErrNoDocuments {
		// No record exists - allowed with full attempts remaining
		return true, s.maxAttempts, nil
	}
	if err != nil {
		// On error, allow the attempt (fail open for availability)
		return true, s.maxAttempts, nil
	}

	// Check if currently blocked
	if attempt.BlockedUntil != nil && now.Before(*attempt.BlockedUntil) {
		return false, -1, attempt.BlockedUntil
	}

	// Check if window has expired (reset counter)
	if now.After(attempt.WindowStart.Add(s.window)) {
		return true, s.maxAttempts, nil
	}

	// Within window - check remaining attempts
	remaining = s.maxAttempts - attempt.AttemptCount
	if remaining <= 0 {
		// Should be blocked but the block wasn't set properly - treat as blocked
		return false, 0, nil
	}

	return true, remaining, nil
}

// Record counts one submission for the key.
// Returns:
//   - blocked: true if this submission triggered a block
//   - blockedUntil: when the block expires (nil if not blocked)
func (s *Store) Record(ctx context.Context, key string) (blocked bool, blockedUntil *time.Time) {
	key = normalizeKey(key)
	now := time.Now()

	var attempt Attempt
	err := s.c.FindOne(ctx, bson.M{"key": key}).Decode(&attempt)

	if err == mongo.ErrNoDocuments {
		// First submission - create new record
		attempt = Attempt{
			ID:           primitive.NewObjectID(),
			Key:          key,
			AttemptCount: 1,
			WindowStart:  now,
			LastAttempt:  now,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if attempt.AttemptCount >= s.maxAttempts {
			blockTime := now.Add(s.blockDuration)
			attempt.BlockedUntil = &blockTime
			blocked = true
			blockedUntil = &blockTime
		}

		_, _ = s.c.InsertOne(ctx, attempt)
		return blocked, blockedUntil
	}

	if err != nil {
		// On error, don't block (fail open)
		return false, nil
	}

	// Check if window has expired - reset counter
	if now.After(attempt.WindowStart.Add(s.window)) {
		attempt.AttemptCount = 1
		attempt.WindowStart = now
		attempt.BlockedUntil = nil
	} else {
		attempt.AttemptCount++
	}

	attempt.LastAttempt = now
	attempt.UpdatedAt = now

	// Check if we've exceeded the limit
	if attempt.AttemptCount >= s.maxAttempts {
		blockTime := now.Add(s.blockDuration)
		attempt.BlockedUntil = &blockTime
		blocked = true
		blockedUntil = &blockTime
	}

	// Update the record
	_, _ = s.c.UpdateOne(ctx,
		bson.M{"_id": attempt.ID},
		bson.M{"$set": bson.M{
			"attempt_count": attempt.AttemptCount,
			"window_start":  attempt.WindowStart,
			"blocked_until": attempt.BlockedUntil,
			"last_attempt":  attempt.LastAttempt,
			"updated_at":    attempt.UpdatedAt,
		}},
	)

	return blocked, blockedUntil
}

// Clear removes the record for a key (admin unblock).
func (s *Store) Clear(ctx context.Context, key string) error {
	key = normalizeKey(key)
	_, err := s.c.DeleteOne(ctx, bson.M{"key": key})
	return err
}
