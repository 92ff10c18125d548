package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"time"
)

// Key type for context values
type ContextKey string

// Context keys for various values
const (
	// OwnerContextKey is the context key for the authenticated owner
	// identity string. Set by the auth middleware; read by handlers and
	// threaded as a plain value into every card access service call.
	OwnerContextKey ContextKey = "owner"

	// RoleContextKey is the context key for the principal's coarse role.
	RoleContextKey ContextKey = "role"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of bytes used to generate the trace ID
	TraceIDLength = 16 // 32 hex characters
)

// SetTraceID adds a trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// GetOwner retrieves the authenticated owner identity from the context.
// Returns the identity string and whether it was present.
func GetOwner(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(OwnerContextKey).(string)
	if !ok || owner == "" {
		return "", false
	}
	return owner, true
}

// GetRole retrieves the principal's role from the context.
func GetRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleContextKey).(string)
	if !ok || role == "" {
		return "", false
	}
	return role, true
}

// generateTraceID creates a random trace ID for request tracking.
// Returns a 32-character hex string. If crypto/rand fails it falls back
// to a time-derived value rather than ever returning a static ID.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	n, err := rand.Read(b)

	if err != nil || n != TraceIDLength {
		slog.Error("failed to generate secure random trace ID",
			"error", err,
			"bytes_read", n,
			"fallback", "time-based generation")

		binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
		binary.BigEndian.PutUint32(b[8:12], uint32(time.Now().Nanosecond()))
		binary.BigEndian.PutUint32(b[12:16], uint32(time.Now().Unix()))
	}

	return hex.EncodeToString(b)
}
